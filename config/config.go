// Package config loads the settings of the wellets command line.
//
// Settings come from, in increasing priority:
//   - settings.toml then .secrets.toml in ~/.config/wellets_cli, then in the
//     working directory. Each file has a [default] section and one section per
//     environment, selected by WELLETS_ENV (development by default).
//   - WELLETS_* environment variables, e.g. WELLETS_API_URL. A .env file found
//     in the same directories is loaded first but never overrides the
//     environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "WELLETS"
	DefaultEnv = "development"
)

// Files read in each directory, in that order.
var Files = []string{"settings.toml", ".secrets.toml"}

// ErrMissingAPIURL is returned when no api_url is configured.
var ErrMissingAPIURL = errors.New("api_url is required")

// Config is the loaded configuration. It is loaded once and passed around.
type Config struct {
	APIURL         string        `mapstructure:"api_url"`
	APIUsername    string        `mapstructure:"api_username"`
	APIPassword    string        `mapstructure:"api_password"`
	DateFormat     string        `mapstructure:"date_format"`
	DateTimeFormat string        `mapstructure:"datetime_format"`
	HTTPTimeout    time.Duration `mapstructure:"http_timeout"`

	// Env is the environment section that was selected.
	Env string `mapstructure:"-"`
	// Sources lists the files actually read.
	Sources []string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	// Every key needs a default so that Unmarshal sees environment-only values.
	v.SetDefault("api_url", "")
	v.SetDefault("api_username", "")
	v.SetDefault("api_password", "")
	v.SetDefault("date_format", "2006-01-02")
	v.SetDefault("datetime_format", "2006-01-02 15:04")
	v.SetDefault("http_timeout", 10*time.Second)
}

// DefaultDirs returns the directories searched by default: the user's
// configuration directory and the working directory.
func DefaultDirs() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "wellets_cli"))
	}
	return append(dirs, ".")
}

// Load reads the configuration from dirs, later directories taking
// precedence. It uses DefaultDirs when dirs is empty.
func Load(dirs ...string) (Config, error) {
	if len(dirs) == 0 {
		dirs = DefaultDirs()
	}
	// godotenv never overrides a variable, so the most specific .env goes first.
	for i := len(dirs) - 1; i >= 0; i-- {
		err := godotenv.Load(filepath.Join(dirs[i], ".env"))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading .env: %w", err)
		}
	}

	env := strings.ToLower(os.Getenv(EnvPrefix + "_ENV"))
	if env == "" {
		env = DefaultEnv
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var sources []string
	for _, dir := range dirs {
		for _, name := range Files {
			path := filepath.Join(dir, name)
			ok, err := mergeFile(v, path, env)
			if err != nil {
				return Config{}, err
			}
			if ok {
				sources = append(sources, path)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	c.Env = env
	c.Sources = sources
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// mergeFile merges the [default] then the [env] sections of a toml file into v.
// It reports whether the file exists.
func mergeFile(v *viper.Viper, path, env string) (bool, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	f := viper.New()
	f.SetConfigFile(path)
	f.SetConfigType("toml")
	if err := f.ReadInConfig(); err != nil {
		return false, fmt.Errorf("reading %q: %w", path, err)
	}
	for _, section := range []string{"default", env} {
		if m := f.GetStringMap(section); len(m) > 0 {
			if err := v.MergeConfigMap(m); err != nil {
				return false, fmt.Errorf("merging [%s] of %q: %w", section, path, err)
			}
		}
	}
	return true, nil
}

// Validate checks that the required settings are present.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("%w: set %s_API_URL or api_url in settings.toml", ErrMissingAPIURL, EnvPrefix)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("invalid http_timeout %v", c.HTTPTimeout)
	}
	return nil
}

// Environ returns the configuration as WELLETS_* variables, in the "KEY=value" form of os.Environ.
func (c Config) Environ() []string {
	return []string{
		EnvPrefix + "_ENV=" + c.Env,
		EnvPrefix + "_API_URL=" + c.APIURL,
		EnvPrefix + "_API_USERNAME=" + c.APIUsername,
		EnvPrefix + "_API_PASSWORD=" + c.APIPassword,
		EnvPrefix + "_DATE_FORMAT=" + c.DateFormat,
		EnvPrefix + "_DATETIME_FORMAT=" + c.DateTimeFormat,
		EnvPrefix + "_HTTP_TIMEOUT=" + c.HTTPTimeout.String(),
	}
}
