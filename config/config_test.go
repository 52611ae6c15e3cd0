package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv unsets the WELLETS variables for the duration of the test.
func unsetenv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ENV", "API_URL", "API_USERNAME", "API_PASSWORD", "DATE_FORMAT", "DATETIME_FORMAT", "HTTP_TIMEOUT"} {
		k = EnvPrefix + "_" + k
		t.Setenv(k, "") // restores the previous value on cleanup
		os.Unsetenv(k)
	}
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

const settings = `
[default]
api_url = "https://api.wellets.example"
api_username = "default-user"

[development]
api_url = "http://localhost:3333"

[production]
api_username = "prod-user"
http_timeout = "30s"
`

func TestLoadDefaults(t *testing.T) {
	unsetenv(t)
	t.Setenv("WELLETS_API_URL", "http://from-env")

	c, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "http://from-env", c.APIURL)
	assert.Equal(t, "2006-01-02", c.DateFormat)
	assert.Equal(t, "2006-01-02 15:04", c.DateTimeFormat)
	assert.Equal(t, 10*time.Second, c.HTTPTimeout)
	assert.Equal(t, DefaultEnv, c.Env)
	assert.Empty(t, c.Sources)
}

func TestLoadEnvironments(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "settings.toml", settings)
	write(t, dir, ".secrets.toml", "[default]\napi_password = \"hunter22\"\n")

	tests := []struct {
		env      string
		url      string
		username string
		timeout  time.Duration
	}{
		{"", "http://localhost:3333", "default-user", 10 * time.Second},
		{"development", "http://localhost:3333", "default-user", 10 * time.Second},
		{"production", "https://api.wellets.example", "prod-user", 30 * time.Second},
		{"PRODUCTION", "https://api.wellets.example", "prod-user", 30 * time.Second},
		{"staging", "https://api.wellets.example", "default-user", 10 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			unsetenv(t)
			t.Setenv("WELLETS_ENV", tt.env)

			c, err := Load(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.url, c.APIURL)
			assert.Equal(t, tt.username, c.APIUsername)
			assert.Equal(t, "hunter22", c.APIPassword)
			assert.Equal(t, tt.timeout, c.HTTPTimeout)
			assert.Len(t, c.Sources, 2)
		})
	}
}

func TestLoadPrecedence(t *testing.T) {
	unsetenv(t)
	home, work := t.TempDir(), t.TempDir()
	write(t, home, "settings.toml", settings)
	write(t, work, "settings.toml", "[default]\napi_username = \"work-user\"\n")

	c, err := Load(home, work)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3333", c.APIURL)
	assert.Equal(t, "work-user", c.APIUsername)

	t.Setenv("WELLETS_API_USERNAME", "env-user")
	c, err = Load(home, work)
	require.NoError(t, err)
	assert.Equal(t, "env-user", c.APIUsername)
}

func TestLoadDotEnv(t *testing.T) {
	unsetenv(t)
	dir := t.TempDir()
	write(t, dir, ".env", "WELLETS_API_URL=http://dotenv\nWELLETS_HTTP_TIMEOUT=2s\n")

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv", c.APIURL)
	assert.Equal(t, 2*time.Second, c.HTTPTimeout)
}

func TestLoadMissingURL(t *testing.T) {
	unsetenv(t)
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrMissingAPIURL)
}

func TestLoadInvalidFile(t *testing.T) {
	unsetenv(t)
	dir := t.TempDir()
	write(t, dir, "settings.toml", "[default\napi_url = ")

	_, err := Load(dir)
	assert.ErrorContains(t, err, "settings.toml")
}

func TestEnviron(t *testing.T) {
	c := Config{Env: "production", APIURL: "http://x", HTTPTimeout: 5 * time.Second}
	env := c.Environ()
	assert.Contains(t, env, "WELLETS_ENV=production")
	assert.Contains(t, env, "WELLETS_API_URL=http://x")
	assert.Contains(t, env, "WELLETS_HTTP_TIMEOUT=5s")
}

func newTestManager() *Manager {
	m := new(Manager)
	foo := NewEntry("foo", "bar", "description")
	foo.Settable, foo.ServerSide, foo.Sensitive = true, true, true
	m.Add(foo)
	m.Add(NewEntry("cfg", "val", ""))
	return m
}

func TestManagerKeys(t *testing.T) {
	m := newTestManager()
	assert.Equal(t, []string{"foo", "cfg"}, m.Keys(Filter{}))
	assert.Equal(t, []string{"foo"}, m.Keys(Filter{ServerSide: true}))
	assert.Equal(t, []string{"foo"}, m.Keys(Filter{Settable: true}))
	assert.True(t, m.Has("foo"))
	assert.False(t, m.Has("bar"))
	assert.Len(t, m.Entries(), 2)
}

func TestManagerGetSet(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	v, err := m.Get(ctx, "foo")
	require.NoError(t, err)
	assert.Equal(t, "bar", v)

	_, err = m.Get(ctx, "bar")
	assert.ErrorIs(t, err, ErrUnknownKey)

	require.NoError(t, m.Set(ctx, "foo", "baz"))
	v, _ = m.Get(ctx, "foo")
	assert.Equal(t, "baz", v)

	assert.ErrorIs(t, m.Set(ctx, "cfg", "x"), ErrNotSettable)
	assert.ErrorIs(t, m.Set(ctx, "nope", "x"), ErrUnknownKey)

	shown, err := m.entries[0].Display(ctx)
	require.NoError(t, err)
	assert.Equal(t, Sensitive, shown)
}

func TestEntryGetterSetter(t *testing.T) {
	ctx := context.Background()
	storage := map[string]string{}
	e := &Entry{
		Key:      "foo",
		Settable: true,
		Getter:   func(context.Context) (string, error) { return "new value for foo", nil },
		Setter: func(_ context.Context, v string) error {
			storage["foo"] = v
			return nil
		},
	}
	v, err := e.Value(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new value for foo", v)

	require.NoError(t, e.SetValue(ctx, "bar"))
	assert.Equal(t, "bar", storage["foo"])
	assert.Equal(t, "foo=", e.String(), "the local value is untouched")
}

func TestNewManager(t *testing.T) {
	ctx := context.Background()
	errOffline := errors.New("offline")
	var set string
	m := NewManager(Config{APIURL: "http://x", APIPassword: "hunter22"},
		func(context.Context) (string, error) { return "", errOffline },
		func(_ context.Context, v string) error { set = v; return nil },
	)

	assert.Equal(t, []string{KeyAPIURL, KeyAPIUsername, KeyAPIPassword, KeyPreferredCurrency}, m.Keys(Filter{}))
	assert.Equal(t, []string{KeyPreferredCurrency}, m.Keys(Filter{Settable: true, ServerSide: true}))

	e, _ := m.Entry(KeyAPIPassword)
	shown, _ := e.Display(ctx)
	assert.Equal(t, Sensitive, shown)

	_, err := m.Get(ctx, KeyPreferredCurrency)
	assert.ErrorIs(t, err, errOffline)
	require.NoError(t, m.Set(ctx, KeyPreferredCurrency, "EUR"))
	assert.Equal(t, "EUR", set)
	assert.ErrorIs(t, m.Set(ctx, KeyAPIURL, "http://y"), ErrNotSettable)
}
