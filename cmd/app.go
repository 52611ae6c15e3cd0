// Package cmd implements the wellets command line.
package cmd

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/wellets/api"
	"github.com/etnz/wellets/auth"
	"github.com/etnz/wellets/config"
	"github.com/etnz/wellets/renderer"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	Verbose   = flag.Bool("v", false, "log debug messages, including every API call")
	raw       = flag.Bool("raw", false, "print markdown as is, without rendering it")
	configDir = flag.String("config-dir", "", "additional directory to read settings.toml and .secrets.toml from")
)

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var (
	cfg          *config.Config
	logger       log.Logger
	sessionStore *auth.Store
)

// Register registers all the commands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&loginCmd{}, "session")
	c.Register(&registerCmd{}, "session")
	c.Register(&whoamiCmd{}, "session")
	c.Register(&logoutCmd{}, "session")

	for _, g := range groups() {
		c.Register(g, "records")
	}

	c.Register(&dashboardCmd{}, "reports")
	c.Register(&topicCmd{}, "help")
}

// Config loads the configuration once.
func Config() (config.Config, error) {
	if cfg != nil {
		return *cfg, nil
	}
	var dirs []string
	if *configDir != "" {
		dirs = append(config.DefaultDirs(), *configDir)
	}
	c, err := config.Load(dirs...)
	if err != nil {
		return c, err
	}
	cfg = &c
	return c, nil
}

// Logger returns the logger to stderr, showing debug messages in verbose mode only.
func Logger() log.Logger {
	if logger != nil {
		return logger
	}
	l := log.NewLogfmtLogger(log.NewSyncWriter(stderr))
	l = log.With(l, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	if *Verbose {
		l = level.NewFilter(l, level.AllowDebug())
	} else {
		l = level.NewFilter(l, level.AllowWarn())
	}
	logger = l
	return l
}

// Session returns the store of the session opened by "wellets login".
func Session() (auth.Store, error) {
	if sessionStore != nil {
		return *sessionStore, nil
	}
	path, err := auth.DefaultPath()
	if err != nil {
		return auth.Store{}, err
	}
	sessionStore = &auth.Store{Path: path}
	return *sessionStore, nil
}

// newClient returns a client of the configured API. When authenticated is
// set, the client uses the persisted session and fails if there is none.
func newClient(authenticated bool) (*api.Client, error) {
	c, err := Config()
	if err != nil {
		return nil, err
	}
	var token string
	if authenticated {
		store, err := Session()
		if err != nil {
			return nil, err
		}
		session, err := store.Retrieve()
		if err != nil {
			return nil, err
		}
		token = session.Token
	}
	return api.New(c.APIURL, token, c.HTTPTimeout, log.With(Logger(), "component", "api")), nil
}

func renderOptions() renderer.Options {
	c, err := Config()
	if err != nil {
		return renderer.DefaultOptions
	}
	return renderer.Options{DateFormat: c.DateFormat, DateTimeFormat: c.DateTimeFormat}
}

// printMarkdown renders md for the terminal, or prints it as is with -raw.
func printMarkdown(md string) {
	if *raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	level.Warn(Logger()).Log("msg", "cannot render markdown", "err", err)
	fmt.Fprint(stdout, md)
}

var warning = color.New(color.FgYellow)

// failure reports err and returns ExitFailure. A missing session or an
// expired token comes with a hint.
func failure(err error, format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(stderr, "Error "+format+": %v\n", append(args, err)...)
	switch {
	case errors.Is(err, auth.ErrNotLoggedIn), api.IsUnauthorized(err):
		warning.Fprintln(stderr, "Run \"wellets login\" first.")
	case errors.Is(err, config.ErrMissingAPIURL):
		warning.Fprintln(stderr, "See \"wellets topic configuration\".")
	}
	return subcommands.ExitFailure
}

// usage reports a usage error.
func usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}

// confirm asks a yes/no question on stdin, unless yes is already set.
func confirm(yes bool, format string, args ...any) bool {
	if yes {
		return true
	}
	fmt.Fprintf(stderr, format+" [y/N] ", args...)
	line, _ := bufio.NewReader(stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	fmt.Fprintln(stderr, "Aborted.")
	return false
}

// printID prints the id of a created or changed record, for scripting.
func printID(id string) { fmt.Fprintln(stdout, id) }

// Known reports whether name is a command registered in c.
func Known(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		found = found || cmd.Name() == name
	})
	return found
}
