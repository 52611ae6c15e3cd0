package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/wellets"
	"github.com/go-kit/log/level"
	"github.com/google/subcommands"
)

// credentialsFlags are the -email and -password flags, defaulting to the
// api.username and api.password settings.
type credentialsFlags struct {
	email    string
	password string
}

func (c *credentialsFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "account email; defaults to the api.username setting")
	f.StringVar(&c.password, "password", "", "account password; defaults to the api.password setting")
}

func (c *credentialsFlags) resolve() error {
	if cfg, err := Config(); err == nil {
		if c.email == "" {
			c.email = cfg.APIUsername
		}
		if c.password == "" {
			c.password = cfg.APIPassword
		}
	}
	if err := wellets.ValidateEmail(c.email); err != nil {
		return fmt.Errorf("-email %q: %w", c.email, err)
	}
	return wellets.ValidateNotEmpty(c.password)
}

type loginCmd struct {
	credentialsFlags
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "open a session on the backend" }
func (*loginCmd) Usage() string {
	return `login [-email <email>] [-password <password>]

  Logs in and stores the session token for the following commands.
`
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.resolve(); err != nil {
		return usage("%v", err)
	}
	client, err := newClient(false)
	if err != nil {
		return failure(err, "creating client")
	}
	session, err := client.Login(ctx, c.email, c.password)
	if err != nil {
		return failure(err, "logging in")
	}
	store, err := Session()
	if err != nil {
		return failure(err, "locating session")
	}
	path, err := store.Persist(session)
	if err != nil {
		return failure(err, "saving session")
	}
	level.Debug(Logger()).Log("msg", "session saved", "path", path)
	fmt.Fprintf(stdout, "✅ Logged in as %s.\n", session.Email)
	return subcommands.ExitSuccess
}

type registerCmd struct {
	credentialsFlags
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create an account on the backend" }
func (*registerCmd) Usage() string {
	return `register -email <email> -password <password>

  Creates an account. Use "login" afterwards to open a session.
`
}

func (c *registerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.resolve(); err != nil {
		return usage("%v", err)
	}
	if err := wellets.TextLength(8)(c.password); err != nil {
		return usage("-password: %v", err)
	}
	client, err := newClient(false)
	if err != nil {
		return failure(err, "creating client")
	}
	user, err := client.Register(ctx, c.email, c.password)
	if err != nil {
		return failure(err, "registering")
	}
	fmt.Fprintf(stdout, "✅ Registered %s.\n", user.Email)
	return subcommands.ExitSuccess
}

type whoamiCmd struct{}

func (*whoamiCmd) Name() string             { return "whoami" }
func (*whoamiCmd) Synopsis() string         { return "show the logged in user" }
func (*whoamiCmd) Usage() string            { return "whoami\n" }
func (*whoamiCmd) SetFlags(f *flag.FlagSet) {}

func (c *whoamiCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := Session()
	if err != nil {
		return failure(err, "locating session")
	}
	email := store.Email()
	if email == "" {
		fmt.Fprintln(stdout, "Not logged in")
		return subcommands.ExitSuccess
	}
	fmt.Fprintln(stdout, email)
	return subcommands.ExitSuccess
}

type logoutCmd struct{}

func (*logoutCmd) Name() string             { return "logout" }
func (*logoutCmd) Synopsis() string         { return "forget the session" }
func (*logoutCmd) Usage() string            { return "logout\n" }
func (*logoutCmd) SetFlags(f *flag.FlagSet) {}

func (c *logoutCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := Session()
	if err != nil {
		return failure(err, "locating session")
	}
	if err := store.Clear(); err != nil {
		return failure(err, "logging out")
	}
	fmt.Fprintln(stdout, "Logged out.")
	return subcommands.ExitSuccess
}
