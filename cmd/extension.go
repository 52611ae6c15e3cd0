package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/go-kit/log/level"
)

const (
	ExtensionPrefix = "wellets-"
	EnvVerbose      = "WELLETS_VERBOSE"
	EnvToken        = "WELLETS_TOKEN"
)

// RunExtension attempts to find and execute an external wellets-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
//
// The extension receives the configuration as WELLETS_* environment variables,
// and the session token as WELLETS_TOKEN when logged in.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := ExtensionPrefix + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		level.Debug(Logger()).Log("msg", "extension not found", "name", name, "err", err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	cmd.Env = os.Environ()
	if c, err := Config(); err == nil {
		cmd.Env = append(cmd.Env, c.Environ()...)
	} else {
		level.Warn(Logger()).Log("msg", "configuration not passed to extension", "name", name, "err", err)
	}
	if store, err := Session(); err == nil {
		if token := store.Token(); token != "" {
			cmd.Env = append(cmd.Env, EnvToken+"="+token)
		}
	}
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(*Verbose))

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
