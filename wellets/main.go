// Command wellets is a command line client of the Wellets personal finance backend.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/wellets/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	cmd.Completion(commander).Complete(path.Base(os.Args[0]))

	flag.Parse()

	// Unknown commands are looked up as wellets-<name> extensions.
	if name := flag.Arg(0); name != "" && !cmd.Known(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
