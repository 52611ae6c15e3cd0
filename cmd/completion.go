package cmd

import (
	"flag"

	"github.com/etnz/wellets/date"
	"github.com/etnz/wellets/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion tree of the commands registered in
// c. Call its Complete method before parsing the flags: it completes the
// command line and exits when the shell asks for it (COMP_LINE is set).
//
// Install it in bash with "COMP_INSTALL=1 wellets".
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{},
	}
	c.VisitAll(func(f *flag.Flag) { root.Flags[f.Name] = predictor(f) })
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		root.Sub[cmd.Name()] = completion(cmd)
	})
	if t, ok := root.Sub["topic"]; ok {
		if topics, err := docs.GetAllTopics(); err == nil {
			t.Args = predict.Set(topics)
		}
	}
	return root
}

// completion returns the completion of a command, and of its subcommands for a group.
func completion(cmd subcommands.Command) *complete.Command {
	c := &complete.Command{Flags: map[string]complete.Predictor{}}
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	fs.VisitAll(func(f *flag.Flag) { c.Flags[f.Name] = predictor(f) })

	if g, ok := cmd.(*groupCmd); ok {
		c.Sub = map[string]*complete.Command{}
		for _, sub := range g.commands {
			c.Sub[sub.Name()] = completion(sub)
		}
	}
	return c
}

// predictor predicts the values of a flag: nothing for booleans, the known
// intervals for -interval, anything otherwise.
func predictor(f *flag.Flag) complete.Predictor {
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	if _, ok := f.Value.(*date.Interval); ok {
		return predict.Set(date.Intervals)
	}
	if f.Name == "config-dir" {
		return predict.Dirs("*")
	}
	return predict.Something
}
