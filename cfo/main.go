// Command cfo tracks a collection of weapon cases held as an investment.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/casefolio/cmd"
	"github.com/google/subcommands"
)

func main() {
	// exits when run by the shell to complete.
	cmd.Completion().Complete("cfo")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := commander.Execute(ctx)
	stop()
	os.Exit(int(code))
}
