package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/casefolio/renderer"
	"github.com/google/subcommands"
)

type pricesCmd struct{}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "display the latest known prices of the catalog" }
func (*pricesCmd) Usage() string {
	return `cfo prices

  Loads the latest scraped price of every catalog case.
`
}

func (*pricesCmd) SetFlags(f *flag.FlagSet) {}

func (c *pricesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	if err := a.ctrl.LoadPrices(ctx); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.RenderCatalog(renderer.NewCatalog(a.ctrl.State(), a.ctrl.Currency())))
	return subcommands.ExitSuccess
}

type refreshCmd struct{}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "scrape new prices and update the board" }
func (*refreshCmd) Usage() string {
	return `cfo refresh

  Asks the backend to scrape the current prices, then displays the board.
`
}

func (*refreshCmd) SetFlags(f *flag.FlagSet) {}

func (c *refreshCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	if err := a.ctrl.RefreshPrices(ctx); err != nil {
		return fail(err)
	}
	printBoard(a)
	return subcommands.ExitSuccess
}

type apiKeyCmd struct{}

func (*apiKeyCmd) Name() string     { return "apikey" }
func (*apiKeyCmd) Synopsis() string { return "set the api key of the price source" }
func (*apiKeyCmd) Usage() string {
	return `cfo apikey <key>

  Sends the api key of the price source to the backend, which validates it.
`
}

func (*apiKeyCmd) SetFlags(f *flag.FlagSet) {}

func (c *apiKeyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("%w: apikey needs a key", errUsage))
	}
	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	if err := a.ctrl.SetAPIKey(ctx, f.Arg(0)); err != nil {
		return fail(err)
	}
	fmt.Fprintln(os.Stderr, "API key saved.")
	return subcommands.ExitSuccess
}
