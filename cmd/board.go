package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/casefolio"
	"github.com/etnz/casefolio/renderer"
	"github.com/google/subcommands"
)

type boardCmd struct {
	details bool
	html    string
}

func (*boardCmd) Name() string     { return "board" }
func (*boardCmd) Synopsis() string { return "display the portfolio totals and cards" }
func (*boardCmd) Usage() string {
	return `cfo board [-details] [-html <file>]

  Displays the portfolio totals and one line per case. -details adds the
  summary and the ledger of every case. -html writes a standalone page instead.
`
}

func (c *boardCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.details, "details", false, "Show the summary and the ledger of every case")
	f.StringVar(&c.html, "html", "", "Write the board as an html page to this file")
}

func (c *boardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	if c.html != "" {
		out, err := os.Create(c.html)
		if err != nil {
			return fail(err)
		}
		defer out.Close()
		if err := renderer.RenderHTML(out, a.ctrl.State(), a.ctrl.Currency()); err != nil {
			return fail(err)
		}
		fmt.Fprintf(os.Stderr, "Board written to %s\n", c.html)
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RenderBoard(a.ctrl.Board(), renderer.BoardRenderOptions{Details: c.details}))
	return subcommands.ExitSuccess
}

type ledgerCmd struct{}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "display the summary and the ledger of a case" }
func (*ledgerCmd) Usage() string {
	return `cfo ledger <case>

  Displays the summary and the transactions of a case.
`
}

func (*ledgerCmd) SetFlags(f *flag.FlagSet) {}

func (c *ledgerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("%w: ledger needs a case name", errUsage))
	}
	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	name := f.Arg(0)
	for _, card := range a.ctrl.Board().Cards {
		if card.Name == name {
			printMarkdown(renderer.RenderCard(&card))
			return subcommands.ExitSuccess
		}
	}
	return fail(fmt.Errorf("ledger: %w: %q", casefolio.ErrUnknownInvestment, name))
}

type catalogCmd struct{}

func (*catalogCmd) Name() string     { return "catalog" }
func (*catalogCmd) Synopsis() string { return "list the known cases" }
func (*catalogCmd) Usage() string {
	return `cfo catalog

  Lists every known case with its release date, drop status and latest price.
  Held cases are marked.
`
}

func (*catalogCmd) SetFlags(f *flag.FlagSet) {}

func (c *catalogCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	if err := a.ctrl.LoadPrices(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: prices are unavailable:", err)
	}
	printMarkdown(renderer.RenderCatalog(renderer.NewCatalog(a.ctrl.State(), a.ctrl.Currency())))
	return subcommands.ExitSuccess
}
