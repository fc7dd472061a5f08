package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/casefolio/ticker"
	"github.com/google/subcommands"
)

type tickerCmd struct {
	refresh string
}

func (*tickerCmd) Name() string     { return "ticker" }
func (*tickerCmd) Synopsis() string { return "scroll the catalog prices" }
func (*tickerCmd) Usage() string {
	return `cfo ticker [-refresh <cron spec>]

  Scrolls the latest price of every catalog case back and forth. Hover to
  hold, q to quit.
`
}

func (c *tickerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.refresh, "refresh", "", `Refresh the prices on this schedule, like "@every 5m". Defaults to ticker.refresh`)
}

func (c *tickerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	if err := a.ctrl.LoadPrices(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: prices are unavailable:", err)
	}
	refresh := c.refresh
	if refresh == "" {
		refresh = a.cfg.Ticker.Refresh
	}
	err = ticker.Run(ctx, a.ctrl, ticker.Options{
		Interval: a.cfg.Ticker.Interval,
		Step:     a.cfg.Ticker.Step,
		Refresh:  refresh,
		Logger:   a.log,
	})
	if err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
