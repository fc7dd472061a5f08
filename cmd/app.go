// Package cmd implements the cfo command line application.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/casefolio"
	"github.com/etnz/casefolio/backend"
	"github.com/etnz/casefolio/config"
	"github.com/etnz/casefolio/logger"
	"github.com/etnz/casefolio/presenter"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&boardCmd{}, "board")
	c.Register(&ledgerCmd{}, "board")
	c.Register(&catalogCmd{}, "board")
	c.Register(&tickerCmd{}, "board")

	c.Register(&addCmd{}, "investments")
	c.Register(&txCmd{typ: casefolio.Buy}, "investments")
	c.Register(&txCmd{typ: casefolio.Sell}, "investments")
	c.Register(&editCmd{}, "investments")
	c.Register(&removeCmd{}, "investments")
	c.Register(&reorderCmd{}, "investments")

	c.Register(&pricesCmd{}, "prices")
	c.Register(&refreshCmd{}, "prices")
	c.Register(&apiKeyCmd{}, "prices")

	c.Register(&assistCmd{}, "assist")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a yaml configuration file")
var bootFile = flag.String("boot", "", "Boot from a payload file (json, or an html export) instead of the backend")
var rawOutput = flag.Bool("raw", false, "Print markdown without terminal styling")

// stdout receives the rendered output.
var stdout io.Writer = os.Stdout

// app holds everything a command needs.
type app struct {
	cfg    config.Config
	log    *zap.Logger
	client *backend.Client
	ctrl   *presenter.Controller
}

// openApp loads the configuration and boots the controller.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, fmt.Errorf("cannot load configuration: %w", err)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("cannot create logger: %w", err)
	}
	client := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)

	var initial *casefolio.State
	if *bootFile != "" {
		initial, err = presenter.LoadBootFile(*bootFile)
		if err != nil {
			return nil, err
		}
	} else {
		initial = presenter.Boot(ctx, client, cfg.StateFile, log)
	}

	ctrl := presenter.New(client, initial, presenter.Options{
		Currency:  cfg.Currency,
		StateFile: cfg.StateFile,
		Logger:    log,
	})
	return &app{cfg: cfg, log: log, client: client, ctrl: ctrl}, nil
}

func (a *app) Close() { _ = a.log.Sync() }

// usageErrors are the errors caused by the user input.
var usageErrors = []error{
	casefolio.ErrInvalidQuantity,
	casefolio.ErrInvalidPrice,
	casefolio.ErrDuplicate,
	casefolio.ErrOversell,
	casefolio.ErrUnknownInvestment,
	casefolio.ErrUnknownField,
	casefolio.ErrIndexOutOfRange,
	presenter.ErrNotConfirmed,
	presenter.ErrEmptyAPIKey,
	errUsage,
}

var errUsage = errors.New("invalid arguments")

// fail prints err and returns the matching exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	for _, u := range usageErrors {
		if errors.Is(err, u) {
			return subcommands.ExitUsageError
		}
	}
	return subcommands.ExitFailure
}

// printMarkdown prints md styled for the terminal, unless -raw is set.
func printMarkdown(md string) {
	if *rawOutput {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprint(stdout, md)
}
