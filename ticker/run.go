package ticker

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/etnz/casefolio/presenter"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Options configures Run.
type Options struct {
	Interval time.Duration
	Step     int
	// Refresh is a cron spec ("@every 5m") refreshing the prices while the
	// ticker runs. Empty disables it.
	Refresh string
	Logger  *zap.Logger
	// ProgramOptions are added to the bubbletea program options.
	ProgramOptions []tea.ProgramOption
}

// Run displays the ticker until the user quits or ctx is done.
func Run(ctx context.Context, c *presenter.Controller, opts Options) error {
	_, err := run(ctx, c, opts)
	return err
}

// run is Run, returning the final model.
func run(ctx context.Context, c *presenter.Controller, opts Options) (Model, error) {
	if opts.Interval <= 0 {
		opts.Interval = 80 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	log := opts.Logger

	m := New(c.State(), c.Currency(), opts.Interval, opts.Step)
	popts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithMouseAllMotion()}, opts.ProgramOptions...)
	p := tea.NewProgram(m, popts...)

	if opts.Refresh != "" {
		sched := cron.New()
		_, err := sched.AddFunc(opts.Refresh, func() {
			if err := c.RefreshPrices(ctx); err != nil {
				log.Warn("scheduled refresh failed", zap.Error(err))
				return
			}
			p.Send(StateMsg{State: c.State()})
			log.Debug("prices refreshed")
		})
		if err != nil {
			return m, fmt.Errorf("invalid refresh schedule %q: %w", opts.Refresh, err)
		}
		sched.Start()
		log.Info("price refresh scheduled", zap.String("spec", opts.Refresh))
		defer func() { <-sched.Stop().Done() }()
	}

	final, err := p.Run()
	if last, ok := final.(Model); ok {
		m = last
	}
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return m, nil
		}
		return m, err
	}
	return m, nil
}
