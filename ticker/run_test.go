package ticker

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/etnz/casefolio"
	"github.com/etnz/casefolio/backend"
	"github.com/etnz/casefolio/backend/backendtest"
	"github.com/etnz/casefolio/presenter"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func headless() []tea.ProgramOption {
	return []tea.ProgramOption{tea.WithInput(nil), tea.WithOutput(io.Discard), tea.WithoutSignalHandler()}
}

func TestRun_ScheduledRefresh(t *testing.T) {
	first := casefolio.DefaultCatalog().CaseNames[0]
	srv := backendtest.NewServer(nil, nil)
	defer srv.Close()
	srv.SetPrice(first, casefolio.P(4.2))

	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)
	c := presenter.New(backend.New(srv.URL, 5*time.Second, log), casefolio.NewState(nil, casefolio.Catalog{}), presenter.Options{Logger: log})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	type result struct {
		m   Model
		err error
	}
	done := make(chan result, 1)
	go func() {
		// cron rounds sub second delays up to one second.
		m, err := run(ctx, c, Options{Interval: 10 * time.Millisecond, Refresh: "@every 1s", Logger: log, ProgramOptions: headless()})
		done <- result{m, err}
	}()

	deadline := time.Now().Add(10 * time.Second)
	for logs.FilterMessage("prices refreshed").Len() == 0 {
		if time.Now().After(deadline) {
			cancel()
			t.Fatal("no scheduled refresh within 10s")
		}
		time.Sleep(20 * time.Millisecond)
	}
	cancel()

	var r result
	select {
	case r = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
	if r.err != nil {
		t.Fatalf("run() unexpected error: %v", r.err)
	}
	if want := first + " $4.20"; !strings.Contains(string(r.m.text), want) {
		t.Errorf("strip = %q, want it to contain %q", string(r.m.text), want)
	}

	// the schedule is stopped once run returns.
	calls := srv.Calls(backend.EndpointRefreshPrices)
	time.Sleep(1500 * time.Millisecond)
	if got := srv.Calls(backend.EndpointRefreshPrices); got != calls {
		t.Errorf("refresh calls went from %d to %d after exit", calls, got)
	}
}

func TestRun_InvalidSchedule(t *testing.T) {
	srv := backendtest.NewServer(nil, nil)
	defer srv.Close()
	c := presenter.New(backend.New(srv.URL, time.Second, nil), nil, presenter.Options{})

	err := Run(context.Background(), c, Options{Refresh: "every now and then", ProgramOptions: headless()})
	if err == nil || !strings.Contains(err.Error(), "invalid refresh schedule") {
		t.Errorf("Run() = %v, want an invalid schedule error", err)
	}
	if srv.TotalCalls() != 0 {
		t.Errorf("an invalid schedule should not refresh")
	}
}
