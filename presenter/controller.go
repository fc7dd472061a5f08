// Package presenter owns the application state and runs the user actions
// against the backend.
//
// Every mutation follows the same steps: validate locally, call the backend,
// replace the whole investment list by the one the backend answered, re-render.
// A failing step leaves the state untouched.
//
// Names are turned into the backend's indexes only on a board synced with the
// backend: a board booted from a file or the state cache is first replaced by
// the backend's list.
//
// Mutations are sequenced: a response is applied only if it is newer than the
// last applied one, so a slow response to an old request cannot revert a more
// recent change.
package presenter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/etnz/casefolio"
	"github.com/etnz/casefolio/backend"
	"github.com/etnz/casefolio/renderer"
	"go.uber.org/zap"
)

// Backend is the persistence service, as implemented by *backend.Client.
type Backend interface {
	Booter
	PriceHistory(ctx context.Context) (map[string]casefolio.Price, error)
	SetAPIKey(ctx context.Context, key string) error
	AddCase(ctx context.Context, name string, quantity int, price casefolio.Price) ([]casefolio.Investment, error)
	RemoveCase(ctx context.Context, index int) ([]casefolio.Investment, error)
	AddTransaction(ctx context.Context, index int, typ casefolio.TxType, quantity int, price casefolio.Price) ([]casefolio.Investment, error)
	UpdateInvestment(ctx context.Context, index int, field casefolio.Field, value casefolio.Price) ([]casefolio.Investment, error)
	Reorder(ctx context.Context, list []casefolio.Investment) ([]casefolio.Investment, error)
	RefreshPrices(ctx context.Context) (backend.Refresh, error)
}

var _ Backend = (*backend.Client)(nil)

var (
	// ErrNotConfirmed is returned when a removal is not confirmed.
	ErrNotConfirmed = errors.New("removal not confirmed")
	// ErrEmptyAPIKey is returned when setting a blank api key.
	ErrEmptyAPIKey = errors.New("api key is empty")
	// ErrNotSynced is returned when a board that did not come from the
	// backend cannot be synced before a mutation.
	ErrNotSynced = errors.New("board is not synced with the backend")
)

// Confirm asks the user to confirm the removal of a case.
type Confirm func(name string) bool

// Options configures a Controller.
type Options struct {
	Currency string
	// StateFile, when set, receives a copy of the state after every applied change.
	StateFile string
	Logger    *zap.Logger
	// OnChange is called with a copy of the state after every change.
	OnChange func(*casefolio.State)
}

// Controller is the single owner of the application state.
type Controller struct {
	backend  Backend
	log      *zap.Logger
	currency string
	file     string
	onChange func(*casefolio.State)

	mu       sync.Mutex
	state    *casefolio.State
	issued   uint64 // last sequence given to a mutation
	applied  uint64 // sequence of the last response applied
	replaced uint64 // count of investment lists received from the backend
}

// New returns a controller over an initial state.
func New(b Backend, initial *casefolio.State, opts Options) *Controller {
	if initial == nil {
		initial = casefolio.NewState(nil, casefolio.Catalog{})
	}
	if opts.Currency == "" {
		opts.Currency = casefolio.DefaultCurrency
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Controller{
		backend:  b,
		log:      opts.Logger,
		currency: opts.Currency,
		file:     opts.StateFile,
		onChange: opts.OnChange,
		state:    initial.Clone(),
	}
}

// State returns a copy of the current state.
func (c *Controller) State() *casefolio.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Board renders the current state.
func (c *Controller) Board() *renderer.Board {
	return renderer.NewBoard(c.State(), c.currency)
}

// Currency returns the display currency.
func (c *Controller) Currency() string { return c.currency }

// Add adds a new case to the portfolio.
func (c *Controller) Add(ctx context.Context, name string, quantity int, price casefolio.Price) error {
	name = strings.TrimSpace(name)
	return c.mutate(ctx, "add", name, func(s *casefolio.State) (call, error) {
		if name == "" {
			return nil, fmt.Errorf("add: case name is empty")
		}
		if err := casefolio.ValidateAdd(s.Investments, name, quantity, price); err != nil {
			return nil, err
		}
		return func(ctx context.Context) ([]casefolio.Investment, error) {
			return c.backend.AddCase(ctx, name, quantity, price)
		}, nil
	})
}

// Buy records a purchase of quantity cases at price each.
func (c *Controller) Buy(ctx context.Context, name string, quantity int, price casefolio.Price) error {
	return c.transaction(ctx, casefolio.Buy, name, quantity, price)
}

// Sell records a sale of quantity cases at price each. Selling more than held
// is refused.
func (c *Controller) Sell(ctx context.Context, name string, quantity int, price casefolio.Price) error {
	return c.transaction(ctx, casefolio.Sell, name, quantity, price)
}

func (c *Controller) transaction(ctx context.Context, typ casefolio.TxType, name string, quantity int, price casefolio.Price) error {
	return c.mutate(ctx, string(typ), name, func(s *casefolio.State) (call, error) {
		index, err := casefolio.Index(s.Investments, name)
		if err != nil {
			return nil, err
		}
		if err := casefolio.ValidateTransaction(s.Investments[index], typ, quantity, price); err != nil {
			return nil, err
		}
		return func(ctx context.Context) ([]casefolio.Investment, error) {
			return c.backend.AddTransaction(ctx, index, typ, quantity, price)
		}, nil
	})
}

// Edit sets the quantity or the purchase price of a case.
func (c *Controller) Edit(ctx context.Context, name string, field casefolio.Field, value casefolio.Price) error {
	return c.mutate(ctx, "edit", name, func(s *casefolio.State) (call, error) {
		index, err := casefolio.Index(s.Investments, name)
		if err != nil {
			return nil, err
		}
		if err := casefolio.ValidateEdit(field, value); err != nil {
			return nil, err
		}
		return func(ctx context.Context) ([]casefolio.Investment, error) {
			return c.backend.UpdateInvestment(ctx, index, field, value)
		}, nil
	})
}

// Remove removes a case once confirm accepts it. The case is resolved again
// after the confirmation, the list may have changed meanwhile.
func (c *Controller) Remove(ctx context.Context, name string, confirm Confirm) error {
	if err := c.sync(ctx); err != nil {
		return fmt.Errorf("remove %q: %w", name, err)
	}
	if !c.Held(name) {
		return fmt.Errorf("remove: %w: %q", casefolio.ErrUnknownInvestment, name)
	}
	if confirm == nil || !confirm(name) {
		return fmt.Errorf("remove %q: %w", name, ErrNotConfirmed)
	}
	return c.mutate(ctx, "remove", name, func(s *casefolio.State) (call, error) {
		index, err := casefolio.Index(s.Investments, name)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) ([]casefolio.Investment, error) {
			return c.backend.RemoveCase(ctx, index)
		}, nil
	})
}

// Held reports whether name is in the portfolio.
func (c *Controller) Held(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Held(name)
}

// call is the backend request of a mutation.
type call func(ctx context.Context) ([]casefolio.Investment, error)

// mutate runs a mutation. prepare validates the request against the current
// state and resolves the indexes, under the lock. The request itself runs
// outside of it.
func (c *Controller) mutate(ctx context.Context, action, name string, prepare func(s *casefolio.State) (call, error)) error {
	log := c.log.With(zap.String("action", action), zap.String("case", name))
	if err := c.sync(ctx); err != nil {
		return fmt.Errorf("%s %q: %w", action, name, err)
	}

	c.mu.Lock()
	do, err := prepare(c.state)
	if err != nil {
		c.mu.Unlock()
		log.Debug("rejected", zap.Error(err))
		return err
	}
	c.issued++
	seq := c.issued
	c.mu.Unlock()

	list, err := do(ctx)
	if err != nil {
		log.Error("failed", zap.Uint64("seq", seq), zap.Error(err))
		return fmt.Errorf("%s %q: %w", action, name, err)
	}
	c.apply(log, seq, list, nil)
	return nil
}

// apply replaces the investments (and prices when not nil) by a response of
// sequence seq. It reports false when the response is stale.
func (c *Controller) apply(log *zap.Logger, seq uint64, list []casefolio.Investment, prices map[string]casefolio.Price) bool {
	c.mu.Lock()
	if seq <= c.applied {
		c.mu.Unlock()
		log.Warn("stale response dropped", zap.Uint64("seq", seq), zap.Uint64("applied", c.applied))
		return false
	}
	c.applied = seq
	c.replaced++
	c.state.SetInvestments(list)
	c.state.Synced = true
	if prices != nil {
		c.state.SetPrices(prices)
	}
	snapshot := c.state.Clone()
	c.mu.Unlock()

	log.Debug("applied", zap.Uint64("seq", seq), zap.Int("investments", len(list)))
	c.changed(snapshot)
	return true
}

// sync replaces an unsynced board by the backend's list.
func (c *Controller) sync(ctx context.Context) error {
	c.mu.Lock()
	synced := c.state.Synced
	c.mu.Unlock()
	if synced {
		return nil
	}
	s, err := c.backend.Boot(ctx)
	if err != nil {
		c.log.Error("cannot sync with the backend", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrNotSynced, err)
	}
	c.mu.Lock()
	if c.state.Synced {
		// a response landed meanwhile.
		c.mu.Unlock()
		return nil
	}
	c.replaced++
	c.state.SetInvestments(s.Investments)
	c.state.Synced = true
	snapshot := c.state.Clone()
	c.mu.Unlock()

	c.log.Info("board synced with the backend", zap.Int("investments", len(snapshot.Investments)))
	c.changed(snapshot)
	return nil
}

// changed persists and publishes a new state.
func (c *Controller) changed(s *casefolio.State) {
	if c.file != "" {
		if err := casefolio.EncodeState(c.file, s); err != nil {
			c.log.Error("cannot save state cache", zap.String("file", c.file), zap.Error(err))
		}
	}
	if c.onChange != nil {
		c.onChange(s)
	}
}
