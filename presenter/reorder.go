package presenter

import (
	"context"
	"fmt"

	"github.com/etnz/casefolio"
	"go.uber.org/zap"
)

// Reorder moves the investment at index from to index to, shifting the ones in
// between. The move is displayed at once and undone if the backend refuses
// it.
func (c *Controller) Reorder(ctx context.Context, from, to int) error {
	return c.reorder(ctx, func(s *casefolio.State) (int, int, error) { return from, to, nil })
}

// MoveCase moves the named case to index to.
func (c *Controller) MoveCase(ctx context.Context, name string, to int) error {
	return c.reorder(ctx, func(s *casefolio.State) (int, int, error) {
		from, err := casefolio.Index(s.Investments, name)
		return from, to, err
	})
}

func (c *Controller) reorder(ctx context.Context, resolve func(s *casefolio.State) (int, int, error)) error {
	if err := c.sync(ctx); err != nil {
		return fmt.Errorf("reorder: %w", err)
	}
	c.mu.Lock()
	from, to, err := resolve(c.state)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("reorder: %w", err)
	}
	moved, err := casefolio.Move(c.state.Investments, from, to)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("reorder %d to %d: %w", from, to, err)
	}
	if from == to {
		c.mu.Unlock()
		return nil
	}
	log := c.log.With(zap.String("action", "reorder"), zap.Int("from", from), zap.Int("to", to))
	name := moved[to].ItemName
	version := c.replaced
	c.issued++
	seq := c.issued
	c.state.SetInvestments(moved)
	optimistic := c.state.Clone()
	c.mu.Unlock()

	if c.onChange != nil {
		c.onChange(optimistic)
	}

	list, err := c.backend.Reorder(ctx, moved)
	if err != nil {
		log.Error("failed, undoing the move", zap.Uint64("seq", seq), zap.Error(err))
		c.mu.Lock()
		// a list received meanwhile does not have the move.
		undo := c.replaced == version && to < len(c.state.Investments) && c.state.Investments[to].ItemName == name
		if undo {
			back, err := casefolio.Move(c.state.Investments, to, from)
			if undo = err == nil; undo {
				c.state.SetInvestments(back)
			}
		}
		restored := c.state.Clone()
		c.mu.Unlock()
		if undo && c.onChange != nil {
			c.onChange(restored)
		}
		return fmt.Errorf("reorder %d to %d: %w", from, to, err)
	}
	c.apply(log, seq, list, nil)
	return nil
}
