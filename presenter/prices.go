package presenter

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/etnz/casefolio"
	"go.uber.org/zap"
)

// LoadPrices loads the latest known price of every catalog case. It does not
// touch the investments.
func (c *Controller) LoadPrices(ctx context.Context) error {
	prices, err := c.backend.PriceHistory(ctx)
	if err != nil {
		c.log.Error("cannot load prices", zap.Error(err))
		return fmt.Errorf("load prices: %w", err)
	}
	c.mu.Lock()
	c.state.SetPrices(prices)
	snapshot := c.state.Clone()
	c.mu.Unlock()
	c.changed(snapshot)
	return nil
}

// RefreshPrices asks the backend to fetch new prices and applies the updated
// investments. Catalog prices are merged when the backend sends them.
func (c *Controller) RefreshPrices(ctx context.Context) error {
	log := c.log.With(zap.String("action", "refresh"))
	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.mu.Unlock()

	r, err := c.backend.RefreshPrices(ctx)
	if err != nil {
		log.Error("failed", zap.Uint64("seq", seq), zap.Error(err))
		return fmt.Errorf("refresh prices: %w", err)
	}
	var prices map[string]casefolio.Price
	if r.AllPrices != nil {
		current := c.State().Prices
		prices = maps.Clone(current)
		if prices == nil {
			prices = make(map[string]casefolio.Price, len(r.AllPrices))
		}
		maps.Copy(prices, r.AllPrices)
	}
	c.apply(log, seq, r.Investments, prices)
	return nil
}

// SetAPIKey sends the api key of the price source.
func (c *Controller) SetAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyAPIKey
	}
	if err := c.backend.SetAPIKey(ctx, key); err != nil {
		c.log.Error("cannot set api key", zap.Error(err))
		return fmt.Errorf("set api key: %w", err)
	}
	return nil
}
