package casefolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
)

// State is everything the presenter renders: the investments as last returned
// by the backend, the catalog and the latest known prices of the catalog.
//
// Its JSON form is the page boot payload.
type State struct {
	Investments []Investment `json:"investments"`
	Catalog
	Prices map[string]Price `json:"prices,omitempty"`

	// Synced is set when Investments is the list the backend last returned.
	// Only then do positions match the backend's indexes.
	Synced bool `json:"-"`
}

// NewState returns a state for the given investments. An empty catalog is
// replaced by the built-in one.
func NewState(investments []Investment, catalog Catalog) *State {
	s := &State{Catalog: catalog}
	if s.Catalog.IsZero() {
		s.Catalog = DefaultCatalog()
	}
	s.SetInvestments(investments)
	return s
}

// ErrEmptyPayload is returned when a boot payload has no content.
var ErrEmptyPayload = errors.New("empty boot payload")

// DecodeBoot reads a boot payload:
//
//	{"investments": [...], "case_names": [...], "release_years": {...}, "release_dates": {...}}
//
// Missing keys take their defaults, a missing catalog is the built-in one.
func DecodeBoot(r io.Reader) (*State, error) {
	var s State
	dec := json.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyPayload
		}
		return nil, fmt.Errorf("malformed boot payload: %w", err)
	}
	return NewState(s.Investments, s.Catalog).withPrices(s.Prices), nil
}

func (s *State) withPrices(prices map[string]Price) *State {
	s.SetPrices(prices)
	return s
}

// SetInvestments replaces the whole investment list with a copy of investments.
func (s *State) SetInvestments(investments []Investment) {
	list := cloneInvestments(investments)
	for i := range list {
		list[i].normalize()
	}
	s.Investments = list
}

// SetPrices replaces the price map with a copy of prices.
func (s *State) SetPrices(prices map[string]Price) {
	if prices == nil {
		s.Prices = nil
		return
	}
	s.Prices = maps.Clone(prices)
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	c := &State{
		Catalog: Catalog{
			CaseNames:    slices.Clone(s.CaseNames),
			ReleaseYears: maps.Clone(s.ReleaseYears),
			ReleaseDates: maps.Clone(s.ReleaseDates),
		},
		Synced: s.Synced,
	}
	c.SetInvestments(s.Investments)
	c.SetPrices(s.Prices)
	return c
}

// Investment returns the investment named name.
func (s *State) Investment(name string) (Investment, error) {
	i, err := Index(s.Investments, name)
	if err != nil {
		return Investment{}, err
	}
	return s.Investments[i], nil
}

// Held reports whether name is in the investment list.
func (s *State) Held(name string) bool {
	_, err := Index(s.Investments, name)
	return err == nil
}

// PriceOf returns the latest price of a catalog case, 0 when unknown.
func (s *State) PriceOf(name string) Price {
	return s.Prices[name]
}
