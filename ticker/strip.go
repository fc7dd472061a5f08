// Package ticker scrolls the latest catalog prices back and forth in the
// terminal.
package ticker

import (
	"strings"

	"github.com/etnz/casefolio"
)

// Entry is one case of the strip.
type Entry struct {
	Name  string
	Price casefolio.Money
}

func (e Entry) String() string { return e.Name + " " + e.Price.String() }

// Strip is the ordered list of ticker entries.
type Strip []Entry

// separator between two entries.
const separator = "   |   "

// NewStrip returns one entry per catalog case, in catalog order. Cases without
// a known price show 0.
func NewStrip(s *casefolio.State, currency string) Strip {
	if s == nil {
		return nil
	}
	strip := make(Strip, 0, len(s.CaseNames))
	for _, name := range s.CaseNames {
		strip = append(strip, Entry{Name: name, Price: s.PriceOf(name).In(currency)})
	}
	return strip
}

// Text returns the strip as a single line.
func (s Strip) Text() string {
	parts := make([]string, 0, len(s))
	for _, e := range s {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, separator)
}
