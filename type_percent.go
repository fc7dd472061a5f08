package casefolio

import "fmt"

// Percent is a ratio expressed in percent (12.5 means 12.5%).
type Percent float64

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}
