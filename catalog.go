package casefolio

import (
	"slices"
	"time"
)

// releaseDateLayout is the layout of human release dates, "March 31, 2025".
const releaseDateLayout = "January 2, 2006"

// Catalog is the full list of trackable cases, a superset of held ones.
type Catalog struct {
	CaseNames    []string          `json:"case_names"`
	ReleaseYears map[string]int    `json:"release_years"`
	ReleaseDates map[string]string `json:"release_dates"`
}

// knownCases is the built-in catalog with release dates.
var knownCases = []struct{ name, released string }{
	{"Fever Case", "March 31, 2025"},
	{"Gallery Case", "October 2, 2024"},
	{"Kilowatt Case", "February 6, 2024"},
	{"Revolution Case", "February 9, 2023"},
	{"Recoil Case", "July 1, 2022"},
	{"Dreams & Nightmares Case", "January 20, 2022"},
	{"Operation Riptide Case", "September 21, 2021"},
	{"Snakebite Case", "May 3, 2021"},
	{"Operation Broken Fang Case", "December 3, 2020"},
	{"Fracture Case", "August 6, 2020"},
	{"Prisma 2 Case", "March 31, 2020"},
	{"CS20 Case", "October 18, 2019"},
	{"Shattered Web Case", "November 18, 2019"},
	{"Prisma Case", "March 13, 2019"},
	{"Danger Zone Case", "December 6, 2018"},
	{"Horizon Case", "August 2, 2018"},
	{"Clutch Case", "February 15, 2018"},
	{"Spectrum 2 Case", "September 14, 2017"},
	{"Operation Hydra Case", "May 23, 2017"},
	{"Spectrum Case", "March 15, 2017"},
	{"Glove Case", "November 28, 2016"},
	{"Gamma 2 Case", "August 18, 2016"},
	{"Gamma Case", "June 15, 2016"},
	{"Chroma 3 Case", "April 27, 2016"},
	{"Operation Wildfire Case", "February 17, 2016"},
	{"Revolver Case", "December 8, 2015"},
	{"Shadow Case", "September 17, 2015"},
	{"Falchion Case", "May 26, 2015"},
	{"Chroma 2 Case", "April 15, 2015"},
	{"Chroma Case", "January 8, 2015"},
	{"Operation Vanguard Case", "November 11, 2014"},
	{"Operation Breakout Case", "July 1, 2014"},
	{"Huntsman Case", "May 1, 2014"},
	{"Operation Phoenix Case", "February 20, 2014"},
	{"CSGO Weapon Case 3", "February 12, 2014"},
	{"Winter Offensive Case", "December 18, 2013"},
	{"Operation Bravo Case", "September 19, 2013"},
	{"CSGO Weapon Case 2", "November 8, 2013"},
	{"CSGO Weapon Case", "August 14, 2013"},
}

// DefaultCatalog returns the built-in catalog, newest release first.
func DefaultCatalog() Catalog {
	type entry struct {
		name     string
		released string
		on       time.Time
	}
	entries := make([]entry, 0, len(knownCases))
	for _, c := range knownCases {
		on, err := time.Parse(releaseDateLayout, c.released)
		if err != nil {
			panic("invalid built-in release date " + c.released)
		}
		entries = append(entries, entry{c.name, c.released, on})
	}
	slices.SortStableFunc(entries, func(a, b entry) int { return b.on.Compare(a.on) })

	c := Catalog{
		CaseNames:    make([]string, 0, len(entries)),
		ReleaseYears: make(map[string]int, len(entries)),
		ReleaseDates: make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		c.CaseNames = append(c.CaseNames, e.name)
		c.ReleaseYears[e.name] = e.on.Year()
		c.ReleaseDates[e.name] = e.released
	}
	return c
}

// IsZero reports whether the catalog lists no case.
func (c Catalog) IsZero() bool { return len(c.CaseNames) == 0 }

// Has reports whether name is in the catalog.
func (c Catalog) Has(name string) bool { return slices.Contains(c.CaseNames, name) }

// ReleaseYear returns the release year of a case.
func (c Catalog) ReleaseYear(name string) (int, bool) {
	y, ok := c.ReleaseYears[name]
	return y, ok && y > 0
}

// ReleaseDate returns the human release date, "N/A" when unknown.
func (c Catalog) ReleaseDate(name string) string {
	if d, ok := c.ReleaseDates[name]; ok && d != "" {
		return d
	}
	return "N/A"
}
