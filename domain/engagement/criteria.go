package engagement

import (
	"time"
)

// FilterCriteria is a conjunction of independent predicates over records.
// An empty membership set matches nothing unless its All flag is set.
type FilterCriteria struct {
	Domains      []string  `json:"domains"`
	UserTypes    []string  `json:"user_types"`
	AllDomains   bool      `json:"all_domains"`
	AllUserTypes bool      `json:"all_user_types"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	MinSession   int       `json:"min_session"`
	MaxSession   int       `json:"max_session"`
}

// DefaultCriteria selects everything: all domains and user types, the full
// date span and the full session range of the dataset.
func DefaultCriteria(ds *Dataset) FilterCriteria {
	c := FilterCriteria{
		Domains:      ds.Domains(),
		UserTypes:    ds.UserTypes(),
		AllDomains:   true,
		AllUserTypes: true,
	}
	if dates, ok := ds.DateBounds(); ok {
		c.StartDate = dates.Start
		c.EndDate = dates.End
	}
	if min, max, ok := ds.SessionBounds(); ok {
		c.MinSession = min
		c.MaxSession = max
	}
	return c
}

// Clone returns a deep copy so later edits to the caller's slices cannot leak
// into a view built from this value.
func (c FilterCriteria) Clone() FilterCriteria {
	out := c
	out.Domains = append([]string(nil), c.Domains...)
	out.UserTypes = append([]string(nil), c.UserTypes...)
	return out
}

// membership builds a lookup set; nil means every value matches.
func membership(all bool, values []string) map[string]bool {
	if all {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
