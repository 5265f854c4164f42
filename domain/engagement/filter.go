package engagement

import (
	"nextgen/domain/core"
)

// View is the read-only result of applying one FilterCriteria value to a Dataset.
type View struct {
	criteria FilterCriteria
	rows     []Record
}

// Apply returns the records satisfying every predicate of c.
//
// Membership is exact-match on domain and user_type. Date and session ranges
// are inclusive on both ends; inverted ranges simply match nothing.
func Apply(ds *Dataset, c FilterCriteria) *View {
	c = c.Clone()
	view := &View{criteria: c}
	if ds.Len() == 0 {
		return view
	}

	domains := membership(c.AllDomains, c.Domains)
	userTypes := membership(c.AllUserTypes, c.UserTypes)
	if (domains != nil && len(domains) == 0) || (userTypes != nil && len(userTypes) == 0) {
		return view
	}

	dates := core.DateRange{Start: c.StartDate, End: c.EndDate}
	for _, r := range ds.records {
		if domains != nil && !domains[r.Domain] {
			continue
		}
		if userTypes != nil && !userTypes[r.UserType] {
			continue
		}
		if !dates.Contains(r.Date) {
			continue
		}
		if r.SessionDuration < c.MinSession || r.SessionDuration > c.MaxSession {
			continue
		}
		view.rows = append(view.rows, r)
	}
	return view
}

// Criteria returns the criteria the view was built from.
func (v *View) Criteria() FilterCriteria {
	return v.criteria.Clone()
}

// Len returns the number of matching records.
func (v *View) Len() int {
	if v == nil {
		return 0
	}
	return len(v.rows)
}

// Empty reports whether no record matched.
func (v *View) Empty() bool {
	return v.Len() == 0
}

// Records returns a copy of the matching records in dataset order.
func (v *View) Records() []Record {
	if v == nil {
		return nil
	}
	out := make([]Record, len(v.rows))
	copy(out, v.rows)
	return out
}

// Head returns at most n records from the start of the view.
func (v *View) Head(n int) []Record {
	if v == nil {
		return nil
	}
	if n < 0 || n > v.Len() {
		n = v.Len()
	}
	out := make([]Record, n)
	copy(out, v.rows[:n])
	return out
}
