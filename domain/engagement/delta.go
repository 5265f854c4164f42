package engagement

import (
	"time"

	"nextgen/domain/core"
)

// TrailingWindowDays is the length of the comparison window before the start date.
const TrailingWindowDays = 7

// TrailingWindow returns the inclusive window [start-7d, start-1d].
func TrailingWindow(start time.Time) core.DateRange {
	return core.DateRange{
		Start: core.AddDays(start, -TrailingWindowDays),
		End:   core.AddDays(start, -1),
	}
}

// Delta is the view's total engagement minus the total over the trailing
// window before c.StartDate. The window is filtered by date only; domain,
// user type and session constraints do not apply to it. An empty window
// yields 0.
func Delta(ds *Dataset, c FilterCriteria) int {
	if ds.Len() == 0 {
		return 0
	}
	window := TrailingWindow(c.StartDate)

	found := false
	previous := 0
	for _, r := range ds.records {
		if window.Contains(r.Date) {
			found = true
			previous += r.EngagementScore
		}
	}
	if !found {
		return 0
	}
	return ComputeKPIs(Apply(ds, c)).TotalEngagement - previous
}
