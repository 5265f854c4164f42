package engagement

import (
	"testing"
	"time"

	"nextgen/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(domain, userType string, score, day, session int) Record {
	return Record{
		UserID:          day,
		Domain:          domain,
		EngagementScore: score,
		Date:            core.NewDate(2025, time.August, day),
		UserType:        userType,
		SessionDuration: session,
		Clicks:          score / 10,
	}
}

func allOf(ds *Dataset) FilterCriteria {
	return DefaultCriteria(ds)
}

func TestNewDataset_RemovesExcludedDomainOnly(t *testing.T) {
	ds := NewDataset([]Record{
		rec("YouTube", "Free", 50, 1, 10),
		rec("Medium", "Free", 99, 1, 10),
		rec("medium", "Premium", 20, 2, 10),
		rec("MEDIUM", "Student", 20, 3, 10),
		rec("MediumRare", "Free", 15, 4, 10),
		rec("Coursera", "Teacher", 40, 5, 10),
	})

	require.Equal(t, 3, ds.Len())
	for _, r := range ds.Records() {
		assert.False(t, r.IsExcluded(), "excluded record survived: %s", r.Domain)
	}
	assert.Equal(t, []string{"YouTube", "MediumRare", "Coursera"}, ds.Domains())
}

func TestDomainTotals_MediumAbsentAfterLoad(t *testing.T) {
	ds := NewDataset([]Record{
		{Domain: "YouTube", EngagementScore: 50, Date: core.NewDate(2025, time.August, 1), SessionDuration: 10, UserType: "Free"},
		{Domain: "Medium", EngagementScore: 99, Date: core.NewDate(2025, time.August, 1), SessionDuration: 10, UserType: "Free"},
	})

	totals := DomainTotals(Apply(ds, allOf(ds)))
	assert.Equal(t, []DomainTotal{{Domain: "YouTube", EngagementScore: 50}}, totals)
}

func TestDatasetIsImmutable(t *testing.T) {
	ds := NewDataset([]Record{rec("YouTube", "Free", 50, 1, 10)})

	records := ds.Records()
	records[0].EngagementScore = 1000

	assert.Equal(t, 50, ds.Records()[0].EngagementScore)
}

func TestApply_EmptyMembershipYieldsEmptyView(t *testing.T) {
	ds := NewDataset([]Record{
		rec("YouTube", "Free", 50, 1, 10),
		rec("YouTube", "Premium", 60, 2, 20),
	})

	c := allOf(ds)
	c.Domains = []string{"YouTube"}
	c.AllDomains = false
	c.UserTypes = nil
	c.AllUserTypes = false

	assert.True(t, Apply(ds, c).Empty())

	c.UserTypes = []string{"Free"}
	c.Domains = []string{}
	assert.True(t, Apply(ds, c).Empty())
}

func TestApply_SelectAllForcesFullMembership(t *testing.T) {
	ds := NewDataset([]Record{
		rec("YouTube", "Free", 50, 1, 10),
		rec("Udemy", "Premium", 60, 2, 20),
	})

	c := allOf(ds)
	c.Domains = nil
	c.UserTypes = nil

	assert.Equal(t, 2, Apply(ds, c).Len())
}

func TestApply_PredicatesCombineWithAnd(t *testing.T) {
	ds := NewDataset([]Record{
		rec("YouTube", "Free", 50, 1, 10),
		rec("YouTube", "Premium", 60, 2, 20),
		rec("Udemy", "Free", 70, 3, 30),
	})

	c := allOf(ds)
	c.AllDomains, c.AllUserTypes = false, false
	c.Domains = []string{"YouTube"}
	c.UserTypes = []string{"Free"}

	records := Apply(ds, c).Records()
	require.Len(t, records, 1)
	assert.Equal(t, 50, records[0].EngagementScore)
}

func TestApply_RangesAreInclusive(t *testing.T) {
	ds := NewDataset([]Record{
		rec("YouTube", "Free", 1, 4, 9),
		rec("YouTube", "Free", 2, 5, 10),
		rec("YouTube", "Free", 3, 7, 15),
		rec("YouTube", "Free", 4, 9, 20),
		rec("YouTube", "Free", 5, 10, 21),
	})

	c := allOf(ds)
	c.StartDate = core.NewDate(2025, time.August, 5)
	c.EndDate = core.NewDate(2025, time.August, 9)
	c.MinSession = 10
	c.MaxSession = 20

	var scores []int
	for _, r := range Apply(ds, c).Records() {
		scores = append(scores, r.EngagementScore)
	}
	assert.Equal(t, []int{2, 3, 4}, scores)
}

func TestApply_InvertedRangesYieldEmptyView(t *testing.T) {
	ds := NewDataset([]Record{rec("YouTube", "Free", 50, 5, 10)})

	dates := allOf(ds)
	dates.StartDate, dates.EndDate = core.NewDate(2025, time.August, 9), core.NewDate(2025, time.August, 1)
	assert.True(t, Apply(ds, dates).Empty())

	sessions := allOf(ds)
	sessions.MinSession, sessions.MaxSession = 30, 5
	assert.True(t, Apply(ds, sessions).Empty())
}

func TestApply_IsIdempotent(t *testing.T) {
	ds := NewDataset([]Record{
		rec("YouTube", "Free", 50, 1, 10),
		rec("Udemy", "Student", 70, 3, 30),
		rec("Netflix", "Premium", 40, 8, 55),
	})
	c := allOf(ds)
	c.MaxSession = 40

	first := Apply(ds, c)
	second := Apply(ds, c)
	assert.Equal(t, first.Records(), second.Records())
	assert.Equal(t, first.Criteria(), second.Criteria())
}

func TestApply_ViewIsDetachedFromCallerCriteria(t *testing.T) {
	ds := NewDataset([]Record{rec("YouTube", "Free", 50, 1, 10)})
	c := allOf(ds)
	c.AllDomains = false
	c.Domains = []string{"YouTube"}

	view := Apply(ds, c)
	c.Domains[0] = "Udemy"

	assert.Equal(t, []string{"YouTube"}, view.Criteria().Domains)
	assert.Equal(t, 1, view.Len())
}

func TestComputeKPIs_EmptyView(t *testing.T) {
	ds := NewDataset(nil)
	kpis := ComputeKPIs(Apply(ds, FilterCriteria{}))

	assert.Equal(t, KPIs{TotalEngagement: 0, AverageEngagement: 0, MostActiveDomain: "N/A", MaxSession: 0}, kpis)
}

func TestComputeKPIs(t *testing.T) {
	ds := NewDataset([]Record{
		rec("YouTube", "Free", 50, 1, 10),
		rec("YouTube", "Premium", 30, 2, 95),
		rec("Coursera", "Student", 80, 3, 40),
	})

	kpis := ComputeKPIs(Apply(ds, allOf(ds)))

	assert.Equal(t, 160, kpis.TotalEngagement)
	assert.InDelta(t, 53.33, kpis.AverageEngagement, 1e-9)
	// YouTube and Coursera tie at 80; the lexically first wins.
	assert.Equal(t, "Coursera", kpis.MostActiveDomain)
	assert.Equal(t, 95, kpis.MaxSession)
}

func TestComputeKPIs_AverageRoundsHalfToEven(t *testing.T) {
	var records []Record
	for day := 1; day <= 7; day++ {
		records = append(records, rec("YouTube", "Free", 50, day, 10))
	}
	records = append(records, rec("YouTube", "Free", 51, 8, 10))
	ds := NewDataset(records)

	// mean is 50.125, which sits exactly between 50.12 and 50.13
	kpis := ComputeKPIs(Apply(ds, allOf(ds)))
	assert.Equal(t, 401, kpis.TotalEngagement)
	assert.Equal(t, 50.12, kpis.AverageEngagement)
}

func TestNilDatasetIsEmpty(t *testing.T) {
	c := FilterCriteria{AllDomains: true, AllUserTypes: true, StartDate: core.NewDate(2025, time.August, 1), EndDate: core.NewDate(2025, time.August, 31)}

	var view *View
	require.NotPanics(t, func() { view = Apply(nil, c) })
	assert.Equal(t, 0, view.Len())
	assert.Equal(t, c, view.Criteria())

	require.NotPanics(t, func() { assert.Equal(t, 0, Delta(nil, c)) })
}

func TestDomainTotals_SortedDescendingWithLexicalTies(t *testing.T) {
	ds := NewDataset([]Record{
		rec("YouTube", "Free", 80, 1, 10),
		rec("Coursera", "Free", 30, 1, 10),
		rec("Udemy", "Free", 90, 1, 10),
		rec("Coursera", "Free", 50, 2, 10),
		rec("Spotify", "Free", 10, 2, 10),
	})

	totals := DomainTotals(Apply(ds, allOf(ds)))
	assert.Equal(t, []DomainTotal{
		{Domain: "Udemy", EngagementScore: 90},
		{Domain: "Coursera", EngagementScore: 80},
		{Domain: "YouTube", EngagementScore: 80},
		{Domain: "Spotify", EngagementScore: 10},
	}, totals)

	for i := 1; i < len(totals); i++ {
		assert.GreaterOrEqual(t, totals[i-1].EngagementScore, totals[i].EngagementScore)
	}
}

func TestTimeSeries(t *testing.T) {
	ds := NewDataset([]Record{
		rec("YouTube", "Free", 10, 2, 10),
		rec("Udemy", "Free", 20, 1, 10),
		rec("YouTube", "Premium", 5, 2, 10),
		rec("Coursera", "Free", 7, 2, 10),
	})

	points := TimeSeries(Apply(ds, allOf(ds)))
	assert.Equal(t, []TimeSeriesPoint{
		{Date: core.NewDate(2025, time.August, 1), Domain: "Udemy", EngagementScore: 20},
		{Date: core.NewDate(2025, time.August, 2), Domain: "Coursera", EngagementScore: 7},
		{Date: core.NewDate(2025, time.August, 2), Domain: "YouTube", EngagementScore: 15},
	}, points)
}

func TestPivot_FillsMissingCellsWithZero(t *testing.T) {
	ds := NewDataset([]Record{
		rec("YouTube", "Free", 40, 1, 10),
		rec("YouTube", "Free", 60, 2, 10),
		rec("Udemy", "Student", 90, 3, 10),
	})

	p := Pivot(Apply(ds, allOf(ds)))

	assert.Equal(t, []string{"Free", "Student"}, p.UserTypes)
	assert.Equal(t, []string{"Udemy", "YouTube"}, p.Domains)
	assert.Equal(t, [][]float64{{0, 50}, {90, 0}}, p.Values)
	assert.Equal(t, 50.0, p.Cell("Free", "YouTube"))
	assert.Equal(t, 0.0, p.Cell("Student", "YouTube"))
	assert.Equal(t, 0.0, p.Cell("Teacher", "Udemy"))
}

func TestPivot_EmptyView(t *testing.T) {
	p := Pivot(Apply(NewDataset(nil), FilterCriteria{}))
	assert.Empty(t, p.UserTypes)
	assert.Empty(t, p.Domains)
	assert.Empty(t, p.Values)
}

func TestSummaryTable(t *testing.T) {
	ds := NewDataset([]Record{
		{Domain: "Udemy", UserType: "Student", EngagementScore: 70, SessionDuration: 30, Clicks: 5, CompletedLessons: 2, Date: core.NewDate(2025, time.August, 1)},
		{Domain: "Udemy", UserType: "Student", EngagementScore: 50, SessionDuration: 45, Clicks: 7, CompletedLessons: 4, Date: core.NewDate(2025, time.August, 2)},
		{Domain: "Netflix", UserType: "Free", EngagementScore: 20, SessionDuration: 100, Clicks: 1, Date: core.NewDate(2025, time.August, 3)},
	})

	rows := SummaryTable(Apply(ds, allOf(ds)))
	assert.Equal(t, []SummaryRow{
		{Domain: "Netflix", UserType: "Free", EngagementScore: 20, SessionDuration: 100, Clicks: 1, CompletedLessons: 0},
		{Domain: "Udemy", UserType: "Student", EngagementScore: 120, SessionDuration: 37.5, Clicks: 12, CompletedLessons: 6},
	}, rows)
}

func TestAggregatesOnEmptyViewDoNotFail(t *testing.T) {
	ds := NewDataset([]Record{rec("YouTube", "Free", 50, 1, 10)})
	c := allOf(ds)
	c.AllUserTypes = false
	c.UserTypes = nil
	view := Apply(ds, c)

	assert.Empty(t, DomainTotals(view))
	assert.Empty(t, TimeSeries(view))
	assert.Empty(t, SummaryTable(view))
	assert.Empty(t, SessionHistogram(view, 20))
	assert.Empty(t, Scatter(view))
	assert.Empty(t, view.Head(20))
}

func TestDelta_EmptyWindowIsZero(t *testing.T) {
	ds := NewDataset([]Record{
		rec("YouTube", "Free", 50, 10, 10),
		rec("YouTube", "Free", 60, 2, 10),
	})
	c := allOf(ds)
	c.StartDate = core.NewDate(2025, time.August, 10)

	assert.Equal(t, 0, Delta(ds, c))
}

func TestDelta_WindowIgnoresCategoryFilters(t *testing.T) {
	ds := NewDataset([]Record{
		rec("YouTube", "Free", 50, 10, 10),
		rec("YouTube", "Free", 5, 3, 10),    // window start, inclusive
		rec("Udemy", "Teacher", 7, 9, 500),  // window end, other domain and session
		rec("Spotify", "Free", 1000, 2, 10), // before the window
	})
	c := allOf(ds)
	c.AllDomains = false
	c.Domains = []string{"YouTube"}
	c.StartDate = core.NewDate(2025, time.August, 10)
	c.MaxSession = 100

	assert.Equal(t, 50-12, Delta(ds, c))
}

func TestTrailingWindow(t *testing.T) {
	w := TrailingWindow(core.NewDate(2025, time.August, 10))
	assert.Equal(t, "2025-08-03", core.FormatDate(w.Start))
	assert.Equal(t, "2025-08-09", core.FormatDate(w.End))
}

func TestSessionHistogram(t *testing.T) {
	ds := NewDataset([]Record{
		rec("YouTube", "Free", 10, 1, 5),
		rec("YouTube", "Free", 10, 1, 25),
		rec("YouTube", "Free", 10, 1, 65),
		rec("YouTube", "Free", 10, 1, 125),
	})

	bins := SessionHistogram(Apply(ds, allOf(ds)), 6)
	require.Len(t, bins, 6)
	assert.Equal(t, 5.0, bins[0].Lower)
	assert.Equal(t, 125.0, bins[5].Upper)

	counts := make([]int, len(bins))
	for i, b := range bins {
		counts[i] = b.Count
	}
	assert.Equal(t, []int{1, 1, 0, 1, 0, 1}, counts)
}

func TestSessionHistogram_SingleValue(t *testing.T) {
	ds := NewDataset([]Record{rec("YouTube", "Free", 10, 1, 30), rec("Udemy", "Free", 10, 1, 30)})

	bins := SessionHistogram(Apply(ds, allOf(ds)), 0)
	require.Len(t, bins, DefaultHistogramBins)
	assert.Equal(t, 2, bins[0].Count)
}

func TestScatterAndHead(t *testing.T) {
	ds := NewDataset([]Record{
		rec("YouTube", "Free", 10, 1, 5),
		rec("Udemy", "Student", 70, 2, 25),
		rec("Netflix", "Premium", 30, 3, 65),
	})
	view := Apply(ds, allOf(ds))

	points := Scatter(view)
	require.Len(t, points, 3)
	assert.Equal(t, ScatterPoint{Clicks: 7, Domain: "Udemy", EngagementScore: 70, UserID: 2, UserType: "Student"}, points[1])

	assert.Len(t, view.Head(2), 2)
	assert.Len(t, view.Head(20), 3)
	assert.Len(t, view.Head(-1), 3)
}

func TestDefaultCriteria(t *testing.T) {
	ds := NewDataset([]Record{
		rec("YouTube", "Free", 10, 4, 50),
		rec("Udemy", "Student", 70, 2, 25),
		rec("YouTube", "Premium", 30, 9, 65),
	})

	c := DefaultCriteria(ds)
	assert.True(t, c.AllDomains)
	assert.True(t, c.AllUserTypes)
	assert.Equal(t, []string{"YouTube", "Udemy"}, c.Domains)
	assert.Equal(t, []string{"Free", "Student", "Premium"}, c.UserTypes)
	assert.Equal(t, core.NewDate(2025, time.August, 2), c.StartDate)
	assert.Equal(t, core.NewDate(2025, time.August, 9), c.EndDate)
	assert.Equal(t, 25, c.MinSession)
	assert.Equal(t, 65, c.MaxSession)
	assert.Equal(t, 3, Apply(ds, c).Len())
}
