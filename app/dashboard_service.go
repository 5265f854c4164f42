package app

import (
	"fmt"
	"strings"
	"time"

	"nextgen/domain/core"
	"nextgen/domain/engagement"
	"nextgen/internal"
)

const defaultPreviewRows = 20

// Snapshot is one filtered view together with every aggregate derived from it
type Snapshot struct {
	Criteria     engagement.FilterCriteria    `json:"criteria"`
	RowCount     int                          `json:"row_count"`
	KPIs         engagement.KPIs              `json:"kpis"`
	Delta        int                          `json:"delta"`
	TimeSeries   []engagement.TimeSeriesPoint `json:"time_series"`
	DomainTotals []engagement.DomainTotal     `json:"domain_totals"`
	Pivot        engagement.PivotMatrix       `json:"pivot"`
	Summary      []engagement.SummaryRow      `json:"summary"`
	Histogram    []engagement.HistogramBin    `json:"histogram"`
	Scatter      []engagement.ScatterPoint    `json:"scatter"`
	Preview      []engagement.Record          `json:"preview"`
}

// Options describes the selectable filter values of the loaded dataset
type Options struct {
	Domains    []string                  `json:"domains"`
	UserTypes  []string                  `json:"user_types"`
	MinDate    time.Time                 `json:"min_date"`
	MaxDate    time.Time                 `json:"max_date"`
	MinSession int                       `json:"min_session"`
	MaxSession int                       `json:"max_session"`
	Defaults   engagement.FilterCriteria `json:"defaults"`
	TotalRows  int                       `json:"total_rows"`
}

// DashboardService runs the filter and aggregation pipeline over one dataset.
// The dataset is shared read-only; every call works from its own criteria.
type DashboardService struct {
	dataset       *engagement.Dataset
	logger        *internal.Logger
	previewRows   int
	histogramBins int
}

// ServiceOption customizes a DashboardService
type ServiceOption func(*DashboardService)

// WithPreviewRows sets how many records a snapshot previews
func WithPreviewRows(n int) ServiceOption {
	return func(s *DashboardService) {
		if n > 0 {
			s.previewRows = n
		}
	}
}

// WithHistogramBins sets the session histogram resolution
func WithHistogramBins(n int) ServiceOption {
	return func(s *DashboardService) {
		if n > 0 {
			s.histogramBins = n
		}
	}
}

// NewDashboardService creates a dashboard service over ds
func NewDashboardService(ds *engagement.Dataset, logger *internal.Logger, opts ...ServiceOption) *DashboardService {
	if ds == nil {
		ds = engagement.NewDataset(nil)
	}
	s := &DashboardService{
		dataset:       ds,
		logger:        logger.WithComponent("dashboard"),
		previewRows:   defaultPreviewRows,
		histogramBins: engagement.DefaultHistogramBins,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dataset returns the dataset the service was built with
func (s *DashboardService) Dataset() *engagement.Dataset {
	return s.dataset
}

// PreviewRows is the number of records a snapshot previews
func (s *DashboardService) PreviewRows() int {
	return s.previewRows
}

// HistogramBins is the session histogram resolution
func (s *DashboardService) HistogramBins() int {
	return s.histogramBins
}

// DefaultCriteria selects the whole dataset
func (s *DashboardService) DefaultCriteria() engagement.FilterCriteria {
	return engagement.DefaultCriteria(s.dataset)
}

// View applies c to the dataset
func (s *DashboardService) View(c engagement.FilterCriteria) *engagement.View {
	return engagement.Apply(s.dataset, c)
}

// Snapshot computes the view for c and all of its aggregates
func (s *DashboardService) Snapshot(c engagement.FilterCriteria) *Snapshot {
	start := time.Now()
	view := engagement.Apply(s.dataset, c)

	snap := &Snapshot{
		Criteria:     view.Criteria(),
		RowCount:     view.Len(),
		KPIs:         engagement.ComputeKPIs(view),
		Delta:        engagement.Delta(s.dataset, c),
		TimeSeries:   engagement.TimeSeries(view),
		DomainTotals: engagement.DomainTotals(view),
		Pivot:        engagement.Pivot(view),
		Summary:      engagement.SummaryTable(view),
		Histogram:    engagement.SessionHistogram(view, s.histogramBins),
		Scatter:      engagement.Scatter(view),
		Preview:      view.Head(s.previewRows),
	}

	s.logger.Debug("snapshot computed: %d of %d rows in %s", snap.RowCount, s.dataset.Len(), time.Since(start))
	return snap
}

// Options lists filter choices in first-seen order along with the dataset bounds
func (s *DashboardService) Options() Options {
	opts := Options{
		Domains:   s.dataset.Domains(),
		UserTypes: s.dataset.UserTypes(),
		Defaults:  s.DefaultCriteria(),
		TotalRows: s.dataset.Len(),
	}
	if bounds, ok := s.dataset.DateBounds(); ok {
		opts.MinDate, opts.MaxDate = bounds.Start, bounds.End
	}
	if lo, hi, ok := s.dataset.SessionBounds(); ok {
		opts.MinSession, opts.MaxSession = lo, hi
	}
	return opts
}

// Report renders the KPIs and tables of the view for c as Markdown
func (s *DashboardService) Report(c engagement.FilterCriteria) string {
	snap := s.Snapshot(c)
	var b strings.Builder

	b.WriteString("# NextGen Engagement Report\n\n")
	writeCriteria(&b, snap.Criteria)

	b.WriteString("## Key Metrics\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Records | %d |\n", snap.RowCount)
	fmt.Fprintf(&b, "| Total Engagement | %d (%+d vs previous %d days) |\n",
		snap.KPIs.TotalEngagement, snap.Delta, engagement.TrailingWindowDays)
	fmt.Fprintf(&b, "| Average Engagement | %.2f |\n", snap.KPIs.AverageEngagement)
	fmt.Fprintf(&b, "| Most Active Domain | %s |\n", snap.KPIs.MostActiveDomain)
	fmt.Fprintf(&b, "| Max Session (min) | %d |\n\n", snap.KPIs.MaxSession)

	if snap.RowCount == 0 {
		b.WriteString("_No records match the current filters._\n")
		return b.String()
	}

	b.WriteString("## Engagement by Domain\n\n")
	b.WriteString("| Domain | Engagement |\n|---|---|\n")
	for _, dt := range snap.DomainTotals {
		fmt.Fprintf(&b, "| %s | %d |\n", dt.Domain, dt.EngagementScore)
	}

	b.WriteString("\n## Average Engagement by User Type and Domain\n\n")
	b.WriteString("| User Type |")
	for _, d := range snap.Pivot.Domains {
		fmt.Fprintf(&b, " %s |", d)
	}
	b.WriteString("\n|---|" + strings.Repeat("---|", len(snap.Pivot.Domains)) + "\n")
	for i, ut := range snap.Pivot.UserTypes {
		fmt.Fprintf(&b, "| %s |", ut)
		for _, v := range snap.Pivot.Values[i] {
			fmt.Fprintf(&b, " %.2f |", v)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n## Summary by Domain and User Type\n\n")
	b.WriteString("| Domain | User Type | Engagement | Avg Session | Clicks | Completed Lessons |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, row := range snap.Summary {
		fmt.Fprintf(&b, "| %s | %s | %d | %.2f | %d | %d |\n",
			row.Domain, row.UserType, row.EngagementScore, row.SessionDuration, row.Clicks, row.CompletedLessons)
	}

	return b.String()
}

func writeCriteria(b *strings.Builder, c engagement.FilterCriteria) {
	b.WriteString("## Filters\n\n")
	fmt.Fprintf(b, "- Domains: %s\n", describeSet(c.AllDomains, c.Domains))
	fmt.Fprintf(b, "- User types: %s\n", describeSet(c.AllUserTypes, c.UserTypes))
	fmt.Fprintf(b, "- Dates: %s to %s\n", core.FormatDate(c.StartDate), core.FormatDate(c.EndDate))
	fmt.Fprintf(b, "- Session duration: %d to %d min\n\n", c.MinSession, c.MaxSession)
}

func describeSet(all bool, values []string) string {
	switch {
	case all:
		return "all"
	case len(values) == 0:
		return "none"
	default:
		return strings.Join(values, ", ")
	}
}
