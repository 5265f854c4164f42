package engagement

import (
	"strings"
	"time"

	"nextgen/domain/core"
)

// ExcludedDomain is dropped from every dataset at construction, compared case-insensitively.
const ExcludedDomain = "medium"

// Column names of the tabular dataset, in file order.
const (
	ColumnUserID           = "user_id"
	ColumnDomain           = "domain"
	ColumnEngagementScore  = "engagement_score"
	ColumnDate             = "date"
	ColumnUserType         = "user_type"
	ColumnSessionDuration  = "session_duration"
	ColumnClicks           = "clicks"
	ColumnCompletedLessons = "completed_lessons"
)

// Columns lists the required header in export order.
var Columns = []string{
	ColumnUserID,
	ColumnDomain,
	ColumnEngagementScore,
	ColumnDate,
	ColumnUserType,
	ColumnSessionDuration,
	ColumnClicks,
	ColumnCompletedLessons,
}

// Record is one user engagement event.
type Record struct {
	UserID           int       `json:"user_id"`
	Domain           string    `json:"domain"`
	EngagementScore  int       `json:"engagement_score"`
	Date             time.Time `json:"date"`
	UserType         string    `json:"user_type"`
	SessionDuration  int       `json:"session_duration"`
	Clicks           int       `json:"clicks"`
	CompletedLessons int       `json:"completed_lessons"`
}

// IsExcluded reports whether the record belongs to the excluded domain.
func (r Record) IsExcluded() bool {
	return strings.EqualFold(strings.TrimSpace(r.Domain), ExcludedDomain)
}

// Dataset is an immutable, ordered set of records.
type Dataset struct {
	records []Record
}

// NewDataset copies records into a Dataset, normalizing dates to calendar days
// and removing the excluded domain.
func NewDataset(records []Record) *Dataset {
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if r.IsExcluded() {
			continue
		}
		r.Date = core.Date(r.Date)
		kept = append(kept, r)
	}
	return &Dataset{records: kept}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Records returns a copy of the records in insertion order.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Domains returns distinct domains in first-seen order.
func (d *Dataset) Domains() []string {
	return d.distinct(func(r Record) string { return r.Domain })
}

// UserTypes returns distinct user types in first-seen order.
func (d *Dataset) UserTypes() []string {
	return d.distinct(func(r Record) string { return r.UserType })
}

func (d *Dataset) distinct(key func(Record) string) []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, r := range d.records {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// DateBounds returns the earliest and latest record dates.
func (d *Dataset) DateBounds() (core.DateRange, bool) {
	if d.Len() == 0 {
		return core.DateRange{}, false
	}
	r := core.DateRange{Start: d.records[0].Date, End: d.records[0].Date}
	for _, rec := range d.records[1:] {
		if rec.Date.Before(r.Start) {
			r.Start = rec.Date
		}
		if rec.Date.After(r.End) {
			r.End = rec.Date
		}
	}
	return r, true
}

// SessionBounds returns the minimum and maximum session durations.
func (d *Dataset) SessionBounds() (min, max int, ok bool) {
	if d.Len() == 0 {
		return 0, 0, false
	}
	min, max = d.records[0].SessionDuration, d.records[0].SessionDuration
	for _, rec := range d.records[1:] {
		if rec.SessionDuration < min {
			min = rec.SessionDuration
		}
		if rec.SessionDuration > max {
			max = rec.SessionDuration
		}
	}
	return min, max, true
}
