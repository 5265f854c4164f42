package engagement

import (
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// NotAvailable is reported as the most active domain of an empty view.
const NotAvailable = "N/A"

// KPIs are the headline metrics of a view.
type KPIs struct {
	TotalEngagement   int     `json:"total_engagement"`
	AverageEngagement float64 `json:"average_engagement"`
	MostActiveDomain  string  `json:"most_active_domain"`
	MaxSession        int     `json:"max_session"`
}

// DomainTotal is the summed engagement of one domain.
type DomainTotal struct {
	Domain          string `json:"domain"`
	EngagementScore int    `json:"engagement_score"`
}

// TimeSeriesPoint is the summed engagement of one domain on one date.
type TimeSeriesPoint struct {
	Date            time.Time `json:"date"`
	Domain          string    `json:"domain"`
	EngagementScore int       `json:"engagement_score"`
}

// PivotMatrix holds mean engagement with user types as rows and domains as columns.
// Values[i][j] belongs to UserTypes[i] and Domains[j]; absent pairs are 0.
type PivotMatrix struct {
	UserTypes []string    `json:"user_types"`
	Domains   []string    `json:"domains"`
	Values    [][]float64 `json:"values"`
}

// Cell returns the mean for a (user type, domain) pair, 0 when either is absent.
func (p PivotMatrix) Cell(userType, domain string) float64 {
	i := indexOf(p.UserTypes, userType)
	j := indexOf(p.Domains, domain)
	if i < 0 || j < 0 {
		return 0
	}
	return p.Values[i][j]
}

// SummaryRow aggregates one (domain, user type) group.
type SummaryRow struct {
	Domain           string  `json:"domain"`
	UserType         string  `json:"user_type"`
	EngagementScore  int     `json:"engagement_score"`
	SessionDuration  float64 `json:"session_duration"`
	Clicks           int     `json:"clicks"`
	CompletedLessons int     `json:"completed_lessons"`
}

// ComputeKPIs summarizes a view. An empty view yields zeros and NotAvailable.
func ComputeKPIs(v *View) KPIs {
	if v.Empty() {
		return KPIs{MostActiveDomain: NotAvailable}
	}

	scores := stats.LoadRawData(column(v.rows, func(r Record) int { return r.EngagementScore }))
	sessions := stats.LoadRawData(column(v.rows, func(r Record) int { return r.SessionDuration }))

	kpis := KPIs{TotalEngagement: sumInts(v.rows, func(r Record) int { return r.EngagementScore })}
	if mean, err := stats.Mean(scores); err == nil {
		kpis.AverageEngagement = math.RoundToEven(mean*100) / 100
	}
	if max, err := stats.Max(sessions); err == nil {
		kpis.MaxSession = int(max)
	}

	// Strict comparison over lexical order keeps the first domain on ties.
	best := -1
	for _, dt := range groupDomainTotals(v.rows) {
		if dt.EngagementScore > best {
			best = dt.EngagementScore
			kpis.MostActiveDomain = dt.Domain
		}
	}
	return kpis
}

// DomainTotals sums engagement per domain, largest first. Equal sums keep
// lexical domain order.
func DomainTotals(v *View) []DomainTotal {
	totals := groupDomainTotals(v.rows)
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].EngagementScore > totals[j].EngagementScore
	})
	return totals
}

// TimeSeries sums engagement per (date, domain), ordered by date then domain.
// Dates without records are not interpolated.
func TimeSeries(v *View) []TimeSeriesPoint {
	type key struct {
		date   time.Time
		domain string
	}
	sums := make(map[key]int)
	var keys []key
	for _, r := range v.rows {
		k := key{date: r.Date, domain: r.Domain}
		if _, ok := sums[k]; !ok {
			keys = append(keys, k)
		}
		sums[k] += r.EngagementScore
	}
	sort.Slice(keys, func(i, j int) bool {
		if !keys[i].date.Equal(keys[j].date) {
			return keys[i].date.Before(keys[j].date)
		}
		return keys[i].domain < keys[j].domain
	})

	points := make([]TimeSeriesPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, TimeSeriesPoint{Date: k.date, Domain: k.domain, EngagementScore: sums[k]})
	}
	return points
}

// Pivot computes mean engagement for every user type × domain present in the view.
func Pivot(v *View) PivotMatrix {
	userTypes := sortedKeys(v.rows, func(r Record) string { return r.UserType })
	domains := sortedKeys(v.rows, func(r Record) string { return r.Domain })

	cells := make(map[[2]string][]float64)
	for _, r := range v.rows {
		k := [2]string{r.UserType, r.Domain}
		cells[k] = append(cells[k], float64(r.EngagementScore))
	}

	values := make([][]float64, len(userTypes))
	for i, ut := range userTypes {
		values[i] = make([]float64, len(domains))
		for j, d := range domains {
			if xs := cells[[2]string{ut, d}]; len(xs) > 0 {
				values[i][j] = stat.Mean(xs, nil)
			}
		}
	}
	return PivotMatrix{UserTypes: userTypes, Domains: domains, Values: values}
}

// SummaryTable aggregates each (domain, user type) group.
func SummaryTable(v *View) []SummaryRow {
	type key struct{ domain, userType string }
	groups := make(map[key][]Record)
	var keys []key
	for _, r := range v.rows {
		k := key{r.Domain, r.UserType}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], r)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].domain != keys[j].domain {
			return keys[i].domain < keys[j].domain
		}
		return keys[i].userType < keys[j].userType
	})

	rows := make([]SummaryRow, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		sessions := toFloats(column(g, func(r Record) int { return r.SessionDuration }))
		rows = append(rows, SummaryRow{
			Domain:           k.domain,
			UserType:         k.userType,
			EngagementScore:  sumInts(g, func(r Record) int { return r.EngagementScore }),
			SessionDuration:  stat.Mean(sessions, nil),
			Clicks:           sumInts(g, func(r Record) int { return r.Clicks }),
			CompletedLessons: sumInts(g, func(r Record) int { return r.CompletedLessons }),
		})
	}
	return rows
}

func groupDomainTotals(rows []Record) []DomainTotal {
	sums := make(map[string]int)
	for _, r := range rows {
		sums[r.Domain] += r.EngagementScore
	}
	domains := make([]string, 0, len(sums))
	for d := range sums {
		domains = append(domains, d)
	}
	sort.Strings(domains)

	totals := make([]DomainTotal, 0, len(domains))
	for _, d := range domains {
		totals = append(totals, DomainTotal{Domain: d, EngagementScore: sums[d]})
	}
	return totals
}

func sortedKeys(rows []Record, key func(Record) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func column(rows []Record, field func(Record) int) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = field(r)
	}
	return out
}

func sumInts(rows []Record, field func(Record) int) int {
	total := 0
	for _, r := range rows {
		total += field(r)
	}
	return total
}

func toFloats(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}

func indexOf(xs []string, x string) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}
