package engagement

// DefaultHistogramBins matches the session duration chart of the dashboard.
const DefaultHistogramBins = 20

// HistogramBin counts sessions in [Lower, Upper). The last bin also includes Upper.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// ScatterPoint is one record projected for the clicks vs completed lessons chart.
type ScatterPoint struct {
	Clicks           int    `json:"clicks"`
	CompletedLessons int    `json:"completed_lessons"`
	Domain           string `json:"domain"`
	EngagementScore  int    `json:"engagement_score"`
	UserID           int    `json:"user_id"`
	UserType         string `json:"user_type"`
}

// SessionHistogram splits the view's session durations into equal-width bins
// spanning its minimum to maximum. An empty view has no bins.
func SessionHistogram(v *View, bins int) []HistogramBin {
	if v.Empty() {
		return nil
	}
	if bins <= 0 {
		bins = DefaultHistogramBins
	}

	min, max := v.rows[0].SessionDuration, v.rows[0].SessionDuration
	for _, r := range v.rows[1:] {
		if r.SessionDuration < min {
			min = r.SessionDuration
		}
		if r.SessionDuration > max {
			max = r.SessionDuration
		}
	}

	width := float64(max-min) / float64(bins)
	if width == 0 {
		width = 1
	}

	out := make([]HistogramBin, bins)
	for i := range out {
		out[i].Lower = float64(min) + float64(i)*width
		out[i].Upper = float64(min) + float64(i+1)*width
	}
	for _, r := range v.rows {
		i := int(float64(r.SessionDuration-min) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

// Scatter projects every record of the view in dataset order.
func Scatter(v *View) []ScatterPoint {
	points := make([]ScatterPoint, 0, v.Len())
	for _, r := range v.rows {
		points = append(points, ScatterPoint{
			Clicks:           r.Clicks,
			CompletedLessons: r.CompletedLessons,
			Domain:           r.Domain,
			EngagementScore:  r.EngagementScore,
			UserID:           r.UserID,
			UserType:         r.UserType,
		})
	}
	return points
}
