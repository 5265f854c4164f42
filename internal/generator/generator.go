package generator

import (
	"fmt"
	"math/rand"
	"time"

	"nextgen/adapters/excel"
	"nextgen/domain/core"
	"nextgen/domain/engagement"
)

// Domain and user type labels produced by the generator. The loader later
// drops "Medium".
var (
	DefaultDomains   = []string{"YouTube", "Coursera", "Udemy", "KhanAcademy", "Netflix", "Spotify", "Medium"}
	DefaultUserTypes = []string{"Free", "Premium", "Student", "Teacher"}

	learningDomains  = map[string]bool{"Coursera": true, "Udemy": true, "KhanAcademy": true}
	streamingDomains = map[string]bool{"YouTube": true, "Netflix": true, "Spotify": true}
	boostedUserTypes = map[string]bool{"Premium": true, "Student": true}
)

// Config configures the engagement data generator
type Config struct {
	Rows      int       `json:"rows"`
	Users     int       `json:"users"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Seed      int64     `json:"seed"`
	Domains   []string  `json:"domains"`
	UserTypes []string  `json:"user_types"`
}

// DefaultConfig returns 500 rows across 100 users for August 2025
func DefaultConfig() Config {
	return Config{
		Rows:      500,
		Users:     100,
		StartDate: core.NewDate(2025, time.August, 1),
		EndDate:   core.NewDate(2025, time.August, 31),
		Seed:      42,
		Domains:   DefaultDomains,
		UserTypes: DefaultUserTypes,
	}
}

// Validate checks the config can produce records
func (c Config) Validate() error {
	switch {
	case c.Rows < 0:
		return fmt.Errorf("rows must not be negative")
	case c.Users < 1:
		return fmt.Errorf("users must be at least 1")
	case len(c.Domains) == 0:
		return fmt.Errorf("at least one domain is required")
	case len(c.UserTypes) == 0:
		return fmt.Errorf("at least one user type is required")
	case core.Date(c.EndDate).Before(core.Date(c.StartDate)):
		return fmt.Errorf("end date %s is before start date %s", core.FormatDate(c.EndDate), core.FormatDate(c.StartDate))
	}
	return nil
}

// Generator produces synthetic engagement records
type Generator struct {
	config Config
	rng    *rand.Rand
}

// New creates a generator; the same seed always yields the same records
func New(config Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}
	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}, nil
}

// Generate returns Rows records. Excluded domains are kept; filtering them is
// the loader's job.
func (g *Generator) Generate() []engagement.Record {
	days := int(core.Date(g.config.EndDate).Sub(core.Date(g.config.StartDate)).Hours()/24) + 1

	records := make([]engagement.Record, 0, g.config.Rows)
	for i := 0; i < g.config.Rows; i++ {
		domain := g.pick(g.config.Domains)
		userType := g.pick(g.config.UserTypes)

		completed := 0
		if learningDomains[domain] {
			completed = g.between(0, 10)
		}

		records = append(records, engagement.Record{
			UserID:           g.between(1, g.config.Users),
			Domain:           domain,
			EngagementScore:  g.score(domain, userType),
			Date:             core.AddDays(g.config.StartDate, g.rng.Intn(days)),
			UserType:         userType,
			SessionDuration:  g.between(5, 120),
			Clicks:           g.between(1, 50),
			CompletedLessons: completed,
		})
	}
	return records
}

// score depends on domain and user type: learning platforms reward paying
// and student users (capped at 100), streaming adds a small bonus.
func (g *Generator) score(domain, userType string) int {
	base := g.between(10, 100)
	switch {
	case learningDomains[domain]:
		if boostedUserTypes[userType] {
			return min(base+g.between(20, 30), 100)
		}
		return base
	case streamingDomains[domain]:
		return base + g.between(0, 10)
	default:
		return base
	}
}

// between returns a uniform integer in [lo, hi]
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}

// WriteCSV generates a dataset and saves it to path. An .xlsx extension
// writes a workbook instead.
func (g *Generator) WriteCSV(path string) error {
	return excel.Save(path, g.Generate())
}
