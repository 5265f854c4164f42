package ui

import (
	"fmt"
	"strconv"
	"time"

	"nextgen/domain/core"
	"nextgen/domain/engagement"
	"nextgen/internal/errors"

	"github.com/gin-gonic/gin"
)

// parseCriteria overlays query parameters on defaults.
//
// A present domain or user_type parameter switches its All flag off unless
// all_domains / all_user_types is also given, and empty values are dropped,
// so "domain=" alone selects nothing.
func parseCriteria(c *gin.Context, defaults engagement.FilterCriteria) (engagement.FilterCriteria, error) {
	crit := defaults.Clone()

	if values, ok := c.GetQueryArray("domain"); ok {
		crit.Domains = nonEmpty(values)
		crit.AllDomains = false
	}
	if values, ok := c.GetQueryArray("user_type"); ok {
		crit.UserTypes = nonEmpty(values)
		crit.AllUserTypes = false
	}

	if err := boolParam(c, "all_domains", &crit.AllDomains); err != nil {
		return crit, err
	}
	if err := boolParam(c, "all_user_types", &crit.AllUserTypes); err != nil {
		return crit, err
	}
	if err := dateParam(c, "start", &crit.StartDate); err != nil {
		return crit, err
	}
	if err := dateParam(c, "end", &crit.EndDate); err != nil {
		return crit, err
	}
	if err := intParam(c, "min_session", &crit.MinSession); err != nil {
		return crit, err
	}
	if err := intParam(c, "max_session", &crit.MaxSession); err != nil {
		return crit, err
	}
	return crit, nil
}

// criteria parses the request criteria and writes a 400 on failure
func (s *Server) criteria(c *gin.Context) (engagement.FilterCriteria, bool) {
	crit, err := parseCriteria(c, s.service.DefaultCriteria())
	if err != nil {
		s.respondError(c, err)
		return crit, false
	}
	return crit, true
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func boolParam(c *gin.Context, name string, dst *bool) error {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return invalidParam(name, raw, "expected true or false")
	}
	*dst = v
	return nil
}

func dateParam(c *gin.Context, name string, dst *time.Time) error {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := core.ParseDate(raw)
	if err != nil {
		return invalidParam(name, raw, "expected YYYY-MM-DD")
	}
	*dst = v
	return nil
}

func intParam(c *gin.Context, name string, dst *int) error {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return invalidParam(name, raw, "expected an integer")
	}
	*dst = v
	return nil
}

func invalidParam(name, raw, want string) error {
	return errors.Wrap(core.NewInvalidCriteriaError(name, fmt.Sprintf("%q: %s", raw, want)), "invalid query parameter")
}
