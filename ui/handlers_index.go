package ui

import (
	"html/template"
	"net/http"

	"nextgen/app"

	"github.com/gin-gonic/gin"
)

type dashboardPage struct {
	Snapshot *app.Snapshot
	Options  app.Options
	Query    template.URL
	HistMax  int
	Error    string
}

// handleIndex renders the dashboard. Bad query values fall back to the
// default selection and are reported in a banner instead of failing the page.
func (s *Server) handleIndex(c *gin.Context) {
	page := dashboardPage{
		Options: s.service.Options(),
		Query:   template.URL(c.Request.URL.RawQuery),
	}

	crit, err := parseCriteria(c, s.service.DefaultCriteria())
	status := http.StatusOK
	if err != nil {
		page.Error = err.Error()
		page.Query = ""
		crit = s.service.DefaultCriteria()
		status = http.StatusBadRequest
	}

	page.Snapshot = s.service.Snapshot(crit)
	for _, bin := range page.Snapshot.Histogram {
		if bin.Count > page.HistMax {
			page.HistMax = bin.Count
		}
	}
	s.renderTemplate(c, status, "dashboard.html", page)
}
