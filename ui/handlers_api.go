package ui

import (
	"net/http"
	"strconv"

	"nextgen/domain/engagement"
	"nextgen/internal/errors"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"rows":   s.service.Dataset().Len(),
	})
}

func (s *Server) handleOptions(c *gin.Context) {
	c.JSON(http.StatusOK, s.service.Options())
}

func (s *Server) handleSnapshot(c *gin.Context) {
	crit, ok := s.criteria(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.service.Snapshot(crit))
}

func (s *Server) handleKPIs(c *gin.Context) {
	crit, ok := s.criteria(c)
	if !ok {
		return
	}
	view := s.service.View(crit)
	c.JSON(http.StatusOK, gin.H{
		"row_count": view.Len(),
		"kpis":      engagement.ComputeKPIs(view),
		"delta":     engagement.Delta(s.service.Dataset(), crit),
	})
}

func (s *Server) handleDomainTotals(c *gin.Context) {
	crit, ok := s.criteria(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"domain_totals": engagement.DomainTotals(s.service.View(crit))})
}

func (s *Server) handleTimeSeries(c *gin.Context) {
	crit, ok := s.criteria(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"time_series": engagement.TimeSeries(s.service.View(crit))})
}

func (s *Server) handlePivot(c *gin.Context) {
	crit, ok := s.criteria(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"pivot": engagement.Pivot(s.service.View(crit))})
}

func (s *Server) handleSummary(c *gin.Context) {
	crit, ok := s.criteria(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": engagement.SummaryTable(s.service.View(crit))})
}

func (s *Server) handleHistogram(c *gin.Context) {
	crit, ok := s.criteria(c)
	if !ok {
		return
	}
	bins := s.service.HistogramBins()
	if raw := c.Query("bins"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.respondError(c, errors.InvalidInput("bins must be a positive integer"))
			return
		}
		bins = n
	}

	hist := engagement.SessionHistogram(s.service.View(crit), bins)
	if hist == nil {
		hist = []engagement.HistogramBin{}
	}
	c.JSON(http.StatusOK, gin.H{"histogram": hist})
}

func (s *Server) handleScatter(c *gin.Context) {
	crit, ok := s.criteria(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"scatter": engagement.Scatter(s.service.View(crit))})
}

func (s *Server) handleRecords(c *gin.Context) {
	crit, ok := s.criteria(c)
	if !ok {
		return
	}
	limit := s.service.PreviewRows()
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.respondError(c, errors.InvalidInput("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	view := s.service.View(crit)
	c.JSON(http.StatusOK, gin.H{
		"total":   view.Len(),
		"records": view.Head(limit),
	})
}
