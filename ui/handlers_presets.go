package ui

import (
	"net/http"

	"nextgen/domain/engagement"
	"nextgen/internal/errors"
	"nextgen/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// presetRequest saves Criteria when given, otherwise the criteria in the query string
type presetRequest struct {
	Name     string                     `json:"name" binding:"required"`
	Criteria *engagement.FilterCriteria `json:"criteria"`
}

func (s *Server) handleListPresets(c *gin.Context) {
	presets, err := s.presets.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	if presets == nil {
		presets = []*models.Preset{}
	}
	c.JSON(http.StatusOK, gin.H{"presets": presets})
}

func (s *Server) handleCreatePreset(c *gin.Context) {
	var req presetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("preset needs a JSON body with a name"))
		return
	}

	var crit engagement.FilterCriteria
	if req.Criteria != nil {
		crit = *req.Criteria
	} else {
		var ok bool
		if crit, ok = s.criteria(c); !ok {
			return
		}
	}

	preset := models.NewPreset(req.Name, crit)
	if err := s.presets.Save(c.Request.Context(), preset); err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info("saved preset %q (%s)", preset.Name, preset.ID)
	c.JSON(http.StatusCreated, preset)
}

func (s *Server) handlePresetSnapshot(c *gin.Context) {
	id, ok := s.presetID(c)
	if !ok {
		return
	}
	preset, err := s.presets.Get(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"preset":   preset,
		"snapshot": s.service.Snapshot(preset.Criteria),
	})
}

func (s *Server) handleDeletePreset(c *gin.Context) {
	id, ok := s.presetID(c)
	if !ok {
		return
	}
	if err := s.presets.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) presetID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("preset id must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}
