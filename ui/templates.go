package ui

import (
	"bytes"
	"fmt"
	"html/template"

	"nextgen/domain/core"
	"nextgen/internal/errors"

	"github.com/gin-gonic/gin"
)

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"date":   core.FormatDate,
		"f2":     func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"signed": func(v int) string { return fmt.Sprintf("%+d", v) },
		"has": func(values []string, v string) bool {
			for _, x := range values {
				if x == v {
					return true
				}
			}
			return false
		},
		"pct": func(n, max int) int {
			if max == 0 {
				return 0
			}
			return n * 100 / max
		},
	}
	return template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
}

// renderTemplate executes into a buffer first so a failing template never
// leaves a half-written response.
func (s *Server) renderTemplate(c *gin.Context, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("template %s failed: %v", name, err)
		s.respondError(c, errors.InternalError("template rendering failed"))
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
