package ui

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

type reportPage struct {
	Query template.URL
	Body  template.HTML
}

// renderMarkdown converts report Markdown to HTML. Parsers are stateful, so
// a new one is built per call.
func renderMarkdown(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return markdown.ToHTML([]byte(md), p, r)
}

func (s *Server) handleReport(c *gin.Context) {
	crit, ok := s.criteria(c)
	if !ok {
		return
	}
	body := renderMarkdown(s.service.Report(crit))
	s.renderTemplate(c, http.StatusOK, "report.html", reportPage{
		Query: template.URL(c.Request.URL.RawQuery),
		Body:  template.HTML(body),
	})
}

func (s *Server) handleReportMarkdown(c *gin.Context) {
	crit, ok := s.criteria(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(s.service.Report(crit)))
}
