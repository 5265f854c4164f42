package ui

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"nextgen/adapters/excel"
	"nextgen/domain/engagement"
	"nextgen/internal/errors"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleDownloadCSV(c *gin.Context) {
	s.download(c, excel.FilteredExportName+".csv", "text/csv; charset=utf-8", excel.WriteCSV)
}

func (s *Server) handleDownloadXLSX(c *gin.Context) {
	s.download(c, excel.FilteredExportName+".xlsx", xlsxContentType, excel.WriteXLSX)
}

// download renders the filtered view fully before sending, so an encoding
// error still produces a JSON error response.
func (s *Server) download(c *gin.Context, filename, contentType string, write func(io.Writer, []engagement.Record) error) {
	crit, ok := s.criteria(c)
	if !ok {
		return
	}

	records := s.service.View(crit).Records()
	var buf bytes.Buffer
	if err := write(&buf, records); err != nil {
		s.respondError(c, errors.Wrapf(err, "failed to export %s", filename))
		return
	}

	s.logger.Info("exported %d records to %s", len(records), filename)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
