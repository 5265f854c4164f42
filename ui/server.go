package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"nextgen/app"
	"nextgen/internal"
	"nextgen/internal/config"
	"nextgen/ports"
	"nextgen/ui/middleware"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server is the web front end of the engagement dashboard
type Server struct {
	router    *gin.Engine
	service   *app.DashboardService
	presets   ports.PresetRepository
	templates *template.Template
	config    config.ServerConfig
	logger    *internal.Logger
}

// NewServer wires routes over service. presets may be nil, in which case
// the preset endpoints are not registered.
func NewServer(service *app.DashboardService, presets ports.PresetRepository, cfg config.ServerConfig, logger *internal.Logger) (*Server, error) {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.New(),
		service:   service,
		presets:   presets,
		templates: templates,
		config:    cfg,
		logger:    logger.WithComponent("ui"),
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// Router exposes the handler, mostly for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// HTTPServer builds an http.Server listening on the configured port
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              ":" + s.config.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestLogger(s.logger))
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.GET("/options", s.handleOptions)
		api.GET("/snapshot", s.handleSnapshot)
		api.GET("/kpis", s.handleKPIs)
		api.GET("/domain-totals", s.handleDomainTotals)
		api.GET("/time-series", s.handleTimeSeries)
		api.GET("/pivot", s.handlePivot)
		api.GET("/summary", s.handleSummary)
		api.GET("/histogram", s.handleHistogram)
		api.GET("/scatter", s.handleScatter)
		api.GET("/records", s.handleRecords)

		if s.presets != nil {
			api.GET("/presets", s.handleListPresets)
			api.POST("/presets", s.handleCreatePreset)
			api.GET("/presets/:id/snapshot", s.handlePresetSnapshot)
			api.DELETE("/presets/:id", s.handleDeletePreset)
		}
	}

	s.router.GET("/download/filtered_user_data.csv", s.handleDownloadCSV)
	s.router.GET("/download/filtered_user_data.xlsx", s.handleDownloadXLSX)

	s.router.GET("/report", s.handleReport)
	s.router.GET("/report.md", s.handleReportMarkdown)
}
