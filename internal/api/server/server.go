package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"radcon-schedule/internal/catalog"
	"radcon-schedule/internal/config"
	"radcon-schedule/internal/favorites"
	"radcon-schedule/internal/schedule"

	"radcon-schedule/internal/api/handlers"
	"radcon-schedule/internal/api/middleware"
)

type Server struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	visitors *favorites.Registry
	clock    schedule.Clock
	router   *gin.Engine
}

// New wires the API over a classified catalog. Every visitor's favorites
// record is kept in backend under "<favorites.key>:<visitor>".
func New(cfg *config.Config, cat *catalog.Catalog, backend favorites.Backend) *Server {
	if cfg.Server.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode) // Set to Release for production
	}

	s := &Server{
		cfg:      cfg,
		catalog:  cat,
		visitors: favorites.NewRegistry(backend, cfg.Favorites.Key),
		clock:    schedule.RealClock{},
		router:   gin.New(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())

	// CORS Configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}

	// The visitor token travels in a custom header, so it must be both
	// accepted and exposed to the browser.
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.VisitorHeader}
	corsConfig.ExposeHeaders = []string{middleware.VisitorHeader}

	s.router.Use(cors.New(corsConfig))
	s.router.Use(middleware.SilentLogger())
}

func (s *Server) setupRoutes() {
	dates := schedule.NewEventDates(s.cfg.Schedule.Friday, s.cfg.Schedule.Saturday, s.cfg.Schedule.Sunday)
	scheduleHandler := handlers.NewScheduleHandler(s.catalog, s.visitors, s.clock, dates)
	favoritesHandler := handlers.NewFavoritesHandler(s.catalog, s.visitors)

	// Health Check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "radcon-schedule", "panels": s.catalog.Len()})
	})

	v1 := s.router.Group("/api/v1")
	v1.Use(middleware.Visitor([]byte(s.cfg.Auth.VisitorSecret)))
	{
		v1.GET("/panels", scheduleHandler.GetPanels)
		v1.GET("/schedule", scheduleHandler.GetSchedule)

		v1.GET("/favorites", favoritesHandler.GetFavorites)
		v1.POST("/favorites/:id/toggle", favoritesHandler.ToggleFavorite)
	}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server on the configured port
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
