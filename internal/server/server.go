// Package server exposes the catalog over HTTP: paginated browse, detail
// with related videos, search, favorites, plus health and metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/user/sevenxhub-go/internal/catalog"
	"github.com/user/sevenxhub-go/internal/config"
	"github.com/user/sevenxhub-go/internal/favorites"
	"github.com/user/sevenxhub-go/internal/gateway"
	"github.com/user/sevenxhub-go/internal/model"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sevenxhub_requests_total",
		Help: "Total number of API requests",
	}, []string{"route", "status"})

	favoritesTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sevenxhub_favorites_total",
		Help: "Number of favorited videos",
	})

	catalogFetchSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sevenxhub_catalog_fetch_duration_seconds",
		Help:    "Duration of catalog page loads in seconds",
		Buckets: prometheus.DefBuckets,
	})

	errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sevenxhub_errors_total",
		Help: "Total number of errors surfaced to clients",
	}, []string{"type"})
)

func init() {
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(favoritesTotal)
	prometheus.MustRegister(catalogFetchSeconds)
	prometheus.MustRegister(errorsTotal)
}

// HealthResponse is the /health body.
type HealthResponse struct {
	Status    string `json:"status"`
	Favorites int    `json:"favorites"`
	Uptime    string `json:"uptime"`
}

// Searcher is the catalog surface the handlers consume; *catalog.Service
// satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.Video, error)
	VideoInfo(ctx context.Context, fileCode string) (*model.Video, error)
	Related(ctx context.Context, fileCode string) []model.Video
}

// Server handles the HTTP surface of the catalog.
type Server struct {
	engine    *gin.Engine
	server    *http.Server
	browser   *catalog.Browser
	svc       Searcher
	favs      *favorites.Store
	embedBase string
	startTime time.Time
}

// NewServer wires the routes over a browse session, catalog service, and
// favorites store.
func NewServer(browser *catalog.Browser, svc Searcher, favs *favorites.Store, cfg *config.APIConfig) *Server {
	s := &Server{
		engine:    gin.New(),
		browser:   browser,
		svc:       svc,
		favs:      favs,
		embedBase: cfg.EmbedBase,
		startTime: time.Now(),
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
	}))

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	{
		api.GET("/videos", s.handleVideoList)
		api.POST("/videos/error/dismiss", s.handleDismissError)
		api.GET("/videos/:file_code", s.handleVideoDetail)
		api.GET("/videos/:file_code/related", s.handleRelated)
		api.GET("/search", s.handleSearch)
		api.GET("/favorites", s.handleFavoritesList)
		api.GET("/favorites/:file_code", s.handleFavoriteStatus)
		api.POST("/favorites/:file_code/toggle", s.handleFavoriteToggle)
	}
}

// Start begins listening on the specified port.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info().Int("port", port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	log.Info().Msg("Stopping HTTP server")
	return s.server.Shutdown(ctx)
}

// handleVideoList folds the requested page into the browse session and
// returns its snapshot: videos accumulate across pages and stay unique by
// file code.
func (s *Server) handleVideoList(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	start := time.Now()
	s.browser.LoadPage(c.Request.Context(), page)
	catalogFetchSeconds.Observe(time.Since(start).Seconds())

	state := s.browser.State()
	if state.Error != "" {
		errorsTotal.WithLabelValues("list").Inc()
		requestsTotal.WithLabelValues("videos", "error").Inc()
		c.JSON(http.StatusBadGateway, gin.H{"detail": state.Error})
		return
	}

	requestsTotal.WithLabelValues("videos", "ok").Inc()
	c.JSON(http.StatusOK, state)
}

// handleDismissError clears a dismissible browse error so the client can
// re-trigger the load.
func (s *Server) handleDismissError(c *gin.Context) {
	s.browser.DismissError()
	requestsTotal.WithLabelValues("videos", "ok").Inc()
	c.Status(http.StatusNoContent)
}

func (s *Server) handleVideoDetail(c *gin.Context) {
	fileCode := c.Param("file_code")

	video, err := s.svc.VideoInfo(c.Request.Context(), fileCode)
	if err != nil {
		if errors.Is(err, catalog.ErrVideoNotFound) {
			errorsTotal.WithLabelValues("not_found").Inc()
			requestsTotal.WithLabelValues("detail", "not_found").Inc()
			c.JSON(http.StatusNotFound, gin.H{"detail": "Video not found"})
			return
		}
		errorsTotal.WithLabelValues("detail").Inc()
		requestsTotal.WithLabelValues("detail", "error").Inc()
		c.JSON(http.StatusBadGateway, gin.H{"detail": "Failed to load video details"})
		return
	}

	requestsTotal.WithLabelValues("detail", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{
		"video":       video,
		"embed_url":   gateway.EmbedURL(s.embedBase, video.FileCode),
		"thumbnail":   video.Thumbnail(),
		"is_favorite": s.favs.IsFavorite(video.FileCode),
	})
}

func (s *Server) handleRelated(c *gin.Context) {
	fileCode := c.Param("file_code")
	related := s.svc.Related(c.Request.Context(), fileCode)
	requestsTotal.WithLabelValues("related", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"videos": related, "total": len(related)})
}

func (s *Server) handleSearch(c *gin.Context) {
	query := c.Query("q")

	videos, err := s.svc.Search(c.Request.Context(), query)
	if err != nil {
		errorsTotal.WithLabelValues("search").Inc()
		requestsTotal.WithLabelValues("search", "error").Inc()
		c.JSON(http.StatusBadGateway, gin.H{"detail": "An error occurred while searching"})
		return
	}

	requestsTotal.WithLabelValues("search", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{
		"videos": videos,
		"query":  query,
		"total":  len(videos),
	})
}

func (s *Server) handleFavoritesList(c *gin.Context) {
	codes := s.favs.List()
	requestsTotal.WithLabelValues("favorites", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"favorites": codes, "total": len(codes)})
}

func (s *Server) handleFavoriteStatus(c *gin.Context) {
	fileCode := c.Param("file_code")
	requestsTotal.WithLabelValues("favorites", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{
		"file_code":   fileCode,
		"is_favorite": s.favs.IsFavorite(fileCode),
	})
}

func (s *Server) handleFavoriteToggle(c *gin.Context) {
	fileCode := c.Param("file_code")

	favored, err := s.favs.Toggle(fileCode)
	if err != nil {
		errorsTotal.WithLabelValues("favorites").Inc()
		requestsTotal.WithLabelValues("favorites", "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to save favorites"})
		return
	}

	favoritesTotal.Set(float64(s.favs.Count()))
	requestsTotal.WithLabelValues("favorites", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{
		"file_code":   fileCode,
		"is_favorite": favored,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	uptime := time.Since(s.startTime).Round(time.Second).String()
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Favorites: s.favs.Count(),
		Uptime:    uptime,
	})
}

// GetUptime returns the server uptime.
func (s *Server) GetUptime() time.Duration {
	return time.Since(s.startTime)
}

// Handler exposes the underlying engine for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}
