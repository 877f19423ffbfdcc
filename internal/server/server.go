// Package server exposes the search pipeline over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rloyola/panoptes/internal/model"
)

// Searcher runs a job search for a profile.
type Searcher interface {
	Search(ctx context.Context, profile model.Profile, prefs model.Preferences) ([]model.ScoredPosting, error)
}

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	searcher Searcher
	logger   *zap.Logger
	version  string
}

// New creates the server with its dependencies injected.
func New(searcher Searcher, logger *zap.Logger, version string) *Server {
	return &Server{
		searcher: searcher,
		logger:   logger,
		version:  version,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	r.GET("/health", s.health)

	api := r.Group("/api")
	api.POST("/jobs/search", s.searchJobs)

	return r
}

type searchRequest struct {
	Profile     *model.Profile     `json:"profile"`
	Preferences *model.Preferences `json:"preferences"`
}

// searchJobs is the POST /api/jobs/search endpoint.
func (s *Server) searchJobs(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	if req.Profile == nil || req.Profile.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "profile with a title or searchKeywords is required",
		})
		return
	}

	var prefs model.Preferences
	if req.Preferences != nil {
		prefs = *req.Preferences
	}

	results, err := s.searcher.Search(c.Request.Context(), *req.Profile, prefs)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "job search failed",
			"error":   err.Error(),
		})
		return
	}

	if results == nil {
		results = []model.ScoredPosting{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(results),
		"data":    results,
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "panoptes",
		"version": s.version,
	})
}
