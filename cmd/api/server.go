package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"shopify-insights/internal/metrics"
	"shopify-insights/internal/types"
)

const defaultCompetitors = 5

// APIRequest represents the request body for the API
type APIRequest struct {
	WebsiteURL string `json:"website_url"`
}

// APIResponse represents the response from the API
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type brandBuilder interface {
	BuildBrandContext(ctx context.Context, websiteURL string) (*types.BrandContext, error)
}

type competitorFinder interface {
	Find(ctx context.Context, seedURL string, maxResults int) []string
}

type brandSaver interface {
	Save(ctx context.Context, brand *types.BrandContext) error
}

// Server holds the API server dependencies
type Server struct {
	router       chi.Router
	builder      brandBuilder
	finder       competitorFinder
	store        brandSaver
	logger       *logrus.Logger
	buildTimeout time.Duration
}

// NewServer wires the handlers. store may be nil when persistence is disabled.
func NewServer(builder brandBuilder, finder competitorFinder, store brandSaver, logger *logrus.Logger, buildTimeout time.Duration) *Server {
	s := &Server{
		builder:      builder,
		finder:       finder,
		store:        store,
		logger:       logger,
		buildTimeout: buildTimeout,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(corsHeaders)

	r.Get("/health", s.handleHealth)
	r.Get("/metrics", metrics.Handler().ServeHTTP)
	r.Get("/fetch-insights", s.handleFetchInsightsGet)
	r.Post("/fetch-insights", s.handleFetchInsightsPost)
	r.Get("/competitors", s.handleCompetitors)

	s.router = r
	return s
}

// Handler returns the router for use with http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFetchInsightsGet(w http.ResponseWriter, r *http.Request) {
	s.fetchInsights(w, r, r.URL.Query().Get("website_url"))
}

func (s *Server) handleFetchInsightsPost(w http.ResponseWriter, r *http.Request) {
	var req APIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	s.fetchInsights(w, r, req.WebsiteURL)
}

func (s *Server) fetchInsights(w http.ResponseWriter, r *http.Request, websiteURL string) {
	websiteURL = strings.TrimSpace(websiteURL)
	if websiteURL == "" {
		s.sendError(w, "website_url is required", http.StatusBadRequest)
		return
	}

	s.logger.Infof("Insights request received for %s", websiteURL)

	ctx, cancel := context.WithTimeout(r.Context(), s.buildTimeout)
	defer cancel()

	brand, err := s.builder.BuildBrandContext(ctx, websiteURL)
	if err != nil {
		s.sendError(w, err.Error(), statusFor(err))
		return
	}

	if s.store != nil {
		if err := s.store.Save(ctx, brand); err != nil {
			s.logger.Warnf("Failed to save brand context for %s: %v", brand.Website, err)
		}
	}

	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: brand})
}

func (s *Server) handleCompetitors(w http.ResponseWriter, r *http.Request) {
	websiteURL := strings.TrimSpace(r.URL.Query().Get("website_url"))
	if websiteURL == "" {
		s.sendError(w, "website_url is required", http.StatusBadRequest)
		return
	}

	maxResults := defaultCompetitors
	if raw := r.URL.Query().Get("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.sendError(w, "max must be a non-negative integer", http.StatusBadRequest)
			return
		}
		maxResults = n
	}

	competitors := s.finder.Find(r.Context(), websiteURL, maxResults)
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: competitors})
}

// statusFor maps pipeline errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrSiteUnreachable):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrNotThisPlatform):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// sendError sends an error response
func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	s.writeJSON(w, statusCode, APIResponse{Success: false, Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Errorf("Failed to encode response: %v", err)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Info("request completed")
	})
}

func corsHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
