// Package server exposes the profit engine over HTTP. Handlers parse
// plain numeric inputs, call the engine, and render rounded DTOs; all
// state lives in the request.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"profitcalc/internal/category"
	"profitcalc/internal/engine"
	"profitcalc/internal/shipping"
)

// RateSource supplies the current validated exchange rate.
type RateSource interface {
	Rate(ctx context.Context) (float64, error)
}

type Server struct {
	rates      RateSource
	shipping   *shipping.Table
	categories *category.Table
	baseSched  engine.FeeSchedule
	logger     *zap.Logger
}

func New(rates RateSource, ship *shipping.Table, cats *category.Table, baseSched engine.FeeSchedule, logger *zap.Logger) *Server {
	return &Server{
		rates:      rates,
		shipping:   ship,
		categories: cats,
		baseSched:  baseSched,
		logger:     logger,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/rate", s.handleRate)
		r.Get("/categories", s.handleCategories)
		r.Get("/vat", s.handleVAT)
		r.Post("/shipping/quote", s.handleShippingQuote)
		r.Post("/evaluate", s.handleEvaluate)
		r.Post("/solve", s.handleSolve)
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
