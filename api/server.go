// Package api exposes the personalizer over HTTP for the browser extension.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"Moodfeed/core"
	"Moodfeed/lib/sl"
)

type Server struct {
	conf       *core.Config
	log        *slog.Logger
	service    core.Personalizer
	httpServer *http.Server
}

func NewServer(conf *core.Config, service core.Personalizer, log *slog.Logger) *Server {
	s := &Server{
		conf:    conf,
		log:     log.With(sl.Module("api")),
		service: service,
	}
	s.httpServer = &http.Server{
		Addr:              conf.ListenAddr(),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.logRequests)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.conf.Cors.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/", s.handleRoot)
	r.Post("/event", s.handleEvent)
	r.Post("/next", s.handleNext)
	r.Get("/channel_status", s.handleChannelStatus)
	r.Get("/buffer_size", s.handleBufferSize)
	r.Get("/mood", s.handleGetMood)
	r.Post("/mood", s.handleSetMood)
	r.Get("/mood/suggest", s.handleSuggestMood)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// Start blocks until the server stops. A clean Shutdown returns nil.
func (s *Server) Start() error {
	s.log.Info("listening", slog.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
