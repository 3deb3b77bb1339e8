package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gomoku/communication"
	"gomoku/engine"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// maxRequestBytes bounds a decision request body. A 19x19 board with a
// generous knowledge map fits well inside it.
const maxRequestBytes = 1 << 20

type Server struct {
	decider communication.Decider
	router  chi.Router
}

// NewServer exposes d over HTTP:
//
//	GET  /ping    liveness
//	POST /decide  engine.Request in, communication.DecideResponse out
func NewServer(d communication.Decider) *Server {
	s := &Server{decider: d}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/decide", s.handleDecide)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on addr until the listener fails.
func (s *Server) Start(addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info().Msgf("decision server listening on %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	var req engine.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	resp, err := s.decider.Decide(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, communication.DecideResponse{Response: resp})
	case errors.Is(err, engine.ErrMalformedBoard), errors.Is(err, engine.ErrUnknownPlayer), errors.Is(err, engine.ErrUnknownCell):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("decision failed")
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request served")
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, communication.DecideResponse{
		Response: engine.Response{Row: -1, Col: -1},
		Error:    msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
