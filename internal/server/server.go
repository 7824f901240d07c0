// Package server exposes the journal over a JSON HTTP API for the
// presentation layer.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"trading-journal-go/internal/journal"
	"trading-journal-go/internal/models"
)

// Server is the HTTP API for a Journal.
type Server struct {
	server  *http.Server
	journal *journal.Journal
	logger  *zap.Logger
}

// New creates a Server listening on the given port.
func New(j *journal.Journal, logger *zap.Logger, port int) *Server {
	s := &Server{
		journal: j,
		logger:  logger.Named("api-server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /api/trades", s.listTradesHandler)
	mux.HandleFunc("POST /api/trades", s.createTradeHandler)
	mux.HandleFunc("DELETE /api/trades/{id}", s.deleteTradeHandler)
	mux.HandleFunc("POST /api/refresh", s.refreshHandler)
	mux.HandleFunc("GET /api/summary", s.summaryHandler)
	mux.HandleFunc("GET /api/equity", s.equityHandler)
	mux.HandleFunc("GET /api/winloss", s.winLossHandler)
	mux.HandleFunc("GET /api/strategies", s.strategiesHandler)
	mux.HandleFunc("GET /api/report", s.reportHandler)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
	return s
}

// Start runs the HTTP server in a new goroutine.
func (s *Server) Start() {
	s.logger.Info("Starting API server", zap.String("address", s.server.Addr))
	go func() {
		if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server failed", zap.Error(err))
		}
	}()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server...")
	return s.server.Shutdown(ctx)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"status":  "error",
		"message": message,
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *Server) listTradesHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   s.journal.Trades(),
	})
}

func (s *Server) createTradeHandler(w http.ResponseWriter, r *http.Request) {
	var input models.TradeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trade, source, err := s.journal.CreateTrade(r.Context(), input)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("Create trade failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "could not save trade")
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"status": "success",
		"id":     trade.ID,
		"source": source.String(),
	})
}

func (s *Server) deleteTradeHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.writeError(w, http.StatusBadRequest, "trade id is required")
		return
	}

	source, err := s.journal.DeleteTrade(r.Context(), id)
	if err != nil {
		s.logger.Error("Delete trade failed", zap.String("id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "could not delete trade")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"source": source.String(),
	})
}

func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	source := s.journal.Refresh(r.Context())
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"source": source.String(),
		"count":  len(s.journal.Trades()),
	})
}

func (s *Server) summaryHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.journal.Summary())
}

func (s *Server) equityHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.journal.Equity())
}

func (s *Server) winLossHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.journal.WinLoss())
}

func (s *Server) strategiesHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.journal.Strategies())
}

func (s *Server) reportHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.journal.DailyReport())
}
