// Package server exposes the report pipeline over plain JSON HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"raid-progress/internal/constants"
	"raid-progress/internal/domain"
	"raid-progress/internal/service"

	"github.com/rs/zerolog"
)

// ReportAPI is the slice of the report service the HTTP layer consumes.
type ReportAPI interface {
	Raids(ctx context.Context) ([]domain.RaidInfo, error)
	BuildProgressReport(ctx context.Context, raidSlug string) (*domain.ProgressReport, error)
	BuildSummaryReport(ctx context.Context, raidSlug string) (*domain.SummaryReport, error)
}

type ProgressServer struct {
	reports ReportAPI
}

func NewProgressServer(reports ReportAPI) *ProgressServer {
	return &ProgressServer{reports: reports}
}

// RegisterRoutes mounts the API on the mux.
func (s *ProgressServer) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/raids", s.handleRaids)
	mux.HandleFunc("GET /api/progress/{slug}", s.handleProgress)
	mux.HandleFunc("GET /api/summary/{slug}", s.handleSummary)
}

func (s *ProgressServer) handleRaids(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	raids, err := s.reports.Raids(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, raids)
}

func (s *ProgressServer) handleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	report, err := s.reports.BuildProgressReport(ctx, r.PathValue("slug"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

func (s *ProgressServer) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	report, err := s.reports.BuildSummaryReport(ctx, r.PathValue("slug"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

// requestContext bounds a report build; a full rebuild fans out to both
// upstream APIs and can take a while on a cold season cache.
func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), constants.RequestTimeout)
}

func (s *ProgressServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadGateway
	if errors.Is(err, service.ErrUnknownRaid) {
		status = http.StatusNotFound
	}

	zerolog.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg("request failed")
	writeJSON(w, r, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}
