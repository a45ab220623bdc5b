package preview

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/notesite/internal/check"
	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/metrics"
	"git.home.luguber.info/inful/notesite/internal/version"
)

// HealthStatus summarizes whether the preview has usable output.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"  // last rebuild failed, earlier output still served
	HealthStatusUnhealthy HealthStatus = "unhealthy" // no successful rebuild yet
)

// HealthResponse is the /healthz body.
type HealthResponse struct {
	Status     HealthStatus `json:"status"`
	Timestamp  time.Time    `json:"timestamp"`
	Uptime     string       `json:"uptime"`
	Version    string       `json:"version"`
	Rebuilds   int          `json:"rebuilds"`
	LastStatus string       `json:"last_status,omitempty"`
	LastError  string       `json:"last_error,omitempty"`
	LastBuild  *time.Time   `json:"last_build,omitempty"`
}

// Handler returns the preview HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /report", s.handleReport)
	if s.registry != nil {
		mux.Handle("GET /metrics", metrics.HTTPHandler(s.registry))
	}
	return mux
}

func (s *Server) health() *HealthResponse {
	snap := s.status.snapshot()
	resp := &HealthResponse{
		Status:    HealthStatusHealthy,
		Timestamp: time.Now(),
		Uptime:    time.Since(s.startTime).Truncate(time.Second).String(),
		Version:   version.Version,
		Rebuilds:  snap.rebuilds,
	}
	if snap.last != nil {
		resp.LastStatus = string(snap.last.Status)
		end := snap.last.EndTime
		resp.LastBuild = &end
	}
	if snap.lastError != nil {
		resp.LastError = snap.lastError.Error()
		resp.Status = HealthStatusDegraded
	}
	if !snap.hasGoodBuild {
		resp.Status = HealthStatusUnhealthy
	}
	return resp
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := s.health()
	status := http.StatusOK
	if resp.Status == HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	_ = writeJSON(w, status, resp)
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	snap := s.status.snapshot()
	if snap.last == nil || snap.last.Check == nil {
		msg := "no check has completed yet"
		if snap.lastError != nil {
			msg = snap.lastError.Error()
		}
		_ = writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": msg})
		return
	}
	_ = writeJSON(w, http.StatusOK, check.NewJSONOutput(snap.last.Check, s.cfg.SitePath()))
}

// writeJSON encodes v into a buffer first so a failed encode never sends a
// partial response.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed writing JSON response body", logfields.Error(err))
		return err
	}
	return nil
}
