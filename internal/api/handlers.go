package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"altlens/internal/analysis"
	"altlens/internal/logging"
	"altlens/internal/model"
)

// StatusClientClosedRequest is returned when the caller went away mid-run.
const StatusClientClosedRequest = 499

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// HealthHandler handles GET /api/health
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

type analyzeRequest struct {
	Username string `json:"username"`
}

// ErrorResponse is the body of every failed analysis.
type ErrorResponse struct {
	Error string           `json:"error"`
	Kind  string           `json:"kind"`
	Log   []model.LogEntry `json:"log,omitempty"`
}

// NewAnalyzeHandler handles POST /api/analyze.
func NewAnalyzeHandler(a Analyzer, defaultAPIKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analyzeRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body", Kind: "bad_request"})
			return
		}
		apiKey := strings.TrimSpace(r.Header.Get("X-API-Key"))
		if apiKey == "" {
			apiKey = defaultAPIKey
		}

		report, err := a.Run(r.Context(), req.Username, apiKey)
		if err != nil {
			kind := analysis.Classify(err)
			status := statusFor(kind)
			if status >= 500 {
				logging.Error("analyze failed", zap.String("username", req.Username), zap.Error(err))
			}
			respondJSON(w, status, ErrorResponse{Error: publicMessage(err), Kind: kind, Log: report.Log})
			return
		}
		respondJSON(w, http.StatusOK, report)
	}
}

func statusFor(kind string) int {
	switch kind {
	case analysis.KindMissingInput:
		return http.StatusBadRequest
	case analysis.KindNotFound:
		return http.StatusNotFound
	case analysis.KindCanceled:
		return StatusClientClosedRequest
	}
	return http.StatusBadGateway
}

func publicMessage(err error) string {
	switch {
	case errors.Is(err, analysis.ErrMissingInput):
		return analysis.ErrMissingInput.Error()
	case errors.Is(err, analysis.ErrNotFound):
		return analysis.ErrNotFound.Error()
	}
	return err.Error()
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
