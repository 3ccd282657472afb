package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"expvar"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pablasso/tempo/internal/ctxlog"
	"github.com/pablasso/tempo/internal/dates"
	"github.com/pablasso/tempo/internal/plan"
	"github.com/pablasso/tempo/internal/planner"
	"github.com/pablasso/tempo/internal/schedule"
	"github.com/pablasso/tempo/internal/util"
)

// MaxBodyBytes caps the size of a scheduling request body.
const MaxBodyBytes = 1 << 20

const requestIDHeader = "X-Request-ID"

// Handler wires HTTP requests to the planner service.
type Handler struct {
	svc       *planner.Service
	logger    *slog.Logger
	startedAt time.Time
	version   string
}

type scheduleRequest struct {
	Tasks           []plan.Task `json:"tasks"`
	StartDate       string      `json:"start_date"`
	Deadline        string      `json:"deadline"`
	WorkHoursPerDay float64     `json:"work_hours_per_day"`
}

type scheduleResponse struct {
	RequestID string `json:"request_id"`
	*schedule.Result
}

type apiErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type apiErrorResponse struct {
	Error apiErrorPayload `json:"error"`
}

// NewHandler creates a Handler.
func NewHandler(svc *planner.Service, logger *slog.Logger, startedAt time.Time, version string) *Handler {
	if startedAt.IsZero() {
		startedAt = time.Now().UTC()
	}
	return &Handler{svc: svc, logger: logger, startedAt: startedAt, version: version}
}

// Register registers all HTTP routes.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("POST /v1/schedule", h.handleSchedule)
	mux.Handle("GET /debug/vars", expvar.Handler())
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"version":        h.version,
		"uptime_seconds": time.Since(h.startedAt).Seconds(),
	})
}

func (h *Handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	requestID, err := util.GenerateShortID()
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "internal", "failed to allocate request id", nil)
		return
	}
	w.Header().Set(requestIDHeader, requestID)

	logger := h.logger.With("request_id", requestID)
	ctx := ctxlog.WithLogger(r.Context(), logger)

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	var req scheduleRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeAPIError(w, http.StatusRequestEntityTooLarge, "request_too_large",
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), nil)
			return
		}
		logger.Debug("Rejected malformed request.", "error", err)
		writeAPIError(w, http.StatusBadRequest, "bad_request", fmt.Sprintf("invalid payload: %v", err), nil)
		return
	}

	res, err := h.svc.Plan(ctx, planner.Request{
		Tasks:           plan.ScheduleTasks(req.Tasks),
		Start:           req.StartDate,
		Deadline:        req.Deadline,
		WorkHoursPerDay: req.WorkHoursPerDay,
	})
	if err != nil {
		code := planner.ErrorCode(err)
		writeAPIError(w, statusForCode(code), code, err.Error(), errorDetails(err))
		return
	}

	writeJSON(w, http.StatusOK, scheduleResponse{RequestID: requestID, Result: res})
}

func statusForCode(code string) int {
	switch code {
	case "internal":
		return http.StatusInternalServerError
	case "dependency_cycle":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// errorDetails exposes the structured part of scheduling errors.
func errorDetails(err error) any {
	var graphErr *schedule.GraphError
	if errors.As(err, &graphErr) && len(graphErr.IDs) > 0 {
		return map[string]any{"task_ids": graphErr.IDs}
	}
	var exprErr *dates.ExprError
	if errors.As(err, &exprErr) {
		return map[string]any{"input": exprErr.Input}
	}
	return nil
}

// writeJSON encodes v before committing the status, so an unencodable value
// becomes a 500 instead of a 200 with an empty body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(apiErrorResponse{Error: apiErrorPayload{
			Code:    "internal",
			Message: fmt.Sprintf("failed to encode response: %v", err),
		}})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeAPIError(w http.ResponseWriter, status int, code, message string, details any) {
	writeJSON(w, status, apiErrorResponse{Error: apiErrorPayload{Code: code, Message: message, Details: details}})
}
