package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"mcflow/internal/converter"
	"mcflow/pkg/apperror"
	"mcflow/pkg/logger"
	"mcflow/pkg/metrics"
)

// Handler serves the solver HTTP API:
//
//	POST /api/v1/solve       - solve a minimum-cost flow problem
//	GET  /api/v1/pivot-rules - list the supported pivot rules
//	GET  /healthz            - liveness probe
type Handler struct {
	svc          *SolverService
	metrics      *metrics.Metrics
	maxBodyBytes int64
	mux          *http.ServeMux
}

// NewHandler wires the routes around the service.
func NewHandler(svc *SolverService, m *metrics.Metrics, maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = 16 * 1024 * 1024
	}
	h := &Handler{
		svc:          svc,
		metrics:      m,
		maxBodyBytes: maxBodyBytes,
		mux:          http.NewServeMux(),
	}
	h.mux.HandleFunc("POST /api/v1/solve", h.handleSolve)
	h.mux.HandleFunc("GET /api/v1/pivot-rules", h.handlePivotRules)
	h.mux.HandleFunc("GET /healthz", h.handleHealth)
	return h
}

// ServeHTTP dispatches through the request middleware.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := r.Header.Get("X-Request-Id")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set("X-Request-Id", requestID)

	if h.metrics != nil {
		h.metrics.HTTPRequestsInFlight.Inc()
		defer h.metrics.HTTPRequestsInFlight.Dec()
	}

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	h.mux.ServeHTTP(rec, r)

	elapsed := time.Since(start)
	if h.metrics != nil {
		h.metrics.RecordHTTPRequest(r.Method, r.URL.Path, strconv.Itoa(rec.status), elapsed)
	}
	logger.WithRequestID(requestID).Info("Request handled",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"elapsed", elapsed,
	)
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var req converter.ProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, apperror.Newf(apperror.CodeGraphTooLarge,
				"request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		h.writeError(w, apperror.Wrap(err, apperror.CodeInvalidArgument,
			"request body is not valid JSON"))
		return
	}

	resp, err := h.svc.Solve(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePivotRules(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"default": h.svc.defaultRule.String(),
		"rules":   h.svc.PivotRules(),
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// errorBody is the wire form of a failed request.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field,omitempty"`
	} `json:"error"`
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var body errorBody
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		body.Error.Code = string(appErr.Code)
		body.Error.Message = appErr.Message
		body.Error.Field = appErr.Field
	} else {
		body.Error.Code = string(apperror.CodeInternal)
		body.Error.Message = "internal error"
		logger.Error("Unhandled error", "error", err)
	}
	h.writeJSON(w, apperror.HTTPStatus(err), body)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}
