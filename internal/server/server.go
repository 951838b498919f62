package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/donut-profit/internal/config"
	"github.com/iwvelando/donut-profit/internal/optimizer"
	"github.com/iwvelando/donut-profit/internal/params"
	"github.com/iwvelando/donut-profit/internal/profit"
	"github.com/iwvelando/donut-profit/pkg/constants"
	"github.com/iwvelando/donut-profit/pkg/optimization"
	"github.com/iwvelando/donut-profit/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxBodySize: maxBodySize, version: trimmedVersion}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/parameters", h.handleParameters)
		r.Post("/parameters/{name}", h.handleSetParameter)
		r.Post("/calculate", h.handleCalculate)
		r.Post("/optimize", h.handleOptimize)
		r.Post("/export/csv", h.handleExportCSV)
		r.Post("/export/xlsx", h.handleExportXLSX)
		r.Post("/export/config", h.handleExportConfig)
		r.Get("/version", h.handleVersion)
	})

	return r
}

type requestPayload struct {
	Parameters map[string]float64 `json:"parameters"`
	Value      *float64           `json:"value,omitempty"`
	Options    optimizer.Options  `json:"options"`
}

type parametersResponse struct {
	Parameters params.Parameters `json:"parameters"`
	Ranges     []params.Range    `json:"ranges"`
}

type calculateResponse struct {
	Parameters params.Parameters    `json:"parameters"`
	Metrics    profit.Metrics       `json:"metrics"`
	Summary    []output.SummaryLine `json:"summary"`
	Chart      []profit.ChartPoint  `json:"chart"`
	Labels     profit.ChartLabels   `json:"labels"`
	Warnings   []string             `json:"warnings,omitempty"`
	Duration   string               `json:"duration"`
}

type optimizeResponse struct {
	Parameters params.Parameters    `json:"parameters"`
	Summary    optimization.Summary `json:"summary"`
	Duration   string               `json:"duration"`
}

// requestError carries the HTTP status a failed request should report.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string {
	return e.msg
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Debug("request served",
			zap.String("op", "server.logRequests"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (h *handler) handleParameters(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, parametersResponse{
		Parameters: params.Defaults(),
		Ranges:     params.Ranges(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	start := time.Now()

	p, _, err := h.readParameters(w, r)
	if err != nil {
		h.respondRequestError(w, err, op)
		return
	}

	h.respondCalculation(w, p, start, op)
}

func (h *handler) handleSetParameter(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSetParameter"
	start := time.Now()

	name := chi.URLParam(r, "name")
	if _, err := params.Canonical(name); err != nil {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
		return
	}

	p, payload, err := h.readParameters(w, r)
	if err != nil {
		h.respondRequestError(w, err, op)
		return
	}
	if payload.Value == nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing value", op)
		return
	}

	updated, err := p.Set(name, *payload.Value)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if err := updated.Validate(); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.respondCalculation(w, updated, start, op)
}

func (h *handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleOptimize"
	start := time.Now()

	p, payload, err := h.readParameters(w, r)
	if err != nil {
		h.respondRequestError(w, err, op)
		return
	}

	runner, err := optimizer.NewRunner(h.logger, payload.Options)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to initialize optimizer: %v", err), op)
		return
	}
	summary, err := runner.Run(p)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("optimizer execution failed: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, optimizeResponse{
		Parameters: p,
		Summary:    summary,
		Duration:   time.Since(start).String(),
	})
}

func (h *handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportCSV"

	p, _, err := h.readParameters(w, r)
	if err != nil {
		h.respondRequestError(w, err, op)
		return
	}

	result := profit.Evaluate(h.logger, p)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="donut-profit.csv"`)
	w.WriteHeader(http.StatusOK)
	if err := output.WriteCSV(w, result); err != nil {
		h.logger.Error("failed to write CSV response", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportXLSX"

	p, _, err := h.readParameters(w, r)
	if err != nil {
		h.respondRequestError(w, err, op)
		return
	}

	f, err := output.Workbook(profit.Evaluate(h.logger, p))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to build workbook: %v", err), op)
		return
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			h.logger.Warn("failed to close workbook", zap.String("op", op), zap.Error(closeErr))
		}
	}()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode workbook: %v", err), op)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="donut-profit.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write workbook response", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) handleExportConfig(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportConfig"

	p, _, err := h.readParameters(w, r)
	if err != nil {
		h.respondRequestError(w, err, op)
		return
	}

	yamlBytes, err := yaml.Marshal(config.Configuration{Parameters: p})
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

// readParameters decodes the request body and applies its parameters onto
// the defaults. The result is validated since the body is untrusted.
func (h *handler) readParameters(w http.ResponseWriter, r *http.Request) (params.Parameters, requestPayload, error) {
	var payload requestPayload

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return params.Parameters{}, payload, &requestError{
				status: http.StatusRequestEntityTooLarge,
				msg:    fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize),
			}
		}
		return params.Parameters{}, payload, &requestError{
			status: http.StatusBadRequest,
			msg:    fmt.Sprintf("failed to decode parameters: %v", err),
		}
	}

	p, err := params.FromMap(params.Defaults(), payload.Parameters)
	if err != nil {
		return params.Parameters{}, payload, &requestError{status: http.StatusBadRequest, msg: err.Error()}
	}
	if err := p.Validate(); err != nil {
		return params.Parameters{}, payload, &requestError{status: http.StatusBadRequest, msg: err.Error()}
	}
	return p, payload, nil
}

func (h *handler) respondCalculation(w http.ResponseWriter, p params.Parameters, start time.Time, op string) {
	result := profit.Evaluate(h.logger, p)
	elapsed := time.Since(start)

	response := calculateResponse{
		Parameters: result.Parameters,
		Metrics:    result.Metrics,
		Summary:    output.Summary(result.Metrics),
		Chart:      result.Chart,
		Labels:     result.Labels,
		Warnings:   p.OutOfRange(),
		Duration:   elapsed.String(),
	}

	h.logger.Info("profit computed",
		zap.String("op", op),
		zap.Float64("expectedDailyProfit", result.Metrics.ExpectedDailyProfit),
		zap.Int("chartPoints", len(result.Chart)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) respondRequestError(w http.ResponseWriter, err error, op string) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		h.respondErrorWithOp(w, reqErr.status, reqErr.msg, op)
		return
	}
	h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes payload before writing the header so an encoding
// failure is reported as a 500 instead of an empty response.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"failed to encode response"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
