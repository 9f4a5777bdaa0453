package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/merretbuurman/iptables-stats-comparison/src/internal/capture"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/chains"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/compare"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/config"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/errors"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/log"
)

// maxBodyBytes bounds request bodies; two listings of a large ruleset fit easily.
const maxBodyBytes = 16 << 20

// Handler manages all API endpoints and dependencies.
type Handler struct {
	cfg      *config.Config
	source   capture.Source
	validate *validator.Validate
}

// NewHandler creates a handler. source is used by the sample endpoint.
func NewHandler(cfg *config.Config, source capture.Source) *Handler {
	return &Handler{
		cfg:      cfg,
		source:   source,
		validate: config.Validator(),
	}
}

// Diff compares two listings sent by the client.
// POST /api/v1/diff
func (h *Handler) Diff(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	compareCfg := h.cfg.Compare
	if req.CounterTokens != nil {
		compareCfg.CounterTokens = *req.CounterTokens
	}
	if req.FilterColumnHeader != nil {
		compareCfg.FilterColumnHeader = *req.FilterColumnHeader
	}

	writeJSONData(w, h.compare(compareCfg, req.Before, req.After))
}

// Parse splits a listing into chains.
// POST /api/v1/parse
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	compareCfg := h.cfg.Compare
	if req.FilterColumnHeader != nil {
		compareCfg.FilterColumnHeader = *req.FilterColumnHeader
	}

	snapshot := chains.Parse(req.Listing, compareCfg.ParseOptions()...)
	writeJSONData(w, ParseResponse{Chains: snapshot.Ordered()})
}

// Sample captures the configured counter table twice and compares both listings.
// POST /api/v1/sample
func (h *Handler) Sample(w http.ResponseWriter, r *http.Request) {
	var req SampleRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	sampler := &capture.Sampler{
		Source:   h.source,
		Interval: time.Duration(req.Seconds) * time.Second,
	}

	sample, err := sampler.Sample(r.Context())
	if err != nil {
		log.Warnf("Sample failed: %v", err)
		if errors.HasCode(err, errors.ErrCodeCapture) {
			WriteCaptureError(w, err.Error())
		} else {
			WriteInternalError(w, err.Error())
		}
		return
	}

	writeJSONData(w, SampleResponse{
		Source:    h.source.Describe(),
		ElapsedMs: sample.Elapsed().Milliseconds(),
		Report:    h.compare(h.cfg.Compare, sample.Before, sample.After),
	})
}

func (h *Handler) compare(compareCfg config.CompareConfig, beforeText, afterText string) *compare.Report {
	opts := compareCfg.ParseOptions()
	comparator := compare.NewComparator(compare.Options{
		CounterTokens: compareCfg.CounterRange(),
	})
	return comparator.Compare(chains.Parse(beforeText, opts...), chains.Parse(afterText, opts...))
}

// decodeAndValidate decodes the JSON body into v and validates it. It writes
// the error response and returns false on failure.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteInvalidRequest(w, "Invalid JSON body: "+err.Error())
		return false
	}

	if err := h.validate.Struct(v); err != nil {
		details := map[string]interface{}{}
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, e := range verrs {
				details[e.Field()] = e.Tag() + formatParam(e.Param())
			}
		}
		WriteValidationError(w, "Request validation failed", details)
		return false
	}

	return true
}

func formatParam(param string) string {
	if param == "" {
		return ""
	}
	return "=" + param
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(DataResponse{Data: data})
}

// writeJSONData writes a successful JSON response with data.
func writeJSONData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}
