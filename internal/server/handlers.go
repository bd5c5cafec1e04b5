package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Fichusgg/casa-score-br/core"
	"github.com/Fichusgg/casa-score-br/core/render"
	"github.com/Fichusgg/casa-score-br/core/valuation"
	"github.com/Fichusgg/casa-score-br/internal/logger"
)

type parseListingRequest struct {
	URL string `json:"url"`
}

type metricsRequest struct {
	Listing     *core.Listing         `json:"listing"`
	Assumptions valuation.Assumptions `json:"assumptions"`
	Comparables valuation.Comparables `json:"comparables"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleParseListing(w http.ResponseWriter, r *http.Request) {
	var req parseListingRequest
	if err := decode(w, r, &req); err != nil || strings.TrimSpace(req.URL) == "" {
		writeJSON(w, http.StatusBadRequest, render.ErrorBody{Error: "URL is required"})
		return
	}

	out := s.ingestor.Ingest(r.Context(), strings.TrimSpace(req.URL))
	status, body := render.Response(out)
	writeJSON(w, status, body)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	req := metricsRequest{Assumptions: valuation.DefaultAssumptions()}
	if err := decode(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, render.ErrorBody{Error: "invalid request body"})
		return
	}
	if req.Listing == nil {
		writeJSON(w, http.StatusBadRequest, render.ErrorBody{Error: "listing is required"})
		return
	}

	res, err := valuation.Calculate(*req.Listing, req.Assumptions, req.Comparables)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, render.ErrorBody{Error: err.Error()})
		return
	}
	s.log.Debug("metrics calculated",
		logger.String("verdict", string(res.Verdict)),
		logger.Any("net_yield", res.Metrics.NetYield))
	writeJSON(w, http.StatusOK, res)
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
