package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/carteira/internal/contracts"
	"github.com/wonny/carteira/internal/report"
	"github.com/wonny/carteira/internal/valuation"
	"github.com/wonny/carteira/pkg/logger"
)

// ReportBuilder builds valuation reports
type ReportBuilder interface {
	Build(ctx context.Context, kind contracts.Kind, symbols []string) (*contracts.Report, error)
	Rules() valuation.Rules
}

// SymbolLoader returns the default symbol list of a kind
type SymbolLoader func(kind contracts.Kind) ([]string, error)

// ReportHandler handles report endpoints
// ⭐ SSOT: report API handlers live only in this struct
type ReportHandler struct {
	builder ReportBuilder
	symbols SymbolLoader
	logger  *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(builder ReportBuilder, symbols SymbolLoader, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		builder: builder,
		symbols: symbols,
		logger:  log,
	}
}

// GetReport builds a report for the requested symbols, or for the default
// list when none are given
// GET /api/reports/{kind}?symbols=HGLG11,KNRI11
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	kind, err := contracts.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	symbols := report.SplitSymbols(r.URL.Query().Get("symbols"))
	if len(symbols) == 0 {
		if h.symbols == nil {
			respondError(w, http.StatusBadRequest, "symbols query parameter is required")
			return
		}
		symbols, err = h.symbols(kind)
		if err != nil {
			h.logger.WithError(err).WithField("kind", kind).Error("Failed to load symbol list")
			respondError(w, http.StatusInternalServerError, "Failed to load symbol list")
			return
		}
	}

	rep, err := h.builder.Build(r.Context(), kind, symbols)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		h.logger.WithError(err).Error("Failed to build report")
		respondError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}

	respondJSON(w, http.StatusOK, rep)
}

// GetRecord returns the record of a single symbol
// GET /api/reports/{kind}/{symbol}
func (h *ReportHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kind, err := contracts.ParseKind(vars["kind"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	symbol := contracts.NormalizeSymbol(vars["symbol"])
	rep, err := h.builder.Build(r.Context(), kind, []string{symbol})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		h.logger.WithError(err).Error("Failed to build report")
		respondError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}

	rec, ok := rep.Record(symbol)
	if !ok {
		respondError(w, http.StatusNotFound, "Symbol not found")
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

// RulesResponse is the active valuation rule set
type RulesResponse struct {
	Hash  string          `json:"hash"`
	Rules valuation.Rules `json:"rules"`
}

// GetRules returns the valuation rules in effect
// GET /api/rules
func (h *ReportHandler) GetRules(w http.ResponseWriter, r *http.Request) {
	rules := h.builder.Rules()
	hash, err := valuation.Hash(rules)
	if err != nil {
		h.logger.WithError(err).Error("Failed to hash rules")
		respondError(w, http.StatusInternalServerError, "Failed to hash rules")
		return
	}

	respondJSON(w, http.StatusOK, RulesResponse{Hash: hash, Rules: rules})
}
