package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/carteira/internal/api/handlers"
	"github.com/wonny/carteira/internal/contracts"
	"github.com/wonny/carteira/internal/valuation"
	"github.com/wonny/carteira/pkg/logger"
)

type fakeBuilder struct {
	gotKind    contracts.Kind
	gotSymbols []string
	err        error
}

func (f *fakeBuilder) Build(_ context.Context, kind contracts.Kind, symbols []string) (*contracts.Report, error) {
	f.gotKind = kind
	f.gotSymbols = symbols
	if f.err != nil {
		return nil, f.err
	}

	rep := &contracts.Report{RunID: "run-1", Kind: kind}
	for _, s := range symbols {
		rep.Records = append(rep.Records, contracts.InstrumentRecord{
			Symbol: s,
			Kind:   kind,
			Price:  contracts.Some(10),
			Status: contracts.Cheap,
		})
	}
	return rep, nil
}

func (f *fakeBuilder) Rules() valuation.Rules {
	return valuation.DefaultRules()
}

func newTestRouter(b *fakeBuilder, loader handlers.SymbolLoader) http.Handler {
	log := logger.NewNop()
	return NewRouter(handlers.NewReportHandler(b, loader, log), log)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestRouter(&fakeBuilder{}, nil), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestGetReport(t *testing.T) {
	b := &fakeBuilder{}
	rec := get(t, newTestRouter(b, nil), "/api/reports/fiis?symbols=hglg11,knri11")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, contracts.KindFund, b.gotKind)
	assert.Equal(t, []string{"HGLG11", "KNRI11"}, b.gotSymbols)

	var body struct {
		RunID   string `json:"run_id"`
		Records []struct {
			Symbol string   `json:"symbol"`
			Price  float64  `json:"price"`
			LPA    *float64 `json:"lpa"`
			Status string   `json:"status"`
		} `json:"records"`
		Summary *json.RawMessage `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "run-1", body.RunID)
	require.Len(t, body.Records, 2)
	assert.Equal(t, "HGLG11", body.Records[0].Symbol)
	assert.Equal(t, 10.0, body.Records[0].Price)
	assert.Nil(t, body.Records[0].LPA, "absent values are null")
	assert.Equal(t, "cheap", body.Records[0].Status)
	assert.Nil(t, body.Summary)
}

func TestGetReport_DefaultSymbols(t *testing.T) {
	b := &fakeBuilder{}
	loader := func(kind contracts.Kind) ([]string, error) {
		assert.Equal(t, contracts.KindStock, kind)
		return []string{"PETR4"}, nil
	}

	rec := get(t, newTestRouter(b, loader), "/api/reports/stock")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"PETR4"}, b.gotSymbols)
}

func TestGetReport_Errors(t *testing.T) {
	tests := []struct {
		name    string
		builder *fakeBuilder
		loader  handlers.SymbolLoader
		target  string
		status  int
	}{
		{"unknown kind", &fakeBuilder{}, nil, "/api/reports/bonds?symbols=X", http.StatusBadRequest},
		{"no symbols and no default list", &fakeBuilder{}, nil, "/api/reports/fiis", http.StatusBadRequest},
		{
			"default list unreadable", &fakeBuilder{},
			func(contracts.Kind) ([]string, error) { return nil, errors.New("open fiis.txt: no such file") },
			"/api/reports/fiis", http.StatusInternalServerError,
		},
		{"builder failure", &fakeBuilder{err: errors.New("boom")}, nil, "/api/reports/fiis?symbols=X", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newTestRouter(tt.builder, tt.loader), tt.target)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestGetRecord(t *testing.T) {
	b := &fakeBuilder{}
	rec := get(t, newTestRouter(b, nil), "/api/reports/acoes/petr4")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"PETR4"}, b.gotSymbols)
	assert.Contains(t, rec.Body.String(), `"symbol":"PETR4"`)
}

func TestGetRules(t *testing.T) {
	rec := get(t, newTestRouter(&fakeBuilder{}, nil), "/api/rules")

	require.Equal(t, http.StatusOK, rec.Code)

	var body handlers.RulesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Hash, 64)
	assert.Equal(t, 0.02, body.Rules.Tolerance)
	assert.Equal(t, 1.20, body.Rules.Thresholds[contracts.CategoryBrick])
}

func TestMethodNotAllowed(t *testing.T) {
	paths := []string{"/api/reports/fiis", "/api/reports/acoes/PETR4", "/api/rules", "/health"}
	router := newTestRouter(&fakeBuilder{}, nil)

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, path, nil)
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	rec := get(t, newTestRouter(&fakeBuilder{}, nil), "/api/unknown")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
