package server

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dgnsrekt/etf-svix/internal/api/generated"
	"github.com/dgnsrekt/etf-svix/internal/data"
	"github.com/dgnsrekt/etf-svix/internal/svix"
)

const scenarioChain = `code,name,strike,expiry,option_type,price,implied_vol,underlying_price
1,300ETF沽8月4000,4.0,2025-08-27,PUT,0.05,0,4.28
2,300ETF购8月4000,4.0,2025-08-27,CALL,0.09,0,4.28
3,300ETF沽8月4200,4.2,2025-08-27,PUT,0.12,0,4.28
4,300ETF购8月4200,4.2,2025-08-27,CALL,0.03,0,4.28
5,300ETF购9月4200,4.2,2025-09-24,CALL,0.05,0,4.28
`

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()

	for _, date := range []string{"2025-08-01", "2025-08-04"} {
		path := data.ChainPath(dir, date, "510300")
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(scenarioChain), 0600); err != nil {
			t.Fatal(err)
		}
	}

	logger := zap.NewNop()
	store := data.NewCSVStore(dir, logger)
	engine := svix.NewEngine(svix.Config{}, logger)
	router, err := NewRouter(NewServer(store, engine, 0.02, logger), logger)
	if err != nil {
		t.Fatalf("NewRouter failed: %v", err)
	}
	return router
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/healthz")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS header")
	}

	var resp generated.HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil || resp.Status != "ok" {
		t.Errorf("unexpected health body %+v (%v)", resp, err)
	}
}

func TestOpenAPIAndDocs(t *testing.T) {
	h := newTestServer(t)

	rec := get(t, h, "/openapi.yaml")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/yaml" {
		t.Fatalf("expected yaml spec, got %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "/v1/svix/{instrument}") {
		t.Error("spec should describe the svix route")
	}

	rec = get(t, h, "/docs")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/openapi.yaml") {
		t.Errorf("expected swagger ui page, got %d", rec.Code)
	}
}

func TestListInstruments(t *testing.T) {
	h := newTestServer(t)

	rec := get(t, h, "/v1/instruments")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp generated.InstrumentsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Date.String() != "2025-08-04" {
		t.Errorf("expected latest date 2025-08-04, got %s", resp.Date)
	}
	if len(resp.Instruments) != 1 || resp.Instruments[0] != "510300" {
		t.Errorf("unexpected instruments %v", resp.Instruments)
	}

	if rec := get(t, h, "/v1/instruments?date=2025-07-01"); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing date, got %d", rec.Code)
	}
	if rec := get(t, h, "/v1/instruments?date=../etc"); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed date, got %d", rec.Code)
	}
}

func TestGetSVIX(t *testing.T) {
	rec := get(t, newTestServer(t), "/v1/svix/510300?date=2025-08-04")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp generated.SVIXResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if resp.ValuationDate.String() != "2025-08-04" || resp.RiskFreeRate != 0.02 || resp.DayCount != svix.DayCountAct365 {
		t.Errorf("unexpected header fields %+v", resp)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Results))
	}
	if math.Abs(resp.Results[0].SvixPercent-16.6395) > 5e-5 {
		t.Errorf("expected SVIX ~16.6395, got %v", resp.Results[0].SvixPercent)
	}
	if resp.Results[0].Warnings == nil || len(resp.Results[0].Warnings) != 0 {
		t.Errorf("expected an empty warnings list, got %v", resp.Results[0].Warnings)
	}

	// the September expiry has a call only
	if len(resp.Failures) != 1 || resp.Failures[0].Expiry.String() != "2025-09-24" || resp.Failures[0].Reason == "" {
		t.Errorf("unexpected failures %+v", resp.Failures)
	}
}

func TestGetSVIX_Params(t *testing.T) {
	h := newTestServer(t)

	rec := get(t, h, "/v1/svix/510300?valuation=2025-08-20&rate=0.03")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp generated.SVIXResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Date.String() != "2025-08-04" || resp.ValuationDate.String() != "2025-08-20" || resp.RiskFreeRate != 0.03 {
		t.Errorf("unexpected header fields %+v", resp)
	}
	if len(resp.Results) != 1 || math.Abs(resp.Results[0].TYears-7.0/365.0) > 1e-12 {
		t.Errorf("unexpected results %+v", resp.Results)
	}

	// valuation after every expiry leaves nothing to compute
	rec = get(t, h, "/v1/svix/510300?valuation=2025-10-01")
	resp = generated.SVIXResponse{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Results) != 0 || resp.Expired != 2 {
		t.Errorf("expected 2 expired groups, got %+v", resp)
	}

	tests := []struct {
		target string
		status int
	}{
		{"/v1/svix/510300?rate=abc", http.StatusBadRequest},
		{"/v1/svix/510300?rate=NaN", http.StatusBadRequest},
		{"/v1/svix/510300?rate=5", http.StatusBadRequest},
		{"/v1/svix/510300?valuation=20250804", http.StatusBadRequest},
		{"/v1/svix/510300?date=2025-13-45", http.StatusBadRequest},
		{"/v1/svix/abc", http.StatusBadRequest},
		{"/v1/svix/510300?date=2025-07-01", http.StatusNotFound},
		{"/v1/svix/510050?date=2025-08-04", http.StatusNotFound},
		{"/v1/svix/999999", http.StatusNotFound},
	}
	for _, tt := range tests {
		if rec := get(t, h, tt.target); rec.Code != tt.status {
			t.Errorf("%s: expected %d, got %d", tt.target, tt.status, rec.Code)
		}
	}
}
