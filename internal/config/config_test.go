package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected defaults to load, got error: %v", err)
	}

	if cfg.Source.BaseURL != "https://push2.eastmoney.com" {
		t.Errorf("expected default base URL, got '%s'", cfg.Source.BaseURL)
	}

	if cfg.Engine.RiskFreeRate != 0.02 {
		t.Errorf("expected default risk-free rate 0.02, got %v", cfg.Engine.RiskFreeRate)
	}

	if cfg.Source.MaxPages != 5 {
		t.Errorf("expected 5 max pages by default, got %d", cfg.Source.MaxPages)
	}

	if len(cfg.Instruments) != len(DefaultInstruments) {
		t.Errorf("expected default instruments %v, got %v", DefaultInstruments, cfg.Instruments)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SVIX_ENGINE_RISK_FREE_RATE", "0.035")
	t.Setenv("SVIX_ENGINE_VALUATION_DATE", "2025-08-04")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Engine.RiskFreeRate != 0.035 {
		t.Errorf("expected rate 0.035 from env, got %v", cfg.Engine.RiskFreeRate)
	}

	valuation, err := cfg.Engine.Valuation(time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !valuation.Equal(time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected valuation date %s", valuation)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svix.yaml")
	content := []byte(`
instruments: ["159919"]
engine:
  day_count: ACT/365.25
  workers: 2
source:
  max_pages: 3
`)
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Instruments) != 1 || cfg.Instruments[0] != "159919" {
		t.Errorf("expected instruments [159919], got %v", cfg.Instruments)
	}
	if cfg.Engine.DayCount != "ACT/365.25" || cfg.Engine.Workers != 2 {
		t.Errorf("unexpected engine config %+v", cfg.Engine)
	}
	if cfg.Source.MaxPages != 3 || cfg.Source.PageSize != 50 {
		t.Errorf("unexpected source config %+v", cfg.Source)
	}
}

func TestLoadInvalidValuationDate(t *testing.T) {
	t.Setenv("SVIX_ENGINE_VALUATION_DATE", "04/08/2025")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for malformed valuation date")
	}
}

func TestValuationDefaultsToToday(t *testing.T) {
	cfg := &Config{}
	now := time.Date(2025, 8, 4, 15, 30, 0, 0, time.UTC)

	got, err := cfg.Engine.Valuation(now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected midnight of now, got %s", got)
	}
}
