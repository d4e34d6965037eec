package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}

	if cfg.Universe.Source != "scrape" {
		t.Errorf("universe.source = %s, want scrape", cfg.Universe.Source)
	}
	if cfg.Data.Provider != "yahoo" || cfg.Data.PrefetchWorkers != 4 {
		t.Errorf("data defaults = %s/%d", cfg.Data.Provider, cfg.Data.PrefetchWorkers)
	}
	if cfg.Scan.Benchmark != "SPY" || cfg.Scan.LookbackDays != 504 || cfg.Scan.MinBars != 60 {
		t.Errorf("scan defaults = %s/%d/%d", cfg.Scan.Benchmark, cfg.Scan.LookbackDays, cfg.Scan.MinBars)
	}
	if cfg.Scan.PullbackPct != 0.01 || !cfg.Scan.UseVolume || !cfg.Scan.RequireMarketOK {
		t.Errorf("scan thresholds = %v/%v/%v", cfg.Scan.PullbackPct, cfg.Scan.UseVolume, cfg.Scan.RequireMarketOK)
	}
	if cfg.Exits.StopLoss != 0.02 || cfg.Exits.ProfitTarget != 0.07 || cfg.Exits.MaxHoldDays != 10 {
		t.Errorf("exit defaults = %v/%v/%d", cfg.Exits.StopLoss, cfg.Exits.ProfitTarget, cfg.Exits.MaxHoldDays)
	}
	if !cfg.Schedule.Enabled || !cfg.Schedule.TradingDaysOnly {
		t.Error("schedule should default to an enabled, trading-days-only daemon")
	}
	if cfg.Notify.Email.Subject != "SwingSentinel Alert" {
		t.Errorf("email subject = %q", cfg.Notify.Email.Subject)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_YAMLOverrides(t *testing.T) {
	path := writeConfig(t, `
universe:
  source: static
  symbols: [AAPL, MSFT]
scan:
  use_volume: false
  pullback_pct: 0.02
schedule:
  enabled: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Universe.Source != "static" || len(cfg.Universe.Symbols) != 2 {
		t.Errorf("universe = %s %v", cfg.Universe.Source, cfg.Universe.Symbols)
	}
	if cfg.Scan.UseVolume {
		t.Error("explicit use_volume: false should override the default")
	}
	if cfg.Scan.PullbackPct != 0.02 {
		t.Errorf("pullback_pct = %v, want 0.02", cfg.Scan.PullbackPct)
	}
	if cfg.Schedule.Enabled {
		t.Error("explicit enabled: false should override the default")
	}
	// untouched keys keep their defaults
	if !cfg.Scan.RequireMarketOK || cfg.Scan.LookbackDays != 504 {
		t.Errorf("unset keys changed: require_market_ok=%v lookback=%d",
			cfg.Scan.RequireMarketOK, cfg.Scan.LookbackDays)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("POLYGON_API_KEY", "key-from-env")
	t.Setenv("SMTP_PASSWORD", "secret")
	t.Setenv("CRON_SCAN", "0 0 18 * * 1-5")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.PolygonAPIKey != "key-from-env" {
		t.Errorf("polygon key = %q", cfg.Data.PolygonAPIKey)
	}
	if cfg.Notify.Email.Password != "secret" {
		t.Errorf("smtp password = %q", cfg.Notify.Email.Password)
	}
	if cfg.Schedule.ScanCron != "0 0 18 * * 1-5" {
		t.Errorf("scan cron = %q", cfg.Schedule.ScanCron)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "universe: [not: a: mapping")
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad universe source", func(c *Config) { c.Universe.Source = "guess" }},
		{"static without symbols", func(c *Config) { c.Universe.Source = "static" }},
		{"file without path", func(c *Config) { c.Universe.Source = "file" }},
		{"bad provider", func(c *Config) { c.Data.Provider = "bloomberg" }},
		{"polygon without key", func(c *Config) { c.Data.Provider = "polygon" }},
		{"lookback under min bars", func(c *Config) { c.Scan.LookbackDays = 10 }},
		{"pullback out of range", func(c *Config) { c.Scan.PullbackPct = 1.5 }},
		{"zero rank window", func(c *Config) { c.Rank.Window = 0 }},
		{"stop loss out of range", func(c *Config) { c.Exits.StopLoss = 1.2 }},
		{"negative target", func(c *Config) { c.Exits.ProfitTarget = -0.07 }},
		{"zero hold days", func(c *Config) { c.Exits.MaxHoldDays = 0 }},
		{"email host without recipients", func(c *Config) { c.Notify.Email.Host = "smtp.example.com" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestValidate_EmailConfigured(t *testing.T) {
	cfg := defaults()
	cfg.Notify.Email.Host = "smtp.example.com"
	cfg.Notify.Email.From = "bot@example.com"
	cfg.Notify.Email.To = []string{"me@example.com"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("fully configured email should validate: %v", err)
	}
}
