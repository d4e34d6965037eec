package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Universe struct {
		Source  string   `yaml:"source"` // scrape, static, file
		Lists   []string `yaml:"lists"`  // stockanalysis.com list slugs to scrape
		Symbols []string `yaml:"symbols"`
		File    string   `yaml:"file"`
	} `yaml:"universe"`
	Data struct {
		Provider        string `yaml:"provider"` // yahoo, polygon, mock
		PolygonAPIKey   string `yaml:"polygon_api_key"`
		PrefetchWorkers int    `yaml:"prefetch_workers"`
	} `yaml:"data"`
	Scan struct {
		Benchmark       string  `yaml:"benchmark"`
		LookbackDays    int     `yaml:"lookback_days"`
		MinBars         int     `yaml:"min_bars"`
		PullbackPct     float64 `yaml:"pullback_pct"`
		UseVolume       bool    `yaml:"use_volume"`
		RequireMarketOK bool    `yaml:"require_market_ok"`
	} `yaml:"scan"`
	Rank struct {
		Window int `yaml:"window"`
	} `yaml:"rank"`
	Exits struct {
		StopLoss      float64 `yaml:"stop_loss"`
		ProfitTarget  float64 `yaml:"profit_target"`
		MaxHoldDays   int     `yaml:"max_hold_days"`
		NearTargetPct float64 `yaml:"near_target_pct"`
	} `yaml:"exits"`
	Tracker struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"tracker"`
	Schedule struct {
		Enabled         bool   `yaml:"enabled"`
		ScanCron        string `yaml:"scan_cron"`
		ExitCron        string `yaml:"exit_cron"`
		TradingDaysOnly bool   `yaml:"trading_days_only"`
	} `yaml:"schedule"`
	Notify struct {
		Email struct {
			Host     string   `yaml:"host"`
			Port     int      `yaml:"port"`
			Username string   `yaml:"username"`
			Password string   `yaml:"password"`
			From     string   `yaml:"from"`
			To       []string `yaml:"to"`
			Subject  string   `yaml:"subject"`
		} `yaml:"email"`
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"notify"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Report struct {
		ChartsDir     string `yaml:"charts_dir"`
		ProgressDir   string `yaml:"progress_dir"`
		ResultsCSV    string `yaml:"results_csv"`
		ChartLookback int    `yaml:"chart_lookback"`
	} `yaml:"report"`
	Proxy string `yaml:"proxy"`
}

// defaults returns a config preloaded with every default, so a yaml file
// only has to name the keys it changes. Booleans that default to true can
// still be set to false explicitly.
func defaults() *Config {
	cfg := &Config{}
	cfg.Universe.Source = "scrape"
	cfg.Universe.Lists = []string{"sp-500-stocks"}
	cfg.Data.Provider = "yahoo"
	cfg.Data.PrefetchWorkers = 4
	cfg.Scan.Benchmark = "SPY"
	cfg.Scan.LookbackDays = 504
	cfg.Scan.MinBars = 60
	cfg.Scan.PullbackPct = 0.01
	cfg.Scan.UseVolume = true
	cfg.Scan.RequireMarketOK = true
	cfg.Rank.Window = 60
	cfg.Exits.StopLoss = 0.02
	cfg.Exits.ProfitTarget = 0.07
	cfg.Exits.MaxHoldDays = 10
	cfg.Exits.NearTargetPct = 1.0
	cfg.Tracker.StateFile = "data/positions.json"
	cfg.Schedule.Enabled = true
	cfg.Schedule.ScanCron = "0 30 16 * * 1-5"
	cfg.Schedule.ExitCron = "0 45 16 * * 1-5"
	cfg.Schedule.TradingDaysOnly = true
	cfg.Notify.Email.Port = 587
	cfg.Notify.Email.Subject = "SwingSentinel Alert"
	cfg.Database.SQLitePath = "data/swing_sentinel.db"
	cfg.Report.ChartsDir = "data/charts"
	cfg.Report.ProgressDir = "data/progress"
	cfg.Report.ResultsCSV = "data/scan_results.csv"
	cfg.Report.ChartLookback = 180
	return cfg
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("POLYGON_API_KEY"); v != "" {
		cfg.Data.PolygonAPIKey = v
	}
	if v := os.Getenv("SMTP_USERNAME"); v != "" {
		cfg.Notify.Email.Username = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Notify.Email.Password = v
	}
	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		cfg.Notify.WebhookURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_SCAN"); v != "" {
		cfg.Schedule.ScanCron = v
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	switch c.Universe.Source {
	case "scrape", "static", "file":
	default:
		return fmt.Errorf("universe.source must be scrape, static, or file, got %q", c.Universe.Source)
	}
	if c.Universe.Source == "static" && len(c.Universe.Symbols) == 0 {
		return fmt.Errorf("universe.symbols is required for the static source")
	}
	if c.Universe.Source == "file" && c.Universe.File == "" {
		return fmt.Errorf("universe.file is required for the file source")
	}

	switch c.Data.Provider {
	case "yahoo", "polygon", "mock":
	default:
		return fmt.Errorf("data.provider must be yahoo, polygon, or mock, got %q", c.Data.Provider)
	}
	if c.Data.Provider == "polygon" && c.Data.PolygonAPIKey == "" {
		return fmt.Errorf("data.polygon_api_key is required for the polygon provider")
	}

	if c.Scan.MinBars < 1 {
		return fmt.Errorf("scan.min_bars must be at least 1")
	}
	if c.Scan.LookbackDays < c.Scan.MinBars {
		return fmt.Errorf("scan.lookback_days (%d) must cover scan.min_bars (%d)",
			c.Scan.LookbackDays, c.Scan.MinBars)
	}
	if c.Scan.PullbackPct <= 0 || c.Scan.PullbackPct >= 1 {
		return fmt.Errorf("scan.pullback_pct must be in (0, 1), got %v", c.Scan.PullbackPct)
	}
	if c.Rank.Window < 1 {
		return fmt.Errorf("rank.window must be at least 1")
	}

	if c.Exits.StopLoss <= 0 || c.Exits.StopLoss >= 1 {
		return fmt.Errorf("exits.stop_loss must be in (0, 1), got %v", c.Exits.StopLoss)
	}
	if c.Exits.ProfitTarget <= 0 {
		return fmt.Errorf("exits.profit_target must be positive, got %v", c.Exits.ProfitTarget)
	}
	if c.Exits.MaxHoldDays < 1 {
		return fmt.Errorf("exits.max_hold_days must be at least 1")
	}

	if c.Notify.Email.Host != "" && (c.Notify.Email.From == "" || len(c.Notify.Email.To) == 0) {
		return fmt.Errorf("notify.email.from and notify.email.to are required when a host is set")
	}
	return nil
}
