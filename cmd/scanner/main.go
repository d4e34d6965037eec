package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"SwingSentinel/internal/calendar"
	"SwingSentinel/internal/chart"
	"SwingSentinel/internal/config"
	"SwingSentinel/internal/model"
	"SwingSentinel/internal/notifier"
	"SwingSentinel/internal/provider"
	"SwingSentinel/internal/rank"
	"SwingSentinel/internal/recorder"
	"SwingSentinel/internal/report"
	"SwingSentinel/internal/scanner"
	"SwingSentinel/internal/scheduler"
	"SwingSentinel/internal/setup"
	"SwingSentinel/internal/tracker"
	"SwingSentinel/internal/universe"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] SwingSentinel starting...")

	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init bar provider
	var bars provider.BarProvider
	switch cfg.Data.Provider {
	case "polygon":
		bars = provider.NewPolygonProvider(cfg.Data.PolygonAPIKey)
	case "mock":
		bars = &provider.MockProvider{}
	default:
		bars = provider.NewYahooProvider(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", bars.Name())
	pre := provider.NewPrefetcher(bars, cfg.Data.PrefetchWorkers)

	// Init universe
	var uni universe.Provider
	switch cfg.Universe.Source {
	case "static":
		uni = &universe.Static{Symbols: cfg.Universe.Symbols}
	case "file":
		uni = &universe.File{Path: cfg.Universe.File}
	default:
		scraper := universe.NewStockAnalysis(cfg.Universe.Lists, cfg.Proxy)
		if len(cfg.Universe.Symbols) > 0 {
			uni = &universe.Fallback{Primary: scraper, Fallback: &universe.Static{Symbols: cfg.Universe.Symbols}}
		} else {
			uni = scraper
		}
	}
	log.Printf("[INFO] universe source: %s", uni.Name())

	// Init scan pipeline
	det, err := setup.NewDetector(cfg.Scan.PullbackPct, cfg.Scan.UseVolume)
	if err != nil {
		log.Fatalf("[FATAL] init detector: %v", err)
	}
	scan, err := scanner.NewScanner(pre, det, scanner.Options{
		Benchmark:       cfg.Scan.Benchmark,
		LookbackDays:    cfg.Scan.LookbackDays,
		MinBars:         cfg.Scan.MinBars,
		RequireMarketOK: cfg.Scan.RequireMarketOK,
	})
	if err != nil {
		log.Fatalf("[FATAL] init scanner: %v", err)
	}
	ranker, err := rank.NewRanker(&provider.ReturnCalculator{Provider: pre}, cfg.Scan.Benchmark, cfg.Rank.Window)
	if err != nil {
		log.Fatalf("[FATAL] init ranker: %v", err)
	}

	// Init position tracking
	policy := model.ExitPolicy{
		StopLoss:     cfg.Exits.StopLoss,
		ProfitTarget: cfg.Exits.ProfitTarget,
		MaxHoldDays:  cfg.Exits.MaxHoldDays,
	}
	book, err := tracker.NewBook(cfg.Tracker.StateFile, policy)
	if err != nil {
		log.Fatalf("[FATAL] init position book: %v", err)
	}
	checker := tracker.NewChecker(book, pre, cfg.Exits.NearTargetPct)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init notifier
	var channels notifier.MultiNotifier
	if cfg.Notify.Email.Host != "" {
		en := notifier.NewEmailNotifier(cfg.Notify.Email.Host, cfg.Notify.Email.Port,
			cfg.Notify.Email.Username, cfg.Notify.Email.Password,
			cfg.Notify.Email.From, cfg.Notify.Email.To)
		if cfg.Notify.Email.Subject != "" {
			en.Subject = cfg.Notify.Email.Subject
		}
		channels = append(channels, en)
	}
	if cfg.Notify.WebhookURL != "" {
		channels = append(channels, notifier.NewWebhookNotifier(cfg.Notify.WebhookURL, cfg.Proxy))
	}
	var notify notifier.Notifier
	switch len(channels) {
	case 0:
		log.Println("[WARN] no notification channel configured, reports stay local")
		notify = notifier.NoopNotifier{}
	case 1:
		notify = channels[0]
	default:
		notify = channels
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, scheduler.Deps{
		Universe: uni,
		Bars:     pre,
		Prefetch: pre,
		Scanner:  scan,
		Ranker:   ranker,
		Book:     book,
		Checker:  checker,
		Charts:   chart.NewGenerator(cfg.Report.ChartsDir, cfg.Report.ChartLookback),
		Gallery:  report.NewGalleryExporter(),
		Progress: report.NewProgressReporter(cfg.Report.ProgressDir, cfg.Scan.Benchmark, pre),
		Recorder: rec,
		Notifier: notify,
		Calendar: calendar.NewNYSE(),
	}, scheduler.Options{
		ResultsCSV:      cfg.Report.ResultsCSV,
		LookbackDays:    cfg.Scan.LookbackDays,
		Benchmark:       cfg.Scan.Benchmark,
		TradingDaysOnly: cfg.Schedule.TradingDaysOnly,
	})

	// One-shot mode: scan, check exits, done
	if !cfg.Schedule.Enabled {
		log.Println("[INFO] schedule disabled, running once")
		sched.RunScanNow()
		sched.RunExitCheckNow()
		log.Println("[INFO] SwingSentinel done")
		return
	}

	if err := sched.RegisterAll(cfg.Schedule.ScanCron, cfg.Schedule.ExitCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing scan now")
		go sched.RunScanNow()
	}

	log.Println("[INFO] SwingSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] SwingSentinel stopped")
}
