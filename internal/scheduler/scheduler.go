package scheduler

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"SwingSentinel/internal/calendar"
	"SwingSentinel/internal/chart"
	"SwingSentinel/internal/indicator"
	"SwingSentinel/internal/model"
	"SwingSentinel/internal/notifier"
	"SwingSentinel/internal/provider"
	"SwingSentinel/internal/rank"
	"SwingSentinel/internal/recorder"
	"SwingSentinel/internal/report"
	"SwingSentinel/internal/scanner"
	"SwingSentinel/internal/tracker"
	"SwingSentinel/internal/universe"

	"github.com/robfig/cron/v3"
)

// Deps bundles the collaborators the scheduled tasks run against.
// Prefetch, Charts, Gallery, Progress, and Calendar are optional; a nil
// entry disables that step.
type Deps struct {
	Universe universe.Provider
	Bars     provider.BarProvider
	Prefetch *provider.Prefetcher
	Scanner  *scanner.Scanner
	Ranker   *rank.Ranker
	Book     *tracker.Book
	Checker  *tracker.Checker
	Charts   *chart.Generator
	Gallery  *report.GalleryExporter
	Progress *report.ProgressReporter
	Recorder recorder.Recorder
	Notifier notifier.Notifier
	Calendar *calendar.NYSE
}

// Options tunes the scheduled tasks.
type Options struct {
	ResultsCSV      string // empty disables the CSV artifact
	LookbackDays    int    // history window shared by prefetch and charts
	Benchmark       string // warmed alongside the universe
	TradingDaysOnly bool
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron *cron.Cron
	Deps Deps
	Opts Options
	Ctx  context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, deps Deps, opts Options) *Scheduler {
	return &Scheduler{
		Cron: cron.New(cron.WithSeconds()),
		Deps: deps,
		Opts: opts,
		Ctx:  ctx,
	}
}

// RegisterAll registers the scan and exit-check tasks. Scheduled firings
// are gated on the trading calendar; manual runs are not.
func (s *Scheduler) RegisterAll(scanCron, exitCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.gated(s.scanTask)); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	if _, err := s.Cron.AddFunc(exitCron, s.gated(s.exitCheckTask)); err != nil {
		return fmt.Errorf("register exit check task: %w", err)
	}
	return nil
}

func (s *Scheduler) gated(task func()) func() {
	return func() {
		if !s.tradingDay() {
			return
		}
		task()
	}
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the scan task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

// RunExitCheckNow executes the exit-check task immediately.
func (s *Scheduler) RunExitCheckNow() {
	s.exitCheckTask()
}

func (s *Scheduler) tradingDay() bool {
	if !s.Opts.TradingDaysOnly || s.Deps.Calendar == nil {
		return true
	}
	now := time.Now()
	if s.Deps.Calendar.Open(now) {
		return true
	}
	log.Printf("[INFO] %s is not a trading day, skipping", now.Format("2006-01-02"))
	return false
}

func (s *Scheduler) scanTask() {
	log.Println("[INFO] running scan task")
	runDate := time.Now()

	symbols, err := s.Deps.Universe.List()
	if err != nil {
		log.Printf("[ERROR] universe list: %v", err)
		s.trySend(fmt.Sprintf("Scan aborted: universe unavailable: %v", err))
		return
	}

	if s.Deps.Prefetch != nil {
		warm := symbols
		if s.Opts.Benchmark != "" {
			warm = append([]string{s.Opts.Benchmark}, symbols...)
		}
		s.Deps.Prefetch.Warm(warm, s.Opts.LookbackDays)
	}

	res := s.Deps.Scanner.Scan(symbols)
	ranked := s.Deps.Ranker.Rank(res.Records)

	if err := s.Deps.Recorder.RecordScan(&recorder.ScanRun{
		RunAt:    runDate,
		Universe: s.Deps.Universe.Name(),
		Market:   res.Market,
		Scanned:  res.Scanned,
		Skipped:  res.Skipped,
		Records:  res.Records,
		Ranked:   ranked,
	}); err != nil {
		log.Printf("[ERROR] record scan: %v", err)
	}

	if s.Opts.ResultsCSV != "" {
		if err := report.WriteCSV(s.Opts.ResultsCSV, res.Records, ranked); err != nil {
			log.Printf("[ERROR] write results csv: %v", err)
		} else {
			log.Printf("[INFO] results written: %s", s.Opts.ResultsCSV)
		}
	}

	s.renderCharts(res, runDate)
	s.trySend(notifier.FormatScanReport(res, ranked))
}

// renderCharts draws a setup chart for every fresh signal and bundles
// them into the day's gallery PDF. Chart data comes from the same
// provider the scan used, so a warmed cache serves every fetch.
func (s *Scheduler) renderCharts(res *model.ScanResult, runDate time.Time) {
	if s.Deps.Charts == nil {
		return
	}
	var paths []string
	for _, rec := range res.Records {
		if !rec.HasSignalToday {
			continue
		}
		bars, err := s.Deps.Bars.FetchDailyBars(rec.Ticker, s.Opts.LookbackDays)
		if err != nil {
			log.Printf("[WARN] %s: chart data fetch failed: %v", rec.Ticker, err)
			continue
		}
		series, err := indicator.Compute(bars)
		if err != nil {
			log.Printf("[WARN] %s: chart indicators failed: %v", rec.Ticker, err)
			continue
		}
		path, err := s.Deps.Charts.SaveSetupChart(series, rec.Ticker, rec.MostRecentSignal, runDate)
		if err != nil {
			log.Printf("[WARN] %s: chart render failed: %v", rec.Ticker, err)
			continue
		}
		paths = append(paths, path)
	}
	if len(paths) == 0 || s.Deps.Gallery == nil {
		return
	}

	out := filepath.Join(s.Deps.Charts.DayDir(runDate),
		fmt.Sprintf("gallery_%s.pdf", runDate.Format("2006-01-02")))
	subtitle := fmt.Sprintf("Run: %s | %d setups", runDate.Format("2006-01-02"), len(paths))
	if err := s.Deps.Gallery.Export(paths, out, "SwingSentinel Setup Gallery", subtitle); err != nil {
		log.Printf("[ERROR] gallery export: %v", err)
		return
	}
	log.Printf("[INFO] gallery written: %s", out)
}

func (s *Scheduler) exitCheckTask() {
	log.Println("[INFO] running exit check")

	checks := s.Deps.Checker.CheckAll()
	for i := range checks {
		if err := s.Deps.Recorder.RecordExitCheck(&checks[i]); err != nil {
			log.Printf("[ERROR] record exit check: %v", err)
		}
	}

	s.writeProgressReports(time.Now())

	if len(checks) == 0 {
		log.Println("[INFO] no open positions to check")
		return
	}
	if !notifier.Actionable(checks) {
		log.Println("[INFO] all positions healthy, skipping notification")
		return
	}
	s.trySend(notifier.FormatExitReport(checks))
}

// writeProgressReports saves the per-position PDF and meta sidecar for
// every position whose entry date is known.
func (s *Scheduler) writeProgressReports(runDate time.Time) {
	if s.Deps.Progress == nil || s.Deps.Book == nil {
		return
	}
	for _, pos := range s.Deps.Book.Positions() {
		if pos.EntryDate.IsZero() {
			log.Printf("[WARN] %s: entry date unknown, skipping progress report", pos.Ticker)
			continue
		}
		pdfPath, _, err := s.Deps.Progress.Save(pos, runDate)
		if err != nil {
			log.Printf("[WARN] %s: progress report failed: %v", pos.Ticker, err)
			continue
		}
		log.Printf("[INFO] progress report written: %s", pdfPath)
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Deps.Notifier == nil {
		return
	}
	if err := notifier.SendWithRetry(s.Ctx, s.Deps.Notifier, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
