package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"SwingSentinel/internal/model"
)

// SQLiteRecorder persists scan history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad-hoc reads don't block the scheduled writers.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			universe      TEXT,
			market_ok     INTEGER,
			market_close  REAL,
			market_sma200 REAL,
			scanned       INTEGER,
			skipped       INTEGER,
			signals_today INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON scan_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS signals (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id              INTEGER NOT NULL,
			timestamp           INTEGER NOT NULL,
			ticker              TEXT NOT NULL,
			has_signal_today    INTEGER,
			last_date           TEXT,
			most_recent_signal  TEXT,
			signals_in_lookback INTEGER,
			relative_strength   REAL,
			rank                INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_run ON signals(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_ticker ON signals(ticker)`,

		`CREATE TABLE IF NOT EXISTS exit_checks (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			ticker       TEXT NOT NULL,
			verdict      TEXT,
			as_of        TEXT,
			close        REAL,
			pnl_pct      REAL,
			days_held    INTEGER,
			stop_price   REAL,
			target_price REAL,
			below_sma50  INTEGER,
			near_target  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exits_ts ON exit_checks(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordScan writes the run summary plus one signals row per record.
// Rank and relative strength stay NULL for records that were not ranked.
func (r *SQLiteRecorder) RecordScan(run *ScanRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := run.RunAt
	if ts.IsZero() {
		ts = time.Now()
	}

	res, err := r.db.Exec(`INSERT INTO scan_runs
		(timestamp, universe, market_ok, market_close, market_sma200, scanned, skipped, signals_today)
		VALUES (?,?,?,?,?,?,?,?)`,
		ts.Unix(), run.Universe, run.Market.OK, run.Market.Close, run.Market.SMA200,
		run.Scanned, run.Skipped, signalsToday(run.Records),
	)
	if err != nil {
		return fmt.Errorf("insert scan run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("scan run id: %w", err)
	}

	byTicker := make(map[string]model.RankedSignal, len(run.Ranked))
	for _, rk := range run.Ranked {
		byTicker[rk.Ticker] = rk
	}

	for _, rec := range run.Records {
		var mostRecent interface{}
		if !rec.MostRecentSignal.IsZero() {
			mostRecent = rec.MostRecentSignal.Format("2006-01-02")
		}
		var rs, rank interface{}
		if rk, ok := byTicker[rec.Ticker]; ok {
			rs, rank = rk.RelativeStrength, rk.Rank
		}
		_, err := r.db.Exec(`INSERT INTO signals
			(run_id, timestamp, ticker, has_signal_today, last_date, most_recent_signal,
			 signals_in_lookback, relative_strength, rank)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			runID, ts.Unix(), rec.Ticker, rec.HasSignalToday,
			rec.LastDate.Format("2006-01-02"), mostRecent,
			rec.SignalsInLookback, rs, rank,
		)
		if err != nil {
			return fmt.Errorf("insert signal %s: %w", rec.Ticker, err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordExitCheck(check *model.PositionCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := check.Decision
	_, err := r.db.Exec(`INSERT INTO exit_checks
		(timestamp, ticker, verdict, as_of, close, pnl_pct, days_held,
		 stop_price, target_price, below_sma50, near_target)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), d.Ticker, string(d.Verdict), check.AsOf.Format("2006-01-02"),
		check.Close, d.PnLPct, d.DaysHeld, d.StopPrice, d.TargetPrice,
		check.BelowSMA50, check.NearTarget,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func signalsToday(records []model.SignalRecord) int {
	n := 0
	for _, rec := range records {
		if rec.HasSignalToday {
			n++
		}
	}
	return n
}
