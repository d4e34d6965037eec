package recorder

import (
	"time"

	"SwingSentinel/internal/model"
)

// ScanRun holds all data recorded for one completed scan.
type ScanRun struct {
	RunAt    time.Time // zero means now
	Universe string    // universe source label
	Market   model.MarketStatus
	Scanned  int
	Skipped  int
	Records  []model.SignalRecord
	Ranked   []model.RankedSignal
}

// Recorder persists scan and exit-check history for analysis.
type Recorder interface {
	RecordScan(run *ScanRun) error
	RecordExitCheck(check *model.PositionCheck) error
	Close() error
}
