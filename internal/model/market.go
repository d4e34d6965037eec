package model

import "time"

// MarketStatus is the benchmark regime verdict for its most recent bar.
// Close and SMA200 are nil when the benchmark series was unusable; the
// filter then fails open with OK=true so a data outage never blocks a scan.
type MarketStatus struct {
	OK     bool
	AsOf   time.Time // zero when the benchmark series was unusable
	Close  *float64
	SMA200 *float64
}
