package recorder

import "SwingSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordScan(_ *ScanRun) error                  { return nil }
func (n *NoopRecorder) RecordExitCheck(_ *model.PositionCheck) error { return nil }
func (n *NoopRecorder) Close() error                                 { return nil }
