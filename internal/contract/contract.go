// Package contract provides interfaces and shared utilities for the
// greencoder CLI's internal architecture.
package contract

import (
	"time"

	"github.com/unelmacoin/greencoder/schema"
)

// Logger is the explicit logging dependency handed to analysis components.
// The core never writes to a process-wide sink; callers inject whatever
// destination suits them, and the default is a no-op.
type Logger interface {
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...any) {}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger { return nopLogger{} }

// CacheManager defines the interface for managing the result cache and the
// scan history store. This allows the persistence layer to be mocked for
// testing.
type CacheManager interface {
	GetResultStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cached analysis results, keyed by
// content hash, language, and rules version.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking scan runs and storing
// per-file scores.
type HistoryStore interface {
	// BeginScan creates a new scan run and returns its unique ID.
	BeginScan(startTime time.Time, configParams map[string]any) (int64, error)

	// EndScan updates the scan run with completion data.
	EndScan(scanID int64, endTime time.Time, totalFiles int) error

	// RecordFileResult stores the score and issue counts for one file.
	RecordFileResult(scanID int64, file schema.FileResult) error

	// GetAllScanRuns retrieves every recorded scan run, oldest first.
	GetAllScanRuns() ([]schema.ScanRunRecord, error)

	// GetAllFileRecords retrieves every per-file score row, oldest first.
	GetAllFileRecords() ([]schema.FileScoreRecord, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection.
	Close() error
}
