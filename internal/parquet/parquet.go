// Package parquet provides data structures and functions for exporting
// greencoder scan history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/unelmacoin/greencoder/schema"
)

// ScanRun represents a single workspace scan with metadata.
// This struct maps to the greencoder_scan_runs database table.
type ScanRun struct {
	// ScanID is the unique identifier for this scan run
	ScanID int64 `parquet:"scan_id,snappy"`

	// StartTime is when the scan began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the scan completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the scan in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// TotalFiles is the number of files analyzed in this scan (nullable until the scan finishes)
	TotalFiles *int64 `parquet:"total_files,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// FileScore represents the analysis outcome for a single file in a scan.
// This struct maps to the greencoder_file_results database table.
type FileScore struct {
	// ScanID references the parent scan run
	ScanID int64 `parquet:"scan_id,snappy"`

	// FilePath is the relative path to the file in the workspace
	FilePath string `parquet:"file_path,snappy"`

	// Language is the resolved language identifier
	Language string `parquet:"language,snappy"`

	// Score is the green score in [0,100]
	Score float64 `parquet:"score,snappy"`

	// TotalIssues is the number of detected anti-pattern occurrences
	TotalIssues int32 `parquet:"total_issues,snappy"`

	// HighSev is the number of high-severity issues
	HighSev int32 `parquet:"high_sev,snappy"`

	// MediumSev is the number of medium-severity issues
	MediumSev int32 `parquet:"medium_sev,snappy"`

	// LowSev is the number of low-severity issues
	LowSev int32 `parquet:"low_sev,snappy"`

	// Suggestions is the number of remediation proposals
	Suggestions int32 `parquet:"suggestions,snappy"`

	// Cached reports whether the result was served from the result cache
	Cached bool `parquet:"cached,snappy"`

	// ErrorText holds the read/analysis error for failed files (nullable)
	ErrorText *string `parquet:"error_text,optional,snappy"`

	// ScoreLabel is the human-facing label for the score band
	ScoreLabel string `parquet:"score_label,snappy"`
}

// WriteScanRunsParquet writes a slice of ScanRun structs to a Parquet file.
func WriteScanRunsParquet(data []ScanRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ScanRun struct tags
	writer := parquet.NewGenericWriter[ScanRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteFileScoresParquet writes a slice of FileScore structs to a Parquet file.
func WriteFileScoresParquet(data []FileScore, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the FileScore struct tags
	writer := parquet.NewGenericWriter[FileScore](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchScanRuns generates sample ScanRun data for demonstration.
func MockFetchScanRuns() []ScanRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := now.Add(-1*time.Hour - 30*time.Minute)
	durationMs1 := endTime1.Sub(startTime1).Milliseconds()
	totalFiles1 := int64(150)
	configParams1 := `{"scan_path":"./src","workers":8,"rules_version":3}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := now.Add(-23 * time.Hour)
	durationMs2 := endTime2.Sub(startTime2).Milliseconds()
	totalFiles2 := int64(75)
	configParams2 := `{"scan_path":".","workers":4,"rules_version":3}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3, durationMs3, configParams3 are nil to demonstrate nullable fields

	return []ScanRun{
		{
			ScanID:        1,
			StartTime:     startTime1,
			EndTime:       &endTime1,
			RunDurationMs: &durationMs1,
			TotalFiles:    &totalFiles1,
			ConfigParams:  &configParams1,
		},
		{
			ScanID:        2,
			StartTime:     startTime2,
			EndTime:       &endTime2,
			RunDurationMs: &durationMs2,
			TotalFiles:    &totalFiles2,
			ConfigParams:  &configParams2,
		},
		{
			ScanID:        3,
			StartTime:     startTime3,
			EndTime:       nil, // Still running - nullable field
			RunDurationMs: nil, // Not yet calculated - nullable field
			TotalFiles:    nil, // Not yet counted - nullable field
			ConfigParams:  nil, // No config stored - nullable field
		},
	}
}

// MockFetchFileScores generates sample FileScore data for demonstration.
func MockFetchFileScores() []FileScore {
	readErr := "open src/gen/bundle.min.js: permission denied"

	return []FileScore{
		{
			ScanID:      1,
			FilePath:    "src/api/client.ts",
			Language:    "typescript",
			Score:       58.0,
			TotalIssues: 4,
			HighSev:     1,
			MediumSev:   2,
			LowSev:      1,
			Suggestions: 3,
			Cached:      false,
			ErrorText:   nil,
			ScoreLabel:  "Fair",
		},
		{
			ScanID:      1,
			FilePath:    "scripts/ingest.py",
			Language:    "python",
			Score:       85.0,
			TotalIssues: 1,
			HighSev:     0,
			MediumSev:   1,
			LowSev:      0,
			Suggestions: 1,
			Cached:      true,
			ErrorText:   nil,
			ScoreLabel:  "Good",
		},
		{
			ScanID:      2,
			FilePath:    "src/gen/bundle.min.js",
			Language:    "javascript",
			Score:       0,
			TotalIssues: 0,
			HighSev:     0,
			MediumSev:   0,
			LowSev:      0,
			Suggestions: 0,
			Cached:      false,
			ErrorText:   &readErr, // Unreadable file - nullable field
			ScoreLabel:  "",
		},
	}
}

// ConvertScanRunRecords converts schema.ScanRunRecord to ScanRun for Parquet export.
func ConvertScanRunRecords(records []schema.ScanRunRecord) []ScanRun {
	result := make([]ScanRun, len(records))
	for i, record := range records {
		result[i] = ScanRun{
			ScanID:        record.ScanID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalFiles:    record.TotalFiles,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertFileScoreRecords converts schema.FileScoreRecord to FileScore for Parquet export.
func ConvertFileScoreRecords(records []schema.FileScoreRecord) []FileScore {
	result := make([]FileScore, len(records))
	for i, record := range records {
		var errorText *string
		if record.ErrorText != "" {
			text := record.ErrorText
			errorText = &text
		}
		result[i] = FileScore{
			ScanID:      record.ScanID,
			FilePath:    record.FilePath,
			Language:    record.Language,
			Score:       record.Score,
			TotalIssues: int32(record.TotalIssues),
			HighSev:     int32(record.HighSev),
			MediumSev:   int32(record.MediumSev),
			LowSev:      int32(record.LowSev),
			Suggestions: int32(record.Suggestions),
			Cached:      record.Cached,
			ErrorText:   errorText,
			ScoreLabel:  record.ScoreLabel,
		}
	}
	return result
}
