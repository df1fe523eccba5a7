package iocache

import (
	"errors"
	"fmt"

	"github.com/unelmacoin/greencoder/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of scan history to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the history store
	store := Manager.GetHistoryStore()
	if store == nil {
		return errors.New("history store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.ScanRuns == 0 {
		return errors.New("no scan history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total scan runs: %d\n", status.ScanRuns)
	fmt.Printf("Total file records: %d\n", status.FileRecords)

	// Retrieve all scan runs
	scanRuns, err := store.GetAllScanRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve scan runs: %w", err)
	}

	// Retrieve all file score records
	fileRecords, err := store.GetAllFileRecords()
	if err != nil {
		return fmt.Errorf("failed to retrieve file records: %w", err)
	}

	// Convert to Parquet format
	parquetScanRuns := parquet.ConvertScanRunRecords(scanRuns)
	parquetFileRecords := parquet.ConvertFileScoreRecords(fileRecords)

	// Write scan runs to Parquet
	scanRunsFile := outputFile + ".scan_runs.parquet"
	if err := parquet.WriteScanRunsParquet(parquetScanRuns, scanRunsFile); err != nil {
		return fmt.Errorf("failed to write scan runs: %w", err)
	}
	fmt.Printf("Exported %d scan runs to: %s\n", len(parquetScanRuns), scanRunsFile)

	// Write file score records to Parquet
	fileRecordsFile := outputFile + ".file_results.parquet"
	if err := parquet.WriteFileScoresParquet(parquetFileRecords, fileRecordsFile); err != nil {
		return fmt.Errorf("failed to write file records: %w", err)
	}
	fmt.Printf("Exported %d file score records to: %s\n", len(parquetFileRecords), fileRecordsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
