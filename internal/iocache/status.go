package iocache

import (
	"fmt"

	"github.com/unelmacoin/greencoder/schema"
)

// PrintCacheStatus prints result-cache status information.
func PrintCacheStatus(status schema.CacheStatus) {
	fmt.Printf("Cache Backend: %s\n", status.Backend)
	if status.Backend == schema.NoneBackend {
		return
	}
	fmt.Printf("Location: %s\n", status.Location)
	fmt.Printf("Total Entries: %d\n", status.Entries)
	fmt.Printf("Table Size: %d bytes\n", status.SizeBytes)
}

// PrintHistoryStatus prints scan-history status information.
func PrintHistoryStatus(status schema.HistoryStatus) {
	fmt.Printf("History Backend: %s\n", status.Backend)
	if status.Backend == schema.NoneBackend {
		return
	}
	fmt.Printf("Location: %s\n", status.Location)
	fmt.Printf("Scan Runs: %d\n", status.ScanRuns)
	fmt.Printf("File Records: %d\n", status.FileRecords)
}
