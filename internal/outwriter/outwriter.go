// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"os"
	"time"

	"github.com/unelmacoin/greencoder/internal/contract"
	"github.com/unelmacoin/greencoder/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteScan prints workspace scan results using the configured output format.
func (ow *OutWriter) WriteScan(summary *schema.ScanSummary, ranked []schema.FileResult, cfg *contract.Config, duration time.Duration) error {
	return WriteScanResults(summary, ranked, cfg, duration)
}

// WriteAnalysis prints a single-document analysis using the configured output format.
func (ow *OutWriter) WriteAnalysis(fr schema.FileResult, cfg *contract.Config) error {
	return WriteAnalyzeResult(fr, cfg)
}

// WriteCheck prints a policy check outcome using the configured output format.
func (ow *OutWriter) WriteCheck(result *schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	return WriteCheckResult(result, cfg, duration)
}

// PrintScanHeader prints the pre-scan banner to stderr, so piped stdout
// stays machine-readable.
func PrintScanHeader(cfg *contract.Config) {
	prefix := ""
	if cfg.UseEmojis {
		prefix = "🌱 "
	}
	fmt.Fprintf(os.Stderr, "%sgreencoder scanning %s (workers: %d, cache: %s)\n",
		prefix, cfg.ScanPath, cfg.Workers, cfg.CacheBackend)
}

// getMaxTablePathWidth calculates the maximum width for file paths in table
// output based on terminal width and table configuration.
func getMaxTablePathWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 35 // Rank + Lang + Score + Label + Issues with borders/padding

	// Add detail columns with formatting
	if cfg.Detail {
		baseWidth += 30 // High + Med + Low + Cached with formatting
	}

	// Reserve space for table borders, separators, and padding
	baseWidth += 15

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable path width
		return 15
	}
	if available > 70 {
		// Maximum path width to prevent overly long paths
		return 70
	}
	return available
}
