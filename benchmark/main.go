// Package main provides a performance benchmarking tool for the greencoder CLI.
// It generates synthetic workspaces of increasing size, measures scan times
// with and without result caching, treating the first successful cached run as
// cold and averaging the rest as warm, and writes CSV output for analysis.
//
// Prerequisites:
// - greencoder binary installed and available in PATH
//
// Usage: go run benchmark/main.go [workspace-base-dir]
//
//	workspace-base-dir: Directory where synthetic workspaces are generated
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Workspace   string
	Files       int
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkspaceBase string
	Timeout       time.Duration
	Workers       int
	NoCacheRuns   int
	CacheRuns     int
	Sizes         map[string]int
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [workspace-base-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkspaceBase: os.Args[1],
		Timeout:       5 * time.Minute,
		Workers:       8,
		NoCacheRuns:   3,
		CacheRuns:     4,
		Sizes: map[string]int{
			"small":  50,
			"medium": 500,
			"large":  5000,
		},
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	if err := generateWorkspaces(config); err != nil {
		fmt.Printf("Workspace generation failed: %v\n", err)
		os.Exit(1)
	}

	// Clear the cache so cold runs start from an empty store
	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("greencoder", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the greencoder binary is installed.
func checkPrerequisites() error {
	if _, err := exec.LookPath("greencoder"); err != nil {
		return fmt.Errorf("greencoder binary not found in PATH")
	}
	return nil
}

// generateWorkspaces lays out one synthetic source tree per configured size.
func generateWorkspaces(config BenchmarkConfig) error {
	for name, count := range config.Sizes {
		dir := filepath.Join(config.WorkspaceBase, name)
		if _, err := os.Stat(dir); err == nil {
			fmt.Printf("Workspace %s already exists, reusing\n", name)
			continue
		}
		fmt.Printf("Generating workspace %s (%d files)\n", name, count)
		if err := writeSyntheticTree(dir, count); err != nil {
			return err
		}
	}
	return nil
}

// writeSyntheticTree writes count source files cycling through the supported
// languages, each seeded with a known anti-pattern so the analyzers have
// real work to do.
func writeSyntheticTree(dir string, count int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	jsBody := func(i int) string {
		return fmt.Sprintf(`var counter%d = 0;
async function load%d() {
  const a = await fetch("/api/a/%d");
  const b = await fetch("/api/b/%d");
  let out = "";
  for (const item of [a, b]) {
    out += item.status;
  }
  return out;
}
`, i, i, i, i)
	}
	tsBody := func(i int) string {
		return fmt.Sprintf(`export function handle%d(payload: any) {
  const copy = JSON.parse(JSON.stringify(payload));
  return copy as any;
}
`, i)
	}
	pyBody := func(i int) string {
		return fmt.Sprintf(`def process_%d(items):
    text = ""
    for i in range(len(items)):
        text = text + str(items[i])
    return text
`, i)
	}

	for i := 0; i < count; i++ {
		var name, body string
		switch i % 3 {
		case 0:
			name = fmt.Sprintf("mod%d.js", i)
			body = jsBody(i)
		case 1:
			name = fmt.Sprintf("mod%d.ts", i)
			body = tsBody(i)
		default:
			name = fmt.Sprintf("mod%d.py", i)
			body = pyBody(i)
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// runBenchmarks executes the scan benchmark across all workspace sizes.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d workspaces, %v timeout, %d workers, no-cache: %d runs, cache: %d runs\n",
		len(config.Sizes), config.Timeout, config.Workers, config.NoCacheRuns, config.CacheRuns)

	for _, name := range []string{"small", "medium", "large"} {
		count, ok := config.Sizes[name]
		if !ok {
			continue
		}
		fmt.Printf("Benchmarking %s\n", name)
		results = append(results, runBenchmarkSuite(config, name, count))
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache phases for one workspace.
func runBenchmarkSuite(config BenchmarkConfig, name string, count int) BenchmarkResult {
	workspace := filepath.Join(config.WorkspaceBase, name)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, workspace, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Workspace:   name,
		Files:       count,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a greencoder scan multiple times with the specified
// cache backend and returns the cold time plus warm times.
func runBenchmark(config BenchmarkConfig, workspace, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		"scan", workspace,
		"--cache-backend", cacheBackend,
		"--workers", fmt.Sprintf("%d", config.Workers),
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("greencoder", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if scan output indicates successful completion.
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Analysis completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/greencoder_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"workspace", "files", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			result.Workspace,
			fmt.Sprintf("%d", result.Files),
			result.NoCacheTime,
			result.ColdTime,
			result.WarmTime,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-8s %5d files  no-cache: %-10s cold: %-10s warm: %s\n",
			result.Workspace, result.Files, result.NoCacheTime, result.ColdTime, result.WarmTime)
	}
}
