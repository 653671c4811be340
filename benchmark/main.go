// Package main provides a performance benchmarking tool for the aem CLI.
// It generates synthetic record corpora of different sizes, scores each one with
// the batch command at several worker counts, treating the first successful run
// as cold and averaging the rest as warm, and writes the timings to CSV.
//
// Prerequisites:
// - aem binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where the synthetic corpora are generated
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Corpus   string
	Records  int
	Workers  int
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	Runs        int
	Seed        uint64
	CorpusSizes map[string]int
	WorkerSets  []int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir: os.Args[1],
		Timeout: 5 * time.Minute,
		Runs:    4,
		Seed:    990,
		CorpusSizes: map[string]int{
			"small":  100,
			"medium": 1000,
			"large":  10000,
		},
		WorkerSets: []int{1, 4, 14},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the aem binary exists and the work dir is usable
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("aem"); err != nil {
		return fmt.Errorf("aem binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// corpusOrder returns corpus names from smallest to largest.
func corpusOrder(config BenchmarkConfig) []string {
	names := make([]string, 0, len(config.CorpusSizes))
	for name := range config.CorpusSizes {
		names = append(names, name)
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && config.CorpusSizes[names[j]] < config.CorpusSizes[names[j-1]]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	return names
}

// runBenchmarks executes all benchmark tests across configured corpora
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d corpora, %v timeout, workers %v, %d runs\n",
		len(config.CorpusSizes), config.Timeout, config.WorkerSets, config.Runs)

	rng := rand.New(rand.NewPCG(config.Seed, config.Seed))
	for _, name := range corpusOrder(config) {
		size := config.CorpusSizes[name]
		dir := filepath.Join(config.WorkDir, name)
		fmt.Printf("Generating %s corpus (%d records)\n", name, size)
		if err := generateCorpus(rng, dir, size); err != nil {
			fmt.Printf("Warning: failed to generate %s: %v\n", name, err)
			continue
		}

		for _, workers := range config.WorkerSets {
			results = append(results, runBenchmarkSuite(config, name, dir, size, workers))
		}
	}

	return results
}

// generateCorpus writes size synthetic records into dir.
func generateCorpus(rng *rand.Rand, dir string, size int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for i := range size {
		expenses := 1e6 + rng.Float64()*9e7
		revenue := expenses * (0.85 + rng.Float64()*0.35)
		programRevenue := revenue * rng.Float64()
		record := map[string]any{
			"organization_name":        fmt.Sprintf("Synthetic Org %05d", i),
			"total_revenue":            revenue,
			"total_expenses":           expenses,
			"contributions_and_grants": revenue - programRevenue,
			"program_service_revenue":  programRevenue,
			"fundraising_expenses":     expenses * rng.Float64() * 0.1,
			"largest_program_expenses": map[string]any{
				"main": map[string]float64{"expenses": expenses * (0.4 + rng.Float64()*0.5)},
			},
			"top_individual_salaries": map[string]float64{
				"executive_director": 5e4 + rng.Float64()*9e5,
			},
			"policies": map[string]bool{
				"conflict_of_interest_policy": rng.IntN(4) > 0,
				"whistleblower_policy":        rng.IntN(2) > 0,
				"document_retention_policy":   rng.IntN(3) > 0,
				"compensation_review_process": rng.IntN(2) > 0,
			},
		}
		content, err := json.Marshal(record)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("org_%05d.json", i)), content, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// runBenchmarkSuite runs the batch command repeatedly for one corpus and worker count
func runBenchmarkSuite(config BenchmarkConfig, corpus, dir string, size, workers int) BenchmarkResult {
	fmt.Printf("Running batch on %s with %d workers (%d runs)\n", corpus, workers, config.Runs)

	coldTime, warmTimes := runBenchmark(config, dir, workers)

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}
	warmAvg := "TIMEOUT"
	if len(warmTimes) > 0 {
		var sum float64
		for _, t := range warmTimes {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(warmTimes)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTimeStr, warmAvg)

	return BenchmarkResult{
		Corpus:   corpus,
		Records:  size,
		Workers:  workers,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes the batch command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, dir string, workers int) (coldTime float64, warmTimes []float64) {
	args := []string{"batch", dir, "--workers", strconv.Itoa(workers), "--limit", "1", "--color", "no"}

	var times []float64
	for range config.Runs {
		start := time.Now()

		cmd := exec.Command("aem", args...)

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
			_ = cmd.Process.Kill()
			<-done
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "completed in") &&
		strings.Contains(outputStr, "with") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("aem_benchmark_%s.csv", timestamp))

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

	// Write header
	if err := writer.Write([]string{"corpus", "records", "workers", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, r := range results {
		row := []string{r.Corpus, strconv.Itoa(r.Records), strconv.Itoa(r.Workers), r.ColdTime, r.WarmTime}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, r := range results {
		fmt.Printf("  %-8s %6d records, %2d workers: Cold: %s, Warm: %s\n", r.Corpus, r.Records, r.Workers, r.ColdTime, r.WarmTime)
	}
}
