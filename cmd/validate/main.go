// Command validate performs integrity checks on an anomaly CSV: parse
// coverage, year-sequence sanity, value ranges, and smoothing invariants.
// Useful before pointing the service at a new dataset snapshot.
//
// Usage:
//
//	go run ./cmd/validate -csv data/GLB.Ts+dSST.csv
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/quietriver/climate-charts/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path to the anomaly CSV")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*csvPath); code != 0 {
		os.Exit(code)
	}
}

func run(csvPath string) int {
	fmt.Println("=== Anomaly Dataset Validation ===")
	fmt.Println()

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: open CSV: %v\n", err)
		return 1
	}
	obs, err := domain.ParseGISTEMP(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse CSV: %v\n", err)
		return 1
	}

	candidates, err := countYearRows(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: scan CSV: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateCoverage(obs, candidates),
		validateYearSequence(obs),
		validateValues(obs),
		validateSmoothing(obs),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	stats := domain.ComputeStats(obs)
	fmt.Println()
	fmt.Printf("Observations: %d (%d-%d), anomalies %.2f..%.2f, mean %.3f\n",
		stats.Count, stats.MinYear, stats.MaxYear, stats.MinAnomaly, stats.MaxAnomaly, stats.MeanAnomaly)
	fmt.Printf("Warmest year: %d (%.2f), coldest year: %d (%.2f)\n",
		stats.WarmestYear, stats.MaxAnomaly, stats.ColdestYear, stats.MinAnomaly)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// countYearRows counts the lines whose first field is a year, i.e. the rows
// the parser could possibly keep.
func countYearRows(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		first, _, _ := strings.Cut(scanner.Text(), ",")
		if _, err := strconv.Atoi(strings.TrimSpace(first)); err == nil {
			n++
		}
	}
	return n, scanner.Err()
}

// ── Phase 1: Parse Coverage ──
// Most year rows should survive parsing; only the trailing partial year may
// carry the *** sentinel and be dropped.

func validateCoverage(obs []domain.Observation, candidates int) *phase {
	p := &phase{name: "Phase 1: Parse Coverage"}

	if candidates == 0 {
		p.errorf("no year rows found in file")
		return p
	}
	dropped := candidates - len(obs)
	if dropped < 0 {
		p.errorf("parsed %d observations from %d year rows", len(obs), candidates)
	} else if dropped > 1 {
		p.errorf("%d of %d year rows dropped (expected at most the current partial year)", dropped, candidates)
	}
	return p
}

// ── Phase 2: Year Sequence ──

func validateYearSequence(obs []domain.Observation) *phase {
	p := &phase{name: "Phase 2: Year Sequence"}

	for i := 1; i < len(obs); i++ {
		prev, cur := obs[i-1].Year, obs[i].Year
		switch {
		case cur == prev:
			p.errorf("duplicate year %d", cur)
		case cur < prev:
			p.errorf("years out of order: %d after %d", cur, prev)
		case cur != prev+1:
			p.errorf("gap between %d and %d", prev, cur)
		}
	}
	return p
}

// ── Phase 3: Value Sanity ──
// Global annual means live well inside ±5°C; anything outside signals a
// unit mix-up or a corrupted file.

func validateValues(obs []domain.Observation) *phase {
	p := &phase{name: "Phase 3: Value Sanity"}

	for _, o := range obs {
		if o.Anomaly < -5 || o.Anomaly > 5 {
			p.errorf("year %d: anomaly %g outside ±5", o.Year, o.Anomaly)
		}
	}
	return p
}

// ── Phase 4: Smoothing Invariants ──

func validateSmoothing(obs []domain.Observation) *phase {
	p := &phase{name: "Phase 4: Smoothing Invariants"}

	smooth := domain.RunningMean(obs, domain.DefaultSmoothingRadius)
	if len(smooth) != len(obs) {
		p.errorf("running mean has %d points, expected %d", len(smooth), len(obs))
		return p
	}

	for i, s := range smooth {
		if s.Year != obs[i].Year {
			p.errorf("running mean point %d: year %d, expected %d", i, s.Year, obs[i].Year)
		}
		lo, hi := windowExtent(obs, i, domain.DefaultSmoothingRadius)
		if s.Mean < lo-1e-9 || s.Mean > hi+1e-9 {
			p.errorf("year %d: mean %g outside window extent [%g, %g]", s.Year, s.Mean, lo, hi)
		}
	}

	identity := domain.RunningMean(obs, 0)
	for i := range identity {
		if identity[i].Mean != obs[i].Anomaly {
			p.errorf("radius 0 changed year %d: %g != %g", obs[i].Year, identity[i].Mean, obs[i].Anomaly)
		}
	}
	return p
}

func windowExtent(obs []domain.Observation, i, radius int) (float64, float64) {
	lo, hi := obs[i].Anomaly, obs[i].Anomaly
	for j := i - radius; j <= i+radius; j++ {
		if j < 0 || j >= len(obs) {
			continue
		}
		if obs[j].Anomaly < lo {
			lo = obs[j].Anomaly
		}
		if obs[j].Anomaly > hi {
			hi = obs[j].Anomaly
		}
	}
	return lo, hi
}
