// Package testutil provides shared test infrastructure for the proc-sim packages:
// the golden scheduling scenarios and assertion helpers.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"gopkg.in/yaml.v3"
)

// GoldenDataset represents the structure of testdata/golden_scenarios.yaml.
type GoldenDataset struct {
	Scenarios []GoldenScenario `yaml:"scenarios"`
}

// GoldenScenario is one process list with its expected tick-by-tick outcome.
type GoldenScenario struct {
	Name        string        `yaml:"name"`
	Processes   string        `yaml:"processes"` // text process list format
	Labels      []string      `yaml:"labels"`    // reported action per tick, starting at tick 1
	DoneTimes   map[int]int64 `yaml:"done_times"`
	Utilization float64       `yaml:"utilization"`
}

// LoadGoldenDataset loads the golden dataset from the repository testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "golden_scenarios.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := yaml.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Scenarios) == 0 {
		t.Fatal("Golden dataset has no scenarios")
	}
	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
