package workload

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/inference-sim/proc-sim/sim"
)

// maxGeneratedCPU bounds MaxCPU so threshold sampling stays cheap.
const maxGeneratedCPU = 100_000

// GeneratorConfig parameterizes a random process population.
type GeneratorConfig struct {
	Count            int     `yaml:"count"`
	Seed             int64   `yaml:"seed"`
	FirstArrival     int64   `yaml:"first_arrival"`
	MeanInterarrival float64 `yaml:"mean_interarrival"` // mean gap between arrivals in ticks (exponential)
	MinCPU           int64   `yaml:"min_cpu"`
	MaxCPU           int64   `yaml:"max_cpu"`
	IOProbability    float64 `yaml:"io_probability"` // chance that a process performs any I/O
	MaxIO            int     `yaml:"max_io"`         // upper bound on I/O requests per process
	MinIODuration    int64   `yaml:"min_io_duration"`
	MaxIODuration    int64   `yaml:"max_io_duration"`
}

// DefaultGeneratorConfig returns a small mixed CPU/I-O population.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Count:            10,
		Seed:             42,
		MeanInterarrival: 3,
		MinCPU:           2,
		MaxCPU:           12,
		IOProbability:    0.5,
		MaxIO:            2,
		MinIODuration:    1,
		MaxIODuration:    6,
	}
}

// Validate checks the generator settings.
func (c GeneratorConfig) Validate() error {
	switch {
	case c.Count <= 0:
		return fmt.Errorf("count must be positive, got %d", c.Count)
	case c.FirstArrival < 0:
		return fmt.Errorf("first arrival must be non-negative, got %d", c.FirstArrival)
	case c.MeanInterarrival < 0 || math.IsNaN(c.MeanInterarrival) || math.IsInf(c.MeanInterarrival, 0):
		return fmt.Errorf("mean inter-arrival must be a finite non-negative number, got %v", c.MeanInterarrival)
	case c.MinCPU < 1 || c.MaxCPU < c.MinCPU:
		return fmt.Errorf("cpu range [%d, %d] must satisfy 1 <= min <= max", c.MinCPU, c.MaxCPU)
	case c.MaxCPU > maxGeneratedCPU:
		return fmt.Errorf("max cpu must be at most %d, got %d", maxGeneratedCPU, c.MaxCPU)
	case c.IOProbability < 0 || c.IOProbability > 1:
		return fmt.Errorf("io probability must be in [0, 1], got %v", c.IOProbability)
	case c.MaxIO < 0:
		return fmt.Errorf("max io must be non-negative, got %d", c.MaxIO)
	case c.MaxIO > 0 && (c.MinIODuration < 1 || c.MaxIODuration < c.MinIODuration):
		return fmt.Errorf("io duration range [%d, %d] must satisfy 1 <= min <= max", c.MinIODuration, c.MaxIODuration)
	}
	return nil
}

// Generate creates a random, valid process description. Deterministic given the same
// config. IDs are 1..Count in arrival order.
func Generate(cfg GeneratorConfig) (*Description, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
	arrivalRNG := rng.ForSubsystem(sim.SubsystemArrivals)
	burstRNG := rng.ForSubsystem(sim.SubsystemBursts)
	ioRNG := rng.ForSubsystem(sim.SubsystemIO)

	desc := &Description{
		Source:    fmt.Sprintf("generated(seed=%d)", cfg.Seed),
		Processes: make([]ProcessSpec, 0, cfg.Count),
	}
	arrival := cfg.FirstArrival
	for i := 0; i < cfg.Count; i++ {
		if i > 0 {
			arrival += int64(math.Round(arrivalRNG.ExpFloat64() * cfg.MeanInterarrival))
		}
		id := i + 1
		at := arrival
		cpu := cfg.MinCPU + burstRNG.Int63n(cfg.MaxCPU-cfg.MinCPU+1)
		desc.Processes = append(desc.Processes, ProcessSpec{
			ID:      &id,
			Arrival: &at,
			CPU:     &cpu,
			IO:      generateIO(cfg, cpu, ioRNG),
			line:    id,
		})
	}
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("generated description is invalid: %w", err)
	}
	return desc, nil
}

// generateIO draws distinct thresholds in [1, cpu-1] in increasing order.
func generateIO(cfg GeneratorConfig, cpu int64, rng *rand.Rand) []IOSpec {
	if cfg.MaxIO == 0 || cpu < 2 || rng.Float64() >= cfg.IOProbability {
		return nil
	}
	slots := int(cpu - 1)
	n := 1 + rng.Intn(min(cfg.MaxIO, slots))
	thresholds := rng.Perm(slots)[:n]
	sort.Ints(thresholds)

	events := make([]IOSpec, n)
	for j, t := range thresholds {
		at := int64(t + 1)
		dur := cfg.MinIODuration + rng.Int63n(cfg.MaxIODuration-cfg.MinIODuration+1)
		events[j] = IOSpec{At: &at, Duration: &dur}
	}
	return events
}
