package workload

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/inference-sim/proc-sim/sim"
)

func TestGenerate_SameSeedSameDescription(t *testing.T) {
	cfg := DefaultGeneratorConfig()

	a, err := Generate(cfg)
	require.NoError(t, err)
	b, err := Generate(cfg)
	require.NoError(t, err)

	assert.Equal(t, a.ToProcesses(), b.ToProcesses())
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Count = 50
	a, err := Generate(cfg)
	require.NoError(t, err)

	cfg.Seed++
	b, err := Generate(cfg)
	require.NoError(t, err)

	assert.NotEqual(t, a.ToProcesses(), b.ToProcesses())
}

func TestGenerate_RespectsBounds(t *testing.T) {
	// GIVEN a config that always performs I/O
	cfg := GeneratorConfig{
		Count: 200, Seed: 3, FirstArrival: 5, MeanInterarrival: 2,
		MinCPU: 1, MaxCPU: 8, IOProbability: 1, MaxIO: 3, MinIODuration: 2, MaxIODuration: 4,
	}

	// WHEN generated
	desc, err := Generate(cfg)
	require.NoError(t, err)

	// THEN every process lies within the configured ranges
	procs := desc.ToProcesses()
	require.Len(t, procs, 200)
	assert.Equal(t, int64(5), procs[0].ArrivalTime)
	sawIO := false
	for i, p := range procs {
		assert.Equal(t, i+1, p.ID)
		if i > 0 {
			assert.GreaterOrEqual(t, p.ArrivalTime, procs[i-1].ArrivalTime, "arrivals are non-decreasing")
		}
		assert.GreaterOrEqual(t, p.ReqProcessorTime, int64(1))
		assert.LessOrEqual(t, p.ReqProcessorTime, int64(8))
		assert.LessOrEqual(t, len(p.IOEvents), 3)
		if p.ReqProcessorTime == 1 {
			assert.Empty(t, p.IOEvents, "a one-tick process has no room for I/O")
		}
		for _, ev := range p.IOEvents {
			sawIO = true
			assert.GreaterOrEqual(t, ev.Duration, int64(2))
			assert.LessOrEqual(t, ev.Duration, int64(4))
		}
	}
	assert.True(t, sawIO)
}

func TestGenerate_NoIOWhenProbabilityZero(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.IOProbability = 0

	desc, err := Generate(cfg)
	require.NoError(t, err)

	for _, p := range desc.Processes {
		assert.Empty(t, p.IO)
	}
}

func TestGenerate_GeneratedWorkloadRunsToCompletion(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Count = 25
	desc, err := Generate(cfg)
	require.NoError(t, err)

	s := sim.NewSimulator(sim.SimConfig{MaxTicks: 100_000}, desc.ToProcesses())
	require.NoError(t, s.Run(context.Background(), nil))

	assert.Len(t, s.Completed, 25)
}

func TestGeneratorConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GeneratorConfig)
	}{
		{"zero count", func(c *GeneratorConfig) { c.Count = 0 }},
		{"negative first arrival", func(c *GeneratorConfig) { c.FirstArrival = -1 }},
		{"negative mean", func(c *GeneratorConfig) { c.MeanInterarrival = -1 }},
		{"zero min cpu", func(c *GeneratorConfig) { c.MinCPU = 0 }},
		{"inverted cpu range", func(c *GeneratorConfig) { c.MinCPU, c.MaxCPU = 5, 4 }},
		{"huge cpu", func(c *GeneratorConfig) { c.MaxCPU = maxGeneratedCPU + 1 }},
		{"probability above one", func(c *GeneratorConfig) { c.IOProbability = 1.5 }},
		{"negative max io", func(c *GeneratorConfig) { c.MaxIO = -1 }},
		{"zero io duration", func(c *GeneratorConfig) { c.MinIODuration = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultGeneratorConfig()
			tc.mutate(&cfg)

			_, err := Generate(cfg)

			assert.Error(t, err)
		})
	}
}

func TestEncode_RoundTripsThroughParse(t *testing.T) {
	desc, err := Generate(DefaultGeneratorConfig())
	require.NoError(t, err)

	for _, format := range []Format{FormatText, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Encode(desc, "out", format)
			require.NoError(t, err)

			parsed, err := Parse(data, "out", format)
			require.NoError(t, err)
			assert.Equal(t, desc.ToProcesses(), parsed.ToProcesses())
		})
	}
}

func TestWriteText_Format(t *testing.T) {
	desc, err := ParseText([]byte("1 0 5 2:3 4:1\n2 3 2\n"), "in.txt")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, desc))

	assert.Equal(t, "# id arrival cpu [ioAt:ioDuration ...]\n1 0 5 2:3 4:1\n2 3 2\n", buf.String())
}

func TestLoader_Save_ThenLoad(t *testing.T) {
	// GIVEN a generated description saved to the in-memory file system as YAML
	fs := afs.New()
	loader := NewLoader(fs)
	URL := "mem://localhost/generated/procs.yaml"
	desc, err := Generate(DefaultGeneratorConfig())
	require.NoError(t, err)

	// WHEN it is saved and loaded back
	require.NoError(t, loader.Save(context.Background(), URL, FormatAuto, desc))
	loaded, err := loader.Load(context.Background(), URL, FormatAuto)

	// THEN the process population is unchanged
	require.NoError(t, err)
	assert.Equal(t, desc.ToProcesses(), loaded.ToProcesses())
}
