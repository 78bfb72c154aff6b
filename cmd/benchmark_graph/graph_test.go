package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphMatchesReference(t *testing.T) {
	for _, cfg := range defaultConfigs() {
		if cfg.Width*cfg.TotalLayers > 5000 {
			continue
		}
		t.Run(cfg.Name, func(t *testing.T) {
			counter := new(int64)
			graph, dynamic := benchmarkMakeGraph(&benchmarkMakeGraphConfig{
				counter:        counter,
				width:          cfg.Width,
				totalLayers:    cfg.TotalLayers,
				nSources:       cfg.NSources,
				staticFraction: cfg.StaticFraction,
			})
			assert.Len(t, graph.layers, int(cfg.TotalLayers-1))
			if cfg.StaticFraction == 1 {
				assert.Zero(t, dynamic)
			}

			runCfg := &benchmarkRunGraphConfig{
				graph:        graph,
				iterations:   min(cfg.Iterations, 1000),
				readFraction: cfg.ReadFraction,
			}
			want := referenceSum(runCfg)
			assert.Equal(t, want, benchmarkRunGraph(runCfg))
			assert.Equal(t, want, benchmarkRunGraph(runCfg), "runs are repeatable")
		})
	}
}

func TestSourceValue(t *testing.T) {
	assert.Equal(t, 3, sourceValue(3, 4, 2), "never written")
	assert.Equal(t, 0, sourceValue(0, 4, 1))
	assert.Equal(t, 6+2, sourceValue(2, 4, 7))
	assert.Equal(t, 10+2, sourceValue(2, 4, 11))
}

func TestUnreadLeavesAreNotEvaluated(t *testing.T) {
	counter := new(int64)
	graph, _ := benchmarkMakeGraph(&benchmarkMakeGraphConfig{
		counter:        counter,
		width:          4,
		totalLayers:    2,
		nSources:       1,
		staticFraction: 1,
	})
	benchmarkRunGraph(&benchmarkRunGraphConfig{
		graph:        graph,
		iterations:   8,
		readFraction: 0.5,
	})
	// two leaves read 8 times, each leaf evaluated when its source changed
	assert.LessOrEqual(t, *counter, int64(8))
}

func TestLoadConfigs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
repeats: 2
configs:
  - name: tiny
    width: 4
    total_layers: 3
    static_fraction: 0.5
    n_sources: 2
    read_fraction: 1
    iterations: 10
`), 0o644))

	file, err := loadConfigs(path)
	require.NoError(t, err)
	assert.Equal(t, 2, file.Repeats)
	require.Len(t, file.Configs, 1)
	assert.Equal(t, benchmarkTestConfig{
		Name:           "tiny",
		Width:          4,
		TotalLayers:    3,
		StaticFraction: 0.5,
		NSources:       2,
		ReadFraction:   1,
		Iterations:     10,
	}, file.Configs[0])
}

func TestLoadConfigsRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
configs:
  - name: broken
    width: 2
    total_layers: 3
    n_sources: 3
    iterations: 1
`), 0o644))

	_, err := loadConfigs(path)
	assert.ErrorContains(t, err, "larger than width")
}

func TestDefaultConfigsAreValid(t *testing.T) {
	for _, cfg := range defaultConfigs() {
		assert.NoError(t, cfg.validate(), cfg.Name)
	}
}
