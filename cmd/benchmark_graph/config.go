package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type benchmarkTestConfig struct {
	Name           string  `yaml:"name"`            // friendly name for the test, should be unique
	Width          int64   `yaml:"width"`           // width of dependency graph to construct
	TotalLayers    int64   `yaml:"total_layers"`    // depth of dependency graph to construct
	StaticFraction float64 `yaml:"static_fraction"` // fraction of nodes that are static
	NSources       int64   `yaml:"n_sources"`       // construct a graph with number of sources in each node
	ReadFraction   float64 `yaml:"read_fraction"`   // fraction of [0, 1] elements in the last layer from which to read values in each test iteration
	Iterations     int64   `yaml:"iterations"`      // number of test iterations
}

func (cfg *benchmarkTestConfig) validate() error {
	switch {
	case cfg.Name == "":
		return fmt.Errorf("config without a name")
	case cfg.Width <= 0 || cfg.TotalLayers < 2 || cfg.NSources <= 0 || cfg.Iterations <= 0:
		return fmt.Errorf("config %q: width, n_sources and iterations must be positive, total_layers at least 2", cfg.Name)
	case cfg.NSources > cfg.Width:
		return fmt.Errorf("config %q: n_sources %d is larger than width %d", cfg.Name, cfg.NSources, cfg.Width)
	case cfg.NSources < 2 && cfg.StaticFraction < 1:
		return fmt.Errorf("config %q: dynamic nodes need at least 2 sources", cfg.Name)
	case cfg.StaticFraction < 0 || cfg.StaticFraction > 1 || cfg.ReadFraction < 0 || cfg.ReadFraction > 1:
		return fmt.Errorf("config %q: fractions must be within [0, 1]", cfg.Name)
	}
	return nil
}

type benchmarkFile struct {
	Repeats int                   `yaml:"repeats"`
	Configs []benchmarkTestConfig `yaml:"configs"`
}

func loadConfigs(path string) (*benchmarkFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	file := &benchmarkFile{}
	if err := yaml.Unmarshal(b, file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for i := range file.Configs {
		if err := file.Configs[i].validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return file, nil
}

func defaultConfigs() []benchmarkTestConfig {
	return []benchmarkTestConfig{
		{
			Name:           "simple component",
			Width:          10,
			StaticFraction: 1,
			NSources:       2,
			TotalLayers:    5,
			ReadFraction:   0.2,
			Iterations:     600000,
		},
		{
			Name:           "dynamic component",
			Width:          10,
			TotalLayers:    10,
			StaticFraction: 0.75,
			NSources:       6,
			ReadFraction:   0.2,
			Iterations:     15000,
		},
		{
			Name:           "large web app",
			Width:          1000,
			TotalLayers:    12,
			StaticFraction: 0.95,
			NSources:       4,
			ReadFraction:   1,
			Iterations:     7000,
		},
		{
			Name:           "wide dense",
			Width:          1000,
			TotalLayers:    5,
			StaticFraction: 1,
			NSources:       25,
			ReadFraction:   1,
			Iterations:     3000,
		},
		{
			Name:           "deep",
			Width:          5,
			TotalLayers:    500,
			StaticFraction: 1,
			NSources:       3,
			ReadFraction:   1,
			Iterations:     500,
		},
		{
			Name:           "very dynamic",
			Width:          100,
			TotalLayers:    15,
			StaticFraction: 0.5,
			NSources:       6,
			ReadFraction:   1,
			Iterations:     2000,
		},
	}
}
