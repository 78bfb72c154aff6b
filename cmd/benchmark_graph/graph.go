package main

import (
	"math"
	"math/rand"

	"github.com/delaneyj/propertyparty/property"
)

// benchmarkNode records how a node was built so the graph can be recomputed
// without the engine.
type benchmarkNode struct {
	sources []int
	dynamic bool
}

func (n *benchmarkNode) compute(read func(int) int) int {
	if !n.dynamic {
		sum := 0
		for _, s := range n.sources {
			sum += read(s)
		}
		return sum
	}
	tail := n.sources[1:]
	sum := read(n.sources[0])
	shouldDrop := sum&0x1 > 0
	dropDex := sum % len(tail)
	for i, s := range tail {
		if shouldDrop && i == dropDex {
			continue
		}
		sum += read(s)
	}
	return sum
}

type benchmarkGraph struct {
	rt      *property.Runtime
	sources []*property.Property[int]
	layers  [][]*property.Property[int]
	nodes   [][]benchmarkNode
}

type benchmarkMakeGraphConfig struct {
	counter                      *int64
	width, totalLayers, nSources int64
	staticFraction               float64
}

func benchmarkMakeGraph(cfg *benchmarkMakeGraphConfig) (graph *benchmarkGraph, dynamic int) {
	rt := property.NewRuntime()
	sources := make([]*property.Property[int], cfg.width)
	for i := range sources {
		sources[i] = property.New(rt, i)
	}
	graph = &benchmarkGraph{
		rt:      rt,
		sources: sources,
		layers:  make([][]*property.Property[int], cfg.totalLayers-1),
		nodes:   make([][]benchmarkNode, cfg.totalLayers-1),
	}

	prevRow := sources
	random := rand.New(rand.NewSource(0))
	for l := range graph.layers {
		row, nodes := makeBenchmarkRow(&benchmarkRowConfig{
			rt:             rt,
			sources:        prevRow,
			counter:        cfg.counter,
			staticFraction: cfg.staticFraction,
			nSources:       cfg.nSources,
			rand:           random,
		})
		graph.layers[l] = row
		graph.nodes[l] = nodes
		for _, n := range nodes {
			if n.dynamic {
				dynamic++
			}
		}
		prevRow = row
	}
	return graph, dynamic
}

type benchmarkRunGraphConfig struct {
	graph        *benchmarkGraph
	iterations   int64
	readFraction float64
}

// readIndexes picks the leaves read by a run, the same ones every time.
func readIndexes(leaves int, readFraction float64) []int {
	random := rand.New(rand.NewSource(0))
	all := make([]int, leaves)
	for i := range all {
		all[i] = i
	}
	skipCount := int(math.Round(float64(leaves) * (1 - readFraction)))
	return benchmarkRemoveElems(all, skipCount, random)
}

func sourceValue(dex, width int, iterations int64) int {
	if int64(dex) >= iterations {
		return dex
	}
	// last i < iterations with i % width == dex
	last := (int(iterations-1)-dex)/width*width + dex
	return last + dex
}

// benchmarkRunGraph writes one source per iteration and reads some or all of
// the leaves, returning the sum of the leaf values read at the end.
func benchmarkRunGraph(cfg *benchmarkRunGraphConfig) int {
	leaves := cfg.graph.layers[len(cfg.graph.layers)-1]
	readDex := readIndexes(len(leaves), cfg.readFraction)

	sources := cfg.graph.sources
	for i := 0; i < int(cfg.iterations); i++ {
		sourceDex := i % len(sources)
		sources[sourceDex].Set(i + sourceDex)

		for _, d := range readDex {
			leaves[d].Get()
		}
	}

	sum := 0
	for _, d := range readDex {
		sum += leaves[d].Get()
	}
	return sum
}

// referenceSum computes what benchmarkRunGraph returns by evaluating every
// node once from the final source values.
func referenceSum(cfg *benchmarkRunGraphConfig) int {
	width := len(cfg.graph.sources)
	prev := make([]int, width)
	for i := range prev {
		prev[i] = sourceValue(i, width, cfg.iterations)
	}
	for _, nodes := range cfg.graph.nodes {
		next := make([]int, len(nodes))
		for i := range nodes {
			next[i] = nodes[i].compute(func(s int) int { return prev[s] })
		}
		prev = next
	}

	sum := 0
	for _, d := range readIndexes(len(prev), cfg.readFraction) {
		sum += prev[d]
	}
	return sum
}

func benchmarkRemoveElems[T any](src []T, rmCount int, rand *rand.Rand) []T {
	copyWithRemovals := make([]T, len(src))
	copy(copyWithRemovals, src)
	for i := 0; i < rmCount; i++ {
		rmDex := rand.Intn(len(copyWithRemovals))
		copyWithRemovals[rmDex] = copyWithRemovals[len(copyWithRemovals)-1]
		copyWithRemovals = copyWithRemovals[:len(copyWithRemovals)-1]
	}
	return copyWithRemovals
}

type benchmarkRowConfig struct {
	rt             *property.Runtime
	sources        []*property.Property[int]
	counter        *int64
	staticFraction float64
	nSources       int64
	rand           *rand.Rand
}

func makeBenchmarkRow(cfg *benchmarkRowConfig) (row []*property.Property[int], nodes []benchmarkNode) {
	row = make([]*property.Property[int], len(cfg.sources))
	nodes = make([]benchmarkNode, len(cfg.sources))

	for myDex := range cfg.sources {
		node := &nodes[myDex]
		node.sources = make([]int, 0, cfg.nSources)
		for sourceDex := 0; sourceDex < int(cfg.nSources); sourceDex++ {
			node.sources = append(node.sources, (myDex+sourceDex)%len(cfg.sources))
		}
		// static nodes always read all their sources
		node.dynamic = cfg.rand.Float64() >= cfg.staticFraction

		row[myDex] = property.NewBinding(cfg.rt, func() int {
			*cfg.counter++
			return node.compute(func(s int) int { return cfg.sources[s].Get() })
		})
	}

	return row, nodes
}
