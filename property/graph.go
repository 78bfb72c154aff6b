package property

import (
	"sort"

	"github.com/cespare/xxhash/v2"
	mapset "github.com/deckarep/golang-set/v2"
)

// Edge is a dependency: To is dirtied when From changes.
type Edge struct {
	From string
	To   string
}

type Graph struct {
	Nodes       []string
	Edges       []Edge
	Fingerprint uint64
}

// Graph returns a snapshot of the dependency edges currently registered.
// Labels are the debug names when WithDebugNames is set.
func (rt *Runtime) Graph() Graph {
	nodes := mapset.NewThreadUnsafeSet[string]()
	var edges []Edge
	rt.lists.each(func(id ref, l *depList) {
		from := rt.listLabel(l)
		for n := rt.nodes.get(l.first); n != nil; n = rt.nodes.get(n.next) {
			to := rt.bindingLabel(n.binding)
			nodes.Add(from)
			nodes.Add(to)
			edges = append(edges, Edge{From: from, To: to})
		}
	})
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})

	h := xxhash.New()
	for _, e := range edges {
		h.WriteString(e.From)
		h.Write([]byte{0})
		h.WriteString(e.To)
		h.Write([]byte{'\n'})
	}

	g := Graph{
		Nodes:       nodes.ToSlice(),
		Edges:       edges,
		Fingerprint: h.Sum64(),
	}
	sort.Strings(g.Nodes)
	return g
}

func (rt *Runtime) listLabel(l *depList) string {
	if l.ownerKind == ownerTracker {
		return rt.bindingLabel(l.owner)
	}
	return rt.cellLabel(l.owner)
}
