package property_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/delaneyj/propertyparty/property"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recoverError(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		e, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		err = e
	}()
	fn()
	return nil
}

func TestBindingIsLazy(t *testing.T) {
	rt := property.NewRuntime()
	a := property.New(rt, 1)

	evaluations := 0
	b := property.NewBinding(rt, func() int {
		evaluations++
		return a.Get() * 2
	})
	assert.Equal(t, 0, evaluations)
	assert.True(t, b.IsDirty())

	assert.Equal(t, 2, b.Get())
	assert.Equal(t, 2, b.Get())
	assert.Equal(t, 1, evaluations)
	assert.False(t, b.IsDirty())
}

func TestDependencyRegistration(t *testing.T) {
	rt := property.NewRuntime()
	b := property.New(rt, 0)
	a := property.NewBinding(rt, func() int {
		return b.Get() + 1
	})

	for _, tc := range []struct{ x, y int }{
		{0, 1},
		{41, -7},
		{-100, 100},
		{1 << 20, 3},
	} {
		b.Set(tc.x)
		assert.True(t, a.IsDirty())
		assert.Equal(t, tc.x+1, a.Get())
		b.Set(tc.y)
		assert.Equal(t, tc.y+1, a.Get())
	}
}

func TestSetSameValueDoesNotPropagate(t *testing.T) {
	rt := property.NewRuntime()
	b := property.New(rt, "b")

	evaluations := 0
	a := property.NewBinding(rt, func() string {
		evaluations++
		return b.Get() + "!"
	})
	assert.Equal(t, "b!", a.Get())

	b.Set("b")
	assert.False(t, a.IsDirty())
	assert.Equal(t, "b!", a.Get())
	assert.Equal(t, 1, evaluations)
}

func TestWritesCoalesce(t *testing.T) {
	rt := property.NewRuntime()
	b := property.New(rt, 1)

	var seen []int
	a := property.NewBinding(rt, func() int {
		v := b.Get()
		seen = append(seen, v)
		return v
	})
	a.Get()

	b.Set(2)
	b.Set(3)
	assert.Equal(t, 3, a.Get())
	assert.Equal(t, []int{1, 3}, seen)
}

func TestRecursionDetected(t *testing.T) {
	rt := property.NewRuntime(property.WithDebugNames())
	a := property.New(rt, 0).SetName("a")
	a.SetBinding(func() int {
		return a.Get() + 1
	})

	err := recoverError(t, func() { a.Get() })
	assert.True(t, errors.Is(err, property.ErrRecursionDetected))
	assert.Contains(t, err.Error(), "a")

	// the lock is released and the runtime still usable
	a.Set(5)
	assert.Equal(t, 5, a.Get())
}

func TestIndirectRecursionDetected(t *testing.T) {
	rt := property.NewRuntime()
	a := property.New(rt, 0)
	b := property.NewBinding(rt, func() int {
		return a.Get() + 1
	})
	a.SetBinding(func() int {
		return b.Get() + 1
	})

	err := recoverError(t, func() { a.Get() })
	assert.True(t, errors.Is(err, property.ErrRecursionDetected))
	assert.False(t, rt.IsTracking())
}

func TestSetRemovesBinding(t *testing.T) {
	rt := property.NewRuntime()
	src := property.New(rt, 1)
	p := property.NewBinding(rt, func() int {
		return src.Get() * 10
	})
	assert.Equal(t, 10, p.Get())
	assert.True(t, p.HasBinding())

	p.Set(3)
	assert.False(t, p.HasBinding())
	src.Set(2)
	assert.Equal(t, 3, p.Get())
}

func TestSetBindingReplacesDependencies(t *testing.T) {
	rt := property.NewRuntime()
	first := property.New(rt, 1)
	second := property.New(rt, 100)

	dependent := property.New(rt, 0)
	dependent.SetBinding(func() int { return first.Get() })
	assert.Equal(t, 1, dependent.Get())

	reader := property.NewBinding(rt, func() int { return dependent.Get() + 1 })
	assert.Equal(t, 2, reader.Get())

	dependent.SetBinding(func() int { return second.Get() })
	assert.True(t, reader.IsDirty(), "a new binding dirties the readers")
	assert.Equal(t, 101, reader.Get())

	first.Set(50)
	assert.False(t, dependent.IsDirty())
	assert.Equal(t, 101, reader.Get())
}

func TestSetBindingWithOld(t *testing.T) {
	rt := property.NewRuntime()
	step := property.New(rt, 1)
	total := property.New(rt, 10)
	total.SetBindingWithOld(func(old int) int {
		return old + step.Get()
	})

	assert.Equal(t, 11, total.Get())
	step.Set(5)
	assert.Equal(t, 16, total.Get())
}

func TestNilEqualityAlwaysPropagates(t *testing.T) {
	rt := property.NewRuntime()
	p := property.NewFunc(rt, []int{1, 2}, nil)

	evaluations := 0
	sum := property.NewBinding(rt, func() int {
		evaluations++
		s := 0
		for _, v := range p.Get() {
			s += v
		}
		return s
	})
	assert.Equal(t, 3, sum.Get())

	p.Set([]int{1, 2})
	assert.True(t, sum.IsDirty())
	assert.Equal(t, 3, sum.Get())
	assert.Equal(t, 2, evaluations)
}

func TestCustomEquality(t *testing.T) {
	rt := property.NewRuntime()
	p := property.NewFunc(rt, []string{"a"}, slices.Equal[[]string])
	n := property.NewBinding(rt, func() int { return len(p.Get()) })
	assert.Equal(t, 1, n.Get())

	p.Set([]string{"a"})
	assert.False(t, n.IsDirty())

	p.Set([]string{"a", "b"})
	assert.Equal(t, 2, n.Get())
}

func TestGetUntrackedAndUntracked(t *testing.T) {
	rt := property.NewRuntime()
	a := property.New(rt, 1)
	b := property.New(rt, 2)

	c := property.NewBinding(rt, func() int {
		v := a.GetUntracked()
		rt.Untracked(func() {
			v += b.Get()
		})
		return v
	})
	assert.Equal(t, 3, c.Get())

	a.Set(10)
	b.Set(20)
	assert.False(t, c.IsDirty())
	assert.Equal(t, 3, c.Get())
}

func TestPeekDoesNotEvaluate(t *testing.T) {
	rt := property.NewRuntime()
	a := property.New(rt, 1)
	b := property.NewBinding(rt, func() int { return a.Get() + 1 })

	assert.Equal(t, 0, b.Peek())
	assert.Equal(t, 2, b.Get())
	a.Set(5)
	assert.Equal(t, 2, b.Peek())
	assert.Equal(t, 6, b.Get())
}

func TestMarkDirty(t *testing.T) {
	rt := property.NewRuntime()
	items := []int{1}
	src := property.NewFunc(rt, &items, func(a, b *[]int) bool { return a == b })
	count := property.NewBinding(rt, func() int { return len(*src.Get()) })
	assert.Equal(t, 1, count.Get())

	items = append(items, 2)
	src.Set(&items)
	assert.False(t, count.IsDirty())

	src.MarkDirty()
	assert.True(t, count.IsDirty())
	assert.Equal(t, 2, count.Get())
}

func TestConstantProperty(t *testing.T) {
	rt := property.NewRuntime()
	c := property.New(rt, 7)
	c.SetConstant()
	assert.True(t, c.IsConstant())

	before := rt.Stats().Nodes
	double := property.NewBinding(rt, func() int { return c.Get() * 2 })
	assert.Equal(t, 14, double.Get())
	assert.Equal(t, before, rt.Stats().Nodes, "constant reads do not register")

	c.Set(7)
	err := recoverError(t, func() { c.Set(8) })
	assert.True(t, errors.Is(err, property.ErrConstantChanged))

	err = recoverError(t, func() { c.SetBinding(func() int { return 1 }) })
	assert.True(t, errors.Is(err, property.ErrConstantChanged))
}

func TestConstantBinding(t *testing.T) {
	rt := property.NewRuntime()
	c := property.NewBinding(rt, func() int { return 40 + 2 })
	c.SetConstant()
	assert.Equal(t, 42, c.Get())
	assert.True(t, c.HasBinding())
}

func TestDisposeReleasesEverything(t *testing.T) {
	rt := property.NewRuntime()
	base := rt.Stats()

	src := property.New(rt, 1)
	double := property.NewBinding(rt, func() int { return src.Get() * 2 })
	assert.Equal(t, 2, double.Get())

	stats := rt.Stats()
	assert.Equal(t, base.Cells+2, stats.Cells)
	assert.Equal(t, base.Bindings+1, stats.Bindings)
	assert.Equal(t, base.Nodes+1, stats.Nodes)
	assert.Equal(t, base.Lists+1, stats.Lists)

	src.Dispose()
	assert.True(t, src.IsDisposed())
	double.Dispose()

	stats = rt.Stats()
	assert.Equal(t, base.Cells, stats.Cells)
	assert.Equal(t, base.Bindings, stats.Bindings)
	assert.Equal(t, base.Nodes, stats.Nodes)
	assert.Equal(t, base.Lists, stats.Lists)

	err := recoverError(t, func() { src.Get() })
	assert.True(t, errors.Is(err, property.ErrUseAfterDispose))
}

func TestDisposedSlotsAreRecycled(t *testing.T) {
	rt := property.NewRuntime()
	old := property.New(rt, 1)
	old.Dispose()

	fresh := property.New(rt, 2)
	assert.Equal(t, 2, fresh.Get())
	err := recoverError(t, func() { old.Set(3) })
	assert.True(t, errors.Is(err, property.ErrUseAfterDispose))
	assert.Equal(t, 2, fresh.Get())
}

func TestEvaluationDoesNotLeakNodes(t *testing.T) {
	rt := property.NewRuntime()
	a := property.New(rt, 1)
	b := property.New(rt, 1)
	sum := property.NewBinding(rt, func() int { return a.Get() + a.Get() + b.Get() })
	assert.Equal(t, 3, sum.Get())
	nodes := rt.Stats().Nodes

	for i := 0; i < 100; i++ {
		a.Set(i)
		sum.Get()
	}
	assert.Equal(t, nodes, rt.Stats().Nodes)
	assert.Equal(t, 2, nodes, "consecutive reads of a share one edge")
}

func TestStatsCountEvaluationsAndDirtyMarks(t *testing.T) {
	rt := property.NewRuntime()
	a := property.New(rt, 1)
	b := property.NewBinding(rt, func() int { return a.Get() })
	c := property.NewBinding(rt, func() int { return b.Get() })
	c.Get()

	before := rt.Stats()
	a.Set(2)
	a.Set(3)
	after := rt.Stats()
	assert.Equal(t, uint64(2), after.DirtyMarks-before.DirtyMarks)
	assert.Equal(t, before.Evaluations, after.Evaluations)

	c.Get()
	assert.Equal(t, before.Evaluations+2, rt.Stats().Evaluations)
}

func TestGraph(t *testing.T) {
	build := func(withC bool) property.Graph {
		rt := property.NewRuntime(property.WithDebugNames())
		a := property.New(rt, 1).SetName("a")
		b := property.NewBinding(rt, func() int { return a.Get() + 1 }).SetName("b")
		c := property.New(rt, 0).SetName("c")
		c.SetBinding(func() int {
			if withC {
				return a.Get() + b.Get()
			}
			return b.Get()
		})
		c.Get()
		return rt.Graph()
	}

	g := build(true)
	assert.Equal(t, []string{"a", "b", "c"}, g.Nodes)
	assert.Equal(t, []property.Edge{
		{From: "a", To: "b"},
		{From: "a", To: "c"},
		{From: "b", To: "c"},
	}, g.Edges)
	assert.Equal(t, g.Fingerprint, build(true).Fingerprint)
	assert.NotEqual(t, g.Fingerprint, build(false).Fingerprint)
}

func TestNames(t *testing.T) {
	rt := property.NewRuntime()
	p := property.New(rt, 0).SetName("ignored")
	assert.Regexp(t, `^cell#\d+$`, p.Name(), "names need WithDebugNames")

	rt = property.NewRuntime(property.WithDebugNames())
	p = property.New(rt, 0).SetName("width")
	assert.Equal(t, "width", p.Name())

	tr := property.NewTracker(rt).SetName("layout")
	property.Evaluate(tr, p.Get)
	assert.Contains(t, rt.Graph().Edges, property.Edge{From: "width", To: "layout"})
}
