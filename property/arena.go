package property

const (
	pageBits = 8
	pageSize = 1 << pageBits
	pageMask = pageSize - 1
)

// ref addresses a slot in one of the runtime arenas. A zero generation is
// never handed out so the zero ref means "none".
type ref struct {
	idx uint32
	gen uint32
}

func (r ref) isZero() bool {
	return r.gen == 0
}

type slot[T any] struct {
	gen  uint32
	used bool
	val  T
}

// arena stores values in fixed size pages so a pointer to a slot stays valid
// while other slots are allocated.
type arena[T any] struct {
	pages [][]slot[T]
	free  []uint32
	next  uint32
	live  int
}

func (a *arena[T]) alloc() (ref, *T) {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = a.next
		a.next++
		if int(idx>>pageBits) == len(a.pages) {
			a.pages = append(a.pages, make([]slot[T], pageSize))
		}
	}
	s := &a.pages[idx>>pageBits][idx&pageMask]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.used = true
	a.live++
	return ref{idx: idx, gen: s.gen}, &s.val
}

func (a *arena[T]) get(r ref) *T {
	if r.gen == 0 {
		return nil
	}
	p := int(r.idx >> pageBits)
	if p >= len(a.pages) {
		return nil
	}
	s := &a.pages[p][r.idx&pageMask]
	if !s.used || s.gen != r.gen {
		return nil
	}
	return &s.val
}

func (a *arena[T]) release(r ref) bool {
	if a.get(r) == nil {
		return false
	}
	s := &a.pages[r.idx>>pageBits][r.idx&pageMask]
	var zero T
	s.val = zero
	s.used = false
	a.free = append(a.free, r.idx)
	a.live--
	return true
}

func (a *arena[T]) each(fn func(r ref, v *T)) {
	for p, page := range a.pages {
		for i := range page {
			s := &page[i]
			if !s.used {
				continue
			}
			fn(ref{idx: uint32(p<<pageBits | i), gen: s.gen}, &s.val)
		}
	}
}
