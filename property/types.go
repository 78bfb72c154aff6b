package property

type handleKind uint8

const (
	// the handle is the id of the list of bindings that depend on the cell,
	// zero until something registers
	handleDependents handleKind = iota
	// the handle is the id of the binding owned by the cell, the dependents
	// list then lives in the binding
	handleBinding
)

type cellSlot struct {
	kind     handleKind
	handle   ref
	locked   bool
	constant bool
	name     string
}

type bindingResult uint8

const (
	keepBinding bindingResult = iota
	// the value is final, turn the cell back into a plain value
	removeBinding
)

// bindingCallable is what a bindingHolder runs. dst is always a *T matching
// the type of the property the binding is installed on.
type bindingCallable interface {
	evaluate(dst any) bindingResult
	// markDirty is called every time a dependency is marked dirty, wasDirty
	// tells if the holder already was.
	markDirty(wasDirty bool)
	// interceptSet returns true when the write was redirected and the binding
	// must be kept.
	interceptSet(v any) bool
	// interceptSetBinding returns true when next was installed elsewhere.
	interceptSetBinding(next bindingCallable, name string) bool
	dispose()
}

type baseCallable struct{}

func (baseCallable) markDirty(bool) {}
func (baseCallable) interceptSet(any) bool { return false }
func (baseCallable) interceptSetBinding(bindingCallable, string) bool { return false }
func (baseCallable) dispose() {}

type ownerKind uint8

const (
	ownerNone ownerKind = iota
	ownerCell
	ownerTracker
)

type bindingHolder struct {
	callable bindingCallable
	dirty    bool
	// dependents is the list of bindings reading the cell this binding is
	// installed on, or reading the tracker.
	dependents ref
	// nodes are owned by this binding and linked in the lists of whatever
	// it read during its last evaluation.
	nodes     []ref
	owner     ref
	ownerKind ownerKind
	name      string
}

type depNode struct {
	list    ref
	prev    ref
	next    ref
	binding ref
}

type depList struct {
	first     ref
	owner     ref
	ownerKind ownerKind
}
