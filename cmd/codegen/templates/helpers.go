package templates

import "strings"

// NumericKind is a builtin type that gets a generated interpolation function.
type NumericKind struct {
	Type  string
	Float bool
	Min   string
	Max   string
}

// Func is the suffix of the generated function name.
func (k NumericKind) Func() string {
	name := k.Type
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func DefaultKinds() []NumericKind {
	return []NumericKind{
		{Type: "int", Min: "math.MinInt", Max: "math.MaxInt"},
		{Type: "int8", Min: "math.MinInt8", Max: "math.MaxInt8"},
		{Type: "int16", Min: "math.MinInt16", Max: "math.MaxInt16"},
		{Type: "int32", Min: "math.MinInt32", Max: "math.MaxInt32"},
		{Type: "int64", Min: "math.MinInt64", Max: "math.MaxInt64"},
		{Type: "uint", Min: "0", Max: "math.MaxUint"},
		{Type: "uint8", Min: "0", Max: "math.MaxUint8"},
		{Type: "uint16", Min: "0", Max: "math.MaxUint16"},
		{Type: "uint32", Min: "0", Max: "math.MaxUint32"},
		{Type: "uint64", Min: "0", Max: "math.MaxUint64"},
		{Type: "float32", Float: true},
		{Type: "float64", Float: true},
		{Type: "time.Duration", Min: "math.MinInt64", Max: "math.MaxInt64"},
	}
}

// SelectKinds keeps the default kinds named in types, all of them when
// types is empty.
func SelectKinds(types []string) ([]NumericKind, []string) {
	all := DefaultKinds()
	if len(types) == 0 {
		return all, nil
	}
	byType := make(map[string]NumericKind, len(all))
	for _, k := range all {
		byType[k.Type] = k
	}
	var (
		kinds   []NumericKind
		unknown []string
	)
	for _, t := range types {
		k, ok := byType[t]
		if !ok {
			unknown = append(unknown, t)
			continue
		}
		kinds = append(kinds, k)
	}
	return kinds, unknown
}

func usesTime(kinds []NumericKind) bool {
	for _, k := range kinds {
		if strings.HasPrefix(k.Type, "time.") {
			return true
		}
	}
	return false
}

func usesMath(kinds []NumericKind) bool {
	for _, k := range kinds {
		if !k.Float {
			return true
		}
	}
	return false
}
