// Package dictionary provides helpers for nested, order-preserving mappings:
// deep merging and single-key "head" access.
//
// Mappings are *orderedmap.OrderedMap[string, any] and lists are []any, which is
// what the document decoder produces for YAML and JSON input.
package dictionary

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is the mapping type the helpers operate on
type Map = orderedmap.OrderedMap[string, any]

// DefaultSeparator splits "key:value" items in Dictify
const DefaultSeparator = ":"

// MergeError reports two values that cannot be merged
type MergeError struct {
	Path   string
	Reason string
	Src    any
	Dst    any
}

func (e *MergeError) Error() string {
	path := e.Path
	if path == "" {
		path = "."
	}
	return fmt.Sprintf("merge failed at %s: %s (merging %v into %v)", path, e.Reason, e.Src, e.Dst)
}

// NotDictError is returned when a mapping was required
type NotDictError struct {
	Value any
}

func (e *NotDictError) Error() string {
	return fmt.Sprintf("%v is %T, not a mapping as required", e.Value, e.Value)
}

// NoHeadError is returned when a mapping does not have exactly one key
type NoHeadError struct {
	Keys []string
}

func (e *NoHeadError) Error() string {
	return fmt.Sprintf("mapping keys %v do not have a single key to be considered a head", e.Keys)
}

// Merge deep-merges objs from left to right and returns the result.
//
// Rules, applied recursively:
//   - a scalar (nil, string, bool or number) is replaced by the incoming value
//   - a list is extended by an incoming list, or has a non-list appended
//   - a mapping merges an incoming mapping key by key; anything else is an error
//   - any other destination type is an error
//
// With no arguments an empty mapping is returned; with one, that value as-is.
// Inputs are never modified.
func Merge(objs ...any) (any, error) {
	switch len(objs) {
	case 0:
		return orderedmap.New[string, any](), nil
	case 1:
		return objs[0], nil
	}

	result := deepCopy(objs[0])
	for _, obj := range objs[1:] {
		var err error
		result, err = mergeInto(result, obj, "")
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// mergeInto merges src into dst, where dst is owned by the caller and may be modified.
func mergeInto(dst, src any, path string) (any, error) {
	switch d := dst.(type) {
	case []any:
		if list, ok := src.([]any); ok {
			for _, v := range list {
				d = append(d, deepCopy(v))
			}
			return d, nil
		}
		return append(d, deepCopy(src)), nil
	case *Map:
		if d == nil {
			// a nil mapping holds nothing, so it behaves like an absent value
			return deepCopy(src), nil
		}
		m, ok := src.(*Map)
		if !ok {
			return nil, &MergeError{Path: path, Reason: "cannot merge non-mapping into mapping", Src: src, Dst: dst}
		}
		if m == nil {
			return d, nil
		}
		for pair := m.Oldest(); pair != nil; pair = pair.Next() {
			existing, found := d.Get(pair.Key)
			if !found {
				d.Set(pair.Key, deepCopy(pair.Value))
				continue
			}
			merged, err := mergeInto(existing, pair.Value, path+"."+pair.Key)
			if err != nil {
				return nil, err
			}
			d.Set(pair.Key, merged)
		}
		return d, nil
	}

	if isScalar(dst) {
		return deepCopy(src), nil
	}
	return nil, &MergeError{Path: path, Reason: fmt.Sprintf("merging into %T is not implemented", dst), Src: src, Dst: dst}
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = deepCopy(item)
		}
		return out
	case *Map:
		if t == nil {
			return t
		}
		out := orderedmap.New[string, any]()
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, deepCopy(pair.Value))
		}
		return out
	default:
		return v
	}
}

// Head returns the only key of a single-key mapping
func Head(v any) (string, error) {
	m, ok := v.(*Map)
	if !ok || m == nil {
		return "", &NotDictError{Value: v}
	}
	if m.Len() != 1 {
		return "", &NoHeadError{Keys: keys(m)}
	}
	return m.Oldest().Key, nil
}

// Body returns the value stored under the head key
func Body(v any) (any, error) {
	_, body, err := HeadBody(v)
	return body, err
}

// HeadBody returns both the head key and its value
func HeadBody(v any) (string, any, error) {
	head, err := Head(v)
	if err != nil {
		return "", nil, err
	}
	body, _ := v.(*Map).Get(head)
	return head, body, nil
}

// KeysEnding returns the keys of m ending with suffix, in mapping order
func KeysEnding(m *Map, suffix string) []string {
	var out []string
	for _, k := range keys(m) {
		if strings.HasSuffix(k, suffix) {
			out = append(out, k)
		}
	}
	return out
}

// Dictify groups "key<sep>value" items into a mapping of key to values, keeping
// first-seen key order. An empty sep means DefaultSeparator.
func Dictify(items []string, sep string) (*orderedmap.OrderedMap[string, []string], error) {
	if sep == "" {
		sep = DefaultSeparator
	}
	result := orderedmap.New[string, []string]()
	for _, item := range items {
		parts := strings.Split(item, sep)
		if len(parts) != 2 {
			return nil, fmt.Errorf("item %q must have the form key%svalue", item, sep)
		}
		existing, _ := result.Get(parts[0])
		result.Set(parts[0], append(existing, parts[1]))
	}
	return result, nil
}

func keys(m *Map) []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}
