package fuzzy

import (
	"fmt"
	"log/slog"
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// MaxDepth bounds how deeply nested sequences are searched during matching.
const MaxDepth = 64

// Kind is the shape of a value as seen by the matcher.
type Kind int

const (
	// KindScalar is anything that is compared through the key function
	KindScalar Kind = iota
	// KindSequence is a Go slice
	KindSequence
	// KindFixedSequence is a Tuple
	KindFixedSequence
	// KindMapping is an ordered map or a Go map
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindFixedSequence:
		return "tuple"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// kindOf classifies v once so the rest of the package can switch on Kind.
func kindOf(v any) Kind {
	switch v.(type) {
	case nil, string, []byte:
		return KindScalar
	case Tuple:
		return KindFixedSequence
	case *orderedmap.OrderedMap[string, any]:
		return KindMapping
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice:
		return KindSequence
	case reflect.Map:
		return KindMapping
	default:
		return KindScalar
	}
}

// elements returns the members of a sequence or tuple value.
func elements(v any) []any {
	if t, ok := v.(Tuple); ok {
		return t
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// matchOne applies a single strategy to one candidate/pattern pair.
func matchOne(candidate, pattern string, fn MatchFunc) bool {
	return fn(candidate, pattern)
}

// itemMatches reports whether item survives the filter.
// With include it survives when it matches any pattern; otherwise it survives
// when it matches none of them. A sequence item matches when any of its
// nested elements does.
func itemMatches(item any, patterns []string, fn MatchFunc, key KeyFunc, include bool) (bool, error) {
	matched, err := anyMatch(item, patterns, fn, key, 0)
	if err != nil {
		return false, err
	}
	return matched == include, nil
}

func anyMatch(item any, patterns []string, fn MatchFunc, key KeyFunc, depth int) (bool, error) {
	switch kindOf(item) {
	case KindScalar:
		candidate := key(item)
		for _, pattern := range patterns {
			if matchOne(candidate, pattern, fn) {
				return true, nil
			}
		}
		return false, nil
	case KindSequence, KindFixedSequence:
		if depth >= MaxDepth {
			return false, ErrNestingTooDeep
		}
		for _, child := range elements(item) {
			matched, err := anyMatch(child, patterns, fn, key, depth+1)
			if err != nil {
				return false, err
			}
			if matched {
				return true, nil
			}
		}
		return false, nil
	case KindMapping:
		return false, fmt.Errorf("%w: found element of type %T", ErrNestedMapping, item)
	default:
		return false, fmt.Errorf("unhandled kind %s", kindOf(item))
	}
}

// filterByChain tries each match type in order and returns the indexes of the
// items kept by the first strategy that keeps anything.
func filterByChain(items []any, patterns []string, chain []MatchType, key KeyFunc, include bool) ([]int, error) {
	if err := validateChain(chain); err != nil {
		return nil, err
	}

	for _, matchType := range chain {
		fn := matchFuncs[matchType]
		var kept []int
		for i, item := range items {
			ok, err := itemMatches(item, patterns, fn, key, include)
			if err != nil {
				return nil, err
			}
			if ok {
				kept = append(kept, i)
			}
		}
		if len(kept) > 0 {
			slog.Debug("Fuzzy match strategy selected",
				"matchType", matchType.String(),
				"include", include,
				"patterns", patterns,
				"kept", len(kept),
				"total", len(items))
			return kept, nil
		}
	}

	return nil, nil
}
