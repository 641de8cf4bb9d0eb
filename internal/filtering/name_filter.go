package filtering

import (
	"fmt"

	"github.com/stacklok/fuzzymatch/pkg/fuzzy"
)

// NameFilter handles name-based filtering using a fuzzy match chain
type NameFilter interface {
	// ShouldInclude determines if a name should be included based on include/exclude patterns
	// Returns (shouldInclude bool, reason string)
	ShouldInclude(name string, include, exclude []string) (bool, string)
}

// defaultNameFilter implements name filtering with the fuzzy engine
type defaultNameFilter struct {
	chain []fuzzy.MatchType
}

var _ NameFilter = (*defaultNameFilter)(nil)

// NewDefaultNameFilter creates a NameFilter using the default match chain
func NewDefaultNameFilter() NameFilter {
	return &defaultNameFilter{chain: fuzzy.DefaultMatchTypes()}
}

// NewNameFilter creates a NameFilter using the given match chain.
// An empty chain selects the default chain.
func NewNameFilter(chain ...fuzzy.MatchType) (NameFilter, error) {
	d, err := newDecider(chain)
	if err != nil {
		return nil, err
	}
	return &defaultNameFilter{chain: d.chain}, nil
}

// ShouldInclude determines if a name should be included based on include/exclude patterns
//
// Logic:
// 1. If exclude patterns are specified and the chain removes the name -> exclude (exclude takes precedence)
// 2. If include patterns are specified and the chain keeps the name -> include
// 3. If include patterns are specified and the chain drops the name -> exclude
// 4. If only exclude patterns are specified (no include) and the name survives -> include
// 5. If no patterns are specified -> include (default behavior)
func (f *defaultNameFilter) ShouldInclude(name string, include, exclude []string) (bool, string) {
	d := decider{chain: f.chain}
	return d.decide([]string{name}, []any{name}, include, exclude, "name filters")
}

// decider runs single-element include/exclude decisions through a container.
type decider struct {
	chain []fuzzy.MatchType
}

func newDecider(chain []fuzzy.MatchType) (decider, error) {
	if len(chain) == 0 {
		return decider{chain: fuzzy.DefaultMatchTypes()}, nil
	}
	for _, m := range chain {
		if _, err := fuzzy.MatchFuncFor(m); err != nil {
			return decider{}, err
		}
	}
	return decider{chain: append([]fuzzy.MatchType(nil), chain...)}, nil
}

// decide filters a one-element container holding element. keys are the strings
// the element is matched on and are only used to explain the decision.
func (d decider) decide(keys []string, element any, include, exclude []string, what string) (bool, string) {
	c, err := fuzzy.New([]any{element}, fuzzy.WithMatchTypes(d.chain...))
	if err != nil {
		return false, fmt.Sprintf("cannot filter %v: %v", element, err)
	}

	// Check exclude patterns first (exclude takes precedence)
	if len(exclude) > 0 {
		kept, err := c.Exclude(exclude...)
		if err != nil {
			return false, fmt.Sprintf("invalid exclude patterns %v: %v", exclude, err)
		}
		if kept.Len() == 0 {
			return false, "excluded by " + d.explain(keys, exclude)
		}
	}

	// If include patterns are specified, the element must survive them
	if len(include) > 0 {
		kept, err := c.Include(include...)
		if err != nil {
			return false, fmt.Sprintf("invalid include patterns %v: %v", include, err)
		}
		if kept.Len() == 1 {
			return true, "included by " + d.explain(keys, include)
		}
		// Include patterns specified but no match found
		return false, fmt.Sprintf("no match found in include patterns %v", include)
	}

	// No include patterns specified (or empty), and survived exclude patterns
	if len(exclude) > 0 {
		return true, fmt.Sprintf("no match in exclude patterns %v", exclude)
	}
	return true, fmt.Sprintf("no %s specified", what)
}

// explain names the first pattern and match type that matched one of keys.
func (d decider) explain(keys, patterns []string) string {
	for _, m := range d.chain {
		fn, err := fuzzy.MatchFuncFor(m)
		if err != nil {
			continue
		}
		for _, key := range keys {
			for _, pattern := range patterns {
				if fn(key, pattern) {
					return fmt.Sprintf("pattern '%s' (%s)", pattern, m)
				}
			}
		}
	}
	return fmt.Sprintf("patterns %v", patterns)
}
