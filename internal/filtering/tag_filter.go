package filtering

import (
	"github.com/stacklok/fuzzymatch/pkg/fuzzy"
)

// TagFilter handles tag-based filtering using a fuzzy match chain
type TagFilter interface {
	// ShouldInclude determines if an element with given tags should be included based on include/exclude patterns
	// Returns (shouldInclude bool, reason string)
	ShouldInclude(tags []string, include, exclude []string) (bool, string)
}

// DefaultTagFilter matches tag sets as a single nested element, so a pattern
// matching any one tag matches the whole set.
type DefaultTagFilter struct {
	decider decider
}

// NewDefaultTagFilter creates a new DefaultTagFilter using exact matching
func NewDefaultTagFilter() *DefaultTagFilter {
	return &DefaultTagFilter{decider: decider{chain: []fuzzy.MatchType{fuzzy.Exact}}}
}

// NewTagFilter creates a DefaultTagFilter using the given match chain.
// An empty chain selects the default chain.
func NewTagFilter(chain ...fuzzy.MatchType) (*DefaultTagFilter, error) {
	d, err := newDecider(chain)
	if err != nil {
		return nil, err
	}
	return &DefaultTagFilter{decider: d}, nil
}

// ShouldInclude determines if an element with given tags should be included based on include/exclude patterns
//
// Logic:
// 1. If exclude patterns are specified and any tag matches -> exclude (exclude takes precedence)
// 2. If include patterns are specified and any tag matches -> include
// 3. If include patterns are specified and no tag matches -> exclude
// 4. If only exclude patterns are specified (no include) and no tag matches -> include
// 5. If no patterns are specified -> include (default behavior)
func (f *DefaultTagFilter) ShouldInclude(tags []string, include, exclude []string) (bool, string) {
	element := make([]any, len(tags))
	for i, tag := range tags {
		element[i] = tag
	}
	return f.decider.decide(tags, element, include, exclude, "tag filters")
}
