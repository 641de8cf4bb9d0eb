package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/fuzzymatch/pkg/fuzzy"
)

func TestNewDefaultTagFilter(t *testing.T) {
	t.Parallel()

	filter := NewDefaultTagFilter()
	require.NotNil(t, filter)
	assert.Equal(t, []fuzzy.MatchType{fuzzy.Exact}, filter.decider.chain)
}

func TestDefaultTagFilter_ShouldInclude(t *testing.T) {
	t.Parallel()

	filter := NewDefaultTagFilter()

	tests := []struct {
		name           string
		tags           []string
		include        []string
		exclude        []string
		expected       bool
		expectedReason string
	}{
		{
			name:           "no filters",
			tags:           []string{"database"},
			expected:       true,
			expectedReason: "no tag filters specified",
		},
		{
			name:           "include any tag",
			tags:           []string{"database", "sql"},
			include:        []string{"sql"},
			expected:       true,
			expectedReason: "included by pattern 'sql' (EXACT)",
		},
		{
			name:           "include no tag",
			tags:           []string{"database"},
			include:        []string{"web"},
			expected:       false,
			expectedReason: "no match found in include patterns [web]",
		},
		{
			name:           "exclude no tag",
			tags:           []string{"database"},
			exclude:        []string{"deprecated"},
			expected:       true,
			expectedReason: "no match in exclude patterns [deprecated]",
		},
		{
			name:           "exclude takes precedence",
			tags:           []string{"database", "deprecated"},
			include:        []string{"database"},
			exclude:        []string{"deprecated"},
			expected:       false,
			expectedReason: "excluded by pattern 'deprecated' (EXACT)",
		},
		{
			name:           "empty tags never match an include",
			tags:           []string{},
			include:        []string{"database"},
			expected:       false,
			expectedReason: "no match found in include patterns [database]",
		},
		{
			name:           "empty tags survive an exclude",
			tags:           nil,
			exclude:        []string{"database"},
			expected:       true,
			expectedReason: "no match in exclude patterns [database]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			included, reason := filter.ShouldInclude(tt.tags, tt.include, tt.exclude)
			assert.Equal(t, tt.expected, included)
			assert.Equal(t, tt.expectedReason, reason)
		})
	}
}

func TestNewTagFilter(t *testing.T) {
	t.Parallel()

	filter, err := NewTagFilter(fuzzy.Exact, fuzzy.Prefix)
	require.NoError(t, err)

	included, reason := filter.ShouldInclude([]string{"db-postgres", "sql"}, []string{"db"}, nil)
	assert.True(t, included)
	assert.Equal(t, "included by pattern 'db' (PREFIX)", reason)

	_, err = NewTagFilter(fuzzy.MatchType(-1))
	require.Error(t, err)
}
