package yamlfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/fuzzymatch/pkg/fuzzy"
)

func TestFormat_Scalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "string", value: "apple", expected: "apple"},
		{name: "int", value: 42, expected: "42"},
		{name: "bool", value: true, expected: "true"},
		{name: "nil", value: nil, expected: "null"},
		{name: "string list", value: []string{"a", "b"}, expected: "- a\n- b"},
		{name: "single string list is inline", value: []string{"a"}, expected: "[a]"},
		{name: "number list is inline", value: []int{1, 2}, expected: "[1, 2]"},
		{name: "empty list", value: []any{}, expected: "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := Format(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestFormat_OrderedMapping(t *testing.T) {
	t.Parallel()

	m := orderedmap.New[string, any]()
	m.Set("zeta", 1)
	m.Set("alpha", "two")
	m.Set("ports", []any{80, 443})
	m.Set("notes", "line one\nline two")

	out, err := Format(m)
	require.NoError(t, err)

	assert.Less(t, strings.Index(out, "zeta"), strings.Index(out, "alpha"), "insertion order is kept")
	assert.Contains(t, out, "ports: [80, 443]")
	assert.Contains(t, out, "notes: |")

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "line one\nline two", decoded["notes"])
	assert.Equal(t, "two", decoded["alpha"])
}

func TestFormat_GoMapSortedKeys(t *testing.T) {
	t.Parallel()

	out, err := Format(map[string]int{"b": 2, "a": 1, "c": 3})
	require.NoError(t, err)
	assert.Equal(t, "a: 1\nb: 2\nc: 3", out)
}

func TestFormat_QuotesAmbiguousStrings(t *testing.T) {
	t.Parallel()

	out, err := Format([]any{"true", "123"})
	require.NoError(t, err)

	var decoded []any
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, []any{"true", "123"}, decoded)
}

func TestFormat_FuzzyValues(t *testing.T) {
	t.Parallel()

	c, err := fuzzy.New([]string{"apple", "banana", "cherry"})
	require.NoError(t, err)
	filtered, err := c.Exclude("cherry")
	require.NoError(t, err)

	out, err := Format(filtered)
	require.NoError(t, err)
	assert.Equal(t, "- apple\n- banana", out)

	out, err = Format(fuzzy.Tuple{"apple", 1})
	require.NoError(t, err)
	assert.Equal(t, "[apple, 1]", out)
}

func TestPrint(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, map[string]string{"k": "v"}))
	assert.Equal(t, "k: v\n", buf.String())
}
