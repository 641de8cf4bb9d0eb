package fuzzy

import (
	"strconv"
	"strings"
)

// MatchType identifies one string comparison strategy.
// The ordinal values are stable and may be persisted by callers.
type MatchType int

const (
	// Exact matches when candidate and pattern are equal
	Exact MatchType = iota
	// IgnoreCase matches when candidate and pattern are equal after case folding
	IgnoreCase
	// Prefix matches when the candidate starts with the pattern (glob syntax allowed)
	Prefix
	// Suffix matches when the candidate ends with the pattern (glob syntax allowed)
	Suffix
	// Contains matches when the pattern is a substring of the candidate
	Contains
	// Glob matches the candidate against a shell-style glob pattern
	Glob
	// Regex searches the pattern text using the candidate as the expression
	Regex
)

var matchTypeNames = [...]string{
	Exact:      "EXACT",
	IgnoreCase: "IGNORECASE",
	Prefix:     "PREFIX",
	Suffix:     "SUFFIX",
	Contains:   "CONTAINS",
	Glob:       "GLOB",
	Regex:      "REGEX",
}

var defaultMatchTypes = [...]MatchType{Exact, IgnoreCase, Prefix, Contains}

// DefaultMatchTypes returns the default fallback chain: Exact, IgnoreCase, Prefix, Contains.
// The returned slice is a copy and may be modified.
func DefaultMatchTypes() []MatchType {
	return append([]MatchType(nil), defaultMatchTypes[:]...)
}

// AllMatchTypes returns every match type in ordinal order.
func AllMatchTypes() []MatchType {
	all := make([]MatchType, 0, len(matchTypeNames))
	for i := range matchTypeNames {
		all = append(all, MatchType(i))
	}
	return all
}

// IsValid reports whether m is one of the seven known match types.
func (m MatchType) IsValid() bool {
	return m >= Exact && m <= Regex
}

func (m MatchType) String() string {
	if !m.IsValid() {
		return "MatchType(" + strconv.Itoa(int(m)) + ")"
	}
	return matchTypeNames[m]
}

// MarshalText implements encoding.TextMarshaler.
func (m MatchType) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, &InvalidMatchStrategyError{Value: m.String()}
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MatchType) UnmarshalText(text []byte) error {
	parsed, err := ParseMatchType(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMatchType converts a match type name such as "prefix" or "GLOB" to a MatchType.
func ParseMatchType(name string) (MatchType, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range matchTypeNames {
		if n == upper {
			return MatchType(i), nil
		}
	}
	return 0, &InvalidMatchStrategyError{Value: name}
}

// ParseMatchTypes converts a list of names into a chain, failing on the first unknown name.
func ParseMatchTypes(names []string) ([]MatchType, error) {
	chain := make([]MatchType, 0, len(names))
	for _, name := range names {
		m, err := ParseMatchType(name)
		if err != nil {
			return nil, err
		}
		chain = append(chain, m)
	}
	return chain, nil
}

// validateChain rejects any value outside the enumeration before matching starts.
func validateChain(chain []MatchType) error {
	for _, m := range chain {
		if !m.IsValid() {
			return &InvalidMatchStrategyError{Value: m.String()}
		}
	}
	return nil
}
