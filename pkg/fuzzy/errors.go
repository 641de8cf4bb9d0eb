package fuzzy

import (
	"errors"
	"fmt"
)

var (
	// ErrNestedMapping is returned when a mapping is found as an element of a sequence being matched
	ErrNestedMapping = errors.New("nested mappings are not supported")

	// ErrNestingTooDeep is returned when nested sequences exceed MaxDepth
	ErrNestingTooDeep = errors.New("sequence nesting exceeds maximum depth")
)

// UnsupportedContainerTypeError is returned by New when the wrapped value is not
// a sequence, tuple or mapping.
type UnsupportedContainerTypeError struct {
	Value    any
	TypeName string
}

func (e *UnsupportedContainerTypeError) Error() string {
	return fmt.Sprintf("unsupported container type %s: %v is not a sequence, tuple or mapping", e.TypeName, e.Value)
}

// InvalidMatchStrategyError is returned when a match type outside the known set is supplied.
type InvalidMatchStrategyError struct {
	Value string
}

func (e *InvalidMatchStrategyError) Error() string {
	return fmt.Sprintf("no such match strategy: %s", e.Value)
}
