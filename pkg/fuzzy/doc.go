// Package fuzzy filters collections by matching their elements against patterns
// with a prioritized chain of string comparison strategies.
//
// # Match Types
//
// Seven strategies are available, with stable ordinal values:
//
//   - Exact (0): candidate equals pattern
//   - IgnoreCase (1): candidate equals pattern after Unicode case folding
//   - Prefix (2): candidate glob-matches pattern + "*"
//   - Suffix (3): candidate glob-matches "*" + pattern
//   - Contains (4): pattern is a substring of candidate
//   - Glob (5): candidate matches the shell-style glob pattern
//   - Regex (6): the candidate, compiled as a regular expression, finds a match
//     somewhere in the pattern text
//
// Note the Regex polarity: the element is the expression and the pattern is the
// subject. It is the reverse of every other strategy and is kept that way for
// compatibility with existing callers.
//
// # Fallback Chain
//
// A query carries an ordered chain of match types, by default
// [Exact, IgnoreCase, Prefix, Contains]. The chain is tried in order and the
// first strategy that keeps at least one element decides the result; later,
// looser strategies are never consulted. If every strategy keeps nothing the
// result is empty.
//
// # Containers
//
// [New] wraps a slice (Sequence), a [Tuple] (FixedSequence) or a mapping (an
// ordered map or a Go map). Include and Exclude return a new container of the
// same shape and Defuzz returns the plain value:
//
//	c, err := fuzzy.New([]string{"apple", "banana", "cherry"})
//	if err != nil {
//		return err
//	}
//	hits, err := c.Include("app")
//	if err != nil {
//		return err
//	}
//	fmt.Println(hits.Defuzz()) // [apple]
//
// For mappings, matching applies to keys and the associated values travel with
// them. Elements that are themselves sequences match when any nested element
// matches; a mapping nested inside a sequence is rejected with ErrNestedMapping.
package fuzzy
