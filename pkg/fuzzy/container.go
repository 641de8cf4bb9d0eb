package fuzzy

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/spf13/cast"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Tuple is a fixed sequence. Filtering a Tuple yields a new Tuple and never
// modifies the original.
type Tuple []any

// KeyFunc derives the string compared against patterns from an element or mapping key.
type KeyFunc func(any) string

// DefaultKey converts v to a string the way most callers expect: strings as-is,
// numbers and booleans in their usual text form, anything else through fmt.
func DefaultKey(v any) string {
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

// Option configures a Container
type Option func(*Container) error

// WithKeyFunc sets the function used to derive comparable strings.
func WithKeyFunc(fn KeyFunc) Option {
	return func(c *Container) error {
		if fn == nil {
			return fmt.Errorf("key function cannot be nil")
		}
		c.keyFunc = fn
		return nil
	}
}

// WithMatchTypes sets the default fallback chain used when a query does not supply one.
func WithMatchTypes(matchTypes ...MatchType) Option {
	return func(c *Container) error {
		if len(matchTypes) == 0 {
			return nil
		}
		if err := validateChain(matchTypes); err != nil {
			return err
		}
		c.matchTypes = slices.Clone(matchTypes)
		return nil
	}
}

// Container wraps a sequence, tuple or mapping and filters it with fuzzy matching.
// A Container is never modified after New returns, so it may be shared between goroutines.
type Container struct {
	kind   Kind
	source reflect.Type

	// items holds sequence elements, or mapping keys with values aligned in values
	items  []any
	values []any

	elemType   reflect.Type
	keyFunc    KeyFunc
	matchTypes []MatchType
}

// New wraps collection in a Container.
//
// Any slice is a Sequence (except []byte, which is a scalar), a Tuple is a fixed
// sequence, and *orderedmap.OrderedMap[string, any] or any Go map is a mapping.
// Go maps have no order of their own, so their keys are ordered by key string.
func New(collection any, opts ...Option) (*Container, error) {
	c := &Container{
		kind:       kindOf(collection),
		source:     reflect.TypeOf(collection),
		keyFunc:    DefaultKey,
		matchTypes: DefaultMatchTypes(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	switch c.kind {
	case KindFixedSequence, KindSequence:
		c.items = slices.Clone(elements(collection))
	case KindMapping:
		c.items, c.values = c.mappingEntries(collection)
	case KindScalar:
		return nil, &UnsupportedContainerTypeError{Value: collection, TypeName: typeName(collection)}
	}

	if len(c.items) > 0 {
		c.elemType = reflect.TypeOf(c.items[0])
	}
	return c, nil
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}

func (c *Container) mappingEntries(collection any) (keys, values []any) {
	if om, ok := collection.(*orderedmap.OrderedMap[string, any]); ok {
		if om == nil {
			return nil, nil
		}
		for pair := om.Oldest(); pair != nil; pair = pair.Next() {
			keys = append(keys, pair.Key)
			values = append(values, pair.Value)
		}
		return keys, values
	}

	rv := reflect.ValueOf(collection)
	type entry struct {
		text       string
		key, value any
		keyType    string
	}
	// MapRange yields NaN keys, which a later MapIndex could not find again.
	entries := make([]entry, 0, rv.Len())
	for iter := rv.MapRange(); iter.Next(); {
		k := iter.Key()
		entries = append(entries, entry{
			text:    c.keyFunc(k.Interface()),
			key:     k.Interface(),
			value:   iter.Value().Interface(),
			keyType: k.Type().String(),
		})
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		if n := strings.Compare(a.text, b.text); n != 0 {
			return n
		}
		return strings.Compare(a.keyType, b.keyType)
	})
	for _, e := range entries {
		keys = append(keys, e.key)
		values = append(values, e.value)
	}
	return keys, values
}

// Kind returns the shape of the wrapped collection
func (c *Container) Kind() Kind {
	return c.kind
}

// Len returns the number of elements, or keys for a mapping
func (c *Container) Len() int {
	return len(c.items)
}

// ElemType returns the type of the first element seen at construction, or nil
// if the collection was empty. It is informational only and not enforced.
func (c *Container) ElemType() reflect.Type {
	return c.elemType
}

// MatchTypes returns a copy of the default fallback chain
func (c *Container) MatchTypes() []MatchType {
	return slices.Clone(c.matchTypes)
}

// Keys returns the mapping keys, or the elements of a sequence, in order
func (c *Container) Keys() []any {
	return slices.Clone(c.items)
}

// Include keeps the elements (or mapping keys) matching at least one pattern,
// using the container's default chain.
func (c *Container) Include(patterns ...string) (*Container, error) {
	return c.IncludeWith(nil, patterns...)
}

// IncludeWith is Include with an explicit chain. A nil or empty chain means the default.
func (c *Container) IncludeWith(matchTypes []MatchType, patterns ...string) (*Container, error) {
	return c.filter(matchTypes, patterns, true)
}

// Exclude keeps the elements (or mapping keys) matching none of the patterns,
// using the container's default chain.
func (c *Container) Exclude(patterns ...string) (*Container, error) {
	return c.ExcludeWith(nil, patterns...)
}

// ExcludeWith is Exclude with an explicit chain. A nil or empty chain means the default.
func (c *Container) ExcludeWith(matchTypes []MatchType, patterns ...string) (*Container, error) {
	return c.filter(matchTypes, patterns, false)
}

func (c *Container) filter(matchTypes []MatchType, patterns []string, include bool) (*Container, error) {
	if len(matchTypes) == 0 {
		matchTypes = c.matchTypes
	}
	kept, err := filterByChain(c.items, patterns, matchTypes, c.keyFunc, include)
	if err != nil {
		return nil, err
	}

	out := &Container{
		kind:       c.kind,
		source:     c.source,
		items:      make([]any, 0, len(kept)),
		elemType:   c.elemType,
		keyFunc:    c.keyFunc,
		matchTypes: c.matchTypes,
	}
	if c.kind == KindMapping {
		out.values = make([]any, 0, len(kept))
	}
	for _, i := range kept {
		out.items = append(out.items, c.items[i])
		if c.kind == KindMapping {
			out.values = append(out.values, c.values[i])
		}
	}
	return out, nil
}

// Defuzz returns the plain collection: a slice of the original type, a Tuple,
// an *orderedmap.OrderedMap[string, any] or a map of the original type.
func (c *Container) Defuzz() any {
	switch c.kind {
	case KindFixedSequence:
		return Tuple(slices.Clone(c.items))
	case KindSequence:
		out := reflect.MakeSlice(c.source, 0, len(c.items))
		for _, item := range c.items {
			out = reflect.Append(out, valueOf(item, c.source.Elem()))
		}
		return out.Interface()
	case KindMapping:
		if c.source == reflect.TypeFor[*orderedmap.OrderedMap[string, any]]() {
			om := orderedmap.New[string, any]()
			for i, k := range c.items {
				om.Set(k.(string), c.values[i])
			}
			return om
		}
		out := reflect.MakeMapWithSize(c.source, len(c.items))
		for i, k := range c.items {
			out.SetMapIndex(valueOf(k, c.source.Key()), valueOf(c.values[i], c.source.Elem()))
		}
		return out.Interface()
	default:
		return nil
	}
}

// valueOf returns v as a reflect.Value, using the zero value of t for nil.
func valueOf(v any, t reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(t)
	}
	return reflect.ValueOf(v)
}
