// Package repr formats structs as Name(field=value, ...).
package repr

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/stacklok/fuzzymatch/pkg/fuzzy"
)

// Field is an extra name/value pair to include in the output
type Field struct {
	Name  string
	Value any
}

// Repr returns "TypeName(a=1, b=two)" for a struct or pointer to struct, listing
// exported fields in declaration order. Extra fields replace fields of the same
// name in place and are otherwise appended. Other values are formatted with fmt.
func Repr(v any, extra ...Field) string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Sprint(v)
	}

	rt := rv.Type()
	fields := make([]Field, 0, rt.NumField()+len(extra))
	for i := range rt.NumField() {
		if !rt.Field(i).IsExported() {
			continue
		}
		fields = append(fields, Field{Name: rt.Field(i).Name, Value: rv.Field(i).Interface()})
	}

outer:
	for _, e := range extra {
		for i := range fields {
			if fields[i].Name == e.Name {
				fields[i].Value = e.Value
				continue outer
			}
		}
		fields = append(fields, e)
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s=%v", f.Name, f.Value)
	}
	return fmt.Sprintf("%s(%s)", rt.Name(), strings.Join(parts, ", "))
}

// KeyFunc returns a fuzzy key function that matches elements by their Repr.
func KeyFunc(extra ...Field) fuzzy.KeyFunc {
	return func(v any) string {
		return Repr(v, extra...)
	}
}
