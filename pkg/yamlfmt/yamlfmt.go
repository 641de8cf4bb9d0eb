// Package yamlfmt renders values as human-friendly YAML.
//
// Mappings keep their order (ordered maps in insertion order, Go maps sorted by
// key), multi-line strings use literal block style, lists of several strings are
// written one item per line and other scalar-only lists are written inline.
package yamlfmt

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/fuzzymatch/pkg/fuzzy"
)

const indent = 2

// Format returns the YAML text for v without a trailing newline.
func Format(v any) (string, error) {
	node, err := toNode(v)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(node); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// Print writes the YAML text for v followed by a newline.
func Print(w io.Writer, v any) error {
	out, err := Format(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func toNode(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case *fuzzy.Container:
		return toNode(x.Defuzz())
	case *orderedmap.OrderedMap[string, any]:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if x == nil {
			return node, nil
		}
		for pair := x.Oldest(); pair != nil; pair = pair.Next() {
			if err := appendPair(node, pair.Key, pair.Value); err != nil {
				return nil, err
			}
		}
		return node, nil
	case string:
		return stringNode(x), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if _, ok := v.([]byte); ok {
			break
		}
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return sequenceNode(items)
	case reflect.Map:
		return mapNode(rv)
	}

	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", v, err)
	}
	return node, nil
}

func stringNode(s string) *yaml.Node {
	node := &yaml.Node{}
	// Encoding a string cannot fail; it picks quoting for values like "true" or "1".
	_ = node.Encode(s)
	if strings.Contains(strings.TrimRight(s, "\n"), "\n") {
		node.Style = yaml.LiteralStyle
	}
	return node
}

func sequenceNode(items []any) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	allStrings, allScalars := true, true
	for _, item := range items {
		child, err := toNode(item)
		if err != nil {
			return nil, err
		}
		if child.Kind != yaml.ScalarNode {
			allScalars = false
		}
		if _, ok := item.(string); !ok {
			allStrings = false
		}
		node.Content = append(node.Content, child)
	}
	if allScalars && !(allStrings && len(items) > 1) {
		node.Style = yaml.FlowStyle
	}
	return node, nil
}

func mapNode(rv reflect.Value) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return strings.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
	})
	for _, k := range keys {
		if err := appendPair(node, fmt.Sprint(k.Interface()), rv.MapIndex(k).Interface()); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func appendPair(node *yaml.Node, key string, value any) error {
	valueNode, err := toNode(value)
	if err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}
	node.Content = append(node.Content, stringNode(key), valueNode)
	return nil
}
