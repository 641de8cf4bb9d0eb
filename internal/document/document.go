// Package document decodes YAML and JSON input into order-preserving values
// that the fuzzy matcher and the dictionary helpers understand.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/fuzzymatch/pkg/fuzzy"
)

// Map is the mapping type produced by Decode
type Map = orderedmap.OrderedMap[string, any]

// Decode parses a single YAML (or JSON) document. Mappings become *Map with
// keys in document order, sequences become []any and scalars take their YAML
// type. An empty document decodes to nil.
func Decode(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if root.Kind == 0 {
		return nil, nil
	}
	return fromNode(&root)
}

// Read decodes the whole of r
func Read(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return Decode(data)
}

// ReadFile decodes the file at path, or standard input when path is "-".
// Files ending in .jsonc or .hujson may contain comments and trailing commas.
func ReadFile(path string) (any, error) {
	if path == "-" {
		return Read(os.Stdin)
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonc", ".hujson":
		data, err = hujson.Standardize(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse document %s: %w", path, err)
		}
	}
	return Decode(data)
}

// ErrNoSelection is returned by Select when the path matches nothing
var ErrNoSelection = errors.New("path matches nothing")

// gjsonSyntax marks paths that need the GJSON engine rather than a plain walk
const gjsonSyntax = `*?#|@\!=<>%()`

// Select returns the part of doc addressed by a GJSON path such as
// "servers" or "groups.0.members". An empty path returns doc itself.
//
// Plain dotted paths are walked directly, so values keep their decoded types.
// Paths using GJSON wildcards, queries or modifiers go through a JSON encoding
// of doc: floats with no fraction come back as integers there, and a document
// holding .inf or .nan anywhere cannot be encoded at all.
func Select(doc any, path string) (any, error) {
	if path == "" {
		return doc, nil
	}
	if !strings.ContainsAny(path, gjsonSyntax) {
		return walk(doc, path)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return nil, fmt.Errorf("%s: %w", path, ErrNoSelection)
	}
	return Decode([]byte(result.Raw))
}

func walk(doc any, path string) (any, error) {
	cur := doc
	for _, segment := range strings.Split(path, ".") {
		switch v := cur.(type) {
		case *Map:
			next, ok := v.Get(segment)
			if !ok {
				return nil, fmt.Errorf("%s: %w", path, ErrNoSelection)
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= len(v) {
				return nil, fmt.Errorf("%s: %w", path, ErrNoSelection)
			}
			cur = v[i]
		default:
			return nil, fmt.Errorf("%s: %w", path, ErrNoSelection)
		}
	}
	return cur, nil
}

func fromNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromNode(node.Content[0])
	case yaml.AliasNode:
		return fromNode(node.Alias)
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := fromNode(child)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.MappingNode:
		m := orderedmap.New[string, any]()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
			}
			v, err := fromNode(valueNode)
			if err != nil {
				return nil, err
			}
			m.Set(keyNode.Value, v)
		}
		return m, nil
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
	}
}

// EncodeJSON writes v as JSON followed by a newline, preserving mapping order.
func EncodeJSON(w io.Writer, v any, indent bool) error {
	if c, ok := v.(*fuzzy.Container); ok {
		v = c.Defuzz()
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	if indent {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return fmt.Errorf("failed to indent JSON: %w", err)
		}
		data = buf.Bytes()
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// ErrEmpty is returned by RequireCollection for an empty document
var ErrEmpty = errors.New("document is empty")

// RequireCollection wraps the decoded document in a fuzzy container, failing
// with ErrEmpty for an empty document.
func RequireCollection(doc any, opts ...fuzzy.Option) (*fuzzy.Container, error) {
	if doc == nil {
		return nil, ErrEmpty
	}
	return fuzzy.New(doc, opts...)
}
