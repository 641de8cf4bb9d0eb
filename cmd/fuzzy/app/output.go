package app

import (
	"fmt"
	"io"

	"github.com/stacklok/fuzzymatch/internal/document"
	"github.com/stacklok/fuzzymatch/pkg/yamlfmt"
)

const (
	outputYAML  = "yaml"
	outputJSON  = "json"
	outputTable = "table"
)

// checkOutput rejects output formats outside allowed before any work is done
func checkOutput(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format %q (want one of %v)", format, allowed)
}

// writeDocument prints v as YAML or indented JSON
func writeDocument(w io.Writer, v any, format string) error {
	switch format {
	case outputJSON:
		return document.EncodeJSON(w, v, true)
	default:
		return yamlfmt.Print(w, v)
	}
}

// readDocument decodes path, reading in when path is "-"
func readDocument(in io.Reader, path string) (any, error) {
	if path == "-" {
		return document.Read(in)
	}
	return document.ReadFile(path)
}
