package compare

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// JSONFormatter writes a comparison set as one newline-terminated document.
// Decimals stay strings; blend names and recommendations are not HTML-escaped.
type JSONFormatter struct {
	Compact bool // single line, for piping into other tools
}

func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	if compSet == nil || compSet.BaseResult == nil {
		return "", errors.New("comparison has no base blend")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if !jf.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(compSet); err != nil {
		return "", fmt.Errorf("encode comparison: %w", err)
	}
	return buf.String(), nil
}
