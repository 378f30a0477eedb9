// ABOUTME: Recovers a JSON object from free-form model output.
// ABOUTME: Takes the span from the first '{' to the last '}' and decodes it.
package extractor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	errNoObject  = errors.New("no JSON object delimiters in output")
	errNotObject = errors.New("salvaged JSON is not an object")
)

// Salvage returns the JSON object embedded in text, or the canonical empty
// record when none can be recovered. It never fails.
func Salvage(text string) map[string]any {
	raw, err := salvage(text)
	if err != nil {
		return emptyRaw()
	}
	return raw
}

func salvage(text string) (map[string]any, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, errNoObject
	}

	var decoded any
	if err := json.Unmarshal([]byte(text[start:end+1]), &decoded); err != nil {
		return nil, fmt.Errorf("decode salvaged JSON: %w", err)
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return obj, nil
}

func emptyRaw() map[string]any {
	return map[string]any{
		"metrics":       []any{},
		"exercises":     []any{},
		"general_notes": []any{},
	}
}
