package merge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	deployerrors "github.com/nyambati/deployctl/internal/errors"
)

// Merge combines documents left to right with merge-patch semantics: objects
// present on both sides are merged recursively, anything else in the later
// document (arrays and null included) replaces the earlier value. The inputs
// are never modified.
func Merge(docs ...map[string]any) map[string]any {
	result := map[string]any{}
	for _, doc := range docs {
		result = mergeMaps(result, doc)
	}
	return result
}

func mergeMaps(base, patch map[string]any) map[string]any {
	result := make(map[string]any, len(base)+len(patch))
	for k, v := range base {
		result[k] = v
	}

	for k, v := range patch {
		if patchMap, ok := v.(map[string]any); ok {
			if baseMap, ok := result[k].(map[string]any); ok {
				result[k] = mergeMaps(baseMap, patchMap)
				continue
			}
		}
		result[k] = clone(v)
	}
	return result
}

func clone(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		return mergeMaps(nil, typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = clone(item)
		}
		return out
	default:
		return typed
	}
}

// Renderer rewrites a file's raw text before it is parsed.
type Renderer func(text string) (string, error)

// LoadFiles reads and parses every path in order. A non-nil render is applied
// to each file's text first, so keys produced by rendering take part in the
// merge like any literal key.
func LoadFiles(paths []string, render Renderer) ([]map[string]any, error) {
	docs := make([]map[string]any, 0, len(paths))
	for _, path := range paths {
		doc, err := LoadFile(path, render)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// LoadFile parses a single JSON document whose root must be an object.
// Numbers are kept as json.Number so large integers survive re-encoding.
func LoadFile(path string, render Renderer) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, deployerrors.NewConfigReadError(path, err.Error())
	}

	text := string(data)
	if render != nil {
		if text, err = render(text); err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", path, err)
		}
	}

	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()

	var doc map[string]any
	if err := decoder.Decode(&doc); err != nil {
		return nil, deployerrors.NewConfigParseError(path, err.Error())
	}
	if decoder.More() {
		return nil, deployerrors.NewConfigParseError(path, "unexpected data after top-level object")
	}
	if doc == nil {
		return nil, deployerrors.NewConfigParseError(path, "document root must be an object")
	}
	return doc, nil
}

// Encode serializes a merged document back to JSON text. Map keys are written
// in sorted order so equal documents always encode identically.
func Encode(doc map[string]any) (string, error) {
	data, err := marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode merged config: %w", err)
	}
	return string(data), nil
}

func marshal(doc map[string]any) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buffer.Bytes(), "\n"), nil
}
