package template

import (
	"encoding/json"
	"fmt"
	"strings"

	deployerrors "github.com/nyambati/deployctl/internal/errors"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Render replaces every {{ name }} placeholder with its binding. Placeholders
// without a binding are written back verbatim. A placeholder that is never
// closed, or that opens another placeholder before closing, is an error.
func Render(text string, bindings Bindings) (string, error) {
	nodes, err := parse(text)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	out.Grow(len(text))
	for _, node := range nodes {
		switch typed := node.(type) {
		case nodeText:
			out.WriteString(typed.content)
		case nodePlaceholder:
			if value, ok := bindings[strings.TrimSpace(typed.content)]; ok {
				out.WriteString(value)
				continue
			}
			out.WriteString(openDelim + typed.content + closeDelim)
		}
	}
	return out.String(), nil
}

// EscapeJSON returns a copy of bindings whose values can be spliced into a
// JSON string literal without ending it early.
func EscapeJSON(bindings Bindings) Bindings {
	escaped := make(Bindings, len(bindings))
	for name, value := range bindings {
		quoted, _ := json.Marshal(value)
		escaped[name] = string(quoted[1 : len(quoted)-1])
	}
	return escaped
}

func parse(text string) ([]any, error) {
	var nodes []any
	var open *nodePlaceholder

	line, column := 1, 1
	start := 0
	var lastChar rune

	for i, currChar := range text {
		switch {
		case lastChar == '{' && currChar == '{':
			if open != nil {
				return nil, deployerrors.NewTemplateRenderError(line, column-1,
					fmt.Sprintf("unexpected '{{' inside placeholder opened at line %d col %d", open.line, open.column))
			}
			nodes = append(nodes, nodeText{content: text[start : i-1]})
			open = &nodePlaceholder{position: position{line: line, column: column - 1}}
			start = i + 1
			currChar = 0
		case lastChar == '}' && currChar == '}' && open != nil:
			open.content = text[start : i-1]
			nodes = append(nodes, *open)
			open = nil
			start = i + 1
			currChar = 0
		}

		if currChar == '\n' {
			line++
			column = 1
		} else {
			column++
		}
		lastChar = currChar
	}

	if open != nil {
		return nil, deployerrors.NewTemplateRenderError(open.line, open.column, "unclosed placeholder")
	}
	nodes = append(nodes, nodeText{content: text[start:]})
	return nodes, nil
}
