// Package markdown renders semantic values into Markdown text.
//
// Every function is pure: no state, no I/O. Text is inserted verbatim, so
// callers are responsible for escaping Markdown metacharacters when needed.
package markdown

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Heading levels accepted by Header.
const (
	minLevel = 1
	maxLevel = 6
)

// Header renders a heading of the given level followed by a blank line.
// Levels outside 1..6 are clamped.
func Header(text string, level int) string {
	level = max(minLevel, min(level, maxLevel))
	return strings.Repeat("#", level) + " " + text + "\n\n"
}

// Blockquote prefixes every line of text with a quote marker and ends the
// quote with a blank line.
func Blockquote(text string) string {
	var builder strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			builder.WriteString(">\n")
			continue
		}
		builder.WriteString("> " + line + "\n")
	}
	builder.WriteString("\n")
	return builder.String()
}

// Bold wraps text in strong emphasis markers.
func Bold(text string) string {
	return "**" + text + "**"
}

// Italic wraps text in emphasis markers.
func Italic(text string) string {
	return "_" + text + "_"
}

// InlineCode renders value as a code span. Non-string values are coerced to
// text first, so InlineCode(42) and InlineCode("42") are identical.
func InlineCode(value any) string {
	text := Stringify(value)

	// A code span fence must be longer than any backtick run inside it.
	run := longestRun(text, '`')
	fence := strings.Repeat("`", run+1)
	if run > 0 {
		return fence + " " + text + " " + fence
	}
	return fence + text + fence
}

// Stringify converts a value to its canonical textual form.
// Scalars use their natural representation; nil becomes "null";
// maps, slices and structs are rendered as compact JSON.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.String:
		return rv.String()
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer:
		return jsonText(value)
	default:
		return fmt.Sprint(value)
	}
}

// jsonText marshals structured values, falling back to fmt on failure
// (for example maps keyed by non-string types decoded from YAML).
func jsonText(value any) string {
	data, err := json.Marshal(normalize(value))
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(data)
}

// normalize converts map[any]any trees into map[string]any so they can be
// marshaled as JSON.
func normalize(value any) any {
	switch v := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[fmt.Sprint(key)] = normalize(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = normalize(val)
		}
		return out
	default:
		return value
	}
}

// longestRun returns the length of the longest run of r in s.
func longestRun(s string, r rune) int {
	longest, current := 0, 0
	for _, c := range s {
		if c != r {
			current = 0
			continue
		}
		current++
		longest = max(longest, current)
	}
	return longest
}

// TableHeader renders the names row and separator row of a table.
func TableHeader(columns []string) string {
	separators := make([]string, len(columns))
	for i := range columns {
		separators[i] = "---"
	}
	return TableRow(columns) + TableRow(separators)
}

// TableRow renders one table row. The cell count is not checked against the
// table's column count.
func TableRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |\n"
}

// List renders a bulleted list, one item per line, followed by a blank
// line. An empty list renders as the empty string.
func List(items []string) string {
	if len(items) == 0 {
		return ""
	}
	var builder strings.Builder
	for _, item := range items {
		builder.WriteString("- " + item + "\n")
	}
	builder.WriteString("\n")
	return builder.String()
}

// Link renders an inline link.
func Link(text, target string) string {
	return "[" + text + "](" + target + ")"
}
