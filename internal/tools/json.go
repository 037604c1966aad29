package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"gopkg.in/yaml.v3"
)

// JSONFormatOptions controls pretty printing
type JSONFormatOptions struct {
	// Indent is "2", "4" or "tab"
	Indent   string
	SortKeys bool
}

func (o JSONFormatOptions) indent() string {
	switch o.Indent {
	case "tab", "\t":
		return "\t"
	case "4":
		return "    "
	default:
		return "  "
	}
}

// FormatJSON pretty prints a JSON document.
// Key order is preserved unless SortKeys is set.
func FormatJSON(input string, opts JSONFormatOptions) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", invalidf("empty JSON input")
	}
	if !opts.SortKeys {
		var buf bytes.Buffer
		// offsets in the error must point into input, so indent it untrimmed
		if err := json.Indent(&buf, []byte(input), "", opts.indent()); err != nil {
			return "", describeJSONError(input, err)
		}
		return strings.TrimRight(buf.String(), " \t\r\n"), nil
	}

	value, err := decodeJSON(input)
	if err != nil {
		return "", err
	}
	return encodeJSON(value, opts.indent())
}

// MinifyJSON removes insignificant whitespace
func MinifyJSON(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", invalidf("empty JSON input")
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(input)); err != nil {
		return "", describeJSONError(input, err)
	}
	return buf.String(), nil
}

// JSONValidation describes the outcome of validating a document
type JSONValidation struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	// Kind is the top-level value type: object, array, string, number, boolean or null
	Kind string `json:"kind,omitempty"`
	// Size is the number of keys or elements of the top-level value
	Size  int `json:"size"`
	Depth int `json:"depth"`
}

// ValidateJSON reports whether input is a single well-formed JSON value
func ValidateJSON(input string) JSONValidation {
	if strings.TrimSpace(input) == "" {
		return JSONValidation{Message: "empty JSON input"}
	}
	value, err := decodeJSON(input)
	if err != nil {
		result := JSONValidation{Message: err.Error()}
		var posErr *JSONPositionError
		if errors.As(err, &posErr) {
			result.Message = posErr.Reason
			result.Line = posErr.Line
			result.Column = posErr.Column
		}
		return result
	}

	result := JSONValidation{Valid: true, Kind: jsonKind(value), Depth: jsonDepth(value)}
	switch v := value.(type) {
	case map[string]any:
		result.Size = len(v)
	case []any:
		result.Size = len(v)
	}
	return result
}

// QueryJSON extracts the value at a dotted path such as "items[0].name".
// An empty path returns the whole document.
func QueryJSON(input, path string) (string, error) {
	value, err := decodeJSON(input)
	if err != nil {
		return "", err
	}
	segments, err := parseJSONPath(path)
	if err != nil {
		return "", err
	}
	for _, seg := range segments {
		switch {
		case seg.index >= 0:
			arr, ok := value.([]any)
			if !ok {
				return "", invalidf("path %q: %s is not an array", path, seg)
			}
			if seg.index >= len(arr) {
				return "", invalidf("path %q: index %d out of range (len %d)", path, seg.index, len(arr))
			}
			value = arr[seg.index]
		default:
			obj, ok := value.(map[string]any)
			if !ok {
				return "", invalidf("path %q: %s is not an object", path, seg)
			}
			next, ok := obj[seg.key]
			if !ok {
				return "", invalidf("path %q: key %q not found", path, seg.key)
			}
			value = next
		}
	}
	return encodeJSON(value, "  ")
}

// ConvertJSON re-encodes a JSON document as "yaml" or "toml"
func ConvertJSON(input, format string) (string, error) {
	value, err := decodeJSON(input)
	if err != nil {
		return "", err
	}
	plain := toPlain(value)

	switch strings.ToLower(format) {
	case "yaml", "yml":
		out, err := yaml.Marshal(plain)
		if err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		return string(out), nil
	case "toml":
		obj, ok := plain.(map[string]any)
		if !ok {
			return "", invalidf("TOML needs a JSON object at the top level, got %s", jsonKind(value))
		}
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(obj); err != nil {
			return "", fmt.Errorf("encode toml: %w", err)
		}
		return buf.String(), nil
	default:
		return "", invalidf("unsupported target format %q", format)
	}
}

// HighlightJSON renders source as HTML with inline styles
func HighlightJSON(source, style string) (string, error) {
	return Highlight(source, "json", style)
}

// Highlight renders source in the given language as HTML with inline styles
func Highlight(source, language, style string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	s := styles.Get(style)
	if s == nil {
		s = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("tokenise: %w", err)
	}
	var buf bytes.Buffer
	if err := html.New(html.WithClasses(false)).Format(&buf, s, iterator); err != nil {
		return "", fmt.Errorf("format html: %w", err)
	}
	return buf.String(), nil
}

// JSONPositionError is a syntax error with a 1-based line and column
type JSONPositionError struct {
	Reason string
	Line   int
	Column int
}

func (e *JSONPositionError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Reason)
}

func (e *JSONPositionError) Unwrap() error {
	return ErrInvalidInput
}

func decodeJSON(input string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		if err == io.EOF {
			return nil, invalidf("empty JSON input")
		}
		return nil, describeJSONError(input, err)
	}
	// A second value after the first one is a syntax error too
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		offset := dec.InputOffset()
		line, col := lineColumn(input, offset)
		return nil, &JSONPositionError{Reason: "unexpected data after top-level value", Line: line, Column: col}
	}
	return value, nil
}

func encodeJSON(value any, indent string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(value); err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func describeJSONError(input string, err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := lineColumn(input, syntaxErr.Offset)
		return &JSONPositionError{Reason: syntaxErr.Error(), Line: line, Column: col}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		line, col := lineColumn(input, int64(len(input)))
		return &JSONPositionError{Reason: "unexpected end of JSON input", Line: line, Column: col}
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

// lineColumn converts a byte offset into a 1-based line and column
func lineColumn(input string, offset int64) (int, int) {
	if offset > int64(len(input)) {
		offset = int64(len(input))
	}
	line, col := 1, 1
	for _, r := range input[:offset] {
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

func jsonKind(value any) string {
	switch value.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return "null"
	}
}

func jsonDepth(value any) int {
	switch v := value.(type) {
	case map[string]any:
		deepest := 0
		for _, child := range v {
			if d := jsonDepth(child); d > deepest {
				deepest = d
			}
		}
		return deepest + 1
	case []any:
		deepest := 0
		for _, child := range v {
			if d := jsonDepth(child); d > deepest {
				deepest = d
			}
		}
		return deepest + 1
	default:
		return 0
	}
}

// toPlain swaps json.Number for int64 or float64 so other encoders see real numbers
func toPlain(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, child := range v {
			out[k] = toPlain(child)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			out[i] = toPlain(child)
		}
		return out
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	default:
		return v
	}
}

type pathSegment struct {
	key   string
	index int
}

func (s pathSegment) String() string {
	if s.index >= 0 {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return s.key
}

func parseJSONPath(path string) ([]pathSegment, error) {
	path = strings.TrimPrefix(strings.TrimSpace(path), "$")
	path = strings.TrimPrefix(path, ".")
	var segments []pathSegment
	for path != "" {
		switch path[0] {
		case '.':
			path = path[1:]
		case '[':
			end := strings.IndexByte(path, ']')
			if end < 0 {
				return nil, invalidf("unclosed '[' in path")
			}
			inner := path[1:end]
			if idx, err := strconv.Atoi(inner); err == nil {
				if idx < 0 {
					return nil, invalidf("negative index %d in path", idx)
				}
				segments = append(segments, pathSegment{index: idx})
			} else {
				key := strings.Trim(inner, `"'`)
				segments = append(segments, pathSegment{key: key, index: -1})
			}
			path = path[end+1:]
		default:
			end := strings.IndexAny(path, ".[")
			if end < 0 {
				end = len(path)
			}
			segments = append(segments, pathSegment{key: path[:end], index: -1})
			path = path[end:]
		}
	}
	return segments, nil
}
