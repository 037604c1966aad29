package tools

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/unicode/norm"
)

// DiffKind labels a line of a line diff
type DiffKind string

const (
	DiffEqual  DiffKind = "equal"
	DiffInsert DiffKind = "insert"
	DiffDelete DiffKind = "delete"
)

// DiffOptions controls how lines are compared
type DiffOptions struct {
	IgnoreCase       bool
	IgnoreWhitespace bool
	// Normalize applies Unicode NFC before comparing
	Normalize bool
	// Context is the number of unchanged lines around each unified hunk
	Context int
}

// DiffLine is one line of the side-by-side result; line numbers are 1-based and 0 when absent
type DiffLine struct {
	Kind    DiffKind `json:"kind"`
	Text    string   `json:"text"`
	OldLine int      `json:"old_line,omitempty"`
	NewLine int      `json:"new_line,omitempty"`
}

// DiffResult is a line-level comparison of two texts
type DiffResult struct {
	Lines      []DiffLine `json:"lines"`
	Unified    string     `json:"unified"`
	Similarity float64    `json:"similarity"`
	Inserted   int        `json:"inserted"`
	Deleted    int        `json:"deleted"`
	Identical  bool       `json:"identical"`
}

// CompareText diffs two texts line by line
func CompareText(original, modified string, opts DiffOptions) (DiffResult, error) {
	a := splitLines(original)
	b := splitLines(modified)
	keyA := compareKeys(a, opts)
	keyB := compareKeys(b, opts)

	matcher := difflib.NewMatcher(keyA, keyB)
	result := DiffResult{Similarity: matcher.Ratio(), Lines: []DiffLine{}}

	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for i := op.I1; i < op.I2; i++ {
				j := op.J1 + (i - op.I1)
				result.Lines = append(result.Lines, DiffLine{Kind: DiffEqual, Text: b[j], OldLine: i + 1, NewLine: j + 1})
			}
		case 'd', 'r', 'i':
			for i := op.I1; i < op.I2; i++ {
				result.Lines = append(result.Lines, DiffLine{Kind: DiffDelete, Text: a[i], OldLine: i + 1})
				result.Deleted++
			}
			for j := op.J1; j < op.J2; j++ {
				result.Lines = append(result.Lines, DiffLine{Kind: DiffInsert, Text: b[j], NewLine: j + 1})
				result.Inserted++
			}
		}
	}
	result.Identical = result.Inserted == 0 && result.Deleted == 0

	context := opts.Context
	if context <= 0 {
		context = 3
	}
	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        withNewlines(keyA),
		B:        withNewlines(keyB),
		FromFile: "original",
		ToFile:   "modified",
		Context:  context,
	})
	if err != nil {
		return DiffResult{}, err
	}
	result.Unified = unified
	return result, nil
}

func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func compareKeys(lines []string, opts DiffOptions) []string {
	keys := make([]string, len(lines))
	for i, line := range lines {
		key := line
		if opts.Normalize {
			key = norm.NFC.String(key)
		}
		if opts.IgnoreWhitespace {
			key = strings.Join(strings.Fields(key), " ")
		}
		if opts.IgnoreCase {
			key = strings.ToLower(key)
		}
		keys[i] = key
	}
	return keys
}

func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line + "\n"
	}
	return out
}
