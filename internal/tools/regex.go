package tools

import (
	"regexp"
	"strings"
)

// MaxRegexMatches caps the number of matches reported for one run
const MaxRegexMatches = 1000

// RegexGroup is one capture group of a match; Start is -1 when the group did not participate
type RegexGroup struct {
	Index int    `json:"index"`
	Name  string `json:"name,omitempty"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// RegexMatch is one match of the whole expression
type RegexMatch struct {
	Text   string       `json:"text"`
	Start  int          `json:"start"`
	End    int          `json:"end"`
	Groups []RegexGroup `json:"groups,omitempty"`
}

// RegexResult is the outcome of running an expression over a sample
type RegexResult struct {
	Pattern   string       `json:"pattern"`
	Matches   []RegexMatch `json:"matches"`
	Truncated bool         `json:"truncated,omitempty"`
	// Replaced is set when a replacement template was supplied
	Replaced *string `json:"replaced,omitempty"`
}

// CompileRegex builds an expression from a pattern and a flag string.
// Supported flags: g (all matches), i (case-insensitive), m (multi-line), s (dot matches newline).
// The returned bool reports whether g was present.
func CompileRegex(pattern, flags string) (*regexp.Regexp, bool, error) {
	if pattern == "" {
		return nil, false, invalidf("empty pattern")
	}
	global := false
	var inline strings.Builder
	for _, f := range flags {
		switch f {
		case 'g':
			global = true
		case 'i', 'm', 's':
			if !strings.ContainsRune(inline.String(), f) {
				inline.WriteRune(f)
			}
		case ' ', ',':
		default:
			return nil, false, invalidf("unsupported flag %q", f)
		}
	}
	full := pattern
	if inline.Len() > 0 {
		full = "(?" + inline.String() + ")" + pattern
	}
	re, err := regexp.Compile(full)
	if err != nil {
		return nil, false, invalidf("%v", err)
	}
	return re, global, nil
}

// TestRegex runs pattern over input and optionally applies replacement.
// Without the g flag only the first match is reported and replaced.
func TestRegex(pattern, flags, input string, replacement *string) (RegexResult, error) {
	re, global, err := CompileRegex(pattern, flags)
	if err != nil {
		return RegexResult{}, err
	}

	limit := 1
	if global {
		limit = MaxRegexMatches + 1
	}
	locs := re.FindAllStringSubmatchIndex(input, limit)

	result := RegexResult{Pattern: re.String(), Matches: []RegexMatch{}}
	if global && len(locs) > MaxRegexMatches {
		locs = locs[:MaxRegexMatches]
		result.Truncated = true
	}

	names := re.SubexpNames()
	for _, loc := range locs {
		m := RegexMatch{Text: input[loc[0]:loc[1]], Start: loc[0], End: loc[1]}
		for g := 1; g*2 < len(loc); g++ {
			group := RegexGroup{Index: g, Name: names[g], Start: loc[2*g], End: loc[2*g+1]}
			if group.Start >= 0 {
				group.Text = input[group.Start:group.End]
			}
			m.Groups = append(m.Groups, group)
		}
		result.Matches = append(result.Matches, m)
	}

	if replacement != nil {
		replaced := replaceMatches(re, input, *replacement, locs)
		result.Replaced = &replaced
	}
	return result, nil
}

func replaceMatches(re *regexp.Regexp, input, template string, locs [][]int) string {
	var out []byte
	last := 0
	for _, loc := range locs {
		out = append(out, input[last:loc[0]]...)
		out = re.ExpandString(out, template, input, loc)
		last = loc[1]
	}
	out = append(out, input[last:]...)
	return string(out)
}
