package views

import (
	"context"
	"fmt"

	"devtoolbox_echo/internal/tools"
)

type regexView struct{}

func newRegexView(Deps) (View, error) {
	return regexView{}, nil
}

func (regexView) Key() string { return KeyRegexTester }

func (regexView) Form() Form {
	return Form{
		Fields: []Field{
			{Name: "pattern", Label: "Pattern", Kind: FieldText, Placeholder: `(\d+)-(?P<word>\w+)`},
			{Name: "flags", Label: "Flags (g i m s)", Kind: FieldText, Default: "g"},
			{Name: "input", Label: "Test text", Kind: FieldTextarea},
			{Name: "replacement", Label: "Replacement ($1, ${name})", Kind: FieldText},
		},
		Actions: []Option{
			{Value: "match", Label: "Match"},
			{Value: "replace", Label: "Replace"},
		},
	}
}

func (v regexView) Submit(_ context.Context, in Input) (Output, error) {
	var replacement *string
	switch in.Action {
	case "", "match":
	case "replace":
		r := in.Value("replacement")
		replacement = &r
	default:
		return Output{}, unknownAction(v.Key(), in.Action)
	}

	result, err := tools.TestRegex(in.Value("pattern"), in.Value("flags"), in.Value("input"), replacement)
	if err != nil {
		return Output{}, err
	}

	out := Output{Data: result}
	for i, m := range result.Matches {
		out.Pairs = append(out.Pairs, Pair{Key: fmt.Sprintf("#%d [%d, %d)", i+1, m.Start, m.End), Value: m.Text})
		for _, g := range m.Groups {
			label := fmt.Sprintf("  $%d", g.Index)
			if g.Name != "" {
				label = fmt.Sprintf("  $%d <%s>", g.Index, g.Name)
			}
			out.Pairs = append(out.Pairs, Pair{Key: label, Value: g.Text})
		}
	}
	if result.Replaced != nil {
		out.Text = *result.Replaced
	}

	switch n := len(result.Matches); {
	case n == 0:
		out.Message = "No matches"
	case result.Truncated:
		out.Message = fmt.Sprintf("Showing the first %d matches", n)
	case n == 1:
		out.Message = "1 match"
	default:
		out.Message = fmt.Sprintf("%d matches", n)
	}
	return out, nil
}
