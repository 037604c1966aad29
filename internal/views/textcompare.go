package views

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"devtoolbox_echo/internal/tools"
)

var diffTable = template.Must(template.New("diff").Parse(
	`<table class="diff">{{range .}}<tr class="diff-{{.Kind}}">` +
		`<td class="ln">{{if .OldLine}}{{.OldLine}}{{end}}</td>` +
		`<td class="ln">{{if .NewLine}}{{.NewLine}}{{end}}</td>` +
		`<td class="mark">{{if eq .Kind "insert"}}+{{else if eq .Kind "delete"}}-{{end}}</td>` +
		`<td><code>{{.Text}}</code></td></tr>{{end}}</table>`))

type textCompareView struct{}

func newTextCompareView(Deps) (View, error) {
	return textCompareView{}, nil
}

func (textCompareView) Key() string { return KeyTextCompare }

func (textCompareView) Form() Form {
	return Form{
		Fields: []Field{
			{Name: "original", Label: "Original", Kind: FieldTextarea},
			{Name: "modified", Label: "Modified", Kind: FieldTextarea},
			{Name: "ignore_case", Label: "Ignore case", Kind: FieldCheckbox},
			{Name: "ignore_whitespace", Label: "Ignore whitespace", Kind: FieldCheckbox},
			{Name: "normalize", Label: "Unicode normalise", Kind: FieldCheckbox},
		},
		Actions: []Option{{Value: "compare", Label: "Compare"}},
	}
}

func (v textCompareView) Submit(_ context.Context, in Input) (Output, error) {
	if in.Action != "" && in.Action != "compare" {
		return Output{}, unknownAction(v.Key(), in.Action)
	}
	result, err := tools.CompareText(in.Value("original"), in.Value("modified"), tools.DiffOptions{
		IgnoreCase:       in.Bool("ignore_case"),
		IgnoreWhitespace: in.Bool("ignore_whitespace"),
		Normalize:        in.Bool("normalize"),
	})
	if err != nil {
		return Output{}, err
	}

	var table bytes.Buffer
	if err := diffTable.Execute(&table, result.Lines); err != nil {
		return Output{}, fmt.Errorf("render diff: %w", err)
	}

	message := fmt.Sprintf("%d added, %d removed", result.Inserted, result.Deleted)
	if result.Identical {
		message = "Texts are identical"
	}
	return Output{
		Message: message,
		Text:    result.Unified,
		HTML:    template.HTML(table.String()),
		Pairs: []Pair{
			{Key: "Similarity", Value: fmt.Sprintf("%.1f%%", result.Similarity*100)},
			{Key: "Added", Value: fmt.Sprint(result.Inserted)},
			{Key: "Removed", Value: fmt.Sprint(result.Deleted)},
		},
		Data: result,
	}, nil
}
