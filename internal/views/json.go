package views

import (
	"context"
	"fmt"
	"html/template"
	"strconv"

	"devtoolbox_echo/internal/tools"
)

var indentOptions = []Option{
	{Value: "2", Label: "2 spaces"},
	{Value: "4", Label: "4 spaces"},
	{Value: "tab", Label: "Tab"},
}

type jsonFormatterView struct {
	style string
}

func newJSONFormatterView(deps Deps) (View, error) {
	style := deps.HighlightStyle
	if style == "" {
		style = "github"
	}
	return &jsonFormatterView{style: style}, nil
}

func (v *jsonFormatterView) Key() string { return KeyDevJSONFormatter }

func (v *jsonFormatterView) Form() Form {
	return Form{
		Fields: []Field{
			{Name: "input", Label: "JSON", Kind: FieldTextarea, Placeholder: `{"hello": "world"}`},
			{Name: "indent", Label: "Indent", Kind: FieldSelect, Options: indentOptions, Default: "2"},
			{Name: "sort_keys", Label: "Sort keys", Kind: FieldCheckbox},
		},
		Actions: []Option{
			{Value: "format", Label: "Format"},
			{Value: "minify", Label: "Minify"},
		},
	}
}

func (v *jsonFormatterView) Submit(_ context.Context, in Input) (Output, error) {
	var (
		out     string
		err     error
		message string
	)
	switch in.Action {
	case "", "format":
		out, err = tools.FormatJSON(in.Value("input"), tools.JSONFormatOptions{
			Indent:   in.Value("indent"),
			SortKeys: in.Bool("sort_keys"),
		})
		message = "JSON formatted"
	case "minify":
		out, err = tools.MinifyJSON(in.Value("input"))
		message = "JSON minified"
	default:
		return Output{}, unknownAction(v.Key(), in.Action)
	}
	if err != nil {
		return Output{}, err
	}

	highlighted, err := tools.HighlightJSON(out, v.style)
	if err != nil {
		return Output{}, err
	}
	return Output{
		Message: message,
		Text:    out,
		// chroma escapes every token it emits
		HTML: template.HTML(highlighted),
	}, nil
}

type jsonConverterView struct{}

func newJSONConverterView(Deps) (View, error) {
	return jsonConverterView{}, nil
}

func (jsonConverterView) Key() string { return KeyJSONConverter }

func (jsonConverterView) Form() Form {
	return Form{
		Fields: []Field{
			{Name: "input", Label: "JSON", Kind: FieldTextarea},
			{Name: "target", Label: "Output", Kind: FieldSelect, Default: "json", Options: []Option{
				{Value: "json", Label: "JSON"},
				{Value: "yaml", Label: "YAML"},
				{Value: "toml", Label: "TOML"},
			}},
			{Name: "indent", Label: "Indent", Kind: FieldSelect, Options: indentOptions, Default: "2"},
		},
		Actions: []Option{{Value: "convert", Label: "Convert"}},
	}
}

func (v jsonConverterView) Submit(_ context.Context, in Input) (Output, error) {
	if in.Action != "" && in.Action != "convert" {
		return Output{}, unknownAction(v.Key(), in.Action)
	}
	target := in.Value("target")
	var (
		out string
		err error
	)
	switch target {
	case "", "json":
		target = "json"
		out, err = tools.FormatJSON(in.Value("input"), tools.JSONFormatOptions{Indent: in.Value("indent"), SortKeys: true})
	default:
		out, err = tools.ConvertJSON(in.Value("input"), target)
	}
	if err != nil {
		return Output{}, err
	}
	return Output{Message: fmt.Sprintf("Converted to %s", target), Text: out}, nil
}

type jsonValidatorView struct{}

func newJSONValidatorView(Deps) (View, error) {
	return jsonValidatorView{}, nil
}

func (jsonValidatorView) Key() string { return KeyJSONValidator }

func (jsonValidatorView) Form() Form {
	return Form{
		Fields: []Field{
			{Name: "input", Label: "JSON", Kind: FieldTextarea},
			{Name: "path", Label: "Path", Kind: FieldText, Placeholder: "items[0].name"},
		},
		Actions: []Option{
			{Value: "validate", Label: "Validate"},
			{Value: "query", Label: "Query path"},
		},
	}
}

func (v jsonValidatorView) Submit(_ context.Context, in Input) (Output, error) {
	switch in.Action {
	case "", "validate":
		result := tools.ValidateJSON(in.Value("input"))
		if !result.Valid {
			if result.Line > 0 {
				return Output{}, fmt.Errorf("%w: line %d, column %d: %s", tools.ErrInvalidInput, result.Line, result.Column, result.Message)
			}
			return Output{}, fmt.Errorf("%w: %s", tools.ErrInvalidInput, result.Message)
		}
		return Output{
			Message: "Valid JSON",
			Pairs: []Pair{
				{Key: "Type", Value: result.Kind},
				{Key: "Size", Value: strconv.Itoa(result.Size)},
				{Key: "Depth", Value: strconv.Itoa(result.Depth)},
			},
			Data: result,
		}, nil
	case "query":
		out, err := tools.QueryJSON(in.Value("input"), in.Value("path"))
		if err != nil {
			return Output{}, err
		}
		return Output{Message: "Path resolved", Text: out}, nil
	default:
		return Output{}, unknownAction(v.Key(), in.Action)
	}
}
