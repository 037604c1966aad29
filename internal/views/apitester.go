package views

import (
	"context"
	"errors"
	"fmt"

	"devtoolbox_echo/internal/tools"
)

type apiTesterView struct {
	client *tools.APIClient
}

func newAPITesterView(deps Deps) (View, error) {
	if deps.APIClient == nil {
		return nil, errors.New("api tester needs an HTTP client")
	}
	return &apiTesterView{client: deps.APIClient}, nil
}

func (v *apiTesterView) Key() string { return KeyAPITester }

func (v *apiTesterView) Form() Form {
	methods := []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	options := make([]Option, len(methods))
	for i, m := range methods {
		options[i] = Option{Value: m, Label: m}
	}
	return Form{
		Fields: []Field{
			{Name: "method", Label: "Method", Kind: FieldSelect, Options: options, Default: "GET"},
			{Name: "url", Label: "URL", Kind: FieldText, Placeholder: "https://httpbin.org/get"},
			{Name: "headers", Label: "Headers (Name: value per line)", Kind: FieldTextarea},
			{Name: "body", Label: "Body", Kind: FieldTextarea},
		},
		Actions: []Option{{Value: "send", Label: "Send"}},
	}
}

func (v *apiTesterView) Submit(ctx context.Context, in Input) (Output, error) {
	if in.Action != "" && in.Action != "send" {
		return Output{}, unknownAction(v.Key(), in.Action)
	}
	headers, err := tools.ParseHeaderLines(in.Value("headers"))
	if err != nil {
		return Output{}, err
	}
	resp, err := v.client.Send(ctx, tools.APIRequest{
		Method:  in.Value("method"),
		URL:     in.Value("url"),
		Headers: headers,
		Body:    in.Value("body"),
	})
	if err != nil {
		return Output{}, err
	}

	body := resp.Body
	if pretty, err := tools.FormatJSON(body, tools.JSONFormatOptions{}); err == nil {
		body = pretty
	}
	pairs := []Pair{
		{Key: "Status", Value: resp.Status},
		{Key: "Time", Value: resp.Duration.String()},
		{Key: "Size", Value: fmt.Sprintf("%d bytes", len(resp.Body))},
	}
	if resp.Truncated {
		pairs = append(pairs, Pair{Key: "Note", Value: "body truncated"})
	}
	return Output{
		Message: fmt.Sprintf("Response %d", resp.StatusCode),
		Text:    tools.FormatHeaders(resp.Headers) + "\n" + body,
		Pairs:   pairs,
		Data:    resp,
	}, nil
}
