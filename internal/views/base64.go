package views

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"devtoolbox_echo/internal/tools"
)

type base64View struct{}

func newBase64View(Deps) (View, error) {
	return base64View{}, nil
}

func (base64View) Key() string { return KeyBase64 }

func (base64View) Form() Form {
	return Form{
		Fields: []Field{
			{Name: "input", Label: "Text", Kind: FieldTextarea},
			{Name: "file", Label: "Or a file to encode", Kind: FieldFile},
			{Name: "variant", Label: "Alphabet", Kind: FieldSelect, Default: tools.Base64Standard, Options: []Option{
				{Value: tools.Base64Standard, Label: "Standard"},
				{Value: tools.Base64URL, Label: "URL safe"},
				{Value: tools.Base64RawStandard, Label: "Standard, no padding"},
				{Value: tools.Base64RawURL, Label: "URL safe, no padding"},
			}},
		},
		Actions: []Option{
			{Value: "encode", Label: "Encode"},
			{Value: "decode", Label: "Decode"},
		},
		Multipart: true,
	}
}

func (v base64View) Submit(_ context.Context, in Input) (Output, error) {
	switch in.Action {
	case "", "encode":
		data := []byte(in.Value("input"))
		source := "text"
		if in.File != nil && len(in.File.Data) > 0 {
			data = in.File.Data
			source = in.File.Name
		}
		encoded, err := tools.EncodeBase64(data, in.Value("variant"))
		if err != nil {
			return Output{}, err
		}
		return Output{
			Message: fmt.Sprintf("Encoded %d bytes from %s", len(data), source),
			Text:    encoded,
		}, nil
	case "decode":
		decoded, err := tools.DecodeBase64(in.Value("input"))
		if err != nil {
			return Output{}, err
		}
		out := Output{
			Message: fmt.Sprintf("Decoded %d bytes", len(decoded.Data)),
			Text:    decoded.Text,
			Pairs: []Pair{
				{Key: "Alphabet", Value: decoded.Variant},
				{Key: "Bytes", Value: fmt.Sprint(len(decoded.Data))},
			},
		}
		if ct := http.DetectContentType(decoded.Data); strings.HasPrefix(ct, "image/") {
			out.Image = &Image{ContentType: ct, Data: decoded.Data, FileName: "decoded"}
		}
		return out, nil
	default:
		return Output{}, unknownAction(v.Key(), in.Action)
	}
}
