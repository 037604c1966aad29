package views

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"devtoolbox_echo/internal/tools"
)

var errNoUpload = fmt.Errorf("%w: choose an image to upload", tools.ErrInvalidInput)

func formatOptions(withKeep bool) []Option {
	var options []Option
	if withKeep {
		options = append(options, Option{Value: "", Label: "Keep format"})
	}
	for _, f := range tools.ImageFormats {
		options = append(options, Option{Value: f, Label: strings.ToUpper(f)})
	}
	return options
}

func uploaded(in Input) (*File, error) {
	if in.File == nil || len(in.File.Data) == 0 {
		return nil, errNoUpload
	}
	return in.File, nil
}

func outputName(original, format string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	if base == "" || base == "." {
		base = "image"
	}
	ext := format
	if format == "jpeg" {
		ext = "jpg"
	}
	return base + "." + ext
}

func sizePairs(res tools.ImageResult) []Pair {
	return []Pair{
		{Key: "Original", Value: fmt.Sprintf("%s %dx%d, %d bytes", res.Original.Format, res.Original.Width, res.Original.Height, res.Original.Bytes)},
		{Key: "Result", Value: fmt.Sprintf("%s %dx%d, %d bytes", res.Result.Format, res.Result.Width, res.Result.Height, res.Result.Bytes)},
		{Key: "Ratio", Value: fmt.Sprintf("%.1f%%", res.Ratio()*100)},
	}
}

type imageConverterView struct{}

func newImageConverterView(Deps) (View, error) {
	return imageConverterView{}, nil
}

func (imageConverterView) Key() string { return KeyImageConverter }

func (imageConverterView) Form() Form {
	return Form{
		Fields: []Field{
			{Name: "file", Label: "Image", Kind: FieldFile},
			{Name: "format", Label: "Convert to", Kind: FieldSelect, Options: formatOptions(false), Default: "png"},
			{Name: "quality", Label: "JPEG quality", Kind: FieldNumber, Default: "90"},
		},
		Actions:   []Option{{Value: "convert", Label: "Convert"}},
		Multipart: true,
	}
}

func (v imageConverterView) Submit(_ context.Context, in Input) (Output, error) {
	if in.Action != "" && in.Action != "convert" {
		return Output{}, unknownAction(v.Key(), in.Action)
	}
	file, err := uploaded(in)
	if err != nil {
		return Output{}, err
	}
	quality, err := in.Int("quality", 90)
	if err != nil {
		return Output{}, err
	}
	res, err := tools.ConvertImage(file.Data, in.Value("format"), quality)
	if err != nil {
		return Output{}, err
	}
	return Output{
		Message: fmt.Sprintf("Converted %s to %s", res.Original.Format, res.Result.Format),
		Pairs:   sizePairs(res),
		Image:   &Image{ContentType: res.ContentType, FileName: outputName(file.Name, res.Result.Format), Data: res.Data},
		Data:    res,
	}, nil
}

type imageCompressorView struct{}

func newImageCompressorView(Deps) (View, error) {
	return imageCompressorView{}, nil
}

func (imageCompressorView) Key() string { return KeyImageCompressor }

func (imageCompressorView) Form() Form {
	return Form{
		Fields: []Field{
			{Name: "file", Label: "Image", Kind: FieldFile},
			{Name: "quality", Label: "Quality (1-100)", Kind: FieldNumber, Default: "75"},
			{Name: "max_width", Label: "Max width (px, 0 = keep)", Kind: FieldNumber, Default: "0"},
			{Name: "format", Label: "Output format", Kind: FieldSelect, Options: formatOptions(true)},
		},
		Actions:   []Option{{Value: "compress", Label: "Compress"}},
		Multipart: true,
	}
}

func (v imageCompressorView) Submit(_ context.Context, in Input) (Output, error) {
	if in.Action != "" && in.Action != "compress" {
		return Output{}, unknownAction(v.Key(), in.Action)
	}
	file, err := uploaded(in)
	if err != nil {
		return Output{}, err
	}
	quality, err := in.Int("quality", 75)
	if err != nil {
		return Output{}, err
	}
	maxWidth, err := in.Int("max_width", 0)
	if err != nil {
		return Output{}, err
	}
	res, err := tools.CompressImage(file.Data, tools.CompressOptions{
		Quality:  quality,
		MaxWidth: maxWidth,
		Format:   in.Value("format"),
	})
	if err != nil {
		return Output{}, err
	}

	message := fmt.Sprintf("Saved %.1f%%", (1-res.Ratio())*100)
	if res.KeptOriginal {
		message = "Image is already smaller than a re-encoded copy; kept the original"
	}
	return Output{
		Message: message,
		Pairs:   sizePairs(res),
		Image:   &Image{ContentType: res.ContentType, FileName: outputName(file.Name, res.Result.Format), Data: res.Data},
		Data:    res,
	}, nil
}

// IsUploadMissing reports whether err was caused by a form submitted without a file
func IsUploadMissing(err error) bool {
	return errors.Is(err, errNoUpload)
}
