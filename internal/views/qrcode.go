package views

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"devtoolbox_echo/internal/services"
	"devtoolbox_echo/internal/tools"
)

type qrCodeView struct {
	cache Cache
	deps  Deps
}

func newQRCodeView(deps Deps) (View, error) {
	return &qrCodeView{cache: deps.Cache, deps: deps}, nil
}

func (v *qrCodeView) Key() string { return KeyQRCode }

func (v *qrCodeView) Form() Form {
	return Form{
		Fields: []Field{
			{Name: "content", Label: "Content", Kind: FieldTextarea, Placeholder: "https://example.com"},
			{Name: "level", Label: "Error correction", Kind: FieldSelect, Default: "M", Options: []Option{
				{Value: "L", Label: "L (7%)"},
				{Value: "M", Label: "M (15%)"},
				{Value: "Q", Label: "Q (25%)"},
				{Value: "H", Label: "H (30%)"},
			}},
			{Name: "size", Label: "Size (px)", Kind: FieldNumber, Default: "256"},
		},
		Actions: []Option{{Value: "generate", Label: "Generate"}},
	}
}

func (v *qrCodeView) Submit(ctx context.Context, in Input) (Output, error) {
	if in.Action != "" && in.Action != "generate" {
		return Output{}, unknownAction(v.Key(), in.Action)
	}
	size, err := in.Int("size", 256)
	if err != nil {
		return Output{}, err
	}
	opts := tools.QROptions{Level: in.Value("level"), Size: size}
	content := in.Value("content")

	png, err := v.render(ctx, content, opts)
	if err != nil {
		return Output{}, err
	}
	return Output{
		Message: fmt.Sprintf("QR code generated (%d bytes)", len(png)),
		Image:   &Image{ContentType: "image/png", FileName: "qrcode.png", Data: png},
	}, nil
}

// render returns the PNG for content, going through the cache when one is configured
func (v *qrCodeView) render(ctx context.Context, content string, opts tools.QROptions) ([]byte, error) {
	if v.cache == nil {
		return tools.QRCodePNG(content, opts)
	}

	return services.GetOrSet(ctx, v.cache, qrCacheKey(content, opts), v.deps.CacheTTL, func() ([]byte, error) {
		return tools.QRCodePNG(content, opts)
	})
}

func qrCacheKey(content string, opts tools.QROptions) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s", opts.Level, opts.Size, content)))
	return "qrcode:" + hex.EncodeToString(sum[:])
}
