package tools

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// maxImagePixels guards against decompression bombs
const maxImagePixels = 50_000_000

// ImageFormats lists the encodable output formats
var ImageFormats = []string{"png", "jpeg", "gif", "bmp", "tiff"}

var imageContentTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
	"webp": "image/webp",
}

// ImageInfo describes an encoded image
type ImageInfo struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Bytes  int    `json:"bytes"`
}

// ImageResult is an encoded output image together with the input it came from
type ImageResult struct {
	Data        []byte    `json:"-"`
	ContentType string    `json:"content_type"`
	Original    ImageInfo `json:"original"`
	Result      ImageInfo `json:"result"`
	// KeptOriginal is set when re-encoding would have produced a larger file
	KeptOriginal bool `json:"kept_original,omitempty"`
}

// Ratio is the result size as a fraction of the original size
func (r ImageResult) Ratio() float64 {
	if r.Original.Bytes == 0 {
		return 0
	}
	return float64(r.Result.Bytes) / float64(r.Original.Bytes)
}

// CompressOptions controls CompressImage
type CompressOptions struct {
	// Quality is the JPEG quality, 1-100
	Quality int
	// MaxWidth downscales wider images, keeping the aspect ratio; 0 disables
	MaxWidth int
	// Format overrides the output format; empty keeps the input format
	Format string
}

// NormalizeImageFormat maps aliases such as "jpg" and "tif" to encoder names
func NormalizeImageFormat(format string) string {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	default:
		return f
	}
}

// ImageContentType returns the MIME type for a format name
func ImageContentType(format string) string {
	if ct, ok := imageContentTypes[NormalizeImageFormat(format)]; ok {
		return ct
	}
	return "application/octet-stream"
}

// DecodeImage decodes any supported format after checking its dimensions
func DecodeImage(data []byte) (image.Image, ImageInfo, error) {
	if len(data) == 0 {
		return nil, ImageInfo{}, invalidf("empty image")
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ImageInfo{}, invalidf("unsupported or corrupt image: %v", err)
	}
	if cfg.Width*cfg.Height > maxImagePixels {
		return nil, ImageInfo{}, invalidf("image is %dx%d, limit is %d pixels", cfg.Width, cfg.Height, maxImagePixels)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ImageInfo{}, invalidf("decode %s: %v", format, err)
	}
	b := img.Bounds()
	return img, ImageInfo{Format: format, Width: b.Dx(), Height: b.Dy(), Bytes: len(data)}, nil
}

// ConvertImage re-encodes data in the target format
func ConvertImage(data []byte, target string, quality int) (ImageResult, error) {
	target = NormalizeImageFormat(target)
	img, info, err := DecodeImage(data)
	if err != nil {
		return ImageResult{}, err
	}
	out, err := EncodeImage(img, target, quality, false)
	if err != nil {
		return ImageResult{}, err
	}
	b := img.Bounds()
	return ImageResult{
		Data:        out,
		ContentType: ImageContentType(target),
		Original:    info,
		Result:      ImageInfo{Format: target, Width: b.Dx(), Height: b.Dy(), Bytes: len(out)},
	}, nil
}

// CompressImage shrinks an image by lossy re-encoding and optional downscaling.
// When nothing is resized and the format is unchanged but the output grows, the input is returned.
func CompressImage(data []byte, opts CompressOptions) (ImageResult, error) {
	img, info, err := DecodeImage(data)
	if err != nil {
		return ImageResult{}, err
	}
	format := NormalizeImageFormat(opts.Format)
	if format == "" {
		format = info.Format
	}
	if format == "webp" {
		// no webp encoder; fall back to the lossy format
		format = "jpeg"
	}
	quality := opts.Quality
	if quality == 0 {
		quality = 75
	}

	resized := false
	if opts.MaxWidth < 0 {
		return ImageResult{}, invalidf("max width must not be negative")
	}
	if opts.MaxWidth > 0 && img.Bounds().Dx() > opts.MaxWidth {
		img = scaleToWidth(img, opts.MaxWidth)
		resized = true
	}

	out, err := EncodeImage(img, format, quality, true)
	if err != nil {
		return ImageResult{}, err
	}
	b := img.Bounds()
	result := ImageResult{
		Data:        out,
		ContentType: ImageContentType(format),
		Original:    info,
		Result:      ImageInfo{Format: format, Width: b.Dx(), Height: b.Dy(), Bytes: len(out)},
	}
	if !resized && format == info.Format && len(out) >= len(data) {
		result.Data = data
		result.Result = info
		result.KeptOriginal = true
	}
	return result, nil
}

// EncodeImage writes img in format; compact selects the smallest lossless settings
func EncodeImage(img image.Image, format string, quality int, compact bool) ([]byte, error) {
	if quality == 0 {
		quality = jpeg.DefaultQuality
	}
	if quality < 1 || quality > 100 {
		return nil, invalidf("quality must be between 1 and 100")
	}

	var buf bytes.Buffer
	var err error
	switch NormalizeImageFormat(format) {
	case "png":
		enc := png.Encoder{CompressionLevel: png.DefaultCompression}
		if compact {
			enc.CompressionLevel = png.BestCompression
		}
		err = enc.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: quality})
	case "gif":
		err = gif.Encode(&buf, img, &gif.Options{NumColors: 256})
	case "bmp":
		err = bmp.Encode(&buf, img)
	case "tiff":
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return nil, invalidf("unsupported output format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// flatten draws img over white so transparent areas don't turn black in JPEG
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

func scaleToWidth(img image.Image, width int) image.Image {
	b := img.Bounds()
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
