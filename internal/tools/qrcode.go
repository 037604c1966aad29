package tools

import (
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	minQRSize = 64
	maxQRSize = 2048
	// maxQRContent is the byte capacity of a version 40 symbol at level L
	maxQRContent = 2953
)

// QROptions controls QR code rendering
type QROptions struct {
	// Level is one of L, M, Q, H
	Level string
	// Size is the PNG width in pixels
	Size int
}

// QRLevel maps the one-letter recovery level to the library constant
func QRLevel(level string) (qrcode.RecoveryLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "L":
		return qrcode.Low, nil
	case "", "M":
		return qrcode.Medium, nil
	case "Q":
		return qrcode.High, nil
	case "H":
		return qrcode.Highest, nil
	default:
		return qrcode.Medium, invalidf("unknown recovery level %q", level)
	}
}

func checkQRContent(content string) error {
	if content == "" {
		return invalidf("empty QR content")
	}
	if len(content) > maxQRContent {
		return invalidf("content is %d bytes, QR codes hold at most %d", len(content), maxQRContent)
	}
	return nil
}

// QRCodePNG renders content as a PNG image
func QRCodePNG(content string, opts QROptions) ([]byte, error) {
	if err := checkQRContent(content); err != nil {
		return nil, err
	}
	level, err := QRLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	size := opts.Size
	if size == 0 {
		size = 256
	}
	if size < minQRSize || size > maxQRSize {
		return nil, invalidf("size must be between %d and %d", minQRSize, maxQRSize)
	}
	png, err := qrcode.Encode(content, level, size)
	if err != nil {
		return nil, invalidf("encode qr: %v", err)
	}
	return png, nil
}

// QRCodeText renders content with block characters for terminals
func QRCodeText(content, level string) (string, error) {
	if err := checkQRContent(content); err != nil {
		return "", err
	}
	l, err := QRLevel(level)
	if err != nil {
		return "", err
	}
	q, err := qrcode.New(content, l)
	if err != nil {
		return "", invalidf("encode qr: %v", err)
	}
	return q.ToSmallString(false), nil
}
