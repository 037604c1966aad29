package tools

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRCodePNG(t *testing.T) {
	data, err := QRCodePNG("https://example.com", QROptions{Level: "H", Size: 128})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestQRCodePNGValidation(t *testing.T) {
	_, err := QRCodePNG("", QROptions{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = QRCodePNG("x", QROptions{Size: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = QRCodePNG("x", QROptions{Level: "Z"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = QRCodePNG(strings.Repeat("x", maxQRContent+1), QROptions{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestQRCodeText(t *testing.T) {
	out, err := QRCodeText("hello", "L")
	require.NoError(t, err)
	assert.Greater(t, strings.Count(out, "\n"), 5)
}
