package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBase64Variants(t *testing.T) {
	tests := []struct {
		variant string
		input   []byte
		want    string
	}{
		{Base64Standard, []byte("hello"), "aGVsbG8="},
		{Base64RawStandard, []byte("hello"), "aGVsbG8"},
		{Base64URL, []byte{0xfb, 0xff}, "-_8="},
		{Base64RawURL, []byte{0xfb, 0xff}, "-_8"},
		{"", []byte{0xfb, 0xff}, "+/8="},
	}
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			got, err := EncodeBase64(tt.input, tt.variant)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := EncodeBase64([]byte("x"), "base32")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDecodeBase64(t *testing.T) {
	got, err := DecodeBase64("aGVs\nbG8=")
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Text)
	assert.True(t, got.IsText)
	assert.Equal(t, Base64Standard, got.Variant)

	got, err = DecodeBase64("aGVsbG8")
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, Base64RawStandard, got.Variant)

	got, err = DecodeBase64("-_8=")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xfb, 0xff}, got.Data)
	assert.False(t, got.IsText)
	assert.Equal(t, Base64URL, got.Variant)

	got, err = DecodeBase64("data:text/plain;base64,aGk=")
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Text)
}

func TestDecodeBase64Invalid(t *testing.T) {
	_, err := DecodeBase64("!!!")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = DecodeBase64(" \n ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
