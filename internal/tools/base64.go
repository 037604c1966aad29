package tools

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// Base64 variants accepted by EncodeBase64
const (
	Base64Standard    = "std"
	Base64URL         = "url"
	Base64RawStandard = "rawstd"
	Base64RawURL      = "rawurl"
)

func base64Encoding(variant string) (*base64.Encoding, error) {
	switch variant {
	case "", Base64Standard:
		return base64.StdEncoding, nil
	case Base64URL:
		return base64.URLEncoding, nil
	case Base64RawStandard:
		return base64.RawStdEncoding, nil
	case Base64RawURL:
		return base64.RawURLEncoding, nil
	default:
		return nil, invalidf("unknown base64 variant %q", variant)
	}
}

// EncodeBase64 encodes data with the named variant
func EncodeBase64(data []byte, variant string) (string, error) {
	enc, err := base64Encoding(variant)
	if err != nil {
		return "", err
	}
	return enc.EncodeToString(data), nil
}

// Base64Decoded is the result of decoding user-supplied Base64
type Base64Decoded struct {
	Data []byte `json:"-"`
	// Text is the decoded UTF-8 text, or a hex dump when the bytes are not valid UTF-8
	Text    string `json:"text"`
	IsText  bool   `json:"is_text"`
	Variant string `json:"variant"`
}

// DecodeBase64 decodes input in any of the standard or URL alphabets.
// Whitespace and a "data:...;base64," prefix are ignored, padding is optional.
func DecodeBase64(input string) (Base64Decoded, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, input)
	if i := strings.Index(cleaned, ";base64,"); i >= 0 && strings.HasPrefix(cleaned, "data:") {
		cleaned = cleaned[i+len(";base64,"):]
	}
	if cleaned == "" {
		return Base64Decoded{}, invalidf("empty base64 input")
	}

	urlAlphabet := strings.ContainsAny(cleaned, "-_")
	trimmed := strings.TrimRight(cleaned, "=")

	variant := Base64RawStandard
	enc := base64.RawStdEncoding
	if urlAlphabet {
		variant = Base64RawURL
		enc = base64.RawURLEncoding
	}
	data, err := enc.DecodeString(trimmed)
	if err != nil {
		return Base64Decoded{}, invalidf("%v", err)
	}

	if len(trimmed) != len(cleaned) {
		variant = map[string]string{Base64RawStandard: Base64Standard, Base64RawURL: Base64URL}[variant]
	}
	out := Base64Decoded{Data: data, Variant: variant}
	if utf8.Valid(data) {
		out.Text = string(data)
		out.IsText = true
	} else {
		out.Text = hex.Dump(data)
	}
	return out, nil
}
