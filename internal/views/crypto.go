package views

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"devtoolbox_echo/internal/tools"
)

const totpIssuer = "devtoolbox"

type cryptoView struct {
	deps Deps
}

func newCryptoView(deps Deps) (View, error) {
	return &cryptoView{deps: deps}, nil
}

func (v *cryptoView) Key() string { return KeyCrypto }

func (v *cryptoView) Form() Form {
	algorithms := make([]Option, 0, len(tools.HashAlgorithms))
	for _, a := range tools.HashAlgorithms {
		algorithms = append(algorithms, Option{Value: a, Label: strings.ToUpper(a)})
	}
	return Form{
		Fields: []Field{
			{Name: "input", Label: "Input", Kind: FieldTextarea},
			{Name: "algorithm", Label: "Algorithm", Kind: FieldSelect, Options: algorithms, Default: "sha256"},
			{Name: "secret", Label: "Key / passphrase / hash / TOTP secret", Kind: FieldPassword},
			{Name: "count", Label: "How many UUIDs", Kind: FieldNumber, Default: "1"},
		},
		Actions: []Option{
			{Value: "hash", Label: "Hash"},
			{Value: "hmac", Label: "HMAC"},
			{Value: "encrypt", Label: "AES encrypt"},
			{Value: "decrypt", Label: "AES decrypt"},
			{Value: "bcrypt", Label: "Bcrypt hash"},
			{Value: "bcrypt-verify", Label: "Bcrypt verify"},
			{Value: "totp-new", Label: "New TOTP secret"},
			{Value: "totp-code", Label: "TOTP code"},
			{Value: "jwt-sign", Label: "Sign JWT"},
			{Value: "jwt-decode", Label: "Decode JWT"},
			{Value: "uuid", Label: "UUID"},
		},
	}
}

func (v *cryptoView) Submit(_ context.Context, in Input) (Output, error) {
	input := in.Value("input")
	secret := in.Value("secret")
	algorithm := in.Value("algorithm")

	switch in.Action {
	case "", "hash":
		digest, err := tools.Hash(algorithm, []byte(input))
		if err != nil {
			return Output{}, err
		}
		return Output{Message: fmt.Sprintf("%s digest computed", strings.ToUpper(orDefault(algorithm, "sha256"))), Text: digest}, nil

	case "hmac":
		mac, err := tools.HMAC(algorithm, []byte(secret), []byte(input))
		if err != nil {
			return Output{}, err
		}
		return Output{Message: "HMAC computed", Text: mac}, nil

	case "encrypt":
		sealed, err := tools.EncryptAES([]byte(input), secret)
		if err != nil {
			return Output{}, err
		}
		return Output{Message: "Encrypted with AES-256-GCM", Text: sealed}, nil

	case "decrypt":
		plain, err := tools.DecryptAES(input, secret)
		if err != nil {
			return Output{}, err
		}
		return Output{Message: "Decrypted", Text: string(plain)}, nil

	case "bcrypt":
		hashed, err := tools.BcryptHash(input, 0)
		if err != nil {
			return Output{}, err
		}
		return Output{Message: "Bcrypt hash generated", Text: hashed}, nil

	case "bcrypt-verify":
		ok, err := tools.BcryptVerify(secret, input)
		if err != nil {
			return Output{}, err
		}
		if !ok {
			return Output{}, fmt.Errorf("%w: password does not match hash", tools.ErrInvalidInput)
		}
		return Output{Message: "Password matches hash"}, nil

	case "totp-new":
		key, err := tools.GenerateTOTP(totpIssuer, orDefault(strings.TrimSpace(input), "user"))
		if err != nil {
			return Output{}, err
		}
		png, err := tools.QRCodePNG(key.URL, tools.QROptions{Level: "M", Size: 256})
		if err != nil {
			return Output{}, err
		}
		return Output{
			Message: "TOTP secret generated",
			Pairs:   []Pair{{Key: "Secret", Value: key.Secret}, {Key: "URL", Value: key.URL}},
			Image:   &Image{ContentType: "image/png", FileName: "totp.png", Data: png},
			Data:    key,
		}, nil

	case "totp-code":
		code, err := tools.TOTPCode(secret, v.deps.now())
		if err != nil {
			return Output{}, err
		}
		return Output{Message: "Current TOTP code", Text: code}, nil

	case "jwt-sign":
		token, err := tools.SignJWT(input, secret)
		if err != nil {
			return Output{}, err
		}
		return Output{Message: "JWT signed with HS256", Text: token}, nil

	case "jwt-decode":
		decoded, err := tools.DecodeJWT(input, secret)
		if err != nil {
			return Output{}, err
		}
		body, err := json.MarshalIndent(decoded, "", "  ")
		if err != nil {
			return Output{}, fmt.Errorf("encode jwt parts: %w", err)
		}
		message := "JWT decoded (signature not checked)"
		if decoded.Verified {
			message = "JWT signature verified"
		}
		return Output{Message: message, Text: string(body), Data: decoded}, nil

	case "uuid":
		n, err := in.Int("count", 1)
		if err != nil {
			return Output{}, err
		}
		ids, err := tools.NewUUIDs(n)
		if err != nil {
			return Output{}, err
		}
		return Output{Message: fmt.Sprintf("Generated %d UUIDs", len(ids)), Text: strings.Join(ids, "\n"), Data: ids}, nil

	default:
		return Output{}, unknownAction(v.Key(), in.Action)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
