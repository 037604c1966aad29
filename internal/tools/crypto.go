package tools

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"hash"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/sha3"
)

// HashAlgorithms lists the digests supported by Hash and HMAC
var HashAlgorithms = []string{"md5", "sha1", "sha256", "sha512", "sha3-256"}

const (
	aesSaltSize   = 16
	pbkdf2Rounds  = 100_000
	aesKeySize    = 32
	maxUUIDsBatch = 100
)

func hashFunc(algorithm string) (func() hash.Hash, error) {
	switch strings.ToLower(algorithm) {
	case "md5":
		return md5.New, nil
	case "sha1":
		return sha1.New, nil
	case "", "sha256":
		return sha256.New, nil
	case "sha512":
		return sha512.New, nil
	case "sha3-256", "sha3":
		return sha3.New256, nil
	default:
		return nil, invalidf("unsupported hash algorithm %q", algorithm)
	}
}

// Hash returns the hex digest of input
func Hash(algorithm string, input []byte) (string, error) {
	newHash, err := hashFunc(algorithm)
	if err != nil {
		return "", err
	}
	h := newHash()
	h.Write(input)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HMAC returns the hex HMAC of message under key
func HMAC(algorithm string, key, message []byte) (string, error) {
	newHash, err := hashFunc(algorithm)
	if err != nil {
		return "", err
	}
	mac := hmac.New(newHash, key)
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// EncryptAES seals plaintext with AES-256-GCM under a key derived from passphrase.
// The output is base64(salt | nonce | ciphertext).
func EncryptAES(plaintext []byte, passphrase string) (string, error) {
	if passphrase == "" {
		return "", invalidf("passphrase is required")
	}
	salt := make([]byte, aesSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}
	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}

	out := make([]byte, 0, len(salt)+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

// DecryptAES reverses EncryptAES
func DecryptAES(encoded, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, invalidf("passphrase is required")
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, invalidf("ciphertext is not base64: %v", err)
	}
	if len(raw) < aesSaltSize {
		return nil, invalidf("ciphertext too short")
	}
	gcm, err := newGCM(passphrase, raw[:aesSaltSize])
	if err != nil {
		return nil, err
	}
	rest := raw[aesSaltSize:]
	if len(rest) < gcm.NonceSize()+gcm.Overhead() {
		return nil, invalidf("ciphertext too short")
	}
	nonce, sealed := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, invalidf("wrong passphrase or corrupted ciphertext")
	}
	return plain, nil
}

func newGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(passphrase), salt, pbkdf2Rounds, aesKeySize, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return gcm, nil
}

// BcryptHash hashes password with the given cost; zero selects bcrypt.DefaultCost
func BcryptHash(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", invalidf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	out, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", invalidf("%v", err)
		}
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(out), nil
}

// BcryptVerify reports whether password matches hashed
func BcryptVerify(hashed, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(hashed)), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, invalidf("%v", err)
	}
}

// TOTPSecret is a freshly generated authenticator secret
type TOTPSecret struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

// GenerateTOTP creates a new secret for an authenticator app
func GenerateTOTP(issuer, account string) (TOTPSecret, error) {
	if issuer == "" || account == "" {
		return TOTPSecret{}, invalidf("issuer and account are required")
	}
	key, err := totp.Generate(totp.GenerateOpts{Issuer: issuer, AccountName: account})
	if err != nil {
		return TOTPSecret{}, fmt.Errorf("generate totp: %w", err)
	}
	return TOTPSecret{Secret: key.Secret(), URL: key.URL()}, nil
}

// TOTPCode returns the code for secret at t
func TOTPCode(secret string, t time.Time) (string, error) {
	code, err := totp.GenerateCode(strings.TrimSpace(secret), t)
	if err != nil {
		return "", invalidf("%v", err)
	}
	return code, nil
}

// TOTPVerify reports whether code is valid for secret now
func TOTPVerify(secret, code string) bool {
	return totp.Validate(strings.TrimSpace(code), strings.TrimSpace(secret))
}

// SignJWT signs a JSON object of claims with HS256
func SignJWT(claimsJSON, secret string) (string, error) {
	if secret == "" {
		return "", invalidf("secret is required")
	}
	var claims map[string]any
	if err := json.Unmarshal([]byte(claimsJSON), &claims); err != nil {
		return "", invalidf("claims must be a JSON object: %v", err)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims(claims))
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// DecodedJWT holds the parts of a token
type DecodedJWT struct {
	Header   map[string]any `json:"header"`
	Claims   map[string]any `json:"claims"`
	Verified bool           `json:"verified"`
}

// DecodeJWT parses a token; when secret is non-empty the HS256 signature and
// registered time claims are verified as well
func DecodeJWT(token, secret string) (DecodedJWT, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return DecodedJWT{}, invalidf("empty token")
	}
	claims := jwt.MapClaims{}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return DecodedJWT{}, invalidf("%v", err)
	}
	out := DecodedJWT{Header: parsed.Header, Claims: claims}
	if secret == "" {
		return out, nil
	}

	_, err = jwt.Parse(token, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return out, invalidf("signature check failed: %v", err)
	}
	out.Verified = true
	return out, nil
}

// NewUUIDs returns n random (version 4) UUIDs
func NewUUIDs(n int) ([]string, error) {
	if n <= 0 {
		n = 1
	}
	if n > maxUUIDsBatch {
		return nil, invalidf("at most %d UUIDs per request", maxUUIDsBatch)
	}
	ids := make([]string, n)
	for i := range ids {
		ids[i] = uuid.NewString()
	}
	return ids, nil
}
