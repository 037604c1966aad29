package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, time.Hour, cfg.QRCacheTTL)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 15*time.Second, cfg.APITesterTimeout)
	assert.Equal(t, "/dev/json-formatter", cfg.DefaultRedirectTo)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("QR_CACHE_TTL", "5m")
	t.Setenv("API_TESTER_RATE", "0.5")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.QRCacheTTL)
	assert.Equal(t, 0.5, cfg.APITesterRate)
}

func TestParseRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"negative upload cap", "MAX_UPLOAD_BYTES", "-1"},
		{"zero rate", "API_TESTER_RATE", "0"},
		{"bad duration", "QR_CACHE_TTL", "soon"},
		{"unknown zone", "DEFAULT_TIMEZONE", "Mars/Olympus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}
