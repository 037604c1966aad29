package notify

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotifierStartsEmpty(t *testing.T) {
	n := New()
	assert.Equal(t, State{Message: "", Type: TypeSuccess}, n.Current())
	assert.False(t, n.IsSet())
}

func TestSettersOverwriteState(t *testing.T) {
	tests := []struct {
		name string
		set  func(n *Notifier)
		want State
	}{
		{
			name: "success",
			set:  func(n *Notifier) { n.Success("copied") },
			want: State{Message: "copied", Type: TypeSuccess},
		},
		{
			name: "error",
			set:  func(n *Notifier) { n.Error("invalid JSON") },
			want: State{Message: "invalid JSON", Type: TypeError},
		},
		{
			name: "success then error keeps only error",
			set: func(n *Notifier) {
				n.Success("formatted")
				n.Error("bad input")
			},
			want: State{Message: "bad input", Type: TypeError},
		},
		{
			name: "error then success drops error type",
			set: func(n *Notifier) {
				n.Error("bad input")
				n.Success("")
			},
			want: State{Message: "", Type: TypeSuccess},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New()
			tt.set(n)
			assert.Equal(t, tt.want, n.Current())
			assert.True(t, n.IsSet())
		})
	}
}

func TestRestoreDefaultsUnknownTypeToSuccess(t *testing.T) {
	n := New()
	n.Restore(State{Message: "hi", Type: "warning"})
	assert.Equal(t, State{Message: "hi", Type: TypeSuccess}, n.Current())
}

func TestFlashRoundTrip(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/dev/base64", nil)
	writeRR := httptest.NewRecorder()

	WriteFlash(writeRR, req, State{Message: "decoded", Type: TypeError})
	header := writeRR.Header().Get("Set-Cookie")
	require.NotEmpty(t, header)
	cookie, err := http.ParseSetCookie(header)
	require.NoError(t, err)

	next := httptest.NewRequest(http.MethodGet, "/dev/base64", nil)
	next.AddCookie(cookie)
	readRR := httptest.NewRecorder()

	state, ok := ReadFlash(readRR, next)
	require.True(t, ok)
	assert.Equal(t, State{Message: "decoded", Type: TypeError}, state)
	assert.Contains(t, readRR.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestWriteFlashIgnoresEmptyMessage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	WriteFlash(rr, req, State{Message: "  ", Type: TypeSuccess})
	assert.Empty(t, rr.Header().Get("Set-Cookie"))
}

func TestReadFlashInvalidCookieStillClears(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "%%%"})
	rr := httptest.NewRecorder()

	_, ok := ReadFlash(rr, req)
	assert.False(t, ok)
	assert.NotEmpty(t, rr.Header().Get("Set-Cookie"))
}
