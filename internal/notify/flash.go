package notify

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
)

// CookieName is the cookie that carries a notification across a redirect
const CookieName = "devtoolbox_flash"

// WriteFlash stores the state in a cookie for the next page render.
// Empty messages are not written.
func WriteFlash(w http.ResponseWriter, r *http.Request, state State) {
	if w == nil {
		return
	}
	normalized, ok := normalize(state)
	if !ok {
		return
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   r != nil && r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadFlash reads and expires the flash cookie
func ReadFlash(w http.ResponseWriter, r *http.Request) (State, bool) {
	if r == nil {
		return State{}, false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return State{}, false
	}
	if w != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
	return decode(cookie.Value)
}

func decode(raw string) (State, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return State{}, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return State{}, false
	}
	var state State
	if err := json.Unmarshal(decoded, &state); err != nil {
		return State{}, false
	}
	return normalize(state)
}

func normalize(state State) (State, bool) {
	state.Message = strings.TrimSpace(state.Message)
	if state.Message == "" {
		return State{}, false
	}
	state.Type = Type(strings.ToLower(strings.TrimSpace(string(state.Type))))
	switch state.Type {
	case TypeSuccess, TypeError:
		return state, true
	default:
		return State{}, false
	}
}
