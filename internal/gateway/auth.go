package gateway

import (
	"crypto/subtle"
	"net/http"
	"os"
	"strings"

	"github.com/mseguy/aidesk/internal/config"
)

// ResolvedAuth holds the resolved auth configuration for the gateway.
type ResolvedAuth struct {
	Mode  string
	Token string
}

// ResolveAuth resolves authentication credentials from config and
// environment. Precedence: config value, then env variable.
func ResolveAuth(cfg config.GatewayAuth) ResolvedAuth {
	auth := ResolvedAuth{Mode: cfg.Mode, Token: cfg.Token}
	if auth.Token == "" {
		auth.Token = os.Getenv("AIDESK_GATEWAY_TOKEN")
	}
	if auth.Mode == "" {
		auth.Mode = "none"
	}
	return auth
}

// Authorize checks a presented token against the resolved server auth.
func (a ResolvedAuth) Authorize(token string) bool {
	if a.Mode != "token" {
		return true
	}
	if a.Token == "" || token == "" {
		return false
	}
	return safeEqual(token, a.Token)
}

// requestToken extracts the bearer token from a request. WebSocket
// browser clients cannot set headers, so a token query parameter is
// accepted as well.
func requestToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
			return tok
		}
	}
	return r.URL.Query().Get("token")
}

// safeEqual performs a constant-time string comparison to prevent timing attacks.
func safeEqual(a, b string) bool {
	lenMatch := subtle.ConstantTimeEq(int32(len(a)), int32(len(b)))
	cmp := subtle.ConstantTimeCompare([]byte(a), []byte(b))
	return subtle.ConstantTimeSelect(lenMatch, cmp, 0) == 1
}
