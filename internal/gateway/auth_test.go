package gateway

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mseguy/aidesk/internal/config"
)

func TestResolveAuth_ConfigWins(t *testing.T) {
	t.Setenv("AIDESK_GATEWAY_TOKEN", "from-env")

	auth := ResolveAuth(config.GatewayAuth{Mode: "token", Token: "from-config"})
	assert.Equal(t, "from-config", auth.Token)
}

func TestResolveAuth_EnvFallback(t *testing.T) {
	t.Setenv("AIDESK_GATEWAY_TOKEN", "from-env")

	auth := ResolveAuth(config.GatewayAuth{Mode: "token"})
	assert.Equal(t, "from-env", auth.Token)
}

func TestResolveAuth_DefaultMode(t *testing.T) {
	auth := ResolveAuth(config.GatewayAuth{})
	assert.Equal(t, "none", auth.Mode)
}

func TestAuthorize(t *testing.T) {
	none := ResolvedAuth{Mode: "none"}
	assert.True(t, none.Authorize(""))
	assert.True(t, none.Authorize("anything"))

	token := ResolvedAuth{Mode: "token", Token: "secret"}
	assert.True(t, token.Authorize("secret"))
	assert.False(t, token.Authorize("wrong"))
	assert.False(t, token.Authorize(""))

	// A token mode with no token configured rejects everything.
	empty := ResolvedAuth{Mode: "token"}
	assert.False(t, empty.Authorize(""))
	assert.False(t, empty.Authorize("x"))
}

func TestRequestToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/ws", nil)
	assert.Empty(t, requestToken(r))

	r.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, "abc", requestToken(r))

	r = httptest.NewRequest("GET", "/ws?token=xyz", nil)
	assert.Equal(t, "xyz", requestToken(r))

	// Non-bearer schemes are ignored.
	r.Header.Set("Authorization", "Basic abc")
	assert.Equal(t, "xyz", requestToken(r))
}

func TestSafeEqual(t *testing.T) {
	assert.True(t, safeEqual("abc", "abc"))
	assert.False(t, safeEqual("abc", "abd"))
	assert.False(t, safeEqual("abc", "abcd"))
	assert.True(t, safeEqual("", ""))
}
