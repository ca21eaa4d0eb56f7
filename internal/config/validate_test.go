package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_ValidDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Empty(t, Validate(&cfg))
}

func TestValidate_UnknownProviderIsNotAnIssue(t *testing.T) {
	// The service boots with an unrecognized provider and answers chats
	// with a terminal "not recognized" decision instead.
	cfg := Defaults()
	cfg.Provider.ID = "copilot"
	assert.Empty(t, Validate(&cfg))
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Defaults()

	cfg.Gateway.Port = -1
	issues := Validate(&cfg)
	assert.NotEmpty(t, issues)
	assert.Contains(t, issues[0].Path, "gateway.port")

	cfg.Gateway.Port = 70000
	assert.NotEmpty(t, Validate(&cfg))
}

func TestValidate_InvalidBind(t *testing.T) {
	cfg := Defaults()
	cfg.Gateway.Bind = "tailnet"
	issues := Validate(&cfg)
	assert.NotEmpty(t, issues)
	assert.Contains(t, issues[0].Path, "gateway.bind")
}

func TestValidate_CustomBindNeedsHost(t *testing.T) {
	cfg := Defaults()
	cfg.Gateway.Bind = "custom"
	issues := Validate(&cfg)
	assert.NotEmpty(t, issues)
	assert.Contains(t, issues[0].Path, "gateway.customBindHost")

	cfg.Gateway.CustomBindHost = "10.0.0.5"
	assert.Empty(t, Validate(&cfg))
}

func TestValidate_TokenModeNeedsToken(t *testing.T) {
	cfg := Defaults()
	cfg.Gateway.Auth.Mode = "token"
	issues := Validate(&cfg)
	assert.NotEmpty(t, issues)
	assert.Contains(t, issues[0].Path, "gateway.auth.token")

	cfg.Gateway.Auth.Token = "secret"
	assert.Empty(t, Validate(&cfg))
}

func TestValidate_InvalidSessionStore(t *testing.T) {
	cfg := Defaults()
	cfg.Session.Store = "redis"
	issues := Validate(&cfg)
	assert.NotEmpty(t, issues)
	assert.Contains(t, issues[0].Path, "session.store")
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := Defaults()
	cfg.Logging.Level = "verbose"
	issues := Validate(&cfg)
	assert.NotEmpty(t, issues)
	assert.Contains(t, issues[0].Path, "logging.level")
}

func TestValidate_TicketingKeyWithoutURL(t *testing.T) {
	cfg := Defaults()
	cfg.Ticketing.APIKey = "tok"
	issues := Validate(&cfg)
	assert.NotEmpty(t, issues)
	assert.Contains(t, issues[0].Path, "ticketing.url")
}
