package config

import (
	"fmt"
	"slices"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
//
// An unknown provider.id is deliberately NOT an issue here: the service
// starts anyway and answers every chat with a terminal "provider not
// recognized" decision, so a half-rolled-out config degrades instead of
// refusing to boot.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	// Gateway validation
	if cfg.Gateway.Port < 0 || cfg.Gateway.Port > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "gateway.port",
			Message: fmt.Sprintf("port must be 0-65535, got %d", cfg.Gateway.Port),
		})
	}

	validBinds := []string{"loopback", "lan", "custom"}
	if cfg.Gateway.Bind != "" && !slices.Contains(validBinds, cfg.Gateway.Bind) {
		issues = append(issues, ValidationIssue{
			Path:    "gateway.bind",
			Message: fmt.Sprintf("must be one of %v, got %q", validBinds, cfg.Gateway.Bind),
		})
	}
	if cfg.Gateway.Bind == "custom" && cfg.Gateway.CustomBindHost == "" {
		issues = append(issues, ValidationIssue{
			Path:    "gateway.customBindHost",
			Message: "required when gateway.bind is custom",
		})
	}

	validAuthModes := []string{"none", "token"}
	if cfg.Gateway.Auth.Mode != "" && !slices.Contains(validAuthModes, cfg.Gateway.Auth.Mode) {
		issues = append(issues, ValidationIssue{
			Path:    "gateway.auth.mode",
			Message: fmt.Sprintf("must be one of %v, got %q", validAuthModes, cfg.Gateway.Auth.Mode),
		})
	}
	if cfg.Gateway.Auth.Mode == "token" && cfg.Gateway.Auth.Token == "" {
		issues = append(issues, ValidationIssue{
			Path:    "gateway.auth.token",
			Message: "required when gateway.auth.mode is token",
		})
	}

	// Session validation
	validStores := []string{"sqlite", "memory"}
	if cfg.Session.Store != "" && !slices.Contains(validStores, cfg.Session.Store) {
		issues = append(issues, ValidationIssue{
			Path:    "session.store",
			Message: fmt.Sprintf("must be one of %v, got %q", validStores, cfg.Session.Store),
		})
	}

	// Logging validation
	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	validConsoleStyles := []string{"pretty", "json"}
	if cfg.Logging.ConsoleStyle != "" && !slices.Contains(validConsoleStyles, cfg.Logging.ConsoleStyle) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.consoleStyle",
			Message: fmt.Sprintf("must be one of %v, got %q", validConsoleStyles, cfg.Logging.ConsoleStyle),
		})
	}

	// Ticketing validation (only if configured)
	if cfg.Ticketing.URL == "" && cfg.Ticketing.APIKey != "" {
		issues = append(issues, ValidationIssue{
			Path:    "ticketing.url",
			Message: "required when ticketing.apiKey is set",
		})
	}

	return issues
}
