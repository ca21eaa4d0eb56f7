// Package config loads, validates, and edits the aidesk YAML
// configuration.
package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Widget: WidgetConfig{
			Title:       "Assistant IA",
			Placeholder: "Posez votre question...",
			Greeting:    "Bonjour ! Comment puis-je vous aider ?",
		},
		Gateway: GatewayConfig{
			Port: 8470,
			Bind: "loopback",
			Auth: GatewayAuth{
				Mode: "none",
			},
		},
		Session: SessionConfig{
			Store: "sqlite",
		},
		Logging: LoggingConfig{
			Level:        "info",
			ConsoleStyle: "pretty",
		},
	}
}
