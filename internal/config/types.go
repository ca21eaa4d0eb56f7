package config

// Config is the root configuration for aidesk.
type Config struct {
	Provider  ProviderConfig  `yaml:"provider,omitempty"`
	Ticketing TicketingConfig `yaml:"ticketing,omitempty"`
	Support   SupportConfig   `yaml:"support,omitempty"`
	Widget    WidgetConfig    `yaml:"widget,omitempty"`
	Gateway   GatewayConfig   `yaml:"gateway,omitempty"`
	Session   SessionConfig   `yaml:"session,omitempty"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
}

// ProviderConfig selects and locates the AI engine.
type ProviderConfig struct {
	ID             string `yaml:"id,omitempty"` // "anthropic" | "openai" | "mistral" | "xai" | "google" | "swiftask"
	BaseURL        string `yaml:"baseUrl,omitempty"`
	APIKey         string `yaml:"apiKey,omitempty"`
	Model          string `yaml:"model,omitempty"`
	PromptAddendum string `yaml:"promptAddendum,omitempty"` // appended to the built-in system prompt
}

// TicketingConfig locates the ticketing endpoint that chat escalations go to.
type TicketingConfig struct {
	URL       string `yaml:"url,omitempty"`
	APIKey    string `yaml:"apiKey,omitempty"`
	Queue     string `yaml:"queue,omitempty"`
	Requester string `yaml:"requester,omitempty"`
}

// SupportConfig carries human-escalation contact details.
type SupportConfig struct {
	Phone string `yaml:"phone,omitempty"`
}

// WidgetConfig controls the embeddable chat widget branding.
type WidgetConfig struct {
	Title       string `yaml:"title,omitempty"`
	Placeholder string `yaml:"placeholder,omitempty"`
	Greeting    string `yaml:"greeting,omitempty"`
}

// GatewayConfig controls the HTTP/WebSocket server.
type GatewayConfig struct {
	Port           int         `yaml:"port,omitempty"`
	Bind           string      `yaml:"bind,omitempty"` // "loopback" | "lan" | "custom"
	CustomBindHost string      `yaml:"customBindHost,omitempty"`
	Auth           GatewayAuth `yaml:"auth,omitempty"`
	AllowedOrigins []string    `yaml:"allowedOrigins,omitempty"`
}

// GatewayAuth configures gateway authentication.
type GatewayAuth struct {
	Mode  string `yaml:"mode,omitempty"` // "none" | "token"
	Token string `yaml:"token,omitempty"`
}

// SessionConfig defines conversation history behavior.
type SessionConfig struct {
	Store  string `yaml:"store,omitempty"` // "sqlite" | "memory"
	DBPath string `yaml:"dbPath,omitempty"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level,omitempty"`        // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	ConsoleStyle string `yaml:"consoleStyle,omitempty"` // "pretty" | "json"
}
