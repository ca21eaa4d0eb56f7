package provider

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mseguy/aidesk/internal/logging"
)

// ErrUnknownProvider is returned when a configured provider identifier
// is not part of the registered set. Resolution never falls back to
// another provider.
var ErrUnknownProvider = errors.New("unknown AI provider")

// Registry maps provider identifiers to clients. The supported set is
// fixed at startup; there is no dynamic discovery.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]Client
	log     *logging.Logger
}

// NewRegistry creates an empty provider registry.
func NewRegistry(log *logging.Logger) *Registry {
	return &Registry{
		clients: make(map[string]Client),
		log:     log.Sub("provider.registry"),
	}
}

// Default returns a registry with every supported vendor registered.
func Default(log *logging.Logger) *Registry {
	r := NewRegistry(log)
	r.Register(NewAnthropicClient())
	r.Register(NewOpenAIClient())
	r.Register(NewMistralClient())
	r.Register(NewXAIClient())
	r.Register(NewGeminiClient())
	r.Register(NewSwiftaskClient())
	return r
}

// Register adds a client under its own name.
func (r *Registry) Register(c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.Name()] = c
	r.log.Info().Str("provider", c.Name()).Msg("registered AI provider")
}

// Resolve returns the client for the given provider identifier.
func (r *Registry) Resolve(id string) (Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, id)
	}
	return c, nil
}

// Label returns the human-readable label for a provider identifier,
// falling back to the identifier itself when it is not registered.
func (r *Registry) Label(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.clients[id]; ok {
		return c.Label()
	}
	return id
}

// List returns the registered provider identifiers, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.clients))
	for n := range r.clients {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
