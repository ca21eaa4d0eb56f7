package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mseguy/aidesk/internal/logging"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default(logging.Nop())
	assert.Equal(t, []string{"anthropic", "google", "mistral", "openai", "swiftask", "xai"}, r.List())
}

func TestRegistryResolve(t *testing.T) {
	r := Default(logging.Nop())

	c, err := r.Resolve("mistral")
	require.NoError(t, err)
	assert.Equal(t, "mistral", c.Name())
}

func TestRegistryResolve_Unknown(t *testing.T) {
	r := Default(logging.Nop())

	_, err := r.Resolve("copilot")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownProvider)
	assert.Contains(t, err.Error(), `"copilot"`)
}

func TestRegistryLabel(t *testing.T) {
	r := Default(logging.Nop())

	assert.Equal(t, "Claude (Anthropic)", r.Label("anthropic"))
	assert.Equal(t, "Gemini (Google)", r.Label("google"))
	// Unknown identifiers fall back to the identifier itself.
	assert.Equal(t, "copilot", r.Label("copilot"))
}

func TestRegistryRegisterOverrides(t *testing.T) {
	r := NewRegistry(logging.Nop())
	r.Register(&MockClient{ProviderName: "openai", ProviderLabel: "Première"})
	r.Register(&MockClient{ProviderName: "openai", ProviderLabel: "Seconde"})

	assert.Equal(t, []string{"openai"}, r.List())
	assert.Equal(t, "Seconde", r.Label("openai"))
}
