package provider

import (
	"context"

	"github.com/mseguy/aidesk/internal/domain"
)

// MockClient is a test double for Client.
type MockClient struct {
	ProviderName  string
	ProviderLabel string
	Free          bool
	CallFunc      func(ctx context.Context, system string, conversation []domain.Turn, cfg Config) (string, error)
}

func (m *MockClient) Name() string { return m.ProviderName }

func (m *MockClient) Label() string {
	if m.ProviderLabel != "" {
		return m.ProviderLabel
	}
	return m.ProviderName
}

func (m *MockClient) FreeForm() bool { return m.Free }

func (m *MockClient) Call(ctx context.Context, system string, conversation []domain.Turn, cfg Config) (string, error) {
	if m.CallFunc != nil {
		return m.CallFunc(ctx, system, conversation, cfg)
	}
	return `{"answer":"mock","needs_ticket":false,"suggest_call":false,"ticket_title":""}`, nil
}
