package ticket

import (
	"context"

	"github.com/mseguy/aidesk/internal/domain"
)

// MockCreator is a test double for Creator.
type MockCreator struct {
	CreateFunc func(ctx context.Context, draft domain.TicketDraft) (string, error)

	// Drafts records every draft passed to Create.
	Drafts []domain.TicketDraft
}

func (m *MockCreator) Create(ctx context.Context, draft domain.TicketDraft) (string, error) {
	m.Drafts = append(m.Drafts, draft)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, draft)
	}
	return "1", nil
}
