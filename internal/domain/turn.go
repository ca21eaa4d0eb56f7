// Package domain holds the core types shared across the chat mediator:
// conversation turns, interpreted decisions, and ticket drafts.
package domain

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MaxHistoryTurns bounds session history to the most recent turns
// (5 user/assistant exchanges). Oldest turns are evicted first.
const MaxHistoryTurns = 10

// Turn is a single message in a conversation, attributed to the user
// or the assistant. Insertion order is significant.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// TrimHistory returns the most recent max turns of history, preserving
// chronological order. The input slice is never mutated.
func TrimHistory(turns []Turn, max int) []Turn {
	if max <= 0 || len(turns) <= max {
		return turns
	}
	return turns[len(turns)-max:]
}
