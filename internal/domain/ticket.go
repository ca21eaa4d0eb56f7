package domain

// TicketTitleMax is the hard cap on ticket title length in runes.
// Longer titles are cut to TicketTitleTrunc runes plus an ellipsis.
const (
	TicketTitleMax   = 120
	TicketTitleTrunc = 117
)

// TicketDraft is the material handed to the external ticketing
// collaborator. It is built on demand from conversation content and is
// not persisted by the mediator.
type TicketDraft struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Requester string `json:"requester,omitempty"`
	Queue     string `json:"queue,omitempty"`
}

// TicketResult reports the outcome of a ticket creation attempt.
type TicketResult struct {
	Success  bool   `json:"success"`
	TicketID string `json:"ticket_id,omitempty"`
	Title    string `json:"title,omitempty"`
}
