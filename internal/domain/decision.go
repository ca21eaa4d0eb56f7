package domain

// Decision is the normalized business outcome of one chat turn: the
// answer shown to the user plus escalation signals. A Decision is
// produced once per inbound message and never mutated afterwards.
//
// TicketTitle is optional; the empty string means no title was
// suggested (an empty JSON string from the model is normalized away).
type Decision struct {
	Answer      string `json:"answer"`
	NeedsTicket bool   `json:"needs_ticket"`
	SuggestCall bool   `json:"suggest_call"`
	TicketTitle string `json:"ticket_title,omitempty"`
}

// Reply is a Decision merged with the support contact information the
// widget displays alongside escalation suggestions.
type Reply struct {
	Decision
	SessionID    string `json:"session_id,omitempty"`
	SupportPhone string `json:"support_phone,omitempty"`
}
