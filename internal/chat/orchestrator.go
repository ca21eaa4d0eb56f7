// Package chat owns the message-handling flow: it resolves the
// configured provider, drives the call and interpretation pipeline,
// maintains bounded per-session history, and files support tickets.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mseguy/aidesk/internal/domain"
	"github.com/mseguy/aidesk/internal/interpret"
	"github.com/mseguy/aidesk/internal/logging"
	"github.com/mseguy/aidesk/internal/provider"
	"github.com/mseguy/aidesk/internal/ticket"
)

// HistoryStore persists session-scoped conversation history. Methods
// log failures internally; history loss degrades answers but never
// fails a request.
type HistoryStore interface {
	// History returns the stored turns for a session in insertion order.
	History(sessionID string) []domain.Turn
	// Append adds turns to the end of a session's history.
	Append(sessionID string, turns ...domain.Turn)
	// Trim drops the oldest turns beyond max.
	Trim(sessionID string, max int)
	// Reset clears a session's history.
	Reset(sessionID string)
}

// Settings is the per-deployment configuration the orchestrator reads.
// It is immutable for the duration of a request.
type Settings struct {
	Provider       provider.Config
	PromptAddendum string
	SupportPhone   string
	Requester      string
	Queue          string
}

// Orchestrator mediates between the chat widget, the provider layer,
// and the ticketing collaborator.
type Orchestrator struct {
	settings  Settings
	providers *provider.Registry
	store     HistoryStore
	tickets   ticket.Creator
	log       *logging.Logger

	// Handling of concurrent requests for the same session is
	// serialized so interleaved read-modify-write cycles cannot drop
	// history updates.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewOrchestrator wires the message-handling flow.
func NewOrchestrator(settings Settings, providers *provider.Registry, store HistoryStore, tickets ticket.Creator, log *logging.Logger) *Orchestrator {
	return &Orchestrator{
		settings:  settings,
		providers: providers,
		store:     store,
		tickets:   tickets,
		log:       log.Sub("chat"),
		locks:     make(map[string]*sync.Mutex),
	}
}

// HandleMessage processes one inbound user message end to end and
// returns the reply for the widget. All provider failures come back as
// user-visible decisions, never as errors.
func (o *Orchestrator) HandleMessage(ctx context.Context, sessionID, message string) domain.Reply {
	reply := domain.Reply{
		SessionID:    sessionID,
		SupportPhone: o.settings.SupportPhone,
	}

	if strings.TrimSpace(message) == "" {
		reply.Decision = domain.Decision{Answer: msgClarify}
		return reply
	}

	lock := o.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	reply.Decision = o.converse(ctx, sessionID, message)
	return reply
}

// converse runs the provider call and interpretation for a non-blank
// message, updating history on success.
func (o *Orchestrator) converse(ctx context.Context, sessionID, message string) domain.Decision {
	cfg := o.settings.Provider

	if !cfg.Complete() {
		return domain.Decision{
			Answer:      msgNotConfigured,
			NeedsTicket: true,
			SuggestCall: true,
		}
	}

	client, err := o.providers.Resolve(cfg.ID)
	if err != nil {
		o.log.Warn().Str("provider", cfg.ID).Msg("configured provider not recognized")
		return domain.Decision{
			Answer: fmt.Sprintf(msgUnknownProvider, o.providers.Label(cfg.ID)),
		}
	}

	system := BuildSystemPrompt(o.settings.PromptAddendum)
	conversation := o.conversation(sessionID, message)

	text, err := client.Call(ctx, system, conversation, cfg)
	if err != nil {
		return o.errorDecision(client.Label(), err)
	}

	decision := interpret.Interpret(text, client.Label(), client.FreeForm())

	o.store.Append(sessionID,
		domain.Turn{Role: domain.RoleUser, Content: message},
		domain.Turn{Role: domain.RoleAssistant, Content: decision.Answer},
	)
	o.store.Trim(sessionID, domain.MaxHistoryTurns)

	o.log.Debug().
		Str("session", sessionID).
		Str("provider", cfg.ID).
		Bool("needsTicket", decision.NeedsTicket).
		Bool("suggestCall", decision.SuggestCall).
		Msg("message handled")

	return decision
}

// conversation builds the provider input: stored history with empty
// turns dropped, then the current user message as the final turn.
func (o *Orchestrator) conversation(sessionID, message string) []domain.Turn {
	history := o.store.History(sessionID)

	conversation := make([]domain.Turn, 0, len(history)+1)
	for _, t := range history {
		content := strings.TrimSpace(t.Content)
		if content == "" {
			continue
		}
		role := domain.RoleUser
		if t.Role == domain.RoleAssistant {
			role = domain.RoleAssistant
		}
		conversation = append(conversation, domain.Turn{Role: role, Content: content})
	}
	return append(conversation, domain.Turn{Role: domain.RoleUser, Content: message})
}

// errorDecision maps a failed provider call to a localized decision.
// The interpreter is deliberately not involved on this path.
func (o *Orchestrator) errorDecision(label string, err error) domain.Decision {
	var callErr *provider.CallError
	if errors.As(err, &callErr) {
		switch callErr.Kind {
		case provider.KindCommunication:
			o.log.Error().Str("provider", callErr.Provider).Msg("provider communication failure")
			return domain.Decision{
				Answer:      fmt.Sprintf(msgCommunication, label),
				NeedsTicket: true,
				SuggestCall: true,
			}
		case provider.KindFormat:
			o.log.Error().Str("provider", callErr.Provider).Msg("provider response not parseable")
			return domain.Decision{
				Answer:      fmt.Sprintf(msgInvalidFormat, label),
				NeedsTicket: true,
				SuggestCall: true,
			}
		case provider.KindAPIError:
			apiMsg := strings.TrimSpace(callErr.Message)
			if apiMsg == "" {
				apiMsg = msgRemoteAPIError
			}
			o.log.Error().Str("provider", callErr.Provider).Str("message", apiMsg).Msg("provider reported API error")
			return domain.Decision{
				Answer:      fmt.Sprintf(msgAPIError, label, apiMsg),
				NeedsTicket: true,
			}
		}
	}

	o.log.Error().Err(err).Msg("provider call failed")
	return domain.Decision{
		Answer:      fmt.Sprintf(msgCallFailed, label),
		NeedsTicket: true,
		SuggestCall: true,
	}
}

// CreateTicket files a support ticket from the user's message history.
// preferredTitle (the AI-suggested title) wins when non-empty;
// otherwise a title is derived from the history.
func (o *Orchestrator) CreateTicket(ctx context.Context, question, preferredTitle string) domain.TicketResult {
	title := strings.TrimSpace(preferredTitle)
	if title != "" {
		title = TruncateTitle(title)
	} else {
		title = BuildTitle(question)
	}

	draft := domain.TicketDraft{
		Title:     title,
		Body:      BuildBody(question),
		Requester: o.settings.Requester,
		Queue:     o.settings.Queue,
	}

	id, err := o.tickets.Create(ctx, draft)
	if err != nil {
		o.log.Error().Err(err).Str("title", title).Msg("ticket creation failed")
		return domain.TicketResult{}
	}

	o.log.Info().Str("ticket", id).Str("title", title).Msg("ticket created from chat")
	return domain.TicketResult{Success: true, TicketID: id, Title: title}
}

// ResetSession clears the stored history for a session.
func (o *Orchestrator) ResetSession(sessionID string) {
	lock := o.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()
	o.store.Reset(sessionID)
}

// SupportPhone returns the configured support contact number.
func (o *Orchestrator) SupportPhone() string {
	return o.settings.SupportPhone
}

func (o *Orchestrator) sessionLock(sessionID string) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()
	lock, ok := o.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		o.locks[sessionID] = lock
	}
	return lock
}
