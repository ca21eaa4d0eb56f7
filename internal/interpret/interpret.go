// Package interpret turns the raw text returned by an LLM provider
// into a normalized business decision. Every structured provider is
// expected to return exactly one JSON object:
//
//	{"answer": string, "needs_ticket": bool, "suggest_call": bool, "ticket_title": string}
//
// Code fences around the object are tolerated defensively; anything
// else is a contract violation handled by fallback rules, never by an
// error. Interpretation is a pure function of its inputs so it stays
// testable independently of any network concern.
package interpret

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/mseguy/aidesk/internal/domain"
)

const msgNoContent = "Le moteur IA (%s) n’a renvoyé aucun contenu."

// fencedJSON captures a JSON object wrapped in triple-backtick markers,
// optionally tagged "json". The first fenced block wins.
var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// Interpret normalizes raw provider output into a Decision.
// providerLabel is the human-readable provider name used in the
// no-content message; freeForm marks the provider as permitted to
// answer in plain prose.
func Interpret(raw, providerLabel string, freeForm bool) domain.Decision {
	text := strings.TrimSpace(raw)

	if text == "" {
		return domain.Decision{
			Answer:      fmt.Sprintf(msgNoContent, providerLabel),
			NeedsTicket: true,
			SuggestCall: true,
		}
	}

	fields, ok := parseObject(text)
	if !ok {
		if m := fencedJSON.FindStringSubmatch(text); m != nil {
			inner := strings.TrimSpace(m[1])
			if fields, ok = parseObject(inner); ok {
				text = inner
			}
		}
	}

	if !ok {
		if freeForm {
			return domain.Decision{Answer: text}
		}
		// Contract violated: show the literal text but force escalation.
		return domain.Decision{
			Answer:      text,
			NeedsTicket: true,
			SuggestCall: true,
		}
	}

	return domain.Decision{
		Answer:      stringField(fields, "answer", text),
		NeedsTicket: boolField(fields, "needs_ticket"),
		SuggestCall: boolField(fields, "suggest_call"),
		TicketTitle: titleField(fields),
	}
}

func parseObject(text string) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, false
	}
	return fields, fields != nil
}

// stringField returns the named string field, or fallback when the
// field is absent or not a string.
func stringField(fields map[string]json.RawMessage, key, fallback string) string {
	raw, ok := fields[key]
	if !ok {
		return fallback
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fallback
	}
	return s
}

// boolField coerces a missing or non-boolean field to false.
func boolField(fields map[string]json.RawMessage, key string) bool {
	raw, ok := fields[key]
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false
	}
	return b
}

// titleField keeps ticket_title only when it is a non-empty string
// after trimming.
func titleField(fields map[string]json.RawMessage) string {
	raw, ok := fields["ticket_title"]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}
