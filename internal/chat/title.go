package chat

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mseguy/aidesk/internal/domain"
)

// greetingLine matches short salutation lines that should not become a
// ticket title.
var greetingLine = regexp.MustCompile(`^(?i)(bonjour|bonsoir|salut|hello|coucou|bjr|bjs)\b`)

// maxGreetingRunes bounds how long a line may be and still count as a
// plain greeting; longer lines are assumed to carry the actual request.
const maxGreetingRunes = 40

// BuildTitle derives a ticket title from the user's message history:
// skip leading short greetings, keep the first sentence of the first
// usable line, cap the length. Falls back to a generic title when no
// usable line exists.
func BuildTitle(question string) string {
	lines := nonBlankLines(question)
	if len(lines) == 0 {
		return genericTicketTitle
	}

	titleLine := lines[0]
	for _, line := range lines {
		if greetingLine.MatchString(line) && utf8.RuneCountInString(line) <= maxGreetingRunes {
			continue
		}
		titleLine = line
		break
	}

	title := firstSentence(titleLine)
	if title == "" {
		title = strings.TrimSpace(titleLine)
	}
	title = TruncateTitle(title)
	if title == "" {
		return genericTicketTitle
	}
	return title
}

// TruncateTitle enforces the title length cap, cutting over-long
// titles and appending an ellipsis.
func TruncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) > domain.TicketTitleMax {
		return string(runes[:domain.TicketTitleTrunc]) + "..."
	}
	return title
}

// BuildBody reconstructs the conversation as a numbered list of the
// user's messages, one paragraph per line of input.
func BuildBody(question string) string {
	lines := nonBlankLines(question)
	if len(lines) == 0 {
		return ticketBodyHeader + "\n\n" + question
	}

	formatted := make([]string, 0, len(lines))
	for i, line := range lines {
		formatted = append(formatted, fmt.Sprintf(ticketBodyLine, i+1)+"\n"+line)
	}
	return ticketBodyHeader + "\n\n" + strings.Join(formatted, "\n\n")
}

// firstSentence cuts a line at the first sentence terminator. The
// terminator itself is dropped.
func firstSentence(line string) string {
	if i := strings.IndexAny(line, ".?!"); i >= 0 {
		return strings.TrimSpace(line[:i])
	}
	return strings.TrimSpace(line)
}

// nonBlankLines splits on any newline convention and drops blank lines.
func nonBlankLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
