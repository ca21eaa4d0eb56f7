// Package ticket integrates with the external ticketing system. The
// mediator only needs a single capability from it: create one ticket
// from a prepared draft.
package ticket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mseguy/aidesk/internal/domain"
	"github.com/mseguy/aidesk/internal/logging"
)

// Creator is the capability consumed by the chat orchestrator.
type Creator interface {
	// Create files a ticket and returns its identifier.
	Create(ctx context.Context, draft domain.TicketDraft) (string, error)
}

// Config locates the ticketing endpoint.
type Config struct {
	BaseURL string
	APIKey  string
}

// HTTPCreator files tickets over a REST endpoint: one POST per ticket,
// bearer auth, JSON draft in, JSON {id} out.
type HTTPCreator struct {
	cfg Config
	hc  *http.Client
	log *logging.Logger
}

// NewHTTPCreator creates a ticketing client.
func NewHTTPCreator(cfg Config, log *logging.Logger) *HTTPCreator {
	return &HTTPCreator{
		cfg: cfg,
		hc:  &http.Client{Timeout: 15 * time.Second},
		log: log.Sub("ticket"),
	}
}

type createResponse struct {
	ID json.Number `json:"id"`
}

// Create posts the draft to the ticketing endpoint.
func (c *HTTPCreator) Create(ctx context.Context, draft domain.TicketDraft) (string, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return "", fmt.Errorf("encoding ticket draft: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating ticket request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("ticketing request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading ticketing response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("ticketing error (%d): %s", resp.StatusCode, string(raw))
	}

	var decoded createResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("parsing ticketing response: %w", err)
	}
	if decoded.ID == "" {
		return "", fmt.Errorf("ticketing response missing id")
	}

	c.log.Info().Str("ticket", decoded.ID.String()).Msg("ticket created")
	return decoded.ID.String(), nil
}
