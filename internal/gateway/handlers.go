package gateway

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// MessageRequest is the body of POST /api/chat/message.
type MessageRequest struct {
	SessionID string `json:"sessionId,omitempty"`
	Message   string `json:"message"`
}

// TicketRequest is the body of POST /api/chat/ticket.
type TicketRequest struct {
	Question string `json:"question"`
	Title    string `json:"title,omitempty"`
}

// ResetRequest is the body of POST /api/chat/reset.
type ResetRequest struct {
	SessionID string `json:"sessionId"`
}

// WidgetConfig is the branding payload the embeddable widget fetches
// before rendering.
type WidgetConfig struct {
	Title         string `json:"title"`
	Placeholder   string `json:"placeholder"`
	Greeting      string `json:"greeting"`
	ProviderLabel string `json:"providerLabel,omitempty"`
	SupportPhone  string `json:"supportPhone,omitempty"`
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: s.version})
}

// handleNotFound returns a 404 for unknown routes.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error": "not found",
		"path":  r.URL.Path,
	})
}

// handleMessage processes one chat message. A missing session ID means
// a fresh conversation; the generated ID comes back in the reply so the
// widget can continue it.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	reply := s.chat.HandleMessage(r.Context(), sessionID, req.Message)
	writeJSON(w, http.StatusOK, reply)
}

// handleTicket files a support ticket from the conversation. Creation
// failures surface as success=false, not as an HTTP error, so the
// widget can tell the user to call instead.
func (s *Server) handleTicket(w http.ResponseWriter, r *http.Request) {
	var req TicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	result := s.chat.CreateTicket(r.Context(), req.Question, req.Title)
	writeJSON(w, http.StatusOK, result)
}

// handleReset clears a session's conversation history.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		writeError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	s.chat.ResetSession(req.SessionID)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleWidgetConfig returns the widget branding.
func (s *Server) handleWidgetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, WidgetConfig{
		Title:         s.cfg.Widget.Title,
		Placeholder:   s.cfg.Widget.Placeholder,
		Greeting:      s.cfg.Widget.Greeting,
		ProviderLabel: s.providers.Label(s.cfg.Provider.ID),
		SupportPhone:  s.chat.SupportPhone(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
