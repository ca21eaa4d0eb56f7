// Package gateway exposes the chat mediator over HTTP and WebSocket:
// the REST endpoints the embeddable widget calls, plus a frame-based
// WebSocket channel for clients that keep a connection open.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mseguy/aidesk/internal/chat"
	"github.com/mseguy/aidesk/internal/config"
	"github.com/mseguy/aidesk/internal/logging"
	"github.com/mseguy/aidesk/internal/provider"
	"github.com/mseguy/aidesk/internal/version"
)

// ErrClientClosed is returned when writing to a closed connection.
var ErrClientClosed = errors.New("client connection closed")

// Server is the aidesk HTTP + WebSocket server.
type Server struct {
	cfg       config.Config
	auth      ResolvedAuth
	log       *logging.Logger
	chat      *chat.Orchestrator
	providers *provider.Registry
	version   string

	httpServer *http.Server
	upgrader   websocket.Upgrader
}

// New creates a gateway server around a chat orchestrator.
func New(cfg config.Config, orch *chat.Orchestrator, providers *provider.Registry, log *logging.Logger) *Server {
	return &Server{
		cfg:       cfg,
		auth:      ResolveAuth(cfg.Gateway.Auth),
		log:       log.Sub("gateway"),
		chat:      orch,
		providers: providers,
		version:   version.Version,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     checkWebSocketOrigin(cfg.Gateway.AllowedOrigins),
		},
	}
}

// checkWebSocketOrigin returns a function that validates WebSocket
// Origin headers. Requests without an Origin header (non-browser
// clients) are always allowed.
func checkWebSocketOrigin(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return isOriginAllowed(origin, allowed)
	}
}

// resolveBindAddr computes the listen address from config.
func resolveBindAddr(cfg config.GatewayConfig) string {
	switch cfg.Bind {
	case "loopback":
		return fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	case "lan":
		return fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	case "custom":
		host := cfg.CustomBindHost
		if host == "" {
			host = "0.0.0.0"
		}
		return fmt.Sprintf("%s:%d", host, cfg.Port)
	default:
		return fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	}
}

// registerRoutes sets up all HTTP routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/chat/config", s.handleWidgetConfig)
	mux.HandleFunc("POST /api/chat/message", s.requireAuth(s.handleMessage))
	mux.HandleFunc("POST /api/chat/ticket", s.requireAuth(s.handleTicket))
	mux.HandleFunc("POST /api/chat/reset", s.requireAuth(s.handleReset))
	mux.HandleFunc("GET /ws", s.handleWebSocket)

	// Catch-all for unknown routes
	mux.HandleFunc("/", handleNotFound)
}

// requireAuth guards a handler with bearer-token auth when configured.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.auth.Authorize(requestToken(r)) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

// Start begins listening for HTTP and WebSocket connections.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	addr := resolveBindAddr(s.cfg.Gateway)

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	handler := withMiddleware(mux, s.log, s.cfg.Gateway.AllowedOrigins)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BaseContext:  func(l net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.log.Info().
		Str("addr", ln.Addr().String()).
		Str("bind", s.cfg.Gateway.Bind).
		Str("auth", s.auth.Mode).
		Str("provider", s.cfg.Provider.ID).
		Msg("gateway server ready")

	go func() {
		<-ctx.Done()
		s.log.Info().Msg("shutting down gateway server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
	}()

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the server's listen address, or empty string if not started.
func (s *Server) Addr() string {
	if s.httpServer != nil {
		return s.httpServer.Addr
	}
	return ""
}

// handleWebSocket upgrades HTTP to WebSocket and runs the frame loop.
// Auth is checked before the upgrade; browser clients pass the token as
// a query parameter.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.auth.Authorize(requestToken(r)) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(1 * 1024 * 1024) // 1MB

	connID := uuid.New().String()
	s.log.Debug().Str("connId", connID).Str("remote", r.RemoteAddr).Msg("websocket connected")

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug().Str("connId", connID).Msg("client closed connection")
			} else {
				s.log.Warn().Err(err).Str("connId", connID).Msg("read error")
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(msg, &frame); err != nil {
			conn.WriteJSON(NewErrorResponse("", ErrorShape{
				Code:    "protocol_error",
				Message: "invalid frame",
			}))
			continue
		}
		if frame.Type != FrameTypeRequest {
			s.log.Debug().Str("type", frame.Type).Msg("ignoring non-request frame")
			continue
		}

		s.dispatch(r.Context(), conn, connID, frame)
	}
}

// dispatch routes a request frame to the matching chat operation.
func (s *Server) dispatch(ctx context.Context, conn *websocket.Conn, connID string, frame Frame) {
	respond := func(payload any) {
		resp, err := NewResponse(frame.ID, payload)
		if err != nil {
			s.log.Warn().Err(err).Str("method", frame.Method).Msg("failed to encode response")
			return
		}
		conn.WriteJSON(resp)
	}
	respondError := func(code, message string) {
		conn.WriteJSON(NewErrorResponse(frame.ID, ErrorShape{Code: code, Message: message}))
	}

	switch frame.Method {
	case "health":
		respond(HealthResponse{Status: "ok", Version: s.version})

	case "chat.send":
		var p MessageRequest
		if err := unmarshalParams(frame.Params, &p); err != nil {
			respondError("invalid_params", err.Error())
			return
		}
		sessionID := strings.TrimSpace(p.SessionID)
		if sessionID == "" {
			sessionID = connID
		}
		respond(s.chat.HandleMessage(ctx, sessionID, p.Message))

	case "ticket.create":
		var p TicketRequest
		if err := unmarshalParams(frame.Params, &p); err != nil {
			respondError("invalid_params", err.Error())
			return
		}
		if strings.TrimSpace(p.Question) == "" {
			respondError("invalid_params", "question is required")
			return
		}
		respond(s.chat.CreateTicket(ctx, p.Question, p.Title))

	case "session.reset":
		var p ResetRequest
		if err := unmarshalParams(frame.Params, &p); err != nil {
			respondError("invalid_params", err.Error())
			return
		}
		sessionID := strings.TrimSpace(p.SessionID)
		if sessionID == "" {
			sessionID = connID
		}
		s.chat.ResetSession(sessionID)
		respond(map[string]bool{"ok": true})

	default:
		respondError("method_not_found", "unknown method: "+frame.Method)
	}
}

func unmarshalParams(params json.RawMessage, target any) error {
	if params == nil {
		return nil
	}
	return json.Unmarshal(params, target)
}
