// Package mcp exposes form sessions as Model Context Protocol tools so an
// agent can fill in a wizard step by step.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/stepwise"
	"github.com/aretw0/stepwise/internal/logging"
	"github.com/aretw0/stepwise/pkg/adapters/codec"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
	"github.com/aretw0/stepwise/pkg/runner"
	"github.com/aretw0/stepwise/pkg/session"
)

// FormURI is the resource exposing the wizard definition.
const FormURI = "stepwise://form"

// ToolResponse is the structured result of every session tool.
type ToolResponse struct {
	SessionID string          `json:"session_id" jsonschema_description:"The session the view belongs to"`
	View      *domain.View    `json:"view" jsonschema_description:"What should be presented for the current step"`
	Receipt   *domain.Receipt `json:"receipt,omitempty" jsonschema_description:"Acknowledgement of a submit"`
}

type sessionArgs struct {
	SessionID string `json:"session_id"`
}

type setFieldArgs struct {
	SessionID string `json:"session_id"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

type stepArgs struct {
	SessionID string `json:"session_id"`
	Step      int    `json:"step"`
}

// Server wraps a wizard engine as an MCP server. Sessions are created on
// first use and persisted through the manager.
type Server struct {
	engine    ports.WizardEngine
	sessions  *session.Manager
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.WizardEngine, sessions *session.Manager, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		engine:    engine,
		sessions:  sessions,
		logger:    logger,
		mcpServer: server.NewMCPServer("stepwise-mcp", strings.TrimSpace(stepwise.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://" + addr
	if strings.HasPrefix(addr, ":") {
		baseURL = "http://localhost" + addr
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("mcp server listening (sse)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	sessionID := mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier; a new session is started on first use"))

	s.mcpServer.AddTool(mcp.NewTool("get_view",
		mcp.WithDescription("Render the current step of a session, starting it if needed."),
		sessionID,
		mcp.WithOutputSchema[ToolResponse](),
	), mcp.NewStructuredToolHandler(s.handleGetView))

	s.mcpServer.AddTool(mcp.NewTool("set_field",
		mcp.WithDescription("Set the value of a field. Checkboxes take true/false, file fields a file name, a JSON object {name,size} or a JSON list of those."),
		sessionID,
		mcp.WithString("key", mcp.Required(), mcp.Description("Field key")),
		mcp.WithString("value", mcp.Required(), mcp.Description("New value")),
		mcp.WithOutputSchema[ToolResponse](),
	), mcp.NewStructuredToolHandler(s.handleSetField))

	s.mcpServer.AddTool(mcp.NewTool("advance",
		mcp.WithDescription("Move to the next step. Ignored while required fields are missing."),
		sessionID,
		mcp.WithOutputSchema[ToolResponse](),
	), mcp.NewStructuredToolHandler(s.navigate(s.engine.Advance)))

	s.mcpServer.AddTool(mcp.NewTool("retreat",
		mcp.WithDescription("Move to the previous step."),
		sessionID,
		mcp.WithOutputSchema[ToolResponse](),
	), mcp.NewStructuredToolHandler(s.navigate(s.engine.Retreat)))

	s.mcpServer.AddTool(mcp.NewTool("jump",
		mcp.WithDescription("Go back to an already visited step by its 1-based index."),
		sessionID,
		mcp.WithNumber("step", mcp.Required(), mcp.Description("Target step")),
		mcp.WithOutputSchema[ToolResponse](),
	), mcp.NewStructuredToolHandler(s.handleJump))

	s.mcpServer.AddTool(mcp.NewTool("submit",
		mcp.WithDescription("Submit the form from the summary step."),
		sessionID,
		mcp.WithOutputSchema[ToolResponse](),
	), mcp.NewStructuredToolHandler(s.handleSubmit))
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(FormURI, "Form Definition",
		mcp.WithMIMEType("application/json"),
	), s.readForm)
}

func (s *Server) readForm(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(s.engine.Inspect())
	if err != nil {
		return nil, fmt.Errorf("failed to encode form: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      FormURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) respond(ctx context.Context, state *domain.State, receipt *domain.Receipt) (ToolResponse, error) {
	view, err := s.engine.Render(ctx, state)
	if err != nil {
		return ToolResponse{}, fmt.Errorf("render failed: %w", err)
	}
	return ToolResponse{SessionID: state.SessionID, View: view, Receipt: receipt}, nil
}

// apply starts the session if needed, then runs op under the session lock.
func (s *Server) apply(ctx context.Context, id string, op func(context.Context, *domain.State) (*domain.State, error)) (*domain.State, error) {
	if id == "" {
		return nil, errors.New("session_id is required")
	}
	if _, _, err := s.sessions.LoadOrStart(ctx, id, s.engine); err != nil {
		return nil, err
	}
	return s.sessions.Update(ctx, id, func(current *domain.State) (*domain.State, error) {
		return op(ctx, current)
	})
}

func (s *Server) handleGetView(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (ToolResponse, error) {
	if args.SessionID == "" {
		return ToolResponse{}, errors.New("session_id is required")
	}
	state, created, err := s.sessions.LoadOrStart(ctx, args.SessionID, s.engine)
	if err != nil {
		return ToolResponse{}, err
	}
	if created {
		s.logger.InfoContext(ctx, "mcp session created", "session_id", args.SessionID)
	}
	return s.respond(ctx, state, nil)
}

func (s *Server) handleSetField(ctx context.Context, request mcp.CallToolRequest, args setFieldArgs) (ToolResponse, error) {
	field, ok := s.engine.Inspect().Field(args.Key)
	if !ok {
		return ToolResponse{}, fmt.Errorf("%w: %q", domain.ErrUnknownField, args.Key)
	}
	clean, err := runner.SanitizeAnswer(field.NumericOnly(), args.Value)
	if err != nil {
		s.logger.WarnContext(ctx, "mcp input rejected", "err", err, "size", len(args.Value))
		return ToolResponse{}, fmt.Errorf("input rejected: %w", err)
	}
	value, err := codec.DecodeValue(field, rawArgument(field, clean))
	if err != nil {
		return ToolResponse{}, err
	}

	state, err := s.apply(ctx, args.SessionID, func(ctx context.Context, st *domain.State) (*domain.State, error) {
		return s.engine.Update(ctx, st, field.Key, value)
	})
	if err != nil {
		return ToolResponse{}, err
	}
	return s.respond(ctx, state, nil)
}

// rawArgument interprets the string argument for the field: text kinds take
// it verbatim, other kinds accept JSON and fall back to the plain string.
func rawArgument(field *domain.Field, s string) any {
	if field.Kind.IsTextual() {
		return s
	}
	var raw any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return s
	}
	return raw
}

func (s *Server) navigate(op func(context.Context, *domain.State) (*domain.State, error)) func(context.Context, mcp.CallToolRequest, sessionArgs) (ToolResponse, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (ToolResponse, error) {
		state, err := s.apply(ctx, args.SessionID, op)
		if err != nil {
			return ToolResponse{}, err
		}
		return s.respond(ctx, state, nil)
	}
}

func (s *Server) handleJump(ctx context.Context, request mcp.CallToolRequest, args stepArgs) (ToolResponse, error) {
	state, err := s.apply(ctx, args.SessionID, func(ctx context.Context, st *domain.State) (*domain.State, error) {
		return s.engine.JumpTo(ctx, st, args.Step)
	})
	if err != nil {
		return ToolResponse{}, err
	}
	return s.respond(ctx, state, nil)
}

func (s *Server) handleSubmit(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (ToolResponse, error) {
	var receipt *domain.Receipt
	state, err := s.apply(ctx, args.SessionID, func(ctx context.Context, st *domain.State) (*domain.State, error) {
		next, rc, err := s.engine.Submit(ctx, st)
		receipt = rc
		return next, err
	})
	if err != nil {
		return ToolResponse{}, err
	}
	return s.respond(ctx, state, receipt)
}
