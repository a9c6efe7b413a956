package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

var (
	errSendBufferFull = errors.New("send buffer is full")
	errUnknownAction  = errors.New("unknown action")
)

type sessionService interface {
	Create(ctx context.Context, opts usecase.CreateOptions) (*entity.Session, error)
	Get(ctx context.Context, id string) (*entity.Session, error)
	MakeMove(ctx context.Context, id string, row, col int) (*entity.Session, error)
	NewRound(ctx context.Context, id string) (*entity.Session, error)
	Restart(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}

type Server struct {
	logger         *slog.Logger
	sessionService sessionService
	upgrader       websocket.Upgrader
	pingInterval   time.Duration

	handlers map[string]func(ctx context.Context, message *Message, client *client) error
}

func New(logger *slog.Logger, sessionService sessionService) *Server {
	server := &Server{
		logger:         logger.With("component", "websocket"),
		sessionService: sessionService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		pingInterval: defaultPingInterval,

		handlers: make(map[string]func(context.Context, *Message, *client) error),
	}

	server.handlers[actionSessionNew] = server.handleNewSession
	server.handlers[actionSessionGet] = server.handleGetSession
	server.handlers[actionSessionMove] = server.handleMove
	server.handlers[actionSessionRound] = server.handleNewRound
	server.handlers[actionSessionRestart] = server.handleRestart
	server.handlers[actionSessionDelete] = server.handleDelete

	return server
}

// Handler serves the WebSocket endpoint on /ws.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.upgradeToWebSocket)

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		return nil
	}
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	conn.SetReadLimit(maxMessageBytes)

	// hijacked connections are not closed by http.Server.Shutdown
	stop := context.AfterFunc(req.Context(), func() {
		_ = conn.Close()
	})
	defer stop()

	log.Info("WebSocket connection established", "remoteAddr", conn.RemoteAddr().String())

	c := newClient(conn)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		if writeErr := c.writeWithHeartbeat(that.pingInterval); writeErr != nil {
			log.Debug("writer stopped", "error", writeErr)
			_ = conn.Close()
		}
	}()

	if err = that.handleMessages(req.Context(), c); err != nil {
		log.Debug("connection closed", "error", err)
	}

	close(c.send)
	<-writerDone
}

// handleMessages - processes messages from the client until the connection
// is closed.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, reqBody, err := c.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			if err = that.sendErrorResponse(c, actionError, "malformed message"); err != nil {
				log.Error("error processing message", "error", err)
			}
			continue
		}

		if message.Action == actionPing {
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err = that.sendErrorResponse(c, message.Action, errUnknownAction.Error()); err != nil {
				log.Error("error processing message", "error", err)
			}
			continue
		}

		if err = handler(ctx, &message, c); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}
