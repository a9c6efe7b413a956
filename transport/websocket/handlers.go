package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const (
	actionSessionNew     = "session:new"
	actionSessionGet     = "session:get"
	actionSessionMove    = "session:move"
	actionSessionRound   = "session:round"
	actionSessionRestart = "session:restart"
	actionSessionDelete  = "session:delete"

	actionPing  = "ping"
	actionError = "error"
)

var errBadPayload = errors.New("bad payload")

func (that *Server) handleNewSession(ctx context.Context, msg *Message, c *client) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.reply(c, msg.Action, nil, err)
	}

	session, err := that.sessionService.Create(ctx, usecase.CreateOptions{
		Difficulty: payloadReq.Difficulty,
		AIFirst:    payloadReq.AIFirst,
	})

	return that.reply(c, msg.Action, session, err)
}

func (that *Server) handleGetSession(ctx context.Context, msg *Message, c *client) error {
	payloadReq, err := decodeSessionPayload(msg)
	if err != nil {
		return that.reply(c, msg.Action, nil, err)
	}

	session, err := that.sessionService.Get(ctx, payloadReq.SessionID)

	return that.reply(c, msg.Action, session, err)
}

func (that *Server) handleMove(ctx context.Context, msg *Message, c *client) error {
	payloadReq, err := decodeSessionPayload(msg)
	if err != nil {
		return that.reply(c, msg.Action, nil, err)
	}

	if payloadReq.Row == nil || payloadReq.Col == nil {
		return that.reply(c, msg.Action, nil, fmt.Errorf("%w: row and col are required", errBadPayload))
	}

	session, err := that.sessionService.MakeMove(ctx, payloadReq.SessionID, *payloadReq.Row, *payloadReq.Col)

	return that.reply(c, msg.Action, session, err)
}

func (that *Server) handleNewRound(ctx context.Context, msg *Message, c *client) error {
	payloadReq, err := decodeSessionPayload(msg)
	if err != nil {
		return that.reply(c, msg.Action, nil, err)
	}

	session, err := that.sessionService.NewRound(ctx, payloadReq.SessionID)

	return that.reply(c, msg.Action, session, err)
}

func (that *Server) handleRestart(ctx context.Context, msg *Message, c *client) error {
	payloadReq, err := decodeSessionPayload(msg)
	if err != nil {
		return that.reply(c, msg.Action, nil, err)
	}

	session, err := that.sessionService.Restart(ctx, payloadReq.SessionID)

	return that.reply(c, msg.Action, session, err)
}

func (that *Server) handleDelete(ctx context.Context, msg *Message, c *client) error {
	payloadReq, err := decodeSessionPayload(msg)
	if err != nil {
		return that.reply(c, msg.Action, nil, err)
	}

	if err = that.sessionService.Delete(ctx, payloadReq.SessionID); err != nil {
		return that.reply(c, msg.Action, nil, err)
	}

	if err = c.sendMessage(msg.Action, Payload{SessionID: payloadReq.SessionID}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

// reply sends the session, or err mapped to a client-facing message.
func (that *Server) reply(c *client, action string, session *entity.Session, err error) error {
	if err != nil {
		message := err.Error()
		if !isClientError(err) {
			that.logger.Error("request failed", "action", action, "error", err)
			message = "internal error"
		}

		return that.sendErrorResponse(c, action, message)
	}

	if err = c.sendMessage(action, Payload{Session: session}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(c *client, action, errorMsg string) error {
	if err := c.sendMessage(action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

func decodePayload(msg *Message) (*Payload, error) {
	var payloadReq Payload
	if len(msg.Payload) == 0 {
		return &payloadReq, nil
	}

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadPayload, err)
	}

	return &payloadReq, nil
}

func decodeSessionPayload(msg *Message) (*Payload, error) {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return nil, err
	}

	if payloadReq.SessionID == "" {
		return nil, fmt.Errorf("%w: session_id is required", errBadPayload)
	}

	return payloadReq, nil
}

func isClientError(err error) bool {
	return errors.Is(err, errBadPayload) ||
		errors.Is(err, apperror.ErrSessionNotFound) ||
		errors.Is(err, apperror.ErrRoundFinished) ||
		errors.Is(err, apperror.ErrUnknownDifficulty) ||
		errors.Is(err, tictactoe.ErrInvalidMove)
}
