package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// Defaults apply to sessions created without explicit options.
type Defaults struct {
	Difficulty string
	AIFirst    bool
}

// CreateOptions overrides Defaults for a single session. Zero values fall back
// to the defaults.
type CreateOptions struct {
	Difficulty string
	AIFirst    *bool
}

type SessionManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	bots        map[string]service.Bot
	defaults    Defaults
	locks       *sessionLocks
}

func NewSessionManager(logger *slog.Logger, sessionRepo sessionRepo, bots map[string]service.Bot, defaults Defaults) *SessionManager {
	return &SessionManager{
		logger: logger.With("component", "session_manager"),

		sessionRepo: sessionRepo,
		bots:        bots,
		defaults:    defaults,
		locks:       newSessionLocks(),
	}
}

// Create starts a new session. When the engine moves first its opening is
// already on the returned board.
func (that *SessionManager) Create(ctx context.Context, opts CreateOptions) (*entity.Session, error) {
	difficulty := opts.Difficulty
	if difficulty == "" {
		difficulty = that.defaults.Difficulty
	}

	if _, ok := that.bots[difficulty]; !ok {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, difficulty)
	}

	aiFirst := that.defaults.AIFirst
	if opts.AIFirst != nil {
		aiFirst = *opts.AIFirst
	}

	session := entity.NewSession(uuid.NewString(), difficulty, aiFirst)
	log := that.logger.With("method", "Create", "sessionID", session.ID)

	if session.AIFirst {
		if err := that.botTurn(session); err != nil {
			return nil, err
		}
	}

	if err := that.updateSession(ctx, session); err != nil {
		return nil, err
	}

	log.Info("session created", "difficulty", difficulty, "aiFirst", aiFirst)

	return session, nil
}

func (that *SessionManager) Get(ctx context.Context, id string) (*entity.Session, error) {
	return that.getSession(ctx, id)
}

// MakeMove plays the human's mark and, while the round is still open, the
// bot's reply. Requests for the same session are serialized.
func (that *SessionManager) MakeMove(ctx context.Context, id string, row, col int) (*entity.Session, error) {
	log := that.logger.With("method", "MakeMove", "sessionID", id)

	unlock := that.locks.lock(id)
	defer unlock()

	session, err := that.getSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = session.ConfirmOngoingState(); err != nil {
		return nil, fmt.Errorf("cannot move: %w", err)
	}

	if err = tictactoe.ApplyHumanMove(&session.Board, row, col); err != nil {
		log.Debug("human move rejected", "row", row, "col", col, "error", err)
		return nil, err
	}

	session.LastAIMove = nil

	if outcome := session.UpdateState(); !outcome.IsTerminal() {
		if err = that.botTurn(session); err != nil {
			return nil, err
		}

		session.UpdateState()
	}

	if err = that.updateSession(ctx, session); err != nil {
		return nil, err
	}

	log.Info("move played", "row", row, "col", col, "status", session.Status, "winner", session.Winner)

	return session, nil
}

// NewRound clears the board and keeps the score.
func (that *SessionManager) NewRound(ctx context.Context, id string) (*entity.Session, error) {
	return that.clearSession(ctx, id, "NewRound", (*entity.Session).NewRound)
}

// Restart clears the board and the score.
func (that *SessionManager) Restart(ctx context.Context, id string) (*entity.Session, error) {
	return that.clearSession(ctx, id, "Restart", (*entity.Session).Reset)
}

func (that *SessionManager) Delete(ctx context.Context, id string) error {
	unlock := that.locks.lock(id)
	defer unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session deleted", "method", "Delete", "sessionID", id)

	return nil
}

func (that *SessionManager) clearSession(ctx context.Context, id, method string, reset func(*entity.Session)) (*entity.Session, error) {
	log := that.logger.With("method", method, "sessionID", id)

	unlock := that.locks.lock(id)
	defer unlock()

	session, err := that.getSession(ctx, id)
	if err != nil {
		return nil, err
	}

	reset(session)

	if session.AIFirst {
		if err = that.botTurn(session); err != nil {
			return nil, err
		}
	}

	if err = that.updateSession(ctx, session); err != nil {
		return nil, err
	}

	log.Info("board cleared", "playerWins", session.PlayerWins, "aiWins", session.AIWins)

	return session, nil
}

// botTurn lets the session's bot answer on the board.
func (that *SessionManager) botTurn(session *entity.Session) error {
	bot, ok := that.bots[session.Difficulty]
	if !ok {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, session.Difficulty)
	}

	move, err := bot.MakeTurn(&session.Board)
	if err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	session.LastAIMove = &move

	return nil
}

func (that *SessionManager) getSession(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (that *SessionManager) updateSession(ctx context.Context, session *entity.Session) error {
	session.Touch()

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}
