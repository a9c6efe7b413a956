package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	WinnerHuman = "human"
	WinnerAI    = "ai"
	WinnerTie   = "-"
	WinnerNone  = ""
)

const (
	HardDifficulty = "hard"
	EasyDifficulty = "easy"
)

// Session is one player's table against the engine: the current round plus
// the running score across rounds.
type Session struct {
	ID         string          `json:"id"`
	Board      tictactoe.Board `json:"board"`
	Status     string          `json:"status"`
	Winner     string          `json:"winner"`
	PlayerWins int             `json:"player_wins"`
	AIWins     int             `json:"ai_wins"`
	Draws      int             `json:"draws"`
	Difficulty string          `json:"difficulty"`
	AIFirst    bool            `json:"ai_first"`
	LastAIMove *tictactoe.Move `json:"last_ai_move,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func NewSession(id, difficulty string, aiFirst bool) *Session {
	now := time.Now().UTC()

	return &Session{
		ID:         id,
		Board:      tictactoe.Board{},
		Status:     StatusOngoing,
		Winner:     WinnerNone,
		Difficulty: difficulty,
		AIFirst:    aiFirst,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// UpdateState moves an ongoing round to finished when the board is terminal
// and credits the winner. Finished rounds are left alone so a result is only
// counted once.
func (that *Session) UpdateState() tictactoe.Outcome {
	outcome := tictactoe.Evaluate(&that.Board)
	if that.IsFinished() {
		return outcome
	}

	switch outcome {
	case tictactoe.MaxWin:
		that.finish(WinnerAI)
		that.AIWins++
	case tictactoe.MinWin:
		that.finish(WinnerHuman)
		that.PlayerWins++
	case tictactoe.Draw:
		that.finish(WinnerTie)
		that.Draws++
	default:
		that.Status = StatusOngoing
	}

	return outcome
}

// NewRound clears the board for another round and keeps the score.
func (that *Session) NewRound() {
	that.Board.Clear()
	that.Status = StatusOngoing
	that.Winner = WinnerNone
	that.LastAIMove = nil
}

// Reset clears the board and the score.
func (that *Session) Reset() {
	that.NewRound()
	that.PlayerWins = 0
	that.AIWins = 0
	that.Draws = 0
}

func (that *Session) Touch() {
	that.UpdatedAt = time.Now().UTC()
}

func (that *Session) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Session) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Session) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrRoundFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownStatus, that.Status)
	}
}

func (that *Session) finish(winner string) {
	that.Status = StatusFinished
	that.Winner = winner
}

// IsValidDifficulty reports whether a bot exists for the difficulty.
func IsValidDifficulty(difficulty string) bool {
	return difficulty == HardDifficulty || difficulty == EasyDifficulty
}
