package apperror

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrRoundFinished     = errors.New("round is already finished")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrUnknownStatus     = errors.New("unknown session status")
)
