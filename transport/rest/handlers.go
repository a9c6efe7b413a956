package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const maxBodyBytes = 1 << 12

var errBadRequest = errors.New("bad request")

type sessionService interface {
	Create(ctx context.Context, opts usecase.CreateOptions) (*entity.Session, error)
	Get(ctx context.Context, id string) (*entity.Session, error)
	MakeMove(ctx context.Context, id string, row, col int) (*entity.Session, error)
	NewRound(ctx context.Context, id string) (*entity.Session, error)
	Restart(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}

type createSessionRequest struct {
	Difficulty string `json:"difficulty"`
	AIFirst    *bool  `json:"ai_first"`
}

type moveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type handlers struct {
	logger         *slog.Logger
	sessionService sessionService
}

func newHandlers(logger *slog.Logger, sessionService sessionService) *handlers {
	return &handlers{
		logger:         logger.With("component", "rest"),
		sessionService: sessionService,
	}
}

func (that *handlers) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeBody(w, r, &req, true); err != nil {
		that.writeError(w, r, err)
		return
	}

	session, err := that.sessionService.Create(r.Context(), usecase.CreateOptions{
		Difficulty: req.Difficulty,
		AIFirst:    req.AIFirst,
	})
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, session)
}

func (that *handlers) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessionService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) makeMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		that.writeError(w, r, err)
		return
	}

	if req.Row == nil || req.Col == nil {
		that.writeError(w, r, fmt.Errorf("%w: row and col are required", errBadRequest))
		return
	}

	session, err := that.sessionService.MakeMove(r.Context(), chi.URLParam(r, "id"), *req.Row, *req.Col)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) newRound(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessionService.NewRound(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) restart(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessionService.Restart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := that.sessionService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeBody reads a JSON body into v. An empty body is accepted only when
// optional is set.
func decodeBody(w http.ResponseWriter, r *http.Request, v any, optional bool) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	err := decoder.Decode(v)
	if errors.Is(err, io.EOF) {
		if optional {
			return nil
		}
		return fmt.Errorf("%w: request body is empty", errBadRequest)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}

	return nil
}
