package suite

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// MemorySessions keeps sessions as JSON in a map. Callers get a fresh copy on
// every read, the same as with redis.
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[string][]byte
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[string][]byte)}
}

func (that *MemorySessions) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[session.ID] = sessionJSON

	return nil
}

func (that *MemorySessions) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.Lock()
	sessionJSON, ok := that.sessions[id]
	that.mu.Unlock()

	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	var session entity.Session
	if err := json.Unmarshal(sessionJSON, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

func (that *MemorySessions) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}
