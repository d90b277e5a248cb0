package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/exotended-backend/internal/entity"
)

// memorySession keeps sessions in process, stored as tokens so callers never share game state.
type memorySession struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewMemorySessionRepository() SessionRepository {
	return &memorySession{
		tokens: make(map[string]string),
	}
}

func (that *memorySession) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	token := session.Token()

	that.mu.Lock()
	defer that.mu.Unlock()

	that.tokens[session.ID] = token

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.RLock()
	token, ok := that.tokens[id]
	that.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	session, err := entity.RestoreSession(id, token)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session %s: %w", id, err)
	}

	return session, nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.tokens[id]; !ok {
		return ErrSessionNotFound
	}

	delete(that.tokens, id)

	return nil
}
