package repository

import (
	"context"
	"sync"
	"time"

	domainsession "github.com/KasumiMercury/todo-web/internal/auth/domain/session"
)

type inMemorySessionRepository struct {
	mu          sync.Mutex
	bySessionID map[domainsession.ID]sessionRecord
	now         func() time.Time
}

// NewInMemorySessionRepository keeps sessions in process memory. Expired
// entries are dropped lazily on read.
func NewInMemorySessionRepository() domainsession.SessionRepository {
	return &inMemorySessionRepository{
		bySessionID: make(map[domainsession.ID]sessionRecord),
		now:         time.Now,
	}
}

func (r *inMemorySessionRepository) SaveSession(_ context.Context, session *domainsession.Session) error {
	if session == nil {
		return ErrSessionRequired
	}

	if !session.ExpiresAt().After(r.now()) {
		return ErrSessionAlreadyExpired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.bySessionID[session.ID()] = newSessionRecord(session)

	return nil
}

func (r *inMemorySessionRepository) GetSession(_ context.Context, sessionID domainsession.ID) (*domainsession.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.bySessionID[sessionID]
	if !ok {
		return nil, domainsession.ErrSessionNotFound
	}

	if !record.ExpiresAt.After(r.now()) {
		delete(r.bySessionID, sessionID)

		return nil, domainsession.ErrSessionNotFound
	}

	return record.toDomain()
}

func (r *inMemorySessionRepository) DeleteSession(_ context.Context, sessionID domainsession.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.bySessionID, sessionID)

	return nil
}
