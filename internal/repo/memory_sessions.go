package repo

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemorySessions is the in-process SessionStore counterpart of MemoryStore.
type MemorySessions struct {
	mu       sync.Mutex
	otps     map[string]memOTP
	throttle map[string]time.Time
	sessions map[string]memSession
}

type memOTP struct {
	hash    string
	existed bool
	expires time.Time
}

type memSession struct {
	userID  primitive.ObjectID
	expires time.Time
}

var _ SessionStore = (*MemorySessions)(nil)

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{
		otps:     make(map[string]memOTP),
		throttle: make(map[string]time.Time),
		sessions: make(map[string]memSession),
	}
}

func (m *MemorySessions) SaveOTP(ctx context.Context, email, hash string, existed bool, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.otps[email] = memOTP{hash: hash, existed: existed, expires: time.Now().Add(ttl)}
	return nil
}

func (m *MemorySessions) GetOTP(ctx context.Context, email string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.otps[email]
	if !ok || time.Now().After(rec.expires) {
		delete(m.otps, email)
		return "", false, ErrNotFound
	}
	return rec.hash, rec.existed, nil
}

func (m *MemorySessions) DeleteOTP(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.otps, email)
	return nil
}

func (m *MemorySessions) ThrottleResend(ctx context.Context, email string, window time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if until, ok := m.throttle[email]; ok && time.Now().Before(until) {
		return false, nil
	}
	m.throttle[email] = time.Now().Add(window)
	return true, nil
}

func (m *MemorySessions) SaveSession(ctx context.Context, icode string, userID primitive.ObjectID, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[icode] = memSession{userID: userID, expires: time.Now().Add(ttl)}
	return nil
}

func (m *MemorySessions) FindSession(ctx context.Context, icode string) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[icode]
	if !ok || time.Now().After(sess.expires) {
		delete(m.sessions, icode)
		return primitive.NilObjectID, ErrNotFound
	}
	return sess.userID, nil
}

func (m *MemorySessions) DeleteSession(ctx context.Context, icode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, icode)
	return nil
}

func (m *MemorySessions) Ping(ctx context.Context) error { return nil }
func (m *MemorySessions) Close() error                   { return nil }
