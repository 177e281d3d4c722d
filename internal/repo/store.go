package repo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/glancery/glancery/internal/domain"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// Store is the content store behind the API: creators, their glances and
// drafts, subscriber records, and the engagement counters. Mongo implements
// it in production; MemoryStore backs the tests and local development.
type Store interface {
	CreateUser(ctx context.Context, u *domain.User) error
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	SetPublication(ctx context.Context, id primitive.ObjectID, name string) error

	CreateGlance(ctx context.Context, g *domain.Glance) error
	UpdateGlance(ctx context.Context, owner primitive.ObjectID, g *domain.Glance) error
	DeleteGlance(ctx context.Context, owner primitive.ObjectID, gcode string) error
	FindGlanceByCode(ctx context.Context, gcode string) (*domain.Glance, error)
	ListGlancesByOwner(ctx context.Context, owner primitive.ObjectID) ([]domain.Glance, error)
	// IncrementStats applies best-effort counter deltas in one update.
	IncrementStats(ctx context.Context, gcode string, views, clicks, shares int64) error

	CreateDraft(ctx context.Context, d *domain.Draft) error
	FindDraftByCode(ctx context.Context, owner primitive.ObjectID, dcode string) (*domain.Draft, error)
	DeleteDraft(ctx context.Context, owner primitive.ObjectID, dcode string) error
	ListDraftsByOwner(ctx context.Context, owner primitive.ObjectID) ([]domain.Draft, error)

	// AddSubscriber is idempotent per (owner, email).
	AddSubscriber(ctx context.Context, owner primitive.ObjectID, email string, at time.Time) error
	ListSubscribers(ctx context.Context, owner primitive.ObjectID) ([]domain.Subscriber, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// SessionStore keeps the short-lived auth state: hashed OTPs with their
// "user existed" flag, the resend throttle, and issued session codes.
type SessionStore interface {
	// SaveOTP stores the bcrypt hash of a freshly issued code, replacing
	// any previous one for the email.
	SaveOTP(ctx context.Context, email, hash string, existed bool, ttl time.Duration) error
	// GetOTP returns the stored hash and existed flag, or ErrNotFound
	// when no code is outstanding.
	GetOTP(ctx context.Context, email string) (hash string, existed bool, err error)
	DeleteOTP(ctx context.Context, email string) error
	// ThrottleResend reports whether a resend is allowed now and, when it
	// is, starts the next window.
	ThrottleResend(ctx context.Context, email string, window time.Duration) (bool, error)

	SaveSession(ctx context.Context, icode string, userID primitive.ObjectID, ttl time.Duration) error
	FindSession(ctx context.Context, icode string) (primitive.ObjectID, error)
	DeleteSession(ctx context.Context, icode string) error

	Ping(ctx context.Context) error
	Close() error
}
