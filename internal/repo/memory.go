package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/glancery/glancery/internal/domain"
)

// MemoryStore is an in-process Store used by the test suite and for running
// the server without Mongo. It applies the same uniqueness and ownership
// rules as the Mongo implementation.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[primitive.ObjectID]*domain.User
	byEmail map[string]primitive.ObjectID
	glances map[string]*domain.Glance
	drafts  map[string]*domain.Draft
	subs    map[primitive.ObjectID]map[string]domain.Subscriber
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[primitive.ObjectID]*domain.User),
		byEmail: make(map[string]primitive.ObjectID),
		glances: make(map[string]*domain.Glance),
		drafts:  make(map[string]*domain.Draft),
		subs:    make(map[primitive.ObjectID]map[string]domain.Subscriber),
	}
}

func (s *MemoryStore) CreateUser(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[u.Email]; ok {
		return ErrDuplicate
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	cp := *u
	s.users[u.ID] = &cp
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s.users[id]
	return &cp, nil
}

func (s *MemoryStore) FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) SetPublication(ctx context.Context, id primitive.ObjectID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Publication = name
	return nil
}

func (s *MemoryStore) CreateGlance(ctx context.Context, g *domain.Glance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.glances[g.GCode]; ok {
		return ErrDuplicate
	}
	g.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	cp := *g
	s.glances[g.GCode] = &cp
	return nil
}

func (s *MemoryStore) UpdateGlance(ctx context.Context, owner primitive.ObjectID, g *domain.Glance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.glances[g.GCode]
	if !ok || cur.OwnerID != owner {
		return ErrNotFound
	}
	cur.Headline = g.Headline
	cur.Snippet = g.Snippet
	cur.CTA = g.CTA
	cur.Link = g.Link
	cur.Q1, cur.Q2, cur.Q3 = g.Q1, g.Q2, g.Q3
	if g.Image != "" {
		cur.Image = g.Image
	}
	cur.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) DeleteGlance(ctx context.Context, owner primitive.ObjectID, gcode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.glances[gcode]
	if !ok || cur.OwnerID != owner {
		return ErrNotFound
	}
	delete(s.glances, gcode)
	return nil
}

func (s *MemoryStore) FindGlanceByCode(ctx context.Context, gcode string) (*domain.Glance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.glances[gcode]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (s *MemoryStore) ListGlancesByOwner(ctx context.Context, owner primitive.ObjectID) ([]domain.Glance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Glance
	for _, g := range s.glances {
		if g.OwnerID == owner {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) IncrementStats(ctx context.Context, gcode string, views, clicks, shares int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.glances[gcode]
	if !ok {
		return ErrNotFound
	}
	g.Views += views
	g.Clicks += clicks
	g.Shares += shares
	return nil
}

func (s *MemoryStore) CreateDraft(ctx context.Context, d *domain.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[d.DCode]; ok {
		return ErrDuplicate
	}
	d.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	cp := *d
	s.drafts[d.DCode] = &cp
	return nil
}

func (s *MemoryStore) FindDraftByCode(ctx context.Context, owner primitive.ObjectID, dcode string) (*domain.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[dcode]
	if !ok || d.OwnerID != owner {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *MemoryStore) DeleteDraft(ctx context.Context, owner primitive.ObjectID, dcode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[dcode]
	if !ok || d.OwnerID != owner {
		return ErrNotFound
	}
	delete(s.drafts, dcode)
	return nil
}

func (s *MemoryStore) ListDraftsByOwner(ctx context.Context, owner primitive.ObjectID) ([]domain.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Draft
	for _, d := range s.drafts {
		if d.OwnerID == owner {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) AddSubscriber(ctx context.Context, owner primitive.ObjectID, email string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.subs[owner]
	if !ok {
		m = make(map[string]domain.Subscriber)
		s.subs[owner] = m
	}
	if _, ok := m[email]; ok {
		return nil
	}
	m[email] = domain.Subscriber{
		ID:         primitive.NewObjectID(),
		OwnerID:    owner,
		Email:      email,
		FollowedAt: at.UTC(),
	}
	return nil
}

func (s *MemoryStore) ListSubscribers(ctx context.Context, owner primitive.ObjectID) ([]domain.Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Subscriber
	for _, sub := range s.subs[owner] {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FollowedAt.After(out[j].FollowedAt) })
	return out, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error  { return nil }
func (s *MemoryStore) Close(ctx context.Context) error { return nil }
