package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/glancery/glancery/internal/domain"
	"github.com/glancery/glancery/internal/events"
	"github.com/glancery/glancery/internal/repo"
)

// failingStore errors on every increment.
type failingStore struct {
	repo.Store
}

func (failingStore) IncrementStats(context.Context, string, int64, int64, int64) error {
	return errors.New("store down")
}

func TestEmitAppliesIncrements(t *testing.T) {
	store := repo.NewMemoryStore()
	g := &domain.Glance{GCode: "g1", OwnerID: primitive.NewObjectID()}
	if err := store.CreateGlance(context.Background(), g); err != nil {
		t.Fatal(err)
	}

	em := events.NewAsync(store, zap.NewNop())
	em.Emit(context.Background(), events.Stat{GCode: "g1", Views: 1})
	em.Emit(context.Background(), events.Stat{GCode: "g1", Clicks: 2, Shares: 1})
	em.Flush()

	got, err := store.FindGlanceByCode(context.Background(), "g1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Views != 1 || got.Clicks != 2 || got.Shares != 1 {
		t.Fatalf("counters = %d/%d/%d", got.Views, got.Clicks, got.Shares)
	}
}

func TestEmitSwallowsFailures(t *testing.T) {
	em := events.NewAsync(failingStore{}, zap.NewNop())

	done := make(chan struct{})
	go func() {
		// must not panic and must not block the caller
		em.Emit(context.Background(), events.Stat{GCode: "gone", Views: 1})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked the caller")
	}
	em.Flush()
}

func TestEmitIgnoresEmptyCode(t *testing.T) {
	em := events.NewAsync(failingStore{}, zap.NewNop())
	em.Emit(context.Background(), events.Stat{Views: 1})
	em.Flush()
}
