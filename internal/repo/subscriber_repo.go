package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/glancery/glancery/internal/domain"
)

func (s *Mongo) AddSubscriber(ctx context.Context, owner primitive.ObjectID, email string, at time.Time) error {
	_, err := s.colSubscribers.UpdateOne(ctx,
		bson.M{"owner_id": owner, "email": email},
		bson.M{"$setOnInsert": bson.M{"followed_at": at.UTC()}},
		options.Update().SetUpsert(true),
	)
	if isDup(err) {
		// concurrent upsert for the same pair; the record exists, which
		// is all the caller asked for
		return nil
	}
	return err
}

func (s *Mongo) ListSubscribers(ctx context.Context, owner primitive.ObjectID) ([]domain.Subscriber, error) {
	cur, err := s.colSubscribers.Find(ctx,
		bson.M{"owner_id": owner},
		options.Find().SetSort(bson.D{{Key: "followed_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Subscriber
	for cur.Next(ctx) {
		var sub domain.Subscriber
		if err := cur.Decode(&sub); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, cur.Err()
}
