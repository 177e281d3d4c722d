package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/glancery/glancery/internal/domain"
)

func (s *Mongo) CreateDraft(ctx context.Context, d *domain.Draft) error {
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	res, err := s.colDrafts.InsertOne(ctx, d)
	if isDup(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		d.ID = oid
	}
	return nil
}

func (s *Mongo) FindDraftByCode(ctx context.Context, owner primitive.ObjectID, dcode string) (*domain.Draft, error) {
	var d domain.Draft
	err := s.colDrafts.FindOne(ctx, bson.M{"dcode": dcode, "owner_id": owner}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Mongo) DeleteDraft(ctx context.Context, owner primitive.ObjectID, dcode string) error {
	res, err := s.colDrafts.DeleteOne(ctx, bson.M{"dcode": dcode, "owner_id": owner})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Mongo) ListDraftsByOwner(ctx context.Context, owner primitive.ObjectID) ([]domain.Draft, error) {
	cur, err := s.colDrafts.Find(ctx,
		bson.M{"owner_id": owner},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Draft
	for cur.Next(ctx) {
		var d domain.Draft
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, cur.Err()
}
