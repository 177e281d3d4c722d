package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/glancery/glancery/internal/domain"
)

func (s *Mongo) CreateGlance(ctx context.Context, g *domain.Glance) error {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.glances.insert",
		tracer.Tag("gcode", g.GCode),
	)
	defer sp.Finish()

	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	res, err := s.colGlances.InsertOne(ctx, g)
	if isDup(err) {
		return ErrDuplicate
	}
	if err != nil {
		sp.SetTag("error", err)
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		g.ID = oid
	}
	return nil
}

func (s *Mongo) UpdateGlance(ctx context.Context, owner primitive.ObjectID, g *domain.Glance) error {
	set := bson.M{
		"headline":   g.Headline,
		"snippet":    g.Snippet,
		"cta":        g.CTA,
		"link":       g.Link,
		"q1":         g.Q1,
		"q2":         g.Q2,
		"q3":         g.Q3,
		"updated_at": time.Now().UTC(),
	}
	if g.Image != "" {
		set["image"] = g.Image
	}
	res, err := s.colGlances.UpdateOne(ctx,
		bson.M{"gcode": g.GCode, "owner_id": owner},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Mongo) DeleteGlance(ctx context.Context, owner primitive.ObjectID, gcode string) error {
	res, err := s.colGlances.DeleteOne(ctx, bson.M{"gcode": gcode, "owner_id": owner})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Mongo) FindGlanceByCode(ctx context.Context, gcode string) (*domain.Glance, error) {
	var g domain.Glance
	err := s.colGlances.FindOne(ctx, bson.M{"gcode": gcode}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Mongo) ListGlancesByOwner(ctx context.Context, owner primitive.ObjectID) ([]domain.Glance, error) {
	cur, err := s.colGlances.Find(ctx,
		bson.M{"owner_id": owner},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Glance
	for cur.Next(ctx) {
		var g domain.Glance
		if err := cur.Decode(&g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, cur.Err()
}

func (s *Mongo) IncrementStats(ctx context.Context, gcode string, views, clicks, shares int64) error {
	inc := bson.M{}
	if views != 0 {
		inc["views"] = views
	}
	if clicks != 0 {
		inc["clicks"] = clicks
	}
	if shares != 0 {
		inc["shares"] = shares
	}
	if len(inc) == 0 {
		return nil
	}
	res, err := s.colGlances.UpdateOne(ctx, bson.M{"gcode": gcode}, bson.M{"$inc": inc})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
