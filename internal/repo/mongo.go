package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is the production Store.
type Mongo struct {
	Client         *mongo.Client
	DB             *mongo.Database
	colUsers       *mongo.Collection
	colGlances     *mongo.Collection
	colDrafts      *mongo.Collection
	colSubscribers *mongo.Collection
}

var _ Store = (*Mongo)(nil)

func NewMongo(ctx context.Context, uri, dbname string) (*Mongo, error) {
	cli, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetRetryWrites(true).
		SetMaxPoolSize(50),
	)
	if err != nil {
		return nil, err
	}
	if err := cli.Ping(ctx, nil); err != nil {
		return nil, err
	}
	db := cli.Database(dbname)
	return &Mongo{
		Client:         cli,
		DB:             db,
		colUsers:       db.Collection("users"),
		colGlances:     db.Collection("glances"),
		colDrafts:      db.Collection("drafts"),
		colSubscribers: db.Collection("subscribers"),
	}, nil
}

func (s *Mongo) EnsureIndexes(ctx context.Context) error {
	if _, err := s.colUsers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	if _, err := s.colGlances.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "gcode", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}); err != nil {
		return err
	}
	if _, err := s.colDrafts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "dcode", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}); err != nil {
		return err
	}
	_, err := s.colSubscribers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *Mongo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx, nil)
}

func (s *Mongo) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}

func isDup(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
