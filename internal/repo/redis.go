package repo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	keyOTP     = "otp:"
	keyResend  = "resend:"
	keySession = "sess:"
)

// Redis is the production SessionStore.
type Redis struct {
	C *redis.Client
}

var _ SessionStore = (*Redis)(nil)

func NewRedis(addr string) *Redis {
	return &Redis{C: redis.NewClient(&redis.Options{Addr: addr})}
}

type otpRecord struct {
	Hash    string `json:"hash"`
	Existed bool   `json:"existed"`
}

func (r *Redis) SaveOTP(ctx context.Context, email, hash string, existed bool, ttl time.Duration) error {
	b, err := json.Marshal(otpRecord{Hash: hash, Existed: existed})
	if err != nil {
		return err
	}
	return r.C.Set(ctx, keyOTP+email, b, ttl).Err()
}

func (r *Redis) GetOTP(ctx context.Context, email string) (string, bool, error) {
	raw, err := r.C.Get(ctx, keyOTP+email).Result()
	if err == redis.Nil {
		return "", false, ErrNotFound
	}
	if err != nil {
		return "", false, err
	}
	var rec otpRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return "", false, err
	}
	return rec.Hash, rec.Existed, nil
}

func (r *Redis) DeleteOTP(ctx context.Context, email string) error {
	return r.C.Del(ctx, keyOTP+email).Err()
}

func (r *Redis) ThrottleResend(ctx context.Context, email string, window time.Duration) (bool, error) {
	return r.C.SetNX(ctx, keyResend+email, "1", window).Result()
}

func (r *Redis) SaveSession(ctx context.Context, icode string, userID primitive.ObjectID, ttl time.Duration) error {
	return r.C.Set(ctx, keySession+icode, userID.Hex(), ttl).Err()
}

func (r *Redis) FindSession(ctx context.Context, icode string) (primitive.ObjectID, error) {
	hexID, err := r.C.Get(ctx, keySession+icode).Result()
	if err == redis.Nil {
		return primitive.NilObjectID, ErrNotFound
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return id, nil
}

func (r *Redis) DeleteSession(ctx context.Context, icode string) error {
	return r.C.Del(ctx, keySession+icode).Err()
}

func (r *Redis) Ping(ctx context.Context) error { return r.C.Ping(ctx).Err() }
func (r *Redis) Close() error                   { return r.C.Close() }
