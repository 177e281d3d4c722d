package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email"       json:"email"`
	Username    string             `bson:"username"    json:"username"`
	Publication string             `bson:"publication" json:"publication"`
	Verified    bool               `bson:"verified"    json:"verified"`
	CreatedAt   time.Time          `bson:"created_at"  json:"created_at"`
}
