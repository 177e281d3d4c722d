package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FAQ is one of the up-to-three question slots on a glance. A "hot" entry
// has part of its answer withheld until the reader unlocks it.
type FAQ struct {
	Text  string `bson:"text"  json:"text"`
	A     string `bson:"a"     json:"a"`
	IsHot bool   `bson:"ishot" json:"ishot"`
}

type Glance struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GCode    string             `bson:"gcode"    json:"gcode"` // short public code, unique
	OwnerID  primitive.ObjectID `bson:"owner_id" json:"-"`
	Headline string             `bson:"headline" json:"headline"`
	Snippet  string             `bson:"snippet"  json:"snippet"`
	Image    string             `bson:"image"    json:"image"`
	CTA      string             `bson:"cta"      json:"cta"`
	Link     string             `bson:"link"     json:"link"`
	Q1       *FAQ               `bson:"q1,omitempty" json:"q1,omitempty"`
	Q2       *FAQ               `bson:"q2,omitempty" json:"q2,omitempty"`
	Q3       *FAQ               `bson:"q3,omitempty" json:"q3,omitempty"`

	Views  int64 `bson:"views"  json:"views"`
	Clicks int64 `bson:"clicks" json:"clicks"`
	Shares int64 `bson:"shares" json:"shares"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// FAQs returns the filled question slots in order, skipping nil entries.
func (g *Glance) FAQs() []FAQ {
	var out []FAQ
	for _, q := range []*FAQ{g.Q1, g.Q2, g.Q3} {
		if q != nil {
			out = append(out, *q)
		}
	}
	return out
}
