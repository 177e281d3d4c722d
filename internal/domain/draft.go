package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Draft has the same content shape as a Glance but its own code. Publishing
// converts it into a Glance with a freshly generated gcode.
type Draft struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DCode    string             `bson:"dcode"    json:"dcode"`
	OwnerID  primitive.ObjectID `bson:"owner_id" json:"-"`
	Headline string             `bson:"headline" json:"headline"`
	Snippet  string             `bson:"snippet"  json:"snippet"`
	Image    string             `bson:"image"    json:"image"`
	CTA      string             `bson:"cta"      json:"cta"`
	Link     string             `bson:"link"     json:"link"`
	Q1       *FAQ               `bson:"q1,omitempty" json:"q1,omitempty"`
	Q2       *FAQ               `bson:"q2,omitempty" json:"q2,omitempty"`
	Q3       *FAQ               `bson:"q3,omitempty" json:"q3,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// ToGlance builds the published counterpart of the draft. The caller assigns
// the gcode.
func (d *Draft) ToGlance() *Glance {
	return &Glance{
		OwnerID:  d.OwnerID,
		Headline: d.Headline,
		Snippet:  d.Snippet,
		Image:    d.Image,
		CTA:      d.CTA,
		Link:     d.Link,
		Q1:       d.Q1,
		Q2:       d.Q2,
		Q3:       d.Q3,
	}
}
