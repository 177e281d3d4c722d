package domain

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Subscriber struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OwnerID    primitive.ObjectID `bson:"owner_id" json:"-"`
	Email      string             `bson:"email"       json:"email"`
	FollowedAt time.Time          `bson:"followed_at" json:"followedAt"`
}

// SubscriberGroup is one day's worth of followers, newest day first, as the
// dashboard renders them.
type SubscriberGroup struct {
	Label string       `json:"label"`
	Items []Subscriber `json:"items"`
}

// GroupSubscribersByDay buckets followers by calendar day relative to now.
// The two most recent days are labelled "Today" and "Yesterday".
func GroupSubscribersByDay(subs []Subscriber, now time.Time) []SubscriberGroup {
	type bucket struct {
		key   time.Time
		items []Subscriber
	}
	var buckets []*bucket
	index := make(map[time.Time]*bucket)
	for _, s := range subs {
		day := time.Date(s.FollowedAt.Year(), s.FollowedAt.Month(), s.FollowedAt.Day(), 0, 0, 0, 0, s.FollowedAt.Location())
		b, ok := index[day]
		if !ok {
			b = &bucket{key: day}
			index[day] = b
			buckets = append(buckets, b)
		}
		b.items = append(b.items, s)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].key.After(buckets[j].key) })

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)

	out := make([]SubscriberGroup, 0, len(buckets))
	for _, b := range buckets {
		label := b.key.Format("Jan 2, 2006")
		switch {
		case b.key.Equal(today):
			label = "Today"
		case b.key.Equal(yesterday):
			label = "Yesterday"
		}
		out = append(out, SubscriberGroup{Label: label, Items: b.items})
	}
	return out
}
