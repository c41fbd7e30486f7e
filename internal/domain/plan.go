package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Plan represents a purchasable subscription or one-time-fee definition.
type Plan struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Price float64            `bson:"price" json:"price"` // Currency-agnostic, non-negative.
	// DurationDays is the membership time a payment for this plan grants.
	// 0 is a valid value: a one-time, non-extending charge such as an
	// enrollment fee.
	DurationDays int       `bson:"durationDays" json:"durationDays"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
