package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentMethod enumerates how a payment was collected.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodTransfer PaymentMethod = "transfer"
)

// Payment is one recorded monetary transaction. Payments are append-only:
// once created they are never updated or deleted.
type Payment struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID primitive.ObjectID `bson:"clientId" json:"clientId"`
	// PlanID is absent for ad-hoc amounts not tied to a catalog plan.
	PlanID *primitive.ObjectID `bson:"planId,omitempty" json:"planId,omitempty"`
	// Amount may be overridden at entry time; it is independent of the
	// plan's listed price.
	Amount float64       `bson:"amount" json:"amount"`
	Method PaymentMethod `bson:"method" json:"method"`
	Date   time.Time     `bson:"date" json:"date"` // Assigned at creation, immutable.
	// PlanName is a snapshot of the plan's name at payment time so the
	// ledger stays historically accurate even if the plan is later renamed
	// or deleted.
	PlanName string `bson:"planName" json:"planName"`
}

// NextExpiration applies a plan grant to a membership.
//
// A membership that is still active renews on top of its remaining time: the
// grant stacks onto the current expiration, so renewing early loses nothing.
// An expired (or exactly expiring) membership starts fresh from now; unused
// catch-up time is not granted retroactively. With durationDays = 0 the
// selected baseline is returned unchanged.
func NextExpiration(current *time.Time, now time.Time, durationDays int) time.Time {
	base := now
	if current != nil && current.After(now) {
		base = *current
	}
	return base.AddDate(0, 0, durationDays)
}
