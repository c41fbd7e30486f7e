package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MembershipStatus classifies how current a client's membership is.
type MembershipStatus string

const (
	StatusActive  MembershipStatus = "active"
	StatusRisk    MembershipStatus = "risk"
	StatusExpired MembershipStatus = "expired"
)

// RiskWindowDays is how many whole days past expiration a client still counts
// as "at risk" before being classified as fully expired.
const RiskWindowDays = 7

// Client represents a gym member.
type Client struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
	// Phone is the portal login credential and WhatsApp destination.
	// It is stored verbatim: no format or uniqueness validation.
	Phone string `bson:"phone" json:"phone"`
	// BirthDate is a calendar date in "YYYY-MM-DD" form. It doubles as the
	// second login factor for the member portal.
	BirthDate string `bson:"birthDate" json:"birthDate"`
	Gender    string `bson:"gender,omitempty" json:"gender,omitempty"`
	// ActivePlanID may dangle if the referenced plan was deleted later;
	// lookups degrade to "no active plan" rather than failing.
	ActivePlanID *primitive.ObjectID `bson:"activePlanId,omitempty" json:"activePlanId,omitempty"`
	// ExpirationDate is the single source of truth for membership status.
	ExpirationDate  *time.Time `bson:"expirationDate,omitempty" json:"expirationDate,omitempty"`
	LastPaymentDate *time.Time `bson:"lastPaymentDate,omitempty" json:"lastPaymentDate,omitempty"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// StatusAt classifies a membership at the given instant.
//
// A missing expiration date classifies as expired. An expiration on or after
// now classifies as active ("expires exactly now" counts as active). Once
// elapsed, the client is at risk for RiskWindowDays whole days, expired after.
// Pure and total: safe to call repeatedly during stats aggregation.
func StatusAt(expiration *time.Time, now time.Time) MembershipStatus {
	if expiration == nil || expiration.IsZero() {
		return StatusExpired
	}
	if !expiration.Before(now) {
		return StatusActive
	}
	daysOverdue := int(now.Sub(*expiration).Hours() / 24)
	if daysOverdue <= RiskWindowDays {
		return StatusRisk
	}
	return StatusExpired
}

// Status reports the client's membership status at the given instant.
func (c *Client) Status(now time.Time) MembershipStatus {
	return StatusAt(c.ExpirationDate, now)
}
