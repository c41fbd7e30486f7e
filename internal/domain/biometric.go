package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Biometric is one timestamped body-measurement snapshot. Entries are owned
// exclusively by one client, append-only, and displayed newest first.
// Zero-valued measurements are treated as "not taken" for display.
type Biometric struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID primitive.ObjectID `bson:"clientId" json:"clientId"`
	Date     time.Time          `bson:"date" json:"date"` // Assigned at creation.

	// Weight in kg, height in cm, bodyFat and muscleMass in percent.
	Weight       float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Height       float64 `bson:"height,omitempty" json:"height,omitempty"`
	BodyFat      float64 `bson:"bodyFat,omitempty" json:"bodyFat,omitempty"`
	MuscleMass   float64 `bson:"muscleMass,omitempty" json:"muscleMass,omitempty"`
	VisceralFat  float64 `bson:"visceralFat,omitempty" json:"visceralFat,omitempty"`
	MetabolicAge float64 `bson:"metabolicAge,omitempty" json:"metabolicAge,omitempty"`

	// Girth measurements, all in cm.
	Waist      float64 `bson:"waist,omitempty" json:"waist,omitempty"`
	Hip        float64 `bson:"hip,omitempty" json:"hip,omitempty"`
	Chest      float64 `bson:"chest,omitempty" json:"chest,omitempty"`
	ArmRight   float64 `bson:"armRight,omitempty" json:"armRight,omitempty"`
	ArmLeft    float64 `bson:"armLeft,omitempty" json:"armLeft,omitempty"`
	ThighRight float64 `bson:"thighRight,omitempty" json:"thighRight,omitempty"`
	ThighLeft  float64 `bson:"thighLeft,omitempty" json:"thighLeft,omitempty"`
	CalfRight  float64 `bson:"calfRight,omitempty" json:"calfRight,omitempty"`
	CalfLeft   float64 `bson:"calfLeft,omitempty" json:"calfLeft,omitempty"`

	// PhotoObjectKey references an optional progress photo in object storage.
	PhotoObjectKey string `bson:"photoObjectKey,omitempty" json:"photoObjectKey,omitempty"`
}
