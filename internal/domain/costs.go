package domain

import (
	"math"
	"time"
)

// MonthKeyLayout is the time layout producing "YYYY-MM" month keys.
const MonthKeyLayout = "2006-01"

// MonthKeyOf returns the month key for the calendar month containing t.
func MonthKeyOf(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// MonthlyCosts holds the operator-entered fixed costs for one calendar month.
// One record per month key; saves are last-write-wins.
type MonthlyCosts struct {
	MonthKey  string    `bson:"_id" json:"monthKey"`
	Rent      float64   `bson:"rent" json:"rent"`
	Utilities float64   `bson:"utilities" json:"utilities"`
	Staff     float64   `bson:"staff" json:"staff"`
	Other     float64   `bson:"other" json:"other"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Total sums the four cost fields. Non-numeric values coerce to zero so a
// corrupt field cannot poison a whole month's aggregation.
func (m MonthlyCosts) Total() float64 {
	return numericOrZero(m.Rent) + numericOrZero(m.Utilities) +
		numericOrZero(m.Staff) + numericOrZero(m.Other)
}

func numericOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
