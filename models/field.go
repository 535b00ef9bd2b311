package models

import "time"

// Field represents a bookable sports field.
type Field struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Sport        string    `bson:"sport" json:"sport"` // "football", "volleyball", "basketball"
	Capacity     int       `bson:"capacity" json:"capacity"`
	Address      string    `bson:"address" json:"address"`
	PricePerHour float64   `bson:"pricePerHour" json:"pricePerHour"`
	OpenHour     int       `bson:"openHour,omitempty" json:"openHour,omitempty"`   // first bookable hour mark; 0 means use the configured default
	CloseHour    int       `bson:"closeHour,omitempty" json:"closeHour,omitempty"` // closing hour, exclusive; 0 means use the configured default
	IsAvailable  bool      `bson:"isAvailable" json:"isAvailable"`                 // denormalized badge, refreshed by the availability worker
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
