package entities

import "time"

// Service — услуга из прайс-листа салона.
type Service struct {
	ID              uint64
	Name            string
	Price           int64
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
}
