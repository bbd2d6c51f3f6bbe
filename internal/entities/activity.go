package entities

import "time"

// Activity — запись журнала действий для дашборда ресепшн.
type Activity struct {
	ID         uint64
	Action     string
	EntityType string
	EntityID   *uint64
	ActorID    *uint64
	ActorName  string
	Detail     string
	CreatedAt  time.Time
}
