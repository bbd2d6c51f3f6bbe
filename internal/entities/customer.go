package entities

import "time"

type Customer struct {
	ID         uint64
	FullName   string
	Phone      string
	Email      *string
	BirthDate  *time.Time
	Notes      *string
	TotalSpent int64
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

type Lead struct {
	ID        uint64
	FullName  string
	Phone     string
	Source    *string
	Status    string
	CreatedAt time.Time
}
