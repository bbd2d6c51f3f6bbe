package entities

import "time"

type User struct {
	ID           uint64
	FullName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         string
	Active       bool
	CreatedAt    time.Time
}
