package entities

import "time"

// Appointment — запись клиента на визит. Клиент может быть лидом (ещё не
// заведён в базе), существующим клиентом или просто парой имя+телефон.
type Appointment struct {
	ID                  uint64
	LeadID              *uint64
	CustomerID          *uint64
	TechnicianID        *uint64
	ServiceID           *uint64
	CustomerName        string
	CustomerPhone       string
	ServiceName         string
	AppointmentDateTime time.Time
	Status              string
	Reason              *string
	Notes               *string
	ReminderSent        bool
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}
