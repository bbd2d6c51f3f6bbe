package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Формат datetime-local, который присылает форма создания записи.
const ApptDateTimeLayout = "2006-01-02T15:04"

// CreateAppointmentDTO: что клиент присылает для создания записи.
// Обязательна ссылка на клиента: leadId, customerId или имя+телефон —
// это проверяет сервис, здесь только формат полей.
type CreateAppointmentDTO struct {
	LeadID              *uint64 `json:"leadId"`
	CustomerID          *uint64 `json:"customerId"`
	CustomerName        string  `json:"customerName"`
	CustomerPhone       string  `json:"customerPhone"`
	TechnicianID        *uint64 `json:"technicianId"`
	ServiceID           *uint64 `json:"serviceId"`
	AppointmentDateTime string  `json:"appointmentDateTime" validate:"required"`
	Status              string  `json:"status" validate:"omitempty,appt_status"`
	Notes               *string `json:"notes"`
}

// HasCustomerReference — правило из формы создания: хотя бы одна из трёх
// ссылок на клиента должна присутствовать.
func (d CreateAppointmentDTO) HasCustomerReference() bool {
	return d.LeadID != nil || d.CustomerID != nil ||
		(d.CustomerName != "" && d.CustomerPhone != "")
}

// ParseDateTime принимает и формат datetime-local, и полный RFC3339.
func (d CreateAppointmentDTO) ParseDateTime() (time.Time, error) {
	if t, err := time.ParseInLocation(ApptDateTimeLayout, d.AppointmentDateTime, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, d.AppointmentDateTime)
}

// UpdateAppointmentDTO: частичное обновление записи.
type UpdateAppointmentDTO struct {
	CustomerName        null.String `json:"customerName"`
	CustomerPhone       null.String `json:"customerPhone"`
	TechnicianID        null.Uint64 `json:"technicianId"`
	ServiceID           null.Uint64 `json:"serviceId"`
	AppointmentDateTime null.String `json:"appointmentDateTime"`
	Notes               null.String `json:"notes"`
	ReminderSent        null.Bool   `json:"reminderSent"`
}

// UpdateAppointmentStatusDTO: отдельный путь "только статус".
// Время и услуга через него не меняются.
type UpdateAppointmentStatusDTO struct {
	Status string  `json:"status" validate:"required,appt_status"`
	Reason *string `json:"reason"`
	Notes  *string `json:"notes"`
}

// AppointmentDTO: что сервер отправляет клиенту.
type AppointmentDTO struct {
	ApptID              uint64  `json:"apptId"`
	LeadID              *uint64 `json:"leadId,omitempty"`
	CustomerID          *uint64 `json:"customerId,omitempty"`
	TechnicianID        *uint64 `json:"technicianId,omitempty"`
	ServiceID           *uint64 `json:"serviceId,omitempty"`
	CustomerName        string  `json:"customerName"`
	CustomerPhone       string  `json:"customerPhone"`
	ServiceName         string  `json:"serviceName,omitempty"`
	AppointmentDateTime string  `json:"appointmentDateTime"`
	Status              string  `json:"status"`
	Reason              *string `json:"reason,omitempty"`
	Notes               *string `json:"notes,omitempty"`
	ReminderSent        bool    `json:"reminderSent"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt,omitempty"`
}

// AppointmentStatisticsDTO — счётчики по загруженной странице,
// total — по всей выборке.
type AppointmentStatisticsDTO struct {
	Total     uint64 `json:"total"`
	Scheduled int    `json:"scheduled"`
	Confirmed int    `json:"confirmed"`
	Done      int    `json:"done"`
}

// AppointmentListDTO — страница записей плюс производная статистика.
type AppointmentListDTO struct {
	Page[AppointmentDTO]
	Statistics AppointmentStatisticsDTO `json:"statistics"`
}
