package constants

// Базовый жизненный цикл записи (ресепшн).
const (
	ApptStatusScheduled = "SCHEDULED"
	ApptStatusConfirmed = "CONFIRMED"
	ApptStatusNoShow    = "NO_SHOW"
	ApptStatusDone      = "DONE"
	ApptStatusCancelled = "CANCELLED"
)

// Расширение для потока техника.
const (
	ApptStatusCheckedIn  = "CHECKED_IN"
	ApptStatusInProgress = "IN_PROGRESS"
	ApptStatusCompleted  = "COMPLETED"
)

var AllowedAppointmentStatuses = []string{
	ApptStatusScheduled,
	ApptStatusConfirmed,
	ApptStatusNoShow,
	ApptStatusDone,
	ApptStatusCancelled,
	ApptStatusCheckedIn,
	ApptStatusInProgress,
	ApptStatusCompleted,
}

func IsAllowedAppointmentStatus(status string) bool {
	for _, s := range AllowedAppointmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}
