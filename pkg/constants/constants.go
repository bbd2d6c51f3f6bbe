package constants

// Роли пользователей системы.
const (
	RoleReceptionist = "RECEPTIONIST"
	RoleTechnician   = "TECHNICIAN"
	RoleManager      = "MANAGER"
)

// Типы фото в карточке кейса.
const (
	PhotoTypeBefore = "BEFORE"
	PhotoTypeAfter  = "AFTER"
)

var AllowedPhotoTypes = []string{PhotoTypeBefore, PhotoTypeAfter}

// Статусы лида: новый лид создаётся как NEW, после создания записи по нему
// он помечается CONVERTED.
const (
	LeadStatusNew       = "NEW"
	LeadStatusConverted = "CONVERTED"
)

// Статусы оплаты кейса.
const (
	PaidStatusUnpaid        = "UNPAID"
	PaidStatusPartiallyPaid = "PARTIALLY_PAID"
	PaidStatusFullyPaid     = "FULLY_PAID"
)

// Действия в журнале активности.
const (
	ActivityCreate = "CREATE"
	ActivityUpdate = "UPDATE"
	ActivityDelete = "DELETE"
)
