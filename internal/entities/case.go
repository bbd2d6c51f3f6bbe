package entities

import "time"

// TreatmentCase — курс процедур клиента. К кейсу привязываются фото и счета.
// Суммы храним в донгах без дробной части.
type TreatmentCase struct {
	ID                 uint64
	CustomerID         uint64
	PrimaryServiceID   *uint64
	PrimaryServiceName string
	Status             string
	PaidStatus         string
	TotalAmount        int64
	AmountPaid         int64
	IntakeNote         *string
	StartDate          *time.Time
	EndDate            *time.Time
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}

type Photo struct {
	ID         uint64
	CaseID     uint64
	FilePath   string
	Type       string
	Note       *string
	UploadedBy *uint64
	CreatedAt  time.Time
}

// FinancialTransaction — строка финансовой истории клиента.
type FinancialTransaction struct {
	ID         uint64
	CustomerID uint64
	CaseID     *uint64
	Type       string
	Amount     int64
	Note       *string
	CreatedAt  time.Time
}
