package dto

import "github.com/aarondl/null/v8"

type CustomerDTO struct {
	ID         uint64  `json:"id"`
	FullName   string  `json:"fullName"`
	Phone      string  `json:"phone"`
	Email      *string `json:"email,omitempty"`
	BirthDate  string  `json:"birthDate,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	TotalSpent int64   `json:"totalSpent"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt,omitempty"`
}

type CreateCustomerDTO struct {
	FullName  string  `json:"fullName" validate:"required"`
	Phone     string  `json:"phone" validate:"required,vn_phone"`
	Email     *string `json:"email" validate:"omitempty,email"`
	BirthDate *string `json:"birthDate"`
	Notes     *string `json:"notes"`
}

type UpdateCustomerDTO struct {
	FullName null.String `json:"fullName"`
	Phone    null.String `json:"phone"`
	Email    null.String `json:"email"`
	Notes    null.String `json:"notes"`
}

// CustomerOverviewDTO — вкладка "Обзор": профиль плюс счётчики.
type CustomerOverviewDTO struct {
	Customer        CustomerDTO `json:"customer"`
	TreatmentsCount int         `json:"treatmentsCount"`
	PaymentsCount   int         `json:"paymentsCount"`
}

// CaseDTO — строка вкладки "Процедуры". remainingAmount считается на сервере
// из totalAmount/amountPaid и статуса оплаты.
type CaseDTO struct {
	CaseID             uint64  `json:"caseId"`
	CustomerID         uint64  `json:"customerId"`
	PrimaryServiceName string  `json:"primaryServiceName,omitempty"`
	Status             string  `json:"status"`
	PaidStatus         string  `json:"paidStatus"`
	TotalAmount        int64   `json:"totalAmount"`
	AmountPaid         int64   `json:"amountPaid"`
	RemainingAmount    int64   `json:"remainingAmount"`
	IntakeNote         *string `json:"intakeNote,omitempty"`
	StartDate          string  `json:"startDate,omitempty"`
	EndDate            string  `json:"endDate,omitempty"`
	CreatedAt          string  `json:"createdAt"`
}

type CreateCaseDTO struct {
	CustomerID       uint64  `json:"customerId" validate:"required"`
	PrimaryServiceID *uint64 `json:"primaryServiceId"`
	TotalAmount      int64   `json:"totalAmount" validate:"gte=0"`
	IntakeNote       *string `json:"intakeNote"`
	StartDate        *string `json:"startDate"`
}

// FinancialItemDTO — строка вкладки "Финансы".
type FinancialItemDTO struct {
	ID        uint64  `json:"id"`
	CaseID    *uint64 `json:"caseId,omitempty"`
	Type      string  `json:"type"`
	Amount    int64   `json:"amount"`
	Note      *string `json:"note,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

type CreateInvoiceDTO struct {
	CustomerID uint64  `json:"customerId" validate:"required"`
	CaseID     *uint64 `json:"caseId"`
	Amount     int64   `json:"amount" validate:"required,gt=0"`
	Note       *string `json:"note"`
}
