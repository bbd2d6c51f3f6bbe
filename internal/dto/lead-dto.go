package dto

type LeadDTO struct {
	ID        uint64  `json:"id"`
	FullName  string  `json:"fullName"`
	Phone     string  `json:"phone"`
	Source    *string `json:"source,omitempty"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
}

// HandoffContextDTO — одноразовый контекст "лид -> форма создания записи".
// Кладётся в единственный слот при переходе из карточки лида и атомарно
// забирается формой; повторное чтение возвращает "пусто".
type HandoffContextDTO struct {
	LeadID        uint64  `json:"leadId"`
	CustomerID    *uint64 `json:"customerId,omitempty"`
	CustomerName  string  `json:"customerName,omitempty"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
}

type CreateHandoffDTO struct {
	CustomerID    *uint64 `json:"customerId"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
}
