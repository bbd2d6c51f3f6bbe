package dto

// PhotoDTO всегда отдаёт публичный адрес в поле fileUrl — старые клиенты
// читали то url, то fileUrl, нормализуем на нашей стороне раз и навсегда.
type PhotoDTO struct {
	ID        uint64  `json:"id"`
	CaseID    uint64  `json:"caseId"`
	FileURL   string  `json:"fileUrl"`
	Type      string  `json:"type"`
	Note      *string `json:"note,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// UploadPhotosResultDTO — итог батчевой загрузки: что сохранили и какие
// файлы отбраковали (имена склеиваются в одно сообщение об ошибке).
type UploadPhotosResultDTO struct {
	Uploaded []PhotoDTO `json:"uploaded"`
	Rejected []string   `json:"rejected,omitempty"`
	Error    string     `json:"error,omitempty"`
}
