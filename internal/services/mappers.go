package services

import (
	"spa-system/internal/dto"
	"spa-system/internal/entities"
	"spa-system/pkg/constants"
	"spa-system/pkg/utils"
)

func toAppointmentDTO(a entities.Appointment) dto.AppointmentDTO {
	out := dto.AppointmentDTO{
		ApptID:              a.ID,
		LeadID:              a.LeadID,
		CustomerID:          a.CustomerID,
		TechnicianID:        a.TechnicianID,
		ServiceID:           a.ServiceID,
		CustomerName:        a.CustomerName,
		CustomerPhone:       a.CustomerPhone,
		ServiceName:         a.ServiceName,
		AppointmentDateTime: utils.FormatDateTime(a.AppointmentDateTime),
		Status:              a.Status,
		Reason:              a.Reason,
		Notes:               a.Notes,
		ReminderSent:        a.ReminderSent,
		CreatedAt:           utils.FormatDateTime(a.CreatedAt),
	}
	if a.UpdatedAt != nil {
		out.UpdatedAt = utils.FormatDateTime(*a.UpdatedAt)
	}
	return out
}

func toAppointmentDTOs(appts []entities.Appointment) []dto.AppointmentDTO {
	out := make([]dto.AppointmentDTO, 0, len(appts))
	for _, a := range appts {
		out = append(out, toAppointmentDTO(a))
	}
	return out
}

func toCustomerDTO(c entities.Customer) dto.CustomerDTO {
	out := dto.CustomerDTO{
		ID:         c.ID,
		FullName:   c.FullName,
		Phone:      c.Phone,
		Email:      c.Email,
		Notes:      c.Notes,
		TotalSpent: c.TotalSpent,
		CreatedAt:  utils.FormatDateTime(c.CreatedAt),
	}
	if c.BirthDate != nil {
		out.BirthDate = c.BirthDate.Format("2006-01-02")
	}
	if c.UpdatedAt != nil {
		out.UpdatedAt = utils.FormatDateTime(*c.UpdatedAt)
	}
	return out
}

// toCaseDTO считает remainingAmount: для полностью оплаченного кейса он
// равен нулю независимо от истории сумм.
func toCaseDTO(tc entities.TreatmentCase) dto.CaseDTO {
	out := dto.CaseDTO{
		CaseID:             tc.ID,
		CustomerID:         tc.CustomerID,
		PrimaryServiceName: tc.PrimaryServiceName,
		Status:             tc.Status,
		PaidStatus:         tc.PaidStatus,
		TotalAmount:        tc.TotalAmount,
		AmountPaid:         tc.AmountPaid,
		IntakeNote:         tc.IntakeNote,
		CreatedAt:          utils.FormatDateTime(tc.CreatedAt),
	}
	if tc.PaidStatus != constants.PaidStatusFullyPaid {
		if remaining := tc.TotalAmount - tc.AmountPaid; remaining > 0 {
			out.RemainingAmount = remaining
		}
	}
	if tc.StartDate != nil {
		out.StartDate = tc.StartDate.Format("2006-01-02")
	}
	if tc.EndDate != nil {
		out.EndDate = tc.EndDate.Format("2006-01-02")
	}
	return out
}

func toPhotoDTO(p entities.Photo) dto.PhotoDTO {
	return dto.PhotoDTO{
		ID:        p.ID,
		CaseID:    p.CaseID,
		FileURL:   p.FilePath,
		Type:      p.Type,
		Note:      p.Note,
		CreatedAt: utils.FormatDateTime(p.CreatedAt),
	}
}

func toFinancialItemDTO(tx entities.FinancialTransaction) dto.FinancialItemDTO {
	return dto.FinancialItemDTO{
		ID:        tx.ID,
		CaseID:    tx.CaseID,
		Type:      tx.Type,
		Amount:    tx.Amount,
		Note:      tx.Note,
		CreatedAt: utils.FormatDateTime(tx.CreatedAt),
	}
}

func toActivityDTO(a entities.Activity) dto.ActivityDTO {
	return dto.ActivityDTO{
		ID:         a.ID,
		Action:     a.Action,
		EntityType: a.EntityType,
		ActorName:  a.ActorName,
		Detail:     a.Detail,
		CreatedAt:  utils.FormatDateTime(a.CreatedAt),
	}
}

func toLeadDTO(l entities.Lead) dto.LeadDTO {
	return dto.LeadDTO{
		ID:        l.ID,
		FullName:  l.FullName,
		Phone:     l.Phone,
		Source:    l.Source,
		Status:    l.Status,
		CreatedAt: utils.FormatDateTime(l.CreatedAt),
	}
}
