package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportServiceInterface interface {
	// ExportPeriodReport собирает xlsx-отчёт за период: сводка, популярные
	// услуги и выработка мастеров, каждая секция на своём листе.
	ExportPeriodReport(ctx context.Context, from, to time.Time) (*bytes.Buffer, string, error)
}

type reportService struct {
	dashboards DashboardServiceInterface
	logger     *zap.Logger
}

func NewReportService(dashboards DashboardServiceInterface, logger *zap.Logger) ReportServiceInterface {
	return &reportService{dashboards: dashboards, logger: logger}
}

func (s *reportService) ExportPeriodReport(ctx context.Context, from, to time.Time) (*bytes.Buffer, string, error) {
	data, err := s.dashboards.GetManagerDashboard(ctx, from, to)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Сводка"
	f.SetSheetName(f.GetSheetName(0), summarySheet)

	summaryRows := [][]interface{}{
		{"Период", fmt.Sprintf("%s — %s", data.Period.StartDate, data.Period.EndDate)},
		{"Всего записей", data.Period.AppointmentsTotal},
		{"Завершено", data.Period.AppointmentsDone},
		{"Новых клиентов", data.Period.NewCustomers},
		{"Выручка", data.Period.Revenue},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	const servicesSheet = "Услуги"
	if _, err := f.NewSheet(servicesSheet); err != nil {
		return nil, "", err
	}
	serviceHeader := []interface{}{"Услуга", "Записей", "Выручка"}
	if err := f.SetSheetRow(servicesSheet, "A1", &serviceHeader); err != nil {
		return nil, "", err
	}
	for i, svc := range data.TopServices {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{svc.ServiceName, svc.Appointments, svc.Revenue}
		if err := f.SetSheetRow(servicesSheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	const staffSheet = "Мастера"
	if _, err := f.NewSheet(staffSheet); err != nil {
		return nil, "", err
	}
	staffHeader := []interface{}{"Мастер", "Завершено", "Неявки"}
	if err := f.SetSheetRow(staffSheet, "A1", &staffHeader); err != nil {
		return nil, "", err
	}
	for i, st := range data.Staff {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{st.TechnicianName, st.Completed, st.NoShows}
		if err := f.SetSheetRow(staffSheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("report_%s_%s.xlsx", data.Period.StartDate, data.Period.EndDate)
	return buffer, filename, nil
}
