package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"spa-system/internal/clients/legacy"
)

func TestImportAppointmentsNormalizesAndSkips(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Конверт с постраничным объектом; одна запись без id, одна с кривой датой.
		w.Write([]byte(`{
			"success": true,
			"data": {
				"content": [
					{"apptId": 1, "customerName": "Май", "appointmentDateTime": "2025-08-20T14:00:00", "status": "CONFIRMED"},
					{"customerName": "без id", "appointmentDateTime": "2025-08-20T15:00:00"},
					{"id": 3, "customerName": "Лан", "appointmentDateTime": "не дата"},
					{"appointmentId": 4, "customerName": "Хоа", "appointmentDateTime": "2025-08-21T09:30:00", "status": "НЕВЕДОМЫЙ"}
				],
				"totalElements": 4,
				"totalPages": 1,
				"currentPage": 0,
				"pageSize": 100
			}
		}`))
	}))
	defer server.Close()

	client := legacy.NewClient(server.URL, 5*time.Second)
	apptRepo := &stubApptRepo{}
	svc := NewSyncService(client, apptRepo, zap.NewNop())

	result, err := svc.ImportAppointments(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, 1, result.Pages)

	require.Len(t, apptRepo.upserted, 2)
	assert.Equal(t, uint64(1), apptRepo.upserted[0].ID)
	// Неизвестный статус нормализован в SCHEDULED.
	assert.Equal(t, uint64(4), apptRepo.upserted[1].ID)
	assert.Equal(t, "SCHEDULED", apptRepo.upserted[1].Status)
}

func TestImportAppointmentsPropagatesEnvelopeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": false, "message": "доступ запрещён"}`))
	}))
	defer server.Close()

	client := legacy.NewClient(server.URL, 5*time.Second)
	svc := NewSyncService(client, &stubApptRepo{}, zap.NewNop())

	_, err := svc.ImportAppointments(context.Background())
	require.Error(t, err)

	var envErr *legacy.EnvelopeError
	assert.ErrorAs(t, err, &envErr)
}
