package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"spa-system/internal/dto"
	"spa-system/internal/entities"
	apperrors "spa-system/pkg/errors"
)

func TestHandoffIsConsumedExactlyOnce(t *testing.T) {
	cache := newStubCacheRepo()
	leadRepo := &stubLeadRepo{lead: &entities.Lead{ID: 4, FullName: "Лид Тхи", Phone: "+84912000004", Status: "NEW"}}
	svc := NewLeadService(leadRepo, cache, 30*time.Minute, zap.NewNop())

	userID := uint64(11)
	require.NoError(t, svc.CreateHandoff(context.Background(), 4, dto.CreateHandoffDTO{}, userID))

	// Первое чтение отдаёт контекст, заполненный из лида.
	handoff, err := svc.ClaimHandoff(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), handoff.LeadID)
	assert.Equal(t, "Лид Тхи", handoff.CustomerName)
	assert.Equal(t, "+84912000004", handoff.CustomerPhone)

	// Второе чтение — слот уже пуст.
	_, err = svc.ClaimHandoff(context.Background(), userID)
	assert.ErrorIs(t, err, apperrors.ErrHandoffEmpty)
}

func TestHandoffIsScopedToUser(t *testing.T) {
	cache := newStubCacheRepo()
	leadRepo := &stubLeadRepo{lead: &entities.Lead{ID: 4, FullName: "Лид Тхи", Phone: "+84912000004"}}
	svc := NewLeadService(leadRepo, cache, 30*time.Minute, zap.NewNop())

	require.NoError(t, svc.CreateHandoff(context.Background(), 4, dto.CreateHandoffDTO{}, 11))

	// Чужой слот пуст.
	_, err := svc.ClaimHandoff(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrHandoffEmpty)

	// Свой — на месте.
	_, err = svc.ClaimHandoff(context.Background(), 11)
	assert.NoError(t, err)
}

func TestHandoffOverridesPreviousContext(t *testing.T) {
	cache := newStubCacheRepo()
	leadRepo := &stubLeadRepo{lead: &entities.Lead{ID: 4, FullName: "Лид Тхи", Phone: "+84912000004"}}
	svc := NewLeadService(leadRepo, cache, 30*time.Minute, zap.NewNop())

	require.NoError(t, svc.CreateHandoff(context.Background(), 4, dto.CreateHandoffDTO{CustomerName: "Первый"}, 11))
	require.NoError(t, svc.CreateHandoff(context.Background(), 4, dto.CreateHandoffDTO{CustomerName: "Второй"}, 11))

	handoff, err := svc.ClaimHandoff(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, "Второй", handoff.CustomerName)
}

func TestCreateHandoffRejectsUnknownLead(t *testing.T) {
	svc := NewLeadService(&stubLeadRepo{}, newStubCacheRepo(), 30*time.Minute, zap.NewNop())

	err := svc.CreateHandoff(context.Background(), 123, dto.CreateHandoffDTO{}, 11)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
