package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"spa-system/internal/dto"
	"spa-system/internal/entities"
	apperrors "spa-system/pkg/errors"
)

func newTestCustomerService(customerRepo *stubCustomerRepo) CustomerServiceInterface {
	return NewCustomerService(customerRepo, &stubCaseRepo{}, &stubApptRepo{}, &stubFinancialRepo{}, zap.NewNop())
}

func TestCreateCustomer(t *testing.T) {
	t.Run("новый телефон проходит", func(t *testing.T) {
		svc := newTestCustomerService(&stubCustomerRepo{})

		created, err := svc.CreateCustomer(context.Background(), dto.CreateCustomerDTO{
			FullName: "Нгуен Тхи Май",
			Phone:    "+84912000001",
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(77), created.ID)
	})

	t.Run("дубликат телефона отклоняется до вставки", func(t *testing.T) {
		svc := newTestCustomerService(&stubCustomerRepo{
			byPhone: &entities.Customer{ID: 3, FullName: "Май", Phone: "+84912000001"},
		})

		_, err := svc.CreateCustomer(context.Background(), dto.CreateCustomerDTO{
			FullName: "Другая Май",
			Phone:    "+84912000001",
		})
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 409, httpErr.Code)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("нечитаемая дата рождения отклоняется", func(t *testing.T) {
		svc := newTestCustomerService(&stubCustomerRepo{})

		birthDate := "первое мая"
		_, err := svc.CreateCustomer(context.Background(), dto.CreateCustomerDTO{
			FullName:  "Май",
			Phone:     "+84912000001",
			BirthDate: &birthDate,
		})
		var inputErr *apperrors.InvalidInputError
		assert.ErrorAs(t, err, &inputErr)
	})
}
