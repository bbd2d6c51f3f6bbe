package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"spa-system/internal/entities"
	"spa-system/pkg/constants"
)

func TestCaseRemainingAmount(t *testing.T) {
	cases := []struct {
		name string
		tc   entities.TreatmentCase
		want int64
	}{
		{
			name: "частичная оплата: остаток равен разнице",
			tc:   entities.TreatmentCase{PaidStatus: constants.PaidStatusPartiallyPaid, TotalAmount: 1_000_000, AmountPaid: 400_000},
			want: 600_000,
		},
		{
			name: "без оплаты: остаток равен полной сумме",
			tc:   entities.TreatmentCase{PaidStatus: constants.PaidStatusUnpaid, TotalAmount: 1_000_000},
			want: 1_000_000,
		},
		{
			name: "полная оплата: остаток ноль",
			tc:   entities.TreatmentCase{PaidStatus: constants.PaidStatusFullyPaid, TotalAmount: 1_000_000, AmountPaid: 1_000_000},
			want: 0,
		},
		{
			name: "переплата не даёт отрицательного остатка",
			tc:   entities.TreatmentCase{PaidStatus: constants.PaidStatusPartiallyPaid, TotalAmount: 1_000_000, AmountPaid: 1_200_000},
			want: 0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := toCaseDTO(tc.tc)
			assert.Equal(t, tc.want, out.RemainingAmount)
		})
	}
}
