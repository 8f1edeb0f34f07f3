package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreditFlag(t *testing.T) {
	testCases := []struct {
		name     string
		isIncome bool
		payment  PaymentType
		expected *int
	}{
		{
			name:     "Income has no flag",
			isIncome: true,
			payment:  PaymentCredit,
			expected: nil,
		},
		{
			name:     "Expense paid in cash",
			isIncome: false,
			payment:  PaymentCash,
			expected: intPtr(0),
		},
		{
			name:     "Expense paid by credit",
			isIncome: false,
			payment:  PaymentCredit,
			expected: intPtr(1),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := CreditFlag(tc.isIncome, tc.payment)
			if tc.expected == nil {
				assert.Nil(t, result)
			} else {
				assert.NotNil(t, result)
				assert.Equal(t, *tc.expected, *result)
			}
		})
	}
}

func TestPaymentTypeOf(t *testing.T) {
	assert.Equal(t, PaymentType(""), PaymentTypeOf(true, nil))
	assert.Equal(t, PaymentType(""), PaymentTypeOf(true, intPtr(1)))
	assert.Equal(t, PaymentCredit, PaymentTypeOf(false, intPtr(1)))
	assert.Equal(t, PaymentCash, PaymentTypeOf(false, intPtr(0)))

	// legacy cash records omit the flag entirely
	assert.Equal(t, PaymentCash, PaymentTypeOf(false, nil))
}

func TestPaymentRoundTrip(t *testing.T) {
	for _, pt := range []PaymentType{PaymentCash, PaymentCredit} {
		decoded := PaymentTypeOf(false, CreditFlag(false, pt))
		assert.Equal(t, pt, decoded)
	}

	for _, flag := range []int{0, 1} {
		encoded := CreditFlag(false, PaymentTypeOf(false, intPtr(flag)))
		assert.NotNil(t, encoded)
		assert.Equal(t, flag, *encoded)
	}
}

func TestDateCodec(t *testing.T) {
	assert.Equal(t, "20260115", ToAPIDate("2026-01-15"))
	assert.Equal(t, "2026-01-15", ToFormDate("20260115"))
	assert.Equal(t, "20261231", ToAPIDate(ToFormDate("20261231")))
}

func intPtr(v int) *int {
	return &v
}
