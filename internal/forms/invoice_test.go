package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInvoice_Valid(t *testing.T) {
	in, errs := ParseInvoice(Values{
		"customer_id": "3958dc9e-712f-4377-85e9-fec4b6a6442a",
		"amount":      "19.99",
		"status":      "pending",
	})
	require.Nil(t, errs)
	assert.Equal(t, "3958dc9e-712f-4377-85e9-fec4b6a6442a", in.CustomerID)
	assert.Equal(t, 19.99, in.Amount)
	assert.Equal(t, "pending", in.Status)
}

func TestParseInvoice_MissingCustomer(t *testing.T) {
	_, errs := ParseInvoice(Values{
		"amount": "10",
		"status": "paid",
	})
	require.NotNil(t, errs)
	assert.Equal(t, []string{"Please select a customer."}, errs["customer_id"])
	assert.NotContains(t, errs, "amount")
	assert.NotContains(t, errs, "status")
}

func TestParseInvoice_Amount(t *testing.T) {
	cases := []struct {
		name   string
		amount string
	}{
		{"zero", "0"},
		{"negative", "-5"},
		{"empty", ""},
		{"not a number", "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, errs := ParseInvoice(Values{
				"customer_id": "cust-1",
				"amount":      tc.amount,
				"status":      "paid",
			})
			require.NotNil(t, errs)
			assert.Equal(t, []string{"Please enter an amount greater than $0."}, errs["amount"])
		})
	}
}

func TestParseInvoice_Status(t *testing.T) {
	for _, status := range []string{"", "overdue", "PAID"} {
		_, errs := ParseInvoice(Values{
			"customer_id": "cust-1",
			"amount":      "12.50",
			"status":      status,
		})
		require.NotNil(t, errs, "status %q should be rejected", status)
		assert.Equal(t, []string{"Please select an invoice status."}, errs["status"])
	}
}

func TestParseInvoice_AllFieldsInvalid(t *testing.T) {
	_, errs := ParseInvoice(Values{})
	require.NotNil(t, errs)
	assert.Len(t, errs, 3)
}

func TestParseInvoice_TrimsWhitespace(t *testing.T) {
	in, errs := ParseInvoice(Values{
		"customer_id": "  cust-1  ",
		"amount":      " 42 ",
		"status":      "paid",
	})
	require.Nil(t, errs)
	assert.Equal(t, "cust-1", in.CustomerID)
	assert.Equal(t, 42.0, in.Amount)
}
