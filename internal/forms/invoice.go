package forms

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// InvoiceInput is the narrowed, typed result of a valid invoice form.
// Amount is in major units here; the mutation layer converts to cents.
// The create and update actions share this schema: id is taken from the
// route and date is server-assigned, so neither is part of the form.
type InvoiceInput struct {
	CustomerID string  `validate:"required"`
	Amount     float64 `validate:"gt=0"`
	Status     string  `validate:"oneof=pending paid"`
}

var invoiceFieldNames = map[string]string{
	"CustomerID": "customer_id",
	"Amount":     "amount",
	"Status":     "status",
}

var invoiceMessages = map[string]string{
	"CustomerID": "Please select a customer.",
	"Amount":     "Please enter an amount greater than $0.",
	"Status":     "Please select an invoice status.",
}

var validate = validator.New()

// ParseInvoice coerces and validates raw form values against the invoice
// schema. On failure it returns the field-keyed messages and the input is
// not meaningful; on success the returned errors are nil.
func ParseInvoice(v Values) (InvoiceInput, FieldErrors) {
	in := InvoiceInput{
		CustomerID: v.Get("customer_id"),
		Status:     v.Get("status"),
	}

	// amount arrives as a decimal string; a value that does not parse is
	// left at zero and fails the gt=0 constraint with the amount message
	if raw := v.Get("amount"); raw != "" {
		if amt, err := strconv.ParseFloat(raw, 64); err == nil {
			in.Amount = amt
		}
	}

	if err := validate.Struct(in); err != nil {
		var vErrs validator.ValidationErrors
		if !errors.As(err, &vErrs) {
			// validator only returns other error kinds for unusable
			// schemas, which is a programming error
			panic(err)
		}
		fieldErrs := FieldErrors{}
		for _, fe := range vErrs {
			fieldErrs = fieldErrs.Add(invoiceFieldNames[fe.StructField()], invoiceMessages[fe.StructField()])
		}
		return in, fieldErrs
	}

	return in, nil
}
