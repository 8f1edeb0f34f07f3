package models

// PaymentType is how an expense was paid. Income has no payment type.
type PaymentType string

const (
	PaymentCash   PaymentType = "cash"
	PaymentCredit PaymentType = "credit"
)

// CreditFlag converts a form-level payment choice to the stored isCredit
// flag. Income records carry no flag at all, so nil is returned for them.
func CreditFlag(isIncome bool, pt PaymentType) *int {
	if isIncome {
		return nil
	}
	flag := 0
	if pt == PaymentCredit {
		flag = 1
	}
	return &flag
}

// PaymentTypeOf converts a stored isCredit flag back to the form-level
// payment choice. Income records decode to the empty payment type. An
// absent flag on an expense decodes to cash; the server omits the field
// for legacy cash records, so the default must stay.
func PaymentTypeOf(isIncome bool, flag *int) PaymentType {
	if isIncome {
		return ""
	}
	if flag != nil && *flag == 1 {
		return PaymentCredit
	}
	return PaymentCash
}
