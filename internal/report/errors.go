package report

import "fmt"

// ExtractErrorCode represents specific extraction failure types.
type ExtractErrorCode string

const (
	ErrInvalidTimestamp        ExtractErrorCode = "INVALID_TIMESTAMP"
	ErrMissingCustomerIdentity ExtractErrorCode = "MISSING_CUSTOMER_IDENTITY"
	ErrMissingBillingState     ExtractErrorCode = "MISSING_BILLING_STATE"
)

// ExtractError is a structured per-invoice extraction failure. These
// represent missing or invalid data, never transient conditions, so
// they are reported and the invoice skipped rather than retried.
type ExtractError struct {
	Code      ExtractErrorCode
	InvoiceID string
	Message   string
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("[%s] invoice %s: %s", e.Code, e.InvoiceID, e.Message)
}

func extractErrorf(code ExtractErrorCode, invoiceID, format string, args ...any) *ExtractError {
	return &ExtractError{
		Code:      code,
		InvoiceID: invoiceID,
		Message:   fmt.Sprintf(format, args...),
	}
}
