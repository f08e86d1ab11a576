package report

import (
	"strings"
	"time"

	"github.com/castlemilk/stripe-tax-reporter/internal/billing"
)

// maxTimestampYear bounds plausible invoice timestamps; anything that
// lands outside [1970, 9999] is treated as undecodable.
const maxTimestampYear = 9999

// Extract transforms one raw invoice plus its optional linked records
// into a canonical report record. It is a pure transform: failures are
// returned as *ExtractError values and the caller decides whether to
// count, skip or report them. Any of customer, charge and balance
// transaction may be nil, which drives the relevant fallback or zero
// default.
func Extract(inv *billing.Invoice, cust *billing.Customer, ch *billing.Charge, bt *billing.BalanceTransaction) (Record, error) {
	date, err := invoiceDate(inv)
	if err != nil {
		return Record{}, err
	}

	name, err := customerName(inv)
	if err != nil {
		return Record{}, err
	}

	state, err := billingState(inv, cust, ch)
	if err != nil {
		return Record{}, err
	}

	var users, licenses int64
	for _, line := range inv.Lines.Data {
		if line.Type != billing.LineTypeSubscription {
			continue
		}
		if line.Quantity != nil {
			users += *line.Quantity
		}
		licenses += line.Amount
	}

	var tax int64
	if inv.Tax != nil {
		tax = *inv.Tax
	}

	var fees int64
	if bt != nil {
		fees = bt.Fee
	}

	return Record{
		Date:     date,
		Customer: name,
		Users:    users,
		State:    state,
		Licenses: licenses,
		Tax:      tax,
		Total:    licenses + tax,
		Fees:     fees,
	}, nil
}

// invoiceDate resolves the record date: paid-at when present, else the
// creation timestamp, converted to a UTC calendar date.
func invoiceDate(inv *billing.Invoice) (time.Time, error) {
	ts := inv.Created
	if inv.PaidAt != nil {
		ts = *inv.PaidAt
	}
	if ts <= 0 {
		return time.Time{}, extractErrorf(ErrInvalidTimestamp, inv.ID, "timestamp %d cannot be converted to a date", ts)
	}
	t := time.Unix(ts, 0).UTC()
	if t.Year() > maxTimestampYear {
		return time.Time{}, extractErrorf(ErrInvalidTimestamp, inv.ID, "timestamp %d cannot be converted to a date", ts)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// customerName resolves the display name: the invoice's denormalized
// name when non-empty, else the customer reference (a bare id is used
// as the name; an embedded object prefers its id, then its name).
func customerName(inv *billing.Invoice) (string, error) {
	if name := strings.TrimSpace(inv.CustomerName); name != "" {
		return name, nil
	}
	switch inv.Customer.Kind {
	case billing.CustomerRefID:
		return inv.Customer.ID, nil
	case billing.CustomerRefEmbedded:
		if inv.Customer.ID != "" {
			return inv.Customer.ID, nil
		}
		if inv.Customer.Name != "" {
			return inv.Customer.Name, nil
		}
		return "", extractErrorf(ErrMissingCustomerIdentity, inv.ID, "customer object has no id or name")
	default:
		return "", extractErrorf(ErrMissingCustomerIdentity, inv.ID, "no customer name or id")
	}
}

// billingState resolves the two-letter jurisdiction code through an
// ordered fallback chain: the linked customer's address, then the
// charge's billing address, then the invoice's own denormalized
// address. The first non-empty value wins and is uppercased.
func billingState(inv *billing.Invoice, cust *billing.Customer, ch *billing.Charge) (string, error) {
	for _, source := range stateSources(inv, cust, ch) {
		state := source()
		if state == "" {
			continue
		}
		state = strings.ToUpper(state)
		if !isStateCode(state) {
			return "", extractErrorf(ErrMissingBillingState, inv.ID, "billing state %q is not a two-letter code", state)
		}
		return state, nil
	}
	return "", extractErrorf(ErrMissingBillingState, inv.ID, "no billing state on customer, charge or invoice")
}

// stateSources returns the fallback chain in strict priority order.
func stateSources(inv *billing.Invoice, cust *billing.Customer, ch *billing.Charge) []func() string {
	return []func() string{
		func() string {
			if cust == nil {
				return ""
			}
			return addressState(cust.Address)
		},
		func() string {
			if ch == nil || ch.BillingDetails == nil {
				return ""
			}
			return addressState(ch.BillingDetails.Address)
		},
		func() string {
			return addressState(inv.CustomerAddress)
		},
	}
}

func addressState(a *billing.Address) string {
	if a == nil {
		return ""
	}
	return strings.TrimSpace(a.State)
}

func isStateCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	return s[0] >= 'A' && s[0] <= 'Z' && s[1] >= 'A' && s[1] <= 'Z'
}
