package billing

import (
	"bytes"
	"encoding/json"
)

// LineTypeSubscription is the line item type that contributes to report
// figures; every other type is ignored.
const LineTypeSubscription = "subscription"

// CustomerRefKind tags the shape the invoice's customer field arrived in.
type CustomerRefKind int

const (
	// CustomerRefNone means the field was absent, null, or an
	// unrecognized shape.
	CustomerRefNone CustomerRefKind = iota
	// CustomerRefID means the field was a bare identifier string.
	CustomerRefID
	// CustomerRefEmbedded means the field was an expanded customer
	// object carrying an id and/or a name.
	CustomerRefEmbedded
)

// CustomerRef is the invoice's customer reference. The API returns it
// either as a bare identifier string or as an embedded object, so it is
// decoded once into an explicit tagged variant instead of being shape-
// checked at every use site.
type CustomerRef struct {
	Kind CustomerRefKind
	ID   string
	Name string
}

func (r *CustomerRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = CustomerRef{}
		return nil
	}
	switch data[0] {
	case '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		if id == "" {
			*r = CustomerRef{}
			return nil
		}
		*r = CustomerRef{Kind: CustomerRefID, ID: id}
		return nil
	case '{':
		var obj struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*r = CustomerRef{Kind: CustomerRefEmbedded, ID: obj.ID, Name: obj.Name}
		return nil
	default:
		// Numbers, booleans etc. carry no usable reference.
		*r = CustomerRef{}
		return nil
	}
}

// Ref is an expandable API reference where only the identifier matters.
// It decodes from either a bare id string or an embedded object.
type Ref struct {
	ID string
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		r.ID = ""
		return nil
	}
	switch data[0] {
	case '"':
		return json.Unmarshal(data, &r.ID)
	case '{':
		var obj struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		r.ID = obj.ID
		return nil
	default:
		r.ID = ""
		return nil
	}
}

// Address is a structured postal address. The report only consumes the
// state field, but the full shape is decoded as the API sends it.
type Address struct {
	City       string `json:"city"`
	Country    string `json:"country"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	PostalCode string `json:"postal_code"`
	State      string `json:"state"`
}

// LineItem is one line of an invoice. Amounts are integer minor units.
type LineItem struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Amount   int64  `json:"amount"`
	Quantity *int64 `json:"quantity"`
}

// LineItems is the list envelope the API wraps invoice lines in.
type LineItems struct {
	Data []LineItem `json:"data"`
}

// Invoice is a raw invoice as returned by the billing API.
type Invoice struct {
	ID              string      `json:"id"`
	Customer        CustomerRef `json:"customer"`
	CustomerName    string      `json:"customer_name"`
	CustomerAddress *Address    `json:"customer_address"`
	Status          string      `json:"status"`
	Created         int64       `json:"created"`
	PaidAt          *int64      `json:"paid_at"`
	AmountDue       int64       `json:"amount_due"`
	AmountPaid      int64       `json:"amount_paid"`
	Tax             *int64      `json:"tax"`
	Lines           LineItems   `json:"lines"`
	Charge          Ref         `json:"charge"`
}

// Customer is a raw customer record.
type Customer struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Address *Address `json:"address"`
}

// BillingDetails carries the billing address captured on a charge.
type BillingDetails struct {
	Address *Address `json:"address"`
}

// Charge links an invoice's payment to its balance transaction and
// billing address.
type Charge struct {
	ID                 string          `json:"id"`
	BalanceTransaction Ref             `json:"balance_transaction"`
	BillingDetails     *BillingDetails `json:"billing_details"`
}

// BalanceTransaction carries the processor fee for a payment, in minor
// units.
type BalanceTransaction struct {
	ID  string `json:"id"`
	Fee int64  `json:"fee"`
}

// invoiceList is one page of the invoice list endpoint.
type invoiceList struct {
	Object  string    `json:"object"`
	Data    []Invoice `json:"data"`
	HasMore bool      `json:"has_more"`
}
