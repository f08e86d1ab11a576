package billing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRefUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want CustomerRef
	}{
		{
			name: "bare identifier string",
			in:   `"cus_123"`,
			want: CustomerRef{Kind: CustomerRefID, ID: "cus_123"},
		},
		{
			name: "empty string is no reference",
			in:   `""`,
			want: CustomerRef{},
		},
		{
			name: "embedded object with id and name",
			in:   `{"id":"cus_123","name":"Acme Corp","email":"x@acme.test"}`,
			want: CustomerRef{Kind: CustomerRefEmbedded, ID: "cus_123", Name: "Acme Corp"},
		},
		{
			name: "embedded object with name only",
			in:   `{"name":"Acme Corp"}`,
			want: CustomerRef{Kind: CustomerRefEmbedded, Name: "Acme Corp"},
		},
		{
			name: "null is no reference",
			in:   `null`,
			want: CustomerRef{},
		},
		{
			name: "unexpected shape is no reference",
			in:   `42`,
			want: CustomerRef{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref CustomerRef
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ref))
			assert.Equal(t, tt.want, ref)
		})
	}
}

func TestRefUnmarshal(t *testing.T) {
	var r Ref
	require.NoError(t, json.Unmarshal([]byte(`"ch_9"`), &r))
	assert.Equal(t, "ch_9", r.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"txn_7","fee":123}`), &r))
	assert.Equal(t, "txn_7", r.ID)

	require.NoError(t, json.Unmarshal([]byte(`null`), &r))
	assert.Equal(t, "", r.ID)
}

func TestInvoiceUnmarshal(t *testing.T) {
	payload := `{
		"id": "in_1",
		"customer": "cus_1",
		"customer_name": "Acme Corp",
		"customer_address": {"city": "Austin", "state": "TX", "postal_code": "78701"},
		"status": "paid",
		"created": 1760486400,
		"paid_at": 1760572800,
		"amount_due": 34000,
		"amount_paid": 34000,
		"tax": 4000,
		"lines": {"data": [
			{"id": "li_1", "type": "subscription", "amount": 20000, "quantity": 3},
			{"id": "li_2", "type": "invoiceitem", "amount": 500}
		]},
		"charge": "ch_1"
	}`

	var inv Invoice
	require.NoError(t, json.Unmarshal([]byte(payload), &inv))

	assert.Equal(t, "in_1", inv.ID)
	assert.Equal(t, CustomerRef{Kind: CustomerRefID, ID: "cus_1"}, inv.Customer)
	assert.Equal(t, "Acme Corp", inv.CustomerName)
	require.NotNil(t, inv.CustomerAddress)
	assert.Equal(t, "TX", inv.CustomerAddress.State)
	require.NotNil(t, inv.PaidAt)
	assert.Equal(t, int64(1760572800), *inv.PaidAt)
	require.NotNil(t, inv.Tax)
	assert.Equal(t, int64(4000), *inv.Tax)
	require.Len(t, inv.Lines.Data, 2)
	require.NotNil(t, inv.Lines.Data[0].Quantity)
	assert.Equal(t, int64(3), *inv.Lines.Data[0].Quantity)
	assert.Nil(t, inv.Lines.Data[1].Quantity)
	assert.Equal(t, "ch_1", inv.Charge.ID)
}

func TestInvoiceUnmarshal_SparseFields(t *testing.T) {
	var inv Invoice
	require.NoError(t, json.Unmarshal([]byte(`{"id":"in_2","created":1760486400}`), &inv))

	assert.Equal(t, CustomerRef{}, inv.Customer)
	assert.Nil(t, inv.PaidAt)
	assert.Nil(t, inv.Tax)
	assert.Nil(t, inv.CustomerAddress)
	assert.Empty(t, inv.Lines.Data)
	assert.Equal(t, "", inv.Charge.ID)
}

func TestChargeUnmarshal(t *testing.T) {
	payload := `{
		"id": "ch_1",
		"balance_transaction": "txn_1",
		"billing_details": {"address": {"state": "ny"}}
	}`

	var ch Charge
	require.NoError(t, json.Unmarshal([]byte(payload), &ch))
	assert.Equal(t, "txn_1", ch.BalanceTransaction.ID)
	require.NotNil(t, ch.BillingDetails)
	require.NotNil(t, ch.BillingDetails.Address)
	assert.Equal(t, "ny", ch.BillingDetails.Address.State)
}
