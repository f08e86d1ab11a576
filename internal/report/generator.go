package report

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/castlemilk/stripe-tax-reporter/internal/billing"
)

// BillingAPI is the slice of the billing client the generator needs.
type BillingAPI interface {
	ListPaidInvoices(ctx context.Context, start, end int64) ([]billing.Invoice, error)
	GetCustomer(ctx context.Context, id string) (*billing.Customer, error)
	GetCharge(ctx context.Context, id string) (*billing.Charge, error)
	GetBalanceTransaction(ctx context.Context, id string) (*billing.BalanceTransaction, error)
}

// Stats counts a run's per-invoice outcomes.
type Stats struct {
	Processed int
	Skipped   int
}

// Report is the finalized output of one run: records sorted by
// (state, date, customer) plus their grand totals.
type Report struct {
	Quarter Quarter
	Records []Record
	Totals  Totals
	Stats   Stats
}

// Generator drives one report run against the billing API.
type Generator struct {
	api BillingAPI
	log zerolog.Logger
}

// NewGenerator creates a generator. Diagnostics (skipped invoices,
// progress) go to the given logger; they never mix into report output.
func NewGenerator(api BillingAPI, log zerolog.Logger) *Generator {
	return &Generator{api: api, log: log}
}

// Run fetches the quarter's paid invoices, extracts a record from each,
// and returns the sorted, totaled report. A failure listing invoices is
// fatal; per-invoice extraction failures and enrichment lookup failures
// are counted, reported, and skipped.
func (g *Generator) Run(ctx context.Context, q Quarter) (*Report, error) {
	start, end := q.Window()

	g.log.Info().
		Str("quarter", q.String()).
		Time("start", q.Start).
		Time("end", q.End).
		Msg("fetching invoices")

	invoices, err := g.api.ListPaidInvoices(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	g.log.Info().Int("count", len(invoices)).Msg("retrieved invoices")

	agg := NewAggregator()
	var stats Stats

	for i := range invoices {
		inv := &invoices[i]
		cust, ch, bt := g.enrich(ctx, inv)

		rec, err := Extract(inv, cust, ch, bt)
		if err != nil {
			g.log.Warn().Str("invoice_id", inv.ID).Err(err).Msg("skipping invoice")
			stats.Skipped++
			continue
		}
		agg.Add(rec)
		stats.Processed++
	}

	agg.Sort()

	g.log.Info().
		Int("processed", stats.Processed).
		Int("skipped", stats.Skipped).
		Msg("run complete")

	return &Report{
		Quarter: q,
		Records: agg.Records(),
		Totals:  agg.Totals(),
		Stats:   stats,
	}, nil
}

// enrich resolves the invoice's optional linked records. A lookup
// failure is non-fatal: the record is treated as absent, which drives
// the extractor's fallback or zero-default paths.
func (g *Generator) enrich(ctx context.Context, inv *billing.Invoice) (*billing.Customer, *billing.Charge, *billing.BalanceTransaction) {
	var cust *billing.Customer
	if id := inv.Customer.ID; id != "" {
		c, err := g.api.GetCustomer(ctx, id)
		if err != nil {
			g.log.Warn().Str("invoice_id", inv.ID).Str("customer_id", id).Err(err).Msg("customer lookup failed")
		} else {
			cust = c
		}
	}

	var ch *billing.Charge
	var bt *billing.BalanceTransaction
	if id := inv.Charge.ID; id != "" {
		c, err := g.api.GetCharge(ctx, id)
		if err != nil {
			g.log.Warn().Str("invoice_id", inv.ID).Str("charge_id", id).Err(err).Msg("charge lookup failed")
		} else {
			ch = c
			if btID := c.BalanceTransaction.ID; btID != "" {
				b, err := g.api.GetBalanceTransaction(ctx, btID)
				if err != nil {
					g.log.Warn().Str("invoice_id", inv.ID).Str("balance_transaction_id", btID).Err(err).Msg("balance transaction lookup failed")
				} else {
					bt = b
				}
			}
		}
	}

	return cust, ch, bt
}
