package report

import "sort"

// Aggregator collects the records of a single report run. It is not
// safe for concurrent use; each run constructs a fresh one.
type Aggregator struct {
	records []Record
}

// NewAggregator creates an empty aggregator for one run.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add appends a record to the run's collection.
func (a *Aggregator) Add(r Record) {
	a.records = append(a.records, r)
}

// Sort imposes the report's total order: state, then date, then
// customer name, with the remaining fields as tie-breakers so identical
// input sets always produce identical output order regardless of
// arrival order.
func (a *Aggregator) Sort() {
	sort.Slice(a.records, func(i, j int) bool {
		return recordLess(a.records[i], a.records[j])
	})
}

func recordLess(a, b Record) bool {
	if a.State != b.State {
		return a.State < b.State
	}
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	if a.Customer != b.Customer {
		return a.Customer < b.Customer
	}
	if a.Users != b.Users {
		return a.Users < b.Users
	}
	if a.Licenses != b.Licenses {
		return a.Licenses < b.Licenses
	}
	if a.Tax != b.Tax {
		return a.Tax < b.Tax
	}
	return a.Fees < b.Fees
}

// Totals returns exact 64-bit minor-unit sums over the collection.
func (a *Aggregator) Totals() Totals {
	var t Totals
	for _, r := range a.records {
		t.add(r)
	}
	return t
}

// Records returns the run's records in their current order.
func (a *Aggregator) Records() []Record {
	return a.records
}

// Len returns the number of collected records.
func (a *Aggregator) Len() int {
	return len(a.records)
}
