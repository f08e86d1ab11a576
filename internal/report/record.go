// Package report turns raw billing records into a quarterly
// tax-jurisdiction report: one validated record per invoice, sorted
// deterministically, grouped by state with per-group and grand totals.
package report

import "time"

// Record is the validated canonical record extracted from one invoice.
// Monetary fields are integer minor units (cents); Total is always
// Licenses + Tax and State is an uppercase two-letter code.
type Record struct {
	Date     time.Time
	Customer string
	Users    int64
	State    string
	Licenses int64
	Tax      int64
	Total    int64
	Fees     int64
}

// DateString renders the record date as MM/DD/YYYY.
func (r Record) DateString() string {
	return r.Date.Format("01/02/2006")
}

// Totals are exact int64 minor-unit sums over a set of records.
type Totals struct {
	Licenses int64
	Tax      int64
	Total    int64
	Fees     int64
}

func (t *Totals) add(r Record) {
	t.Licenses += r.Licenses
	t.Tax += r.Tax
	t.Total += r.Total
	t.Fees += r.Fees
}
