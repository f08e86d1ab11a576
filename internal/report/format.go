package report

import (
	"fmt"
	"strings"
)

const columnHeader = "Date\tCustomer\tUsers\tLicenses\tTax\tTotal\tFees"

// group is one contiguous run of records sharing a state, with that
// group's exact minor-unit subtotal.
type group struct {
	State    string
	Records  []Record
	Subtotal Totals
}

// groupByState partitions a record sequence into contiguous groups by
// state. Records are expected pre-sorted so that each state appears in
// exactly one run.
func groupByState(records []Record) []group {
	var groups []group
	for i := 0; i < len(records); {
		g := group{State: records[i].State}
		j := i
		for j < len(records) && records[j].State == g.State {
			g.Subtotal.add(records[j])
			j++
		}
		g.Records = records[i:j]
		groups = append(groups, g)
		i = j
	}
	return groups
}

// FormatTSV renders the sorted record set and its grand totals as
// grouped tab-separated text: one section per state with a column
// header, data rows and a subtotal row, then a single grand-total row.
// Identical input always produces byte-identical output.
func FormatTSV(records []Record, totals Totals) string {
	var b strings.Builder

	for _, g := range groupByState(records) {
		fmt.Fprintf(&b, "State: %s\n", g.State)
		b.WriteString(columnHeader)
		b.WriteByte('\n')
		for _, r := range g.Records {
			fmt.Fprintf(&b, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
				r.DateString(),
				sanitizeField(r.Customer),
				r.Users,
				formatCents(r.Licenses),
				formatCents(r.Tax),
				formatCents(r.Total),
				formatCents(r.Fees),
			)
		}
		fmt.Fprintf(&b, "SUBTOTAL\t\t\t%s\t%s\t%s\t%s\n\n",
			formatCents(g.Subtotal.Licenses),
			formatCents(g.Subtotal.Tax),
			formatCents(g.Subtotal.Total),
			formatCents(g.Subtotal.Fees),
		)
	}

	fmt.Fprintf(&b, "TOTAL\t\t\t%s\t%s\t%s\t%s\n",
		formatCents(totals.Licenses),
		formatCents(totals.Tax),
		formatCents(totals.Total),
		formatCents(totals.Fees),
	)

	return b.String()
}

// formatCents renders integer minor units as a fixed two-decimal value
// using integer arithmetic only.
func formatCents(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// sanitizeField keeps free-text fields from corrupting the tabular
// structure: embedded tabs and line breaks become single spaces.
func sanitizeField(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return ' '
		}
		return r
	}, s)
}
