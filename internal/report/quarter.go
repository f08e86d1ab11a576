package report

import (
	"fmt"
	"time"
)

// Quarter is a fiscal quarter's date window. Start is the first day of
// its first month, End the last day of its last month, both at midnight
// UTC.
type Quarter struct {
	Start  time.Time
	End    time.Time
	Number int // 1..4
	Year   int
}

// PreviousQuarter computes the fiscal quarter preceding the one the
// reference date falls in. The reference date is an explicit parameter
// so callers stay deterministic.
func PreviousQuarter(ref time.Time) Quarter {
	year, month, _ := ref.UTC().Date()

	current := (int(month)-1)/3 + 1
	prev, prevYear := current-1, year
	if current == 1 {
		prev, prevYear = 4, year-1
	}

	startMonth := time.Month((prev-1)*3 + 1)
	start := time.Date(prevYear, startMonth, 1, 0, 0, 0, 0, time.UTC)
	// First day of the following month minus one day handles December
	// rollover and variable month lengths.
	end := start.AddDate(0, 3, 0).AddDate(0, 0, -1)

	return Quarter{Start: start, End: end, Number: prev, Year: prevYear}
}

// Window returns the inclusive start-of-day and end-of-day UTC Unix
// timestamps bounding the quarter, as consumed by the billing API's
// created-range filter.
func (q Quarter) Window() (startUnix, endUnix int64) {
	endOfDay := time.Date(q.End.Year(), q.End.Month(), q.End.Day(), 23, 59, 59, 0, time.UTC)
	return q.Start.Unix(), endOfDay.Unix()
}

func (q Quarter) String() string {
	return fmt.Sprintf("Q%d %d", q.Number, q.Year)
}
