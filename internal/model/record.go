package model

import "time"

// DateLayout is the calendar-date format used in the CSV dataset and in the
// upstream API's query parameters.
const DateLayout = "2006-01-02"

// Record is one hour of one calendar date with an import and an export price
// in EUR/kWh. A nil price means the upstream never supplied a value for that
// hour; it is kept as-is so consumers can tell "unknown" from "zero".
type Record struct {
	Date        time.Time // midnight UTC
	Hour        string    // "HH:MM"
	ImportPrice *float64
	ExportPrice *float64
}

// Key identifies a record within a dataset. (Date, Hour) is unique.
func (r Record) Key() string {
	return r.Date.Format(DateLayout) + " " + r.Hour
}

// Equal reports full-field identity, including the presence of prices.
func (r Record) Equal(o Record) bool {
	return r.Date.Equal(o.Date) &&
		r.Hour == o.Hour &&
		priceEqual(r.ImportPrice, o.ImportPrice) &&
		priceEqual(r.ExportPrice, o.ExportPrice)
}

func priceEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Day returns t truncated to midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
