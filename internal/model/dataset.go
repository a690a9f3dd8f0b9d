package model

import (
	"sort"
	"time"
)

// Dataset is the full ordered collection of tariff records. It is loaded
// whole from the CSV file at run start, mutated in memory, and rewritten
// whole at run end. Nothing here is safe for concurrent use; one run owns
// the dataset exclusively.
type Dataset struct {
	Records []Record
}

func (d *Dataset) Len() int {
	return len(d.Records)
}

// Bounds returns the earliest and latest dates present. ok is false for an
// empty dataset.
func (d *Dataset) Bounds() (min, max time.Time, ok bool) {
	if len(d.Records) == 0 {
		return time.Time{}, time.Time{}, false
	}
	min, max = d.Records[0].Date, d.Records[0].Date
	for _, r := range d.Records[1:] {
		if r.Date.Before(min) {
			min = r.Date
		}
		if r.Date.After(max) {
			max = r.Date
		}
	}
	return min, max, true
}

// Dates returns the set of calendar dates that have at least one record.
func (d *Dataset) Dates() map[time.Time]struct{} {
	out := make(map[time.Time]struct{}, len(d.Records)/24+1)
	for _, r := range d.Records {
		out[r.Date] = struct{}{}
	}
	return out
}

// Sort puts records into canonical order: ascending by date, then hour.
// Saving a sorted dataset makes repeated runs byte-for-byte identical.
func (d *Dataset) Sort() {
	sort.SliceStable(d.Records, func(i, j int) bool {
		a, b := d.Records[i], d.Records[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Hour < b.Hour
	})
}
