package model

import "time"

// DateRange is an inclusive span of calendar dates. The upstream API is
// queried with Start at 00:00 and End at 23:00 of the respective dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the range covers at least one day.
// A reversed range means "nothing to fetch" and must never reach the API.
func (r DateRange) Valid() bool {
	return !r.Start.After(r.End)
}

// Days returns the number of calendar dates covered, inclusive.
func (r DateRange) Days() int {
	if !r.Valid() {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}
