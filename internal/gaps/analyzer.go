// Package gaps computes which date ranges are missing from the dataset:
// forward toward "today", backward toward a historical floor, and isolated
// dates inside the covered span.
package gaps

import (
	"fmt"
	"sort"
	"time"

	"tariff-sync/internal/model"
)

// FloorPolicy selects how far back a backward fetch reaches.
type FloorPolicy string

const (
	// FloorFixed fetches all the way down to the configured floor date.
	FloorFixed FloorPolicy = "fixed"
	// FloorYearStart fetches down to January 1 of the earliest known
	// date's year (never past the floor). One year of history per run.
	FloorYearStart FloorPolicy = "year-start"
)

// Analyzer computes the ranges a run must fetch.
type Analyzer struct {
	// Floor is the earliest date the upstream API can serve.
	Floor  time.Time
	Policy FloorPolicy

	// IncludeToday extends the forward range through today itself.
	// The default stops at yesterday: the API's tariffs for the current
	// day may not be fully published yet.
	IncludeToday bool
}

// Plan holds the at-most-two ranges a run fetches. A nil range means the
// corresponding fetch is skipped entirely.
type Plan struct {
	Forward  *model.DateRange
	Backward *model.DateRange
}

// Plan computes the forward and backward ranges for a dataset spanning
// [min, max] as of today. It never returns a reversed range.
func (a Analyzer) Plan(min, max, today time.Time) (Plan, error) {
	min, max, today = model.Day(min), model.Day(max), model.Day(today)
	if min.After(max) {
		return Plan{}, fmt.Errorf("dataset bounds reversed: %s after %s",
			min.Format(model.DateLayout), max.Format(model.DateLayout))
	}

	var p Plan

	upper := today.AddDate(0, 0, -1)
	if a.IncludeToday {
		upper = today
	}
	if start := max.AddDate(0, 0, 1); !start.After(upper) {
		p.Forward = &model.DateRange{Start: start, End: upper}
	}

	floor := model.Day(a.Floor)
	switch {
	case min.Before(floor):
		return Plan{}, fmt.Errorf("dataset starts %s, before the historical floor %s",
			min.Format(model.DateLayout), floor.Format(model.DateLayout))
	case min.Equal(floor):
		// Fully backfilled.
	default:
		start := floor
		if a.Policy == FloorYearStart {
			start = time.Date(min.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
			if start.Before(floor) {
				start = floor
			}
		}
		if end := min.AddDate(0, 0, -1); !start.After(end) {
			p.Backward = &model.DateRange{Start: start, End: end}
		}
	}

	return p, nil
}

// MissingDates returns every calendar date inside the dataset's own span
// that has no records, sorted ascending. These internal gaps are reported,
// not automatically fetched; closing them is a reconciler policy flag.
func MissingDates(ds *model.Dataset) []time.Time {
	min, max, ok := ds.Bounds()
	if !ok {
		return nil
	}
	present := ds.Dates()
	var missing []time.Time
	for d := min; !d.After(max); d = d.AddDate(0, 0, 1) {
		if _, ok := present[d]; !ok {
			missing = append(missing, d)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i].Before(missing[j]) })
	return missing
}

// GroupByYear formats missing dates for the run report, keyed by year.
func GroupByYear(dates []time.Time) map[int][]string {
	if len(dates) == 0 {
		return nil
	}
	out := make(map[int][]string)
	for _, d := range dates {
		out[d.Year()] = append(out[d.Year()], d.Format(model.DateLayout))
	}
	return out
}
