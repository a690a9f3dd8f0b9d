// Package reconcile brings the local tariff dataset up to date against the
// upstream API: one run loads the dataset, fetches the missing date ranges,
// merges without duplication, and rewrites the file.
package reconcile

import (
	"fmt"
	"log"
	"time"

	"tariff-sync/internal/data"
	"tariff-sync/internal/gaps"
	"tariff-sync/internal/model"
)

// TariffSource fetches raw tariff rows for an inclusive date range.
// *data.EasyEnergyClient satisfies it; tests substitute a fake.
type TariffSource interface {
	GetTariffs(r model.DateRange) ([]data.RawTariff, error)
}

// Reconciler runs one load→analyze→fetch→merge→save pass.
type Reconciler struct {
	Source      TariffSource
	Analyzer    gaps.Analyzer
	DatasetPath string

	// CloseInternalGaps fetches each date missing inside the dataset's
	// own span as a single-day range.
	CloseInternalGaps bool

	// Today overrides the current date; zero means time.Now in UTC.
	Today time.Time
}

// Report is the run summary.
type Report struct {
	Today      time.Time
	MinDate    time.Time
	MaxDate    time.Time
	RowsBefore int
	RowsAfter  int

	Fetched []model.DateRange

	Added      int
	Duplicates int
	Conflicts  int

	// MissingByYear lists dates still absent inside [MinDate, MaxDate]
	// after the merge, grouped by year.
	MissingByYear map[int][]string
}

type fetchJob struct {
	label string
	r     model.DateRange
}

// Run executes one reconciliation pass. Any stage failure is fatal: nothing
// is written unless every prior stage succeeded, so a failed run leaves the
// dataset file untouched.
func (rc *Reconciler) Run() (*Report, error) {
	ds, err := data.LoadDataset(rc.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	min, max, ok := ds.Bounds()
	if !ok {
		return nil, fmt.Errorf("dataset %s is empty; a pre-seeded dataset is required", rc.DatasetPath)
	}

	today := rc.Today
	if today.IsZero() {
		today = time.Now().UTC()
	}
	today = model.Day(today)

	log.Printf("[Sync] Dataset %s: %d rows, %s..%s (today %s)",
		rc.DatasetPath, ds.Len(),
		min.Format(model.DateLayout), max.Format(model.DateLayout),
		today.Format(model.DateLayout))

	plan, err := rc.Analyzer.Plan(min, max, today)
	if err != nil {
		return nil, fmt.Errorf("analyze gaps: %w", err)
	}

	var jobs []fetchJob
	if plan.Forward != nil {
		jobs = append(jobs, fetchJob{label: "forward", r: *plan.Forward})
	}
	if plan.Backward != nil {
		jobs = append(jobs, fetchJob{label: "backward", r: *plan.Backward})
	}
	if rc.CloseInternalGaps {
		for _, d := range gaps.MissingDates(ds) {
			jobs = append(jobs, fetchJob{label: "internal", r: model.DateRange{Start: d, End: d}})
		}
	}
	if len(jobs) == 0 {
		log.Printf("[Sync] Dataset is up to date, nothing to fetch")
	}

	report := &Report{
		Today:      today,
		RowsBefore: ds.Len(),
	}

	var fetched []model.Record
	for _, job := range jobs {
		log.Printf("[Sync] Fetching %s range %s (%d days)", job.label, job.r, job.r.Days())
		raw, err := rc.Source.GetTariffs(job.r)
		if err != nil {
			return nil, fmt.Errorf("fetch %s %s: %w", job.label, job.r, err)
		}
		recs, err := data.Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("normalize %s %s: %w", job.label, job.r, err)
		}
		fetched = append(fetched, recs...)
		report.Fetched = append(report.Fetched, job.r)
	}

	stats := Merge(ds, fetched)
	report.Added = stats.Added
	report.Duplicates = stats.Duplicates
	report.Conflicts = stats.Conflicts

	report.MissingByYear = gaps.GroupByYear(gaps.MissingDates(ds))

	if err := data.SaveDataset(rc.DatasetPath, ds); err != nil {
		return nil, fmt.Errorf("save dataset: %w", err)
	}

	report.MinDate, report.MaxDate, _ = ds.Bounds()
	report.RowsAfter = ds.Len()

	log.Printf("[Sync] Done: %d rows (+%d, %d duplicates dropped, %d conflicts kept existing)",
		report.RowsAfter, report.Added, report.Duplicates, report.Conflicts)
	return report, nil
}
