// sync performs one reconciliation run against the EasyEnergy tariff API:
// it loads the dataset CSV, fetches the date ranges missing at the recent
// end (and optionally at the historical boundary), merges them in without
// duplication, and rewrites the file. Exit code 0 only when every stage
// succeeded.
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"tariff-sync/internal/config"
	"tariff-sync/internal/data"
	"tariff-sync/internal/model"
	"tariff-sync/internal/reconcile"
)

func main() {
	var (
		cfgPath     = flag.String("config", "", "Path to YAML config (optional)")
		datasetPath = flag.String("dataset", "", "Dataset CSV path (overrides config)")
		baseURL     = flag.String("base-url", "", "Tariff API base URL (overrides config)")
		todayStr    = flag.String("today", "", "Override today's date, YYYY-MM-DD (for testing)")
		floorStr    = flag.String("floor", "", "Historical floor date, YYYY-MM-DD (overrides config)")
		floorPolicy = flag.String("floor-policy", "", "Backward fetch policy: fixed or year-start (overrides config)")
		closeGaps   = flag.Bool("close-internal-gaps", false, "Fetch dates missing inside the dataset's own span")
	)
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("Invalid config %s: %v", *cfgPath, err)
		}
		cfg = loaded
	}
	if *datasetPath != "" {
		cfg.Dataset.Path = *datasetPath
	}
	if *baseURL != "" {
		cfg.API.BaseURL = *baseURL
	}
	if *floorStr != "" {
		cfg.Sync.HistoricalFloor = *floorStr
	}
	if *floorPolicy != "" {
		cfg.Sync.FloorPolicy = *floorPolicy
	}
	if *closeGaps {
		cfg.Sync.CloseInternalGaps = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var today time.Time
	if *todayStr != "" {
		t, err := time.Parse(model.DateLayout, *todayStr)
		if err != nil {
			log.Fatalf("Invalid --today value %q: %v", *todayStr, err)
		}
		today = t
	}

	rc := &reconcile.Reconciler{
		Source:            data.NewEasyEnergyClient(cfg.API.BaseURL, cfg.Timeout()),
		Analyzer:          cfg.Analyzer(),
		DatasetPath:       cfg.Dataset.Path,
		CloseInternalGaps: cfg.Sync.CloseInternalGaps,
		Today:             today,
	}

	report, err := rc.Run()
	if err != nil {
		log.Fatalf("Sync failed: %v", err)
	}

	printReport(report)
}

func printReport(r *reconcile.Report) {
	fmt.Printf("Dataset covers %s..%s (%d rows)\n",
		r.MinDate.Format(model.DateLayout), r.MaxDate.Format(model.DateLayout), r.RowsAfter)
	if len(r.Fetched) == 0 {
		fmt.Println("Nothing fetched: dataset was already up to date")
	}
	for _, fr := range r.Fetched {
		fmt.Printf("Fetched %s (%d days)\n", fr, fr.Days())
	}
	fmt.Printf("Added %d rows, dropped %d duplicates", r.Added, r.Duplicates)
	if r.Conflicts > 0 {
		fmt.Printf(", kept existing values for %d conflicting rows", r.Conflicts)
	}
	fmt.Println()

	if len(r.MissingByYear) == 0 {
		fmt.Println("No missing dates inside the covered range")
		return
	}
	years := make([]int, 0, len(r.MissingByYear))
	for y := range r.MissingByYear {
		years = append(years, y)
	}
	sort.Ints(years)
	fmt.Println("Missing dates inside the covered range (re-run with --close-internal-gaps to fetch):")
	for _, y := range years {
		fmt.Printf("  %d: %v\n", y, r.MissingByYear[y])
	}
}
