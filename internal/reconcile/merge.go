package reconcile

import "tariff-sync/internal/model"

// MergeStats summarizes what a merge changed.
type MergeStats struct {
	Added      int // new records appended
	Duplicates int // exact duplicate rows dropped
	Conflicts  int // rows whose (date, hour) already existed with other values; existing kept
}

// Merge folds new records into the dataset. Exact duplicates are dropped
// (overlapping fetch ranges produce the same hour from two range
// boundaries), and a (date, hour) pair that already exists is never
// altered: on conflicting values the pre-existing record wins. The dataset
// is left in canonical order.
func Merge(ds *model.Dataset, recs []model.Record) MergeStats {
	var stats MergeStats

	// Re-index the existing records, dropping any exact duplicates the
	// file already carried.
	index := make(map[string]model.Record, len(ds.Records)+len(recs))
	kept := ds.Records[:0]
	for _, r := range ds.Records {
		if prev, ok := index[r.Key()]; ok {
			if r.Equal(prev) {
				stats.Duplicates++
			} else {
				stats.Conflicts++
			}
			continue
		}
		index[r.Key()] = r
		kept = append(kept, r)
	}
	ds.Records = kept

	for _, r := range recs {
		prev, ok := index[r.Key()]
		if !ok {
			index[r.Key()] = r
			ds.Records = append(ds.Records, r)
			stats.Added++
			continue
		}
		if r.Equal(prev) {
			stats.Duplicates++
		} else {
			stats.Conflicts++
		}
	}

	ds.Sort()
	return stats
}
