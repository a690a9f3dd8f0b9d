package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariff-sync/internal/model"
)

func price(v float64) *float64 { return &v }

func rec(day int, hour string, imp, exp float64) model.Record {
	return model.Record{
		Date:        time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		Hour:        hour,
		ImportPrice: price(imp),
		ExportPrice: price(exp),
	}
}

func TestMerge_NothingToMerge(t *testing.T) {
	ds := &model.Dataset{Records: []model.Record{
		rec(1, "00:00", 0.21, 0.05),
		rec(1, "01:00", 0.22, 0.06),
	}}
	before := append([]model.Record(nil), ds.Records...)

	stats := Merge(ds, nil)

	assert.Equal(t, MergeStats{}, stats)
	assert.Equal(t, before, ds.Records)
}

func TestMerge_AppendsAndSorts(t *testing.T) {
	ds := &model.Dataset{Records: []model.Record{
		rec(2, "00:00", 0.21, 0.05),
	}}

	stats := Merge(ds, []model.Record{
		rec(1, "01:00", 0.20, 0.04),
		rec(1, "00:00", 0.19, 0.03),
	})

	assert.Equal(t, 2, stats.Added)
	require.Len(t, ds.Records, 3)
	assert.Equal(t, "2024-01-01 00:00", ds.Records[0].Key())
	assert.Equal(t, "2024-01-01 01:00", ds.Records[1].Key())
	assert.Equal(t, "2024-01-02 00:00", ds.Records[2].Key())
}

func TestMerge_DuplicateSafe(t *testing.T) {
	ds := &model.Dataset{Records: []model.Record{
		rec(1, "00:00", 0.21, 0.05),
	}}
	newRecs := []model.Record{
		rec(1, "23:00", 0.30, 0.10),
		rec(2, "00:00", 0.31, 0.11),
	}

	first := Merge(ds, newRecs)
	assert.Equal(t, 2, first.Added)
	after := append([]model.Record(nil), ds.Records...)

	// Merging the same records again is a no-op.
	second := Merge(ds, newRecs)
	assert.Equal(t, 0, second.Added)
	assert.Equal(t, 2, second.Duplicates)
	assert.Equal(t, after, ds.Records)
}

func TestMerge_ConflictKeepsExisting(t *testing.T) {
	existing := rec(1, "00:00", 0.21, 0.05)
	ds := &model.Dataset{Records: []model.Record{existing}}

	stats := Merge(ds, []model.Record{rec(1, "00:00", 0.99, 0.99)})

	assert.Equal(t, 0, stats.Added)
	assert.Equal(t, 1, stats.Conflicts)
	require.Len(t, ds.Records, 1)
	assert.InDelta(t, 0.21, *ds.Records[0].ImportPrice, 1e-9)
}

func TestMerge_DropsPreexistingDuplicates(t *testing.T) {
	ds := &model.Dataset{Records: []model.Record{
		rec(1, "00:00", 0.21, 0.05),
		rec(1, "00:00", 0.21, 0.05),
	}}

	stats := Merge(ds, nil)

	assert.Equal(t, 1, stats.Duplicates)
	assert.Len(t, ds.Records, 1)
}

func TestMerge_NilPricesCompareEqual(t *testing.T) {
	missing := model.Record{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Hour: "03:00"}
	ds := &model.Dataset{Records: []model.Record{missing}}

	stats := Merge(ds, []model.Record{missing})

	assert.Equal(t, 1, stats.Duplicates)
	assert.Len(t, ds.Records, 1)
	assert.Nil(t, ds.Records[0].ImportPrice)
}
