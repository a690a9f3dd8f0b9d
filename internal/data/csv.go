package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"tariff-sync/internal/model"
)

// datasetHeader is the fixed column layout of the dataset file.
var datasetHeader = []string{
	"Date",
	"Hour",
	"Import Grid (EUR/kWh)",
	"Export Grid (EUR/kWh)",
}

// LoadDataset reads the whole dataset CSV into memory.
func LoadDataset(path string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset file %s has no header row", path)
	}
	if err := checkHeader(rows[0]); err != nil {
		return nil, fmt.Errorf("dataset file %s: %w", path, err)
	}

	ds := &model.Dataset{Records: make([]model.Record, 0, len(rows)-1)}
	for i, row := range rows[1:] {
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("dataset file %s row %d: %w", path, i+2, err)
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

// SaveDataset rewrites the whole dataset file. The write goes through a
// temporary file in the same directory and a rename, so an interrupted run
// leaves the previous file intact.
func SaveDataset(path string, ds *model.Dataset) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp dataset file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(datasetHeader); err != nil {
		tmp.Close()
		return err
	}
	for _, rec := range ds.Records {
		row := []string{
			rec.Date.Format(model.DateLayout),
			rec.Hour,
			fmtPrice(rec.ImportPrice),
			fmtPrice(rec.ExportPrice),
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write dataset file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write dataset file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace dataset file: %w", err)
	}
	return nil
}

func checkHeader(got []string) error {
	if len(got) != len(datasetHeader) {
		return fmt.Errorf("unexpected header with %d columns", len(got))
	}
	for i, col := range datasetHeader {
		if got[i] != col {
			return fmt.Errorf("unexpected column %q, want %q", got[i], col)
		}
	}
	return nil
}

func parseRow(row []string) (model.Record, error) {
	if len(row) != len(datasetHeader) {
		return model.Record{}, fmt.Errorf("unexpected row with %d columns", len(row))
	}
	date, err := time.Parse(model.DateLayout, row[0])
	if err != nil {
		return model.Record{}, fmt.Errorf("bad date %q: %w", row[0], err)
	}
	return model.Record{
		Date:        date,
		Hour:        row[1],
		ImportPrice: parsePrice(row[2]),
		ExportPrice: parsePrice(row[3]),
	}, nil
}

// parsePrice returns nil for empty or unparseable cells; "no value" stays
// distinguishable from a known zero price.
func parsePrice(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func fmtPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
