package data

import (
	"fmt"
	"strings"
	"time"

	"tariff-sync/internal/model"
)

// Normalize maps raw API rows into canonical records: the timestamp is split
// on the date/time separator, the time component truncated to minute
// precision, and the supplier identifier dropped. An empty input yields an
// empty output.
func Normalize(raw []RawTariff) ([]model.Record, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]model.Record, 0, len(raw))
	for _, rt := range raw {
		rec, err := normalizeOne(rt)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func normalizeOne(rt RawTariff) (model.Record, error) {
	parts := strings.SplitN(rt.Timestamp, "T", 2)
	if len(parts) != 2 {
		return model.Record{}, fmt.Errorf("timestamp %q: missing date/time separator", rt.Timestamp)
	}
	date, err := time.Parse(model.DateLayout, parts[0])
	if err != nil {
		return model.Record{}, fmt.Errorf("timestamp %q: %w", rt.Timestamp, err)
	}
	if len(parts[1]) < 5 {
		return model.Record{}, fmt.Errorf("timestamp %q: time component too short", rt.Timestamp)
	}
	return model.Record{
		Date:        date,
		Hour:        parts[1][:5],
		ImportPrice: rt.TariffUsage,
		ExportPrice: rt.TariffReturn,
	}, nil
}
