package table

import (
	"fmt"
	"time"

	"github.com/matheuskafuri/fng/internal/series"
	"github.com/parquet-go/parquet-go"
)

// row is the on-disk parquet schema. Date is stored as days since the Unix
// epoch with the DATE logical type.
type row struct {
	Date  int32  `parquet:"Date,date"`
	Value *int64 `parquet:"Fear Greed,optional"`
}

var epoch = time.Unix(0, 0).UTC()

func toEpochDays(t time.Time) int32 {
	return int32(series.Day(t).Sub(epoch).Hours() / 24)
}

func fromEpochDays(d int32) time.Time {
	return epoch.AddDate(0, 0, int(d))
}

func saveParquet(s series.Series, path string) error {
	rows := make([]row, len(s))
	for i, p := range s {
		rows[i].Date = toEpochDays(p.Date)
		if p.Known {
			v := int64(p.Value)
			rows[i].Value = &v
		}
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("writing parquet %s: %w", path, err)
	}
	return nil
}

func loadParquet(path string) ([]series.Observation, error) {
	rows, err := parquet.ReadFile[row](path)
	if err != nil {
		return nil, fmt.Errorf("reading parquet %s: %w", path, err)
	}
	out := make([]series.Observation, 0, len(rows))
	for i, r := range rows {
		if r.Value == nil {
			continue
		}
		if *r.Value < 0 || *r.Value > 100 {
			return nil, fmt.Errorf("%s row %d: value %d out of range [0,100]", path, i, *r.Value)
		}
		out = append(out, series.Observation{Date: fromEpochDays(r.Date), Value: int(*r.Value)})
	}
	return out, nil
}
