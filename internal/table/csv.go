package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/matheuskafuri/fng/internal/series"
	"github.com/shopspring/decimal"
)

var dateLayouts = []string{
	series.DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return series.Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func parseValue(s string) (int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", s)
	}
	v := d.Round(0).IntPart()
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("value %s out of range [0,100]", s)
	}
	return int(v), nil
}

func loadCSV(path string) ([]series.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	dateIdx, valueIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case DateColumn:
			dateIdx = i
		case ValueColumn:
			valueIdx = i
		}
	}
	if dateIdx < 0 || valueIdx < 0 {
		return nil, fmt.Errorf("%s: expected columns %q and %q", path, DateColumn, ValueColumn)
	}

	var out []series.Observation
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		if dateIdx >= len(rec) || valueIdx >= len(rec) {
			return nil, fmt.Errorf("%s line %d: short row", path, line)
		}
		if strings.TrimSpace(rec[valueIdx]) == "" {
			continue
		}
		date, err := parseDate(rec[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		v, err := parseValue(rec[valueIdx])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		out = append(out, series.Observation{Date: date, Value: v})
	}
	return out, nil
}

func saveCSV(s series.Series, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{DateColumn, ValueColumn}); err != nil {
		f.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for _, p := range s {
		value := ""
		if p.Known {
			value = strconv.Itoa(p.Value)
		}
		if err := w.Write([]string{p.Date.Format(series.DateLayout), value}); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", p.Date.Format(series.DateLayout), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing csv: %w", err)
	}
	return f.Close()
}
