package table

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matheuskafuri/fng/internal/series"
)

// Column names shared by every format.
const (
	DateColumn  = "Date"
	ValueColumn = "Fear Greed"
)

// ErrUnsupportedFormat is returned for formats other than parquet and csv.
var ErrUnsupportedFormat = errors.New("unsupported format")

type Format string

const (
	Parquet Format = "parquet"
	CSV     Format = "csv"
)

// ParseFormat accepts "parquet" or "csv" case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Parquet, CSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: parquet, csv)", ErrUnsupportedFormat, s)
	}
}

func (f Format) Ext() string { return "." + string(f) }

// NormalizePath replaces the extension of path with the one matching f.
func NormalizePath(path string, f Format) string {
	ext := filepath.Ext(path)
	if ext == f.Ext() {
		return path
	}
	return strings.TrimSuffix(path, ext) + f.Ext()
}

// FormatOf infers a format from the file extension, defaulting to CSV.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), Parquet.Ext()) {
		return Parquet
	}
	return CSV
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Load reads a previously saved table. A missing file yields no observations
// and no error. Rows without a value are skipped.
func Load(path string) ([]series.Observation, error) {
	if !Exists(path) {
		return nil, nil
	}
	switch FormatOf(path) {
	case Parquet:
		return loadParquet(path)
	default:
		return loadCSV(path)
	}
}

// Save writes s to path in format f, creating parent directories.
func Save(s series.Series, path string, f Format) error {
	if _, err := ParseFormat(string(f)); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	switch f {
	case Parquet:
		return saveParquet(s, path)
	default:
		return saveCSV(s, path)
	}
}
