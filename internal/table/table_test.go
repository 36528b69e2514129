package table

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matheuskafuri/fng/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, _ := series.ParseDate(s)
	return t
}

func sampleSeries() series.Series {
	return series.Series{
		{Date: day("2024-01-01"), Value: 20, Known: true},
		{Date: day("2024-01-02"), Value: 0, Known: true},
		{Date: day("2024-01-03"), Value: 30, Known: true},
		{Date: day("2024-01-04"), Known: false},
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
		err   bool
	}{
		{"parquet", Parquet, false},
		{"CSV", CSV, false},
		{" Parquet ", Parquet, false},
		{"json", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.err {
			require.Error(t, err, tt.input)
			assert.True(t, errors.Is(err, ErrUnsupportedFormat))
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path   string
		format Format
		want   string
	}{
		{"fng_data.parquet", Parquet, "fng_data.parquet"},
		{"fng_data.parquet", CSV, "fng_data.csv"},
		{"out/data", CSV, "out/data.csv"},
		{"data.txt", Parquet, "data.parquet"},
		{"archive.2024.csv", Parquet, "archive.2024.parquet"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePath(tt.path, tt.format), "%s as %s", tt.path, tt.format)
	}
}

func TestLoadMissingFile(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "in.csv", "Fear Greed,Date,Extra\n20,2024-01-01,x\n,2024-01-02,y\n31.6,2024-01-03T00:00:00Z,z\n")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []series.Observation{
		{Date: day("2024-01-01"), Value: 20},
		{Date: day("2024-01-03"), Value: 32},
	}, got)
}

func TestLoadCSVMissingColumn(t *testing.T) {
	path := writeFile(t, "in.csv", "Date,Score\n2024-01-01,20\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadCSVBadDate(t *testing.T) {
	path := writeFile(t, "in.csv", "Date,Fear Greed\n01/02/2024,20\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadCSVOutOfRange(t *testing.T) {
	path := writeFile(t, "in.csv", "Date,Fear Greed\n2024-01-01,101\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadCSVEmptyFile(t *testing.T) {
	got, err := Load(writeFile(t, "in.csv", ""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	require.NoError(t, Save(sampleSeries(), path, CSV))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Date,Fear Greed\n2024-01-01,20\n2024-01-02,0\n2024-01-03,30\n2024-01-04,\n", string(data))
}

func TestSaveUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	err := Save(sampleSeries(), path, Format("json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.False(t, Exists(path), "nothing should be written")
}

func TestRoundTrip(t *testing.T) {
	want := []series.Observation{
		{Date: day("2024-01-01"), Value: 20},
		{Date: day("2024-01-02"), Value: 0},
		{Date: day("2024-01-03"), Value: 30},
	}
	for _, f := range []Format{CSV, Parquet} {
		t.Run(string(f), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out"+f.Ext())
			require.NoError(t, Save(sampleSeries(), path, f))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestEpochDays(t *testing.T) {
	for _, s := range []string{"1970-01-01", "2020-09-19", "2024-02-29", "2038-01-20"} {
		d := day(s)
		assert.Equal(t, d, fromEpochDays(toEpochDays(d)), s)
	}
	assert.Equal(t, int32(0), toEpochDays(day("1970-01-01")))
	assert.Equal(t, int32(19723), toEpochDays(day("2024-01-01")))
}
