package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/matheuskafuri/fng/internal/history"
	"github.com/matheuskafuri/fng/internal/sentiment"
	"github.com/matheuskafuri/fng/internal/series"
	"github.com/matheuskafuri/fng/internal/summary"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if col == 0 {
				return tableCellStyle.Foreground(colorCyan)
			}
			return tableCellStyle.Foreground(colorAccent)
		})
}

func orNA(ok bool, v string) string {
	if !ok {
		return "N/A"
	}
	return v
}

// RenderSummary renders run statistics followed by a preview of the last rows.
func RenderSummary(st summary.Stats) string {
	span := "N/A"
	if st.Count > 0 {
		span = st.First.Format(series.DateLayout) + " to " + st.Last.Format(series.DateLayout)
	}

	metrics := newTable("Metric", "Value").
		Row("Total Records", strconv.Itoa(st.Count)).
		Row("Date Range", span).
		Row("Average F&G", orNA(st.HasValues(), st.Mean.StringFixed(2))).
		Row("Min F&G", orNA(st.HasValues(), strconv.Itoa(st.Min))).
		Row("Max F&G", orNA(st.HasValues(), strconv.Itoa(st.Max))).
		Row("Missing/Zero Values", strconv.Itoa(st.Zero+st.Missing))

	for _, b := range sentiment.AllBands() {
		metrics.Row(string(b), strconv.Itoa(st.Bands[b]))
	}

	var sb strings.Builder
	sb.WriteString(headingStyle.Render("Fear and Greed Index Summary"))
	sb.WriteString("\n")
	sb.WriteString(metrics.Render())
	sb.WriteString("\n\n")
	sb.WriteString(headingStyle.Render(fmt.Sprintf("Recent Data (Last %d records):", summary.PreviewSize)))
	sb.WriteString("\n")
	sb.WriteString(RenderPreview(st.Recent))
	return sb.String()
}

// RenderPreview renders rows as a Date / value / band table.
func RenderPreview(s series.Series) string {
	t := newTable("Date", "Fear & Greed", "Rating")
	for _, p := range s {
		value, rating := "", ""
		if p.Known {
			value = strconv.Itoa(p.Value)
			rating = bandStyle(sentiment.Classify(p.Value)).Render(string(sentiment.Classify(p.Value)))
		}
		t.Row(p.Date.Format(series.DateLayout), value, rating)
	}
	return t.Render()
}

func bandStyle(b sentiment.Band) lipgloss.Style {
	for i, band := range sentiment.AllBands() {
		if band == b {
			return lipgloss.NewStyle().Foreground(bandColors[i])
		}
	}
	return lipgloss.NewStyle()
}

// RenderInfo renders the static description shown by `fng info`.
func RenderInfo() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Fear and Greed Index Information"))
	sb.WriteString("\n\nThe Fear and Greed Index is a measure of market sentiment that combines several factors:\n")
	for _, c := range sentiment.Components {
		sb.WriteString("- " + keyStyle.Render(c.Name) + ": " + c.Description + "\n")
	}
	sb.WriteString("\n" + headingStyle.Render("Scale:") + "\n")
	for _, b := range sentiment.AllBands() {
		sb.WriteString("- " + bandStyle(b).Render(b.Label()) + "\n")
	}
	sb.WriteString("\n" + dimStyle.Italic(true).Render("Data source: CNN Fear and Greed Index"))
	return sb.String()
}

// RenderRuns renders recorded scrape runs, newest first.
func RenderRuns(runs []history.Run) string {
	if len(runs) == 0 {
		return dimStyle.Render("No runs recorded yet.")
	}
	t := newTable("When", "Range", "Policy", "Rows", "Missing", "Output", "Size")
	for _, r := range runs {
		t.Row(
			humanize.Time(r.StartedAt),
			r.Start.Format(series.DateLayout)+" to "+r.End.Format(series.DateLayout),
			r.Policy,
			humanize.Comma(int64(r.Rows)),
			strconv.Itoa(r.Missing),
			r.Output,
			humanize.Bytes(uint64(r.OutputBytes)),
		)
	}
	return t.Render()
}

// KeyValue renders an aligned "key: value" line.
func KeyValue(key, value string) string {
	return keyStyle.Render(key+":") + " " + valueStyle.Render(value)
}

// Title renders a bold heading line.
func Title(s string) string {
	return titleStyle.Render(s)
}
