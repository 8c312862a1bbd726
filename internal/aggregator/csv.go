package aggregator

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var csvHeader = []string{
	"Symbol", "Company", "Price", "Change", "Change %",
	"Volume", "Market Cap", "P/E", "Date Added",
}

// WriteCSV writes one row per visible entry, formatted the same way the UI
// table formats them: two decimals for price and change, "N/A" for absent.
func WriteCSV(w io.Writer, view *View) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range view.Rows {
		record := []string{
			r.Entry.Symbol,
			r.Entry.Company,
			csvFloat(r.Quote.Price, 2, r.Quote.Absent),
			csvFloat(r.Quote.Change, 2, r.Quote.Absent),
			csvFloat(r.Quote.ChangePercent, 2, r.Quote.Absent),
			csvVolume(r.Quote.Volume, r.Quote.Absent),
			csvMarketCap(r.Quote.MarketCap, r.Quote.Absent),
			csvPE(r.Quote.PE, r.Quote.Absent),
			r.Entry.AddedAt.Format("2006-01-02"),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvFloat(v float64, decimals int, absent bool) string {
	if absent {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func csvVolume(v int64, absent bool) string {
	if absent || v <= 0 {
		return "N/A"
	}
	return strconv.FormatInt(v, 10)
}

func csvMarketCap(v float64, absent bool) string {
	if absent || v <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1fB", v/1e9)
}

func csvPE(v float64, absent bool) string {
	if absent || v <= 0 {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
