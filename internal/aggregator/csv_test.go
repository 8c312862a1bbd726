package aggregator

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"testing"
	"time"

	"github.com/signalist/signalist/internal/quotes"
	"github.com/signalist/signalist/internal/watchlist"
)

func TestWriteCSVRoundTrip(t *testing.T) {
	added := time.Date(2026, 8, 14, 9, 30, 0, 0, time.UTC)
	view := &View{Rows: []Row{
		{
			Entry: watchlist.Entry{Symbol: "AAPL", Company: "Apple Inc", AddedAt: added},
			Quote: quotes.Snapshot{Symbol: "AAPL", Price: 150.456, Change: 1.5, ChangePercent: 1.01,
				Volume: 55_000_000, MarketCap: 2.5e12, PE: 28.53},
		},
		{
			Entry: watchlist.Entry{Symbol: "TSLA", Company: "Tesla", AddedAt: added.AddDate(0, 0, 1)},
			Quote: quotes.Snapshot{Symbol: "TSLA", Price: 250, Change: -5.1, ChangePercent: -2},
		},
		{
			Entry: watchlist.Entry{Symbol: "GHST", Company: "Ghost Corp", AddedAt: added.AddDate(0, 0, 2)},
			Quote: quotes.Snapshot{Symbol: "GHST", Absent: true},
		},
	}}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, view); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV does not parse: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d records", len(records))
	}
	if records[0][0] != "Symbol" || records[0][8] != "Date Added" {
		t.Errorf("unexpected header: %v", records[0])
	}

	for i, r := range view.Rows {
		rec := records[i+1]
		if rec[0] != r.Entry.Symbol {
			t.Errorf("row %d: symbol %q != %q", i, rec[0], r.Entry.Symbol)
		}
		wantPrice := "N/A"
		if !r.Quote.Absent {
			wantPrice = fmt.Sprintf("%.2f", r.Quote.Price)
		}
		if rec[2] != wantPrice {
			t.Errorf("row %d: price %q != %q", i, rec[2], wantPrice)
		}
		if rec[8] != r.Entry.AddedAt.Format("2006-01-02") {
			t.Errorf("row %d: date %q", i, rec[8])
		}
	}

	// Absent entry renders N/A across all numeric columns.
	ghost := records[3]
	for _, col := range []int{2, 3, 4, 5, 6, 7} {
		if ghost[col] != "N/A" {
			t.Errorf("absent column %d should be N/A, got %q", col, ghost[col])
		}
	}
}
