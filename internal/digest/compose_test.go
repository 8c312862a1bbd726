package digest

import (
	"strings"
	"testing"

	"github.com/signalist/signalist/internal/quotes"
)

func quote(symbol string, price, changePct float64, volume int64, pe, marketCap float64) quotes.Snapshot {
	return quotes.Snapshot{
		Symbol: symbol, Price: price, ChangePercent: changePct,
		Volume: volume, PE: pe, MarketCap: marketCap,
	}
}

func TestComposeTopMovers(t *testing.T) {
	symbols := []string{"A", "B", "C", "D", "E", "F"}
	snaps := map[string]quotes.Snapshot{
		"A": quote("A", 10, 0.5, 0, 0, 0),
		"B": quote("B", 10, -3.0, 0, 0, 0),
		"C": quote("C", 10, 2.0, 0, 0, 0),
		"D": quote("D", 10, -0.1, 0, 0, 0),
		"E": quote("E", 10, 1.0, 0, 0, 0),
		"F": quote("F", 10, 4.0, 0, 0, 0),
	}

	d := Compose(symbols, snaps)

	if len(d.TopMovers) != 5 {
		t.Fatalf("expected 5 top movers, got %d", len(d.TopMovers))
	}
	// Ranked by descending absolute change percent.
	want := []string{"F", "B", "C", "E", "A"}
	for i, sym := range want {
		if d.TopMovers[i].Symbol != sym {
			t.Errorf("mover %d: expected %s, got %s", i, sym, d.TopMovers[i].Symbol)
		}
	}
}

func TestComposeVolumeLeaders(t *testing.T) {
	symbols := []string{"LOW", "HIGH", "MID"}
	snaps := map[string]quotes.Snapshot{
		"LOW":  quote("LOW", 10, 0, 1_000, 0, 0),
		"HIGH": quote("HIGH", 10, 0, 9_000_000, 0, 0),
		"MID":  quote("MID", 10, 0, 500_000, 0, 0),
	}

	d := Compose(symbols, snaps)
	if d.VolumeLeaders[0].Symbol != "HIGH" || d.VolumeLeaders[2].Symbol != "LOW" {
		t.Errorf("unexpected volume ranking: %+v", d.VolumeLeaders)
	}
}

func TestComposeAbsentContributesZero(t *testing.T) {
	symbols := []string{"AAPL", "GHST"}
	snaps := map[string]quotes.Snapshot{
		"AAPL": quote("AAPL", 150, 2.0, 1_000_000, 28, 2.5e12),
		"GHST": {Symbol: "GHST", Absent: true},
	}

	d := Compose(symbols, snaps)

	// Never excluded: the ghost still appears in every section with zeros.
	if len(d.TopMovers) != 2 || len(d.Valuations) != 2 {
		t.Fatalf("absent symbol must stay in the digest: %+v", d)
	}
	if d.TopMovers[1].Symbol != "GHST" || d.TopMovers[1].ChangePercent != 0 {
		t.Errorf("absent symbol should rank with zero change: %+v", d.TopMovers)
	}
	// Average still divides by all requested symbols.
	if d.AvgChangePercent != 1.0 {
		t.Errorf("expected avg 1.0, got %v", d.AvgChangePercent)
	}
}

func TestOutlookBoundaries(t *testing.T) {
	tests := []struct {
		name string
		avg  float64
		want string
	}{
		{name: "clearly bullish", avg: 1.3, want: outlookBullish},
		{name: "exactly at bullish threshold", avg: 0.25, want: outlookNeutral},
		{name: "just above threshold", avg: 0.2501, want: outlookBullish},
		{name: "neutral", avg: 0, want: outlookNeutral},
		{name: "exactly at cautious threshold", avg: -0.25, want: outlookNeutral},
		{name: "just below threshold", avg: -0.2501, want: outlookCautious},
		{name: "clearly cautious", avg: -2, want: outlookCautious},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outlookText(tt.avg); got != tt.want {
				t.Errorf("avg %v: got %q", tt.avg, got)
			}
		})
	}
}

func TestSymbolsFor(t *testing.T) {
	if got := SymbolsFor(nil); len(got) != len(DefaultSymbols) || got[0] != "AAPL" {
		t.Errorf("empty watchlist should fall back to defaults, got %v", got)
	}
	if got := SymbolsFor([]string{"TSLA"}); len(got) != 1 || got[0] != "TSLA" {
		t.Errorf("non-empty watchlist wins over defaults, got %v", got)
	}

	many := make([]string, 15)
	for i := range many {
		many[i] = string(rune('A' + i))
	}
	if got := SymbolsFor(many); len(got) != MaxSymbols {
		t.Errorf("expected cap at %d symbols, got %d", MaxSymbols, len(got))
	}
}

func TestComposeEmptySymbolList(t *testing.T) {
	d := Compose(nil, nil)
	if d.AvgChangePercent != 0 {
		t.Errorf("expected zero average, got %v", d.AvgChangePercent)
	}
	if d.Outlook != outlookNeutral {
		t.Errorf("expected neutral outlook, got %q", d.Outlook)
	}
}

func TestFormatMarketCap(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "N/A"},
		{-1, "N/A"},
		{2.5e12, "2.50T"},
		{987.65e9, "987.65B"},
		{42e6, "42.00M"},
		{123456, "123456"},
	}
	for _, tt := range tests {
		if got := FormatMarketCap(tt.in); got != tt.want {
			t.Errorf("FormatMarketCap(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValuationNote(t *testing.T) {
	tests := []struct {
		pe   float64
		want string
	}{
		{0, "No P/E data"},
		{-4, "No P/E data"},
		{8.2, "Potentially undervalued vs. broad market"},
		{12, "Near market median"},
		{30, "Near market median"},
		{31, "Rich multiple — growth expectations priced in"},
	}
	for _, tt := range tests {
		if got := ValuationNote(tt.pe); got != tt.want {
			t.Errorf("ValuationNote(%v) = %q, want %q", tt.pe, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	symbols := []string{"AAPL", "GHST"}
	snaps := map[string]quotes.Snapshot{
		"AAPL": quote("AAPL", 150.5, 2.0, 55_000_000, 28.5, 2.5e12),
		"GHST": {Symbol: "GHST", Absent: true},
	}
	d := Compose(symbols, snaps)

	news := `<div><a href="https://example.com/story">Markets rally</a></div>`
	html, err := Render(d, "August 31, 2026", news, "https://signalist.app")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, want := range []string{
		"August 31, 2026",
		"$150.50",
		"+2.00%",
		"2.50T",
		"28.5",
		"N/A", // ghost valuations
		"Markets rally", // news fragment embedded unescaped
		d.Outlook,
		"https://signalist.app/watchlist",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered digest missing %q", want)
		}
	}
	if strings.Contains(html, "&lt;a href") {
		t.Error("news fragment was escaped")
	}
}
