package aggregator

import (
	"context"
	"testing"
	"time"

	"github.com/signalist/signalist/internal/quotes"
	"github.com/signalist/signalist/internal/watchlist"
)

type fakeStore struct {
	entries []watchlist.Entry
}

func (f *fakeStore) List(_ context.Context, _ string) ([]watchlist.Entry, error) {
	return f.entries, nil
}

type fakeFetcher struct {
	snaps map[string]quotes.Snapshot
	calls int
}

func (f *fakeFetcher) FetchQuotes(_ context.Context, symbols []string) map[string]quotes.Snapshot {
	f.calls++
	out := make(map[string]quotes.Snapshot, len(symbols))
	for _, s := range symbols {
		if snap, ok := f.snaps[s]; ok {
			out[s] = snap
		} else {
			out[s] = quotes.Snapshot{Symbol: s, Absent: true}
		}
	}
	return out
}

func entry(symbol string, addedAt time.Time) watchlist.Entry {
	return watchlist.Entry{UserID: "u1", Symbol: symbol, Company: symbol + " Inc", AddedAt: addedAt}
}

func snap(symbol string, price, change, changePct float64) quotes.Snapshot {
	return quotes.Snapshot{Symbol: symbol, Price: price, Change: change, ChangePercent: changePct}
}

func TestBuildViewSnapshotConsistency(t *testing.T) {
	now := time.Now()
	store := &fakeStore{entries: []watchlist.Entry{entry("AAPL", now), entry("TSLA", now)}}
	fetcher := &fakeFetcher{snaps: map[string]quotes.Snapshot{
		"AAPL": snap("AAPL", 150, 1.5, 1.0),
		// TSLA fetch failed: not in the map, resolves absent.
	}}

	agg := New(store, fetcher)
	view, err := agg.BuildView(context.Background(), "u1", DefaultOptions())
	if err != nil {
		t.Fatalf("build view failed: %v", err)
	}

	if fetcher.calls != 1 {
		t.Errorf("expected a single batch fetch, got %d", fetcher.calls)
	}
	if len(view.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(view.Rows))
	}

	var tsla Row
	for _, r := range view.Rows {
		if r.Entry.Symbol == "TSLA" {
			tsla = r
		}
	}
	if !tsla.Quote.Absent {
		t.Error("expected TSLA marked absent, not dropped")
	}

	// Totals reflect only AAPL's contribution.
	if view.Totals.TotalValue != 150 || view.Totals.TotalChange != 1.5 {
		t.Errorf("totals should cover present rows only: %+v", view.Totals)
	}
	if view.Totals.Gainers != 1 || view.Totals.Losers != 0 {
		t.Errorf("unexpected gainer/loser counts: %+v", view.Totals)
	}
}

func TestBuildViewSortByChange(t *testing.T) {
	now := time.Now()
	store := &fakeStore{entries: []watchlist.Entry{entry("AAPL", now), entry("TSLA", now)}}
	fetcher := &fakeFetcher{snaps: map[string]quotes.Snapshot{
		"AAPL": snap("AAPL", 150, 1.5, 1.0),
		"TSLA": snap("TSLA", 250, -5.1, -2.0),
	}}
	agg := New(store, fetcher)

	view, err := agg.BuildView(context.Background(), "u1", Options{SortBy: SortChange, Order: OrderAsc})
	if err != nil {
		t.Fatalf("build view failed: %v", err)
	}
	if view.Rows[0].Entry.Symbol != "TSLA" || view.Rows[1].Entry.Symbol != "AAPL" {
		t.Errorf("ascending change should order TSLA before AAPL, got %s, %s",
			view.Rows[0].Entry.Symbol, view.Rows[1].Entry.Symbol)
	}

	view, err = agg.BuildView(context.Background(), "u1", Options{SortBy: SortChange, Order: OrderDesc})
	if err != nil {
		t.Fatalf("build view failed: %v", err)
	}
	if view.Rows[0].Entry.Symbol != "AAPL" || view.Rows[1].Entry.Symbol != "TSLA" {
		t.Errorf("descending change should order AAPL before TSLA, got %s, %s",
			view.Rows[0].Entry.Symbol, view.Rows[1].Entry.Symbol)
	}
}

func TestBuildViewSortTreatsAbsentAsZero(t *testing.T) {
	now := time.Now()
	store := &fakeStore{entries: []watchlist.Entry{entry("GHST", now), entry("AAPL", now), entry("TSLA", now)}}
	fetcher := &fakeFetcher{snaps: map[string]quotes.Snapshot{
		"AAPL": snap("AAPL", 150, 1.5, 1.0),
		"TSLA": snap("TSLA", 250, -5.1, -2.0),
	}}
	agg := New(store, fetcher)

	view, err := agg.BuildView(context.Background(), "u1", Options{SortBy: SortPrice, Order: OrderAsc})
	if err != nil {
		t.Fatalf("build view failed: %v", err)
	}
	if view.Rows[0].Entry.Symbol != "GHST" {
		t.Errorf("absent quote should sort as price 0, got first row %s", view.Rows[0].Entry.Symbol)
	}
}

func TestBuildViewSortStability(t *testing.T) {
	now := time.Now()
	// Same price for all three: stable sort must preserve list order in
	// both directions because descending flips the comparator, not the list.
	store := &fakeStore{entries: []watchlist.Entry{entry("AAA", now), entry("BBB", now), entry("CCC", now)}}
	fetcher := &fakeFetcher{snaps: map[string]quotes.Snapshot{
		"AAA": snap("AAA", 100, 0, 0),
		"BBB": snap("BBB", 100, 0, 0),
		"CCC": snap("CCC", 100, 0, 0),
	}}
	agg := New(store, fetcher)

	for _, order := range []Order{OrderAsc, OrderDesc} {
		view, err := agg.BuildView(context.Background(), "u1", Options{SortBy: SortPrice, Order: order})
		if err != nil {
			t.Fatalf("build view failed: %v", err)
		}
		got := []string{view.Rows[0].Entry.Symbol, view.Rows[1].Entry.Symbol, view.Rows[2].Entry.Symbol}
		if got[0] != "AAA" || got[1] != "BBB" || got[2] != "CCC" {
			t.Errorf("order %s: ties should keep list order, got %v", order, got)
		}
	}
}

func TestBuildViewGainersFilter(t *testing.T) {
	now := time.Now()
	store := &fakeStore{entries: []watchlist.Entry{
		entry("UP", now), entry("FLAT", now), entry("DOWN", now), entry("GHST", now),
	}}
	fetcher := &fakeFetcher{snaps: map[string]quotes.Snapshot{
		"UP":   snap("UP", 10, 0.5, 5.0),
		"FLAT": snap("FLAT", 10, 0, 0),
		"DOWN": snap("DOWN", 10, -0.5, -5.0),
	}}
	agg := New(store, fetcher)

	view, err := agg.BuildView(context.Background(), "u1", Options{SortBy: SortSymbol, GainersOnly: true})
	if err != nil {
		t.Fatalf("build view failed: %v", err)
	}
	// Zero change is neither gainer nor loser, and an absent quote cannot
	// satisfy a quote-dependent filter.
	if len(view.Rows) != 1 || view.Rows[0].Entry.Symbol != "UP" {
		t.Errorf("gainers filter should keep only UP, got %d rows", len(view.Rows))
	}

	view, err = agg.BuildView(context.Background(), "u1", Options{SortBy: SortSymbol, LosersOnly: true})
	if err != nil {
		t.Fatalf("build view failed: %v", err)
	}
	if len(view.Rows) != 1 || view.Rows[0].Entry.Symbol != "DOWN" {
		t.Errorf("losers filter should keep only DOWN, got %d rows", len(view.Rows))
	}
}

func TestBuildViewKeepsAbsentWithoutFilters(t *testing.T) {
	now := time.Now()
	store := &fakeStore{entries: []watchlist.Entry{entry("GHST", now)}}
	fetcher := &fakeFetcher{snaps: map[string]quotes.Snapshot{}}
	agg := New(store, fetcher)

	view, err := agg.BuildView(context.Background(), "u1", DefaultOptions())
	if err != nil {
		t.Fatalf("build view failed: %v", err)
	}
	if len(view.Rows) != 1 {
		t.Fatalf("absent entries must be retained, got %d rows", len(view.Rows))
	}
	if view.Totals != (Totals{}) {
		t.Errorf("all-absent watchlist should yield zero totals, got %+v", view.Totals)
	}
}
