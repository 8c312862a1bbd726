package aggregator

import (
	"context"
	"fmt"
	"sort"

	"github.com/signalist/signalist/internal/quotes"
	"github.com/signalist/signalist/internal/watchlist"
)

// Lister reads a user's stored watchlist.
type Lister interface {
	List(ctx context.Context, userID string) ([]watchlist.Entry, error)
}

// QuoteFetcher resolves a batch of symbols in one fetch cycle.
type QuoteFetcher interface {
	FetchQuotes(ctx context.Context, symbols []string) map[string]quotes.Snapshot
}

// Aggregator joins stored entries with live quotes into per-request views.
// It holds no state of its own; consistency comes from sequencing the store
// read before a single quote batch.
type Aggregator struct {
	store   Lister
	fetcher QuoteFetcher
}

// New creates an aggregator over the given store and quote client.
func New(store Lister, fetcher QuoteFetcher) *Aggregator {
	return &Aggregator{store: store, fetcher: fetcher}
}

// BuildView lists the user's entries, fetches all their quotes in one batch,
// then sorts, filters, and totals. The result is a pure function of that one
// (entries, quotes) capture: a concurrent add or remove lands in the next
// view, never halfway into this one.
func (a *Aggregator) BuildView(ctx context.Context, userID string, opts Options) (*View, error) {
	entries, err := a.store.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to build view: %w", err)
	}

	symbols := make([]string, 0, len(entries))
	for _, e := range entries {
		symbols = append(symbols, e.Symbol)
	}
	snaps := a.fetcher.FetchQuotes(ctx, symbols)

	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		snap, ok := snaps[e.Symbol]
		if !ok {
			snap = quotes.Snapshot{Symbol: e.Symbol, Absent: true}
		}
		rows = append(rows, Row{Entry: e, Quote: snap})
	}

	sortRows(rows, opts)
	rows = filterRows(rows, opts)

	view := &View{Rows: rows}
	for _, r := range rows {
		if r.Quote.Absent {
			continue
		}
		view.Totals.TotalValue += r.Quote.Price
		view.Totals.TotalChange += r.Quote.Change
		if r.Quote.ChangePercent > 0 {
			view.Totals.Gainers++
		} else if r.Quote.ChangePercent < 0 {
			view.Totals.Losers++
		}
	}
	return view, nil
}

// sortRows orders rows by the selected key. Descending reverses the
// comparator rather than the sorted slice, so equal keys keep their stable
// relative order either way. Absent quotes compare as zero on numeric keys.
func sortRows(rows []Row, opts Options) {
	less := lessFunc(opts.SortBy)
	if opts.Order == OrderDesc {
		asc := less
		less = func(a, b Row) bool { return asc(b, a) }
	}
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
}

func lessFunc(key SortKey) func(a, b Row) bool {
	switch key {
	case SortPrice:
		return func(a, b Row) bool { return numeric(a, price) < numeric(b, price) }
	case SortChange:
		return func(a, b Row) bool { return numeric(a, changePercent) < numeric(b, changePercent) }
	case SortAdded:
		return func(a, b Row) bool { return a.Entry.AddedAt.Before(b.Entry.AddedAt) }
	default:
		return func(a, b Row) bool { return a.Entry.Symbol < b.Entry.Symbol }
	}
}

type numericField int

const (
	price numericField = iota
	changePercent
)

func numeric(r Row, f numericField) float64 {
	if r.Quote.Absent {
		return 0
	}
	if f == price {
		return r.Quote.Price
	}
	return r.Quote.ChangePercent
}

// filterRows applies the gainers/losers filters. Rows with absent quotes are
// kept by default; a filter that needs quote data to evaluate excludes them.
// A zero change is neither a gainer nor a loser, so it fails both filters.
func filterRows(rows []Row, opts Options) []Row {
	if !opts.GainersOnly && !opts.LosersOnly {
		return rows
	}
	filtered := rows[:0]
	for _, r := range rows {
		if opts.GainersOnly && (r.Quote.Absent || r.Quote.ChangePercent <= 0) {
			continue
		}
		if opts.LosersOnly && (r.Quote.Absent || r.Quote.ChangePercent >= 0) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}
