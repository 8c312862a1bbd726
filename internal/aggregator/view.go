package aggregator

import (
	"github.com/signalist/signalist/internal/quotes"
	"github.com/signalist/signalist/internal/watchlist"
)

// SortKey selects the column a view is ordered by.
type SortKey string

const (
	SortSymbol SortKey = "symbol"
	SortPrice  SortKey = "price"
	SortChange SortKey = "change"
	SortAdded  SortKey = "added"
)

// Order is the sort direction, ascending by default.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Options controls sorting and filtering of a view.
type Options struct {
	SortBy      SortKey
	Order       Order
	GainersOnly bool
	LosersOnly  bool
}

// DefaultOptions returns a symbol-ascending unfiltered view.
func DefaultOptions() Options {
	return Options{SortBy: SortSymbol, Order: OrderAsc}
}

// Row pairs a stored entry with the snapshot from this view's fetch cycle.
// Quote.Absent marks entries whose fetch failed.
type Row struct {
	Entry watchlist.Entry `json:"entry"`
	Quote quotes.Snapshot `json:"quote"`
}

// Totals are computed only over rows with present quote data; an all-absent
// watchlist yields zero totals.
type Totals struct {
	TotalValue  float64 `json:"total_value"`
	TotalChange float64 `json:"total_change"`
	Gainers     int     `json:"gainers"`
	Losers      int     `json:"losers"`
}

// View is one consistent snapshot of a watchlist joined with live quotes.
// Every row's quote comes from the same fetch batch.
type View struct {
	Rows   []Row  `json:"rows"`
	Totals Totals `json:"totals"`
}
