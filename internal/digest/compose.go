package digest

import (
	"math"
	"sort"

	"github.com/signalist/signalist/internal/quotes"
)

const (
	// Outlook thresholds on the average change percent. Both comparisons
	// are strict: exactly +0.25 or -0.25 stays neutral.
	bullishThreshold  = 0.25
	cautiousThreshold = -0.25

	topMoversCount     = 5
	volumeLeadersCount = 5
	watchlistRowsCount = 8
)

// DefaultSymbols seed the digest for users with an empty watchlist.
var DefaultSymbols = []string{"AAPL", "MSFT", "TSLA", "NVDA", "GOOGL"}

// MaxSymbols caps how many symbols one digest covers.
const MaxSymbols = 10

// SymbolsFor picks the symbols a digest should cover: the user's watchlist
// when it has entries, the default set otherwise, capped at MaxSymbols.
func SymbolsFor(watchlist []string) []string {
	symbols := watchlist
	if len(symbols) == 0 {
		symbols = DefaultSymbols
	}
	if len(symbols) > MaxSymbols {
		symbols = symbols[:MaxSymbols]
	}
	return symbols
}

const (
	outlookBullish  = "Momentum is favorable across your tracked names; consider tightening stops on recent winners and watching for continuation setups."
	outlookCautious = "Caution: Broader softness across tracked names; consider waiting for confirmation before adding risk and watch key support levels."
	outlookNeutral  = "Mixed signals today; maintain discipline and focus on high-quality breakouts with volume confirmation."
)

// Mover is one ranked row in the top-movers or watchlist sections.
type Mover struct {
	Symbol        string
	Price         float64
	ChangePercent float64
}

// VolumeLeader is one ranked row in the volume-leaders section.
type VolumeLeader struct {
	Symbol string
	Volume int64
	Price  float64
}

// Valuation carries the raw fundamentals for one symbol; formatting happens
// at render time.
type Valuation struct {
	Symbol    string
	PE        float64
	MarketCap float64
}

// Digest is the computed content of one briefing email.
type Digest struct {
	TopMovers        []Mover
	VolumeLeaders    []VolumeLeader
	Valuations       []Valuation
	Watchlist        []Mover
	AvgChangePercent float64
	Outlook          string
}

// Compose ranks the symbols into the digest sections. A symbol with an
// absent snapshot contributes zeros to every ranking and is never dropped,
// so the email always covers the full tracked list.
func Compose(symbols []string, snaps map[string]quotes.Snapshot) Digest {
	movers := make([]Mover, 0, len(symbols))
	leaders := make([]VolumeLeader, 0, len(symbols))
	valuations := make([]Valuation, 0, len(symbols))

	var changeSum float64
	for _, sym := range symbols {
		snap, ok := snaps[sym]
		if !ok || snap.Absent {
			snap = quotes.Snapshot{Symbol: sym}
		}
		movers = append(movers, Mover{Symbol: sym, Price: snap.Price, ChangePercent: snap.ChangePercent})
		leaders = append(leaders, VolumeLeader{Symbol: sym, Volume: snap.Volume, Price: snap.Price})
		valuations = append(valuations, Valuation{Symbol: sym, PE: snap.PE, MarketCap: snap.MarketCap})
		changeSum += snap.ChangePercent
	}

	topMovers := make([]Mover, len(movers))
	copy(topMovers, movers)
	sort.SliceStable(topMovers, func(i, j int) bool {
		return math.Abs(topMovers[i].ChangePercent) > math.Abs(topMovers[j].ChangePercent)
	})
	if len(topMovers) > topMoversCount {
		topMovers = topMovers[:topMoversCount]
	}

	sort.SliceStable(leaders, func(i, j int) bool {
		return leaders[i].Volume > leaders[j].Volume
	})
	if len(leaders) > volumeLeadersCount {
		leaders = leaders[:volumeLeadersCount]
	}

	watchlist := movers
	if len(watchlist) > watchlistRowsCount {
		watchlist = watchlist[:watchlistRowsCount]
	}

	var avg float64
	if len(symbols) > 0 {
		avg = changeSum / float64(len(symbols))
	}

	return Digest{
		TopMovers:        topMovers,
		VolumeLeaders:    leaders,
		Valuations:       valuations,
		Watchlist:        watchlist,
		AvgChangePercent: avg,
		Outlook:          outlookText(avg),
	}
}

func outlookText(avg float64) string {
	switch {
	case avg > bullishThreshold:
		return outlookBullish
	case avg < cautiousThreshold:
		return outlookCautious
	default:
		return outlookNeutral
	}
}
