package digest

import (
	"fmt"
	"strconv"
)

// FormatMarketCap scales a raw dollar market cap to T/B/M with two decimals.
func FormatMarketCap(mc float64) string {
	switch {
	case mc <= 0:
		return "N/A"
	case mc >= 1e12:
		return fmt.Sprintf("%.2fT", mc/1e12)
	case mc >= 1e9:
		return fmt.Sprintf("%.2fB", mc/1e9)
	case mc >= 1e6:
		return fmt.Sprintf("%.2fM", mc/1e6)
	default:
		return fmt.Sprintf("%.0f", mc)
	}
}

// FormatVolume scales a share count to B/M with two decimals.
func FormatVolume(v int64) string {
	switch {
	case v <= 0:
		return "N/A"
	case v >= 1e9:
		return fmt.Sprintf("%.2fB", float64(v)/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", float64(v)/1e6)
	default:
		return strconv.FormatInt(v, 10)
	}
}

// FormatPE renders a trailing P/E; zero or negative means no data.
func FormatPE(pe float64) string {
	if pe <= 0 {
		return "N/A"
	}
	return strconv.FormatFloat(pe, 'f', 1, 64)
}

// ValuationNote derives the qualitative note shown next to a P/E.
func ValuationNote(pe float64) string {
	switch {
	case pe <= 0:
		return "No P/E data"
	case pe < 12:
		return "Potentially undervalued vs. broad market"
	case pe > 30:
		return "Rich multiple — growth expectations priced in"
	default:
		return "Near market median"
	}
}

func formatChangePercent(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.2f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}

func formatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
