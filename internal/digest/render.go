package digest

import (
	"fmt"
	"html/template"
	"strings"
)

const (
	positiveColor = "#065f46"
	negativeColor = "#b91c1c"
)

type moverRow struct {
	Symbol string
	Price  string
	Change string
	Color  string
}

type valuationRow struct {
	Symbol    string
	PE        string
	MarketCap string
	Note      string
}

type volumeRow struct {
	Symbol string
	Volume string
	Price  string
}

type snapshotRow struct {
	Label  string
	Change string
	Color  string
}

type emailData struct {
	Date           string
	MarketSnapshot []snapshotRow
	TopMovers      []moverRow
	Valuations     []valuationRow
	VolumeLeaders  []volumeRow
	Watchlist      []moverRow
	NewsSections   template.HTML
	Outlook        string
	CtaURL         string
	ManagePrefsURL string
}

// Render produces the full briefing HTML for one digest. newsHTML is a
// pre-rendered fragment and embedded as-is; everything else goes through
// html/template escaping.
func Render(d Digest, date, newsHTML, baseURL string) (string, error) {
	data := emailData{
		Date:           date,
		MarketSnapshot: marketSnapshotRows(),
		NewsSections:   template.HTML(newsHTML),
		Outlook:        d.Outlook,
		CtaURL:         baseURL + "/watchlist",
		ManagePrefsURL: baseURL + "/profile",
	}

	for _, m := range d.TopMovers {
		data.TopMovers = append(data.TopMovers, newMoverRow(m))
	}
	for _, m := range d.Watchlist {
		data.Watchlist = append(data.Watchlist, newMoverRow(m))
	}
	for _, v := range d.Valuations {
		data.Valuations = append(data.Valuations, valuationRow{
			Symbol:    v.Symbol,
			PE:        FormatPE(v.PE),
			MarketCap: FormatMarketCap(v.MarketCap),
			Note:      ValuationNote(v.PE),
		})
	}
	for _, l := range d.VolumeLeaders {
		data.VolumeLeaders = append(data.VolumeLeaders, volumeRow{
			Symbol: l.Symbol,
			Volume: FormatVolume(l.Volume),
			Price:  formatPrice(l.Price),
		})
	}

	var b strings.Builder
	if err := emailTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render digest: %w", err)
	}
	return b.String(), nil
}

func newMoverRow(m Mover) moverRow {
	color := positiveColor
	if m.ChangePercent < 0 {
		color = negativeColor
	}
	return moverRow{
		Symbol: m.Symbol,
		Price:  formatPrice(m.Price),
		Change: formatChangePercent(m.ChangePercent),
		Color:  color,
	}
}

// marketSnapshotRows are index placeholders carried from the original
// layout. TODO: wire to a real index feed once one is available.
func marketSnapshotRows() []snapshotRow {
	return []snapshotRow{
		{Label: "S&P 500", Change: "+0.85%", Color: positiveColor},
		{Label: "Dow Jones", Change: "-0.23%", Color: negativeColor},
		{Label: "NASDAQ", Change: "+1.42%", Color: positiveColor},
		{Label: "VIX (Fear Index)", Change: "12.45", Color: positiveColor},
	}
}
