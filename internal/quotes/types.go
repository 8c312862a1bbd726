package quotes

// Snapshot is a point-in-time quote for one symbol. It is a value object
// built fresh for each aggregation batch and never persisted.
//
// Absent means the fetch for this symbol failed entirely; the numeric fields
// are meaningless in that case. MarketCap and PE can legitimately be zero for
// instruments without fundamentals (ETFs), which is a present record with
// absent fields, not a failed fetch.
type Snapshot struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
	MarketCap     float64 `json:"market_cap"`
	PE            float64 `json:"pe"`
	Absent        bool    `json:"absent"`
}

// finnhubQuote matches the JSON structure of Finnhub's /quote endpoint.
type finnhubQuote struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PrevClose     float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

// finnhubMetrics matches the /stock/metric endpoint. Market cap and average
// volume come back denominated in millions.
type finnhubMetrics struct {
	Metric struct {
		PETTM          float64 `json:"peTTM"`
		MarketCap      float64 `json:"marketCapitalization"`
		AvgVolume10Day float64 `json:"10DayAverageTradingVolume"`
	} `json:"metric"`
}

// Article is one market-news item from Finnhub's /news endpoint.
type Article struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Source   string `json:"source"`
	URL      string `json:"url"`
	Datetime int64  `json:"datetime"`
}

// finnhubTradeFrame matches the JSON structure from Finnhub's WebSocket.
type finnhubTradeFrame struct {
	Type string `json:"type"`
	Data []struct {
		Symbol    string  `json:"s"`
		Price     float64 `json:"p"`
		Timestamp int64   `json:"t"`
		Volume    float64 `json:"v"`
	} `json:"data"`
}
