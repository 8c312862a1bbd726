package quotes

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const defaultStreamURL = "wss://ws.finnhub.io"

// Stream subscribes to Finnhub's trade WebSocket and keeps the quote cache
// warm: each trade overwrites the cached snapshot for its symbol with an
// updated price, so aggregation calls inside the TTL window see live data
// without hitting the REST API.
type Stream struct {
	apiKey  string
	url     string
	symbols []string
	cache   Cache
	conn    *websocket.Conn
}

// NewStream creates a stream for the given symbols, writing into cache.
func NewStream(apiKey string, symbols []string, cache Cache) *Stream {
	return &Stream{
		apiKey:  apiKey,
		url:     defaultStreamURL,
		symbols: symbols,
		cache:   cache,
	}
}

// Start connects, subscribes to the configured symbols, and starts the
// background read loop.
func (s *Stream) Start() error {
	addr := s.url + "?token=" + s.apiKey
	slog.Info("Connecting to quote stream", "symbols", len(s.symbols))

	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return err
	}
	s.conn = conn

	for _, sym := range s.symbols {
		msg := map[string]interface{}{
			"type":   "subscribe",
			"symbol": sym,
		}
		if err := s.conn.WriteJSON(msg); err != nil {
			return err
		}
		slog.Debug("Subscribed to symbol", "symbol", sym)
	}

	go s.readLoop()
	return nil
}

// readLoop applies incoming trades to the cache until the connection drops.
func (s *Stream) readLoop() {
	defer s.conn.Close()
	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			slog.Warn("Quote stream read failed", "error", err)
			return
		}

		var frame finnhubTradeFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			slog.Warn("Quote stream frame parse failed", "error", err)
			continue
		}
		if frame.Type != "trade" {
			continue
		}

		for _, trade := range frame.Data {
			s.applyTrade(trade.Symbol, trade.Price)
		}
	}
}

// applyTrade folds a live price into the cached snapshot. The change fields
// are recomputed from the previous close implied by the cached record; a
// symbol with no cached snapshot is skipped, the next REST fetch fills it.
func (s *Stream) applyTrade(symbol string, price float64) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	snap, err := s.cache.Get(ctx, symbol)
	if err != nil || snap == nil || snap.Absent {
		return
	}

	prevClose := snap.Price - snap.Change
	snap.Price = price
	snap.Change = price - prevClose
	if prevClose != 0 {
		snap.ChangePercent = snap.Change / prevClose * 100
	}

	if err := s.cache.Set(ctx, *snap); err != nil {
		slog.Debug("Failed to refresh cached quote", "symbol", symbol, "error", err)
	}
}

// Close sends a close message to the WebSocket connection.
func (s *Stream) Close() error {
	if s.conn != nil {
		return s.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}
	return nil
}
