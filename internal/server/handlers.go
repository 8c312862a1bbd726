package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/signalist/signalist/internal/aggregator"
	"github.com/signalist/signalist/internal/digest"
	"github.com/signalist/signalist/internal/quotes"
	"github.com/signalist/signalist/internal/watchlist"
)

// WatchlistStore is the store surface the handlers need.
type WatchlistStore interface {
	Add(ctx context.Context, ident watchlist.Identity, symbol, company string) error
	Remove(ctx context.Context, userID, symbol string) error
	List(ctx context.Context, userID string) ([]watchlist.Entry, error)
	Contains(ctx context.Context, userID, symbol string) (bool, error)
}

// ViewBuilder produces aggregated views.
type ViewBuilder interface {
	BuildView(ctx context.Context, userID string, opts aggregator.Options) (*aggregator.View, error)
}

// QuoteSource is the provider surface for the digest preview.
type QuoteSource interface {
	FetchQuotes(ctx context.Context, symbols []string) map[string]quotes.Snapshot
	FetchMarketNews(ctx context.Context, limit int) ([]quotes.Article, error)
}

// Handler holds the dependencies for HTTP handlers.
type Handler struct {
	store   WatchlistStore
	views   ViewBuilder
	quotes  QuoteSource
	baseURL string
}

// NewHandler creates a new Handler with the given dependencies.
func NewHandler(store WatchlistStore, views ViewBuilder, quotes QuoteSource, baseURL string) *Handler {
	return &Handler{
		store:   store,
		views:   views,
		quotes:  quotes,
		baseURL: baseURL,
	}
}

// Register wires the API routes onto the router.
func (h *Handler) Register(router *gin.Engine) {
	router.GET("/health", h.HealthCheck)

	api := router.Group("/api", Identity())
	api.GET("/watchlist", h.GetWatchlist)
	api.POST("/watchlist", h.AddToWatchlist)
	api.DELETE("/watchlist/:symbol", h.RemoveFromWatchlist)
	api.GET("/watchlist/contains/:symbol", h.ContainsSymbol)
	api.GET("/watchlist/view", h.GetView)
	api.GET("/watchlist/export", h.ExportCSV)
	api.GET("/digest/preview", h.DigestPreview)
}

// AddRequest is the request body for adding a watchlist entry.
type AddRequest struct {
	Symbol  string `json:"symbol" binding:"required"`
	Company string `json:"company"`
}

// GetWatchlist handles GET /api/watchlist
// Returns the caller's entries, newest-added first.
func (h *Handler) GetWatchlist(c *gin.Context) {
	ident := identityFrom(c)

	entries, err := h.store.List(c.Request.Context(), ident.UserID)
	if err != nil {
		slog.Error("Watchlist lookup failed", "user_id", ident.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// AddToWatchlist handles POST /api/watchlist
func (h *Handler) AddToWatchlist(c *gin.Context) {
	ident := identityFrom(c)

	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Invalid add payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.store.Add(c.Request.Context(), ident, req.Symbol, req.Company)
	switch {
	case errors.Is(err, watchlist.ErrInvalidSymbol):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid symbol", "symbol": req.Symbol})
	case errors.Is(err, watchlist.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "symbol already on watchlist", "symbol": req.Symbol})
	case errors.Is(err, watchlist.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case err != nil:
		slog.Error("Failed to add watchlist entry", "user_id", ident.UserID, "symbol", req.Symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusCreated, gin.H{"success": true})
	}
}

// RemoveFromWatchlist handles DELETE /api/watchlist/:symbol
// Removing a symbol that is not on the list still succeeds.
func (h *Handler) RemoveFromWatchlist(c *gin.Context) {
	ident := identityFrom(c)
	symbol := c.Param("symbol")

	err := h.store.Remove(c.Request.Context(), ident.UserID, symbol)
	switch {
	case errors.Is(err, watchlist.ErrInvalidSymbol):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid symbol", "symbol": symbol})
	case err != nil:
		slog.Error("Failed to remove watchlist entry", "user_id", ident.UserID, "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// ContainsSymbol handles GET /api/watchlist/contains/:symbol
// Used by the UI to pre-populate watch-button state.
func (h *Handler) ContainsSymbol(c *gin.Context) {
	ident := identityFrom(c)
	symbol := c.Param("symbol")

	watched, err := h.store.Contains(c.Request.Context(), ident.UserID, symbol)
	switch {
	case errors.Is(err, watchlist.ErrInvalidSymbol):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid symbol", "symbol": symbol})
	case err != nil:
		slog.Error("Watchlist check failed", "user_id", ident.UserID, "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"symbol": symbol, "watched": watched})
	}
}

// GetView handles GET /api/watchlist/view
// Query params: sort (symbol|price|change|added), order (asc|desc),
// gainers, losers.
func (h *Handler) GetView(c *gin.Context) {
	ident := identityFrom(c)
	opts := parseViewOptions(c)

	view, err := h.views.BuildView(c.Request.Context(), ident.UserID, opts)
	if err != nil {
		slog.Error("Failed to build view", "user_id", ident.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

// ExportCSV handles GET /api/watchlist/export
// Streams the current view as a CSV attachment, same filters as GetView.
func (h *Handler) ExportCSV(c *gin.Context) {
	ident := identityFrom(c)
	opts := parseViewOptions(c)

	view, err := h.views.BuildView(c.Request.Context(), ident.UserID, opts)
	if err != nil {
		slog.Error("Failed to build view for export", "user_id", ident.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("watchlist-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := aggregator.WriteCSV(c.Writer, view); err != nil {
		slog.Error("CSV export failed", "user_id", ident.UserID, "error", err)
	}
}

// DigestPreview handles GET /api/digest/preview
// Renders the caller's briefing exactly as the scheduled job would.
func (h *Handler) DigestPreview(c *gin.Context) {
	ident := identityFrom(c)
	ctx := c.Request.Context()

	entries, err := h.store.List(ctx, ident.UserID)
	if err != nil {
		slog.Error("Watchlist lookup failed", "user_id", ident.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	tracked := make([]string, 0, len(entries))
	for _, e := range entries {
		tracked = append(tracked, e.Symbol)
	}

	symbols := digest.SymbolsFor(tracked)
	snaps := h.quotes.FetchQuotes(ctx, symbols)

	newsHTML := ""
	if articles, err := h.quotes.FetchMarketNews(ctx, 6); err == nil {
		newsHTML = quotes.RenderNewsHTML(articles)
	} else {
		slog.Warn("Market news unavailable for preview", "error", err)
	}

	d := digest.Compose(symbols, snaps)
	html, err := digest.Render(d, time.Now().Format("January 2, 2006"), newsHTML, h.baseURL)
	if err != nil {
		slog.Error("Digest render failed", "user_id", ident.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "api",
	})
}

func parseViewOptions(c *gin.Context) aggregator.Options {
	opts := aggregator.DefaultOptions()

	switch c.Query("sort") {
	case "price":
		opts.SortBy = aggregator.SortPrice
	case "change":
		opts.SortBy = aggregator.SortChange
	case "added":
		opts.SortBy = aggregator.SortAdded
	}
	if c.Query("order") == "desc" {
		opts.Order = aggregator.OrderDesc
	}
	opts.GainersOnly = c.Query("gainers") == "true" || c.Query("gainers") == "1"
	opts.LosersOnly = c.Query("losers") == "true" || c.Query("losers") == "1"
	return opts
}
