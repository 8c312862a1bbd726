package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
)

// FetchMarketNews returns up to limit general-market headlines.
func (c *Client) FetchMarketNews(ctx context.Context, limit int) ([]Article, error) {
	addr := fmt.Sprintf("%s/news?category=general&token=%s", c.baseURL, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch market news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news endpoint returned status %d", resp.StatusCode)
	}

	var articles []Article
	if err := json.NewDecoder(resp.Body).Decode(&articles); err != nil {
		return nil, fmt.Errorf("failed to decode market news: %w", err)
	}
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles, nil
}

// RenderNewsHTML formats articles as the inline-styled fragment embedded in
// the digest's Top Stories section.
func RenderNewsHTML(articles []Article) string {
	var b strings.Builder
	for i, a := range articles {
		border := "border-bottom:1px solid #e5e7eb; margin-bottom:12px; padding-bottom:12px;"
		if i == len(articles)-1 {
			border = ""
		}
		fmt.Fprintf(&b,
			`<div style="%s"><a href="%s" style="color:#111827; font-weight:600; text-decoration:none;">%s</a>`+
				`<div style="margin-top:4px; font-size:13px; color:#6b7280;">%s — %s</div></div>`,
			border,
			html.EscapeString(a.URL),
			html.EscapeString(a.Headline),
			html.EscapeString(a.Source),
			html.EscapeString(a.Summary),
		)
	}
	return b.String()
}
