package evidence

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"veracity/internal/model"
	"veracity/internal/util"
)

// snippetRunes caps the extracted text window used as a fallback snippet.
const snippetRunes = 300

// PageFetcher fetches result pages to backfill empty snippets. It honors
// robots.txt and shares the rate-limiting discipline of the web source
// through the HTTP client's timeout.
type PageFetcher struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	userAgent  string
	maxBytes   int64
}

// NewPageFetcher creates a page fetcher from HTTP config.
func NewPageFetcher(cfg model.HTTPConfig) *PageFetcher {
	return &PageFetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:    util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
	}
}

// SnippetFor fetches the page and extracts a visible-text window.
// Failures degrade to an empty snippet, never an error: snippet
// enrichment is best effort.
func (f *PageFetcher) SnippetFor(ctx context.Context, rawURL string) string {
	if !f.robots.IsAllowed(ctx, rawURL) {
		slog.Debug("snippet fetch disallowed by robots.txt", "url", rawURL)
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return ""
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return ""
	}

	text := visibleText(doc)
	runes := []rune(text)
	if len(runes) > snippetRunes {
		return string(runes[:snippetRunes])
	}
	return text
}

// visibleText extracts text nodes from HTML, skipping scripts and styles.
func visibleText(n *html.Node) string {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "head":
			return ""
		}
	}

	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		part := visibleText(child)
		if part == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(part)
		if sb.Len() > snippetRunes*4 {
			break
		}
	}
	return sb.String()
}
