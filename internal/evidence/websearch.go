package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"veracity/internal/model"
	"veracity/internal/util"
	"veracity/internal/worker"
)

const defaultWebSearchLimit = 5

// WebVariant selects the recency window a web source searches.
type WebVariant string

const (
	WebVariantGeneral    WebVariant = ""
	WebVariantCurrent    WebVariant = "current"
	WebVariantHistorical WebVariant = "historical"
)

// WebSource queries an external web/news search API. The current and
// historical variants share the client and differ only in the freshness
// window and the source kind stamped onto results.
type WebSource struct {
	endpoint   string
	apiKey     string
	variant    WebVariant
	httpClient *http.Client
	userAgent  string
	limiter    *worker.Limiter
	fetcher    *PageFetcher // optional snippet enrichment
}

// NewWebSource creates a web search source.
func NewWebSource(cfg model.WebSearchConfig, httpCfg model.HTTPConfig, variant WebVariant, limiter *worker.Limiter, fetcher *PageFetcher) *WebSource {
	return &WebSource{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		variant:  variant,
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
		},
		userAgent: httpCfg.UserAgent,
		limiter:   limiter,
		fetcher:   fetcher,
	}
}

// Kind identifies the variant's records.
func (s *WebSource) Kind() model.SourceKind {
	switch s.variant {
	case WebVariantCurrent:
		return model.SourceKindWebCurrent
	case WebVariantHistorical:
		return model.SourceKindWebHistorical
	default:
		return model.SourceKindWeb
	}
}

// searchHit is the wire shape of one search API result.
type searchHit struct {
	Title   string   `json:"title"`
	URL     string   `json:"url"`
	Snippet string   `json:"snippet"`
	Score   *float64 `json:"score,omitempty"`
}

type searchResponse struct {
	Results []searchHit `json:"results"`
}

// Search queries the search API and maps hits to evidence records.
func (s *WebSource) Search(ctx context.Context, query string, params SearchParams) ([]model.EvidenceRecord, error) {
	if s.endpoint == "" {
		return nil, fmt.Errorf("web search endpoint not configured")
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultWebSearchLimit
	}

	// Entities sharpen the query for multi-entity claims.
	fullQuery := query
	if len(params.Entities) > 0 {
		fullQuery = query + " " + strings.Join(params.Entities, " ")
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, s.endpoint); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	reqURL, err := s.buildURL(fullQuery, limit)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-API-Key", s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("web search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("web search: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2_000_000))
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	kind := s.Kind()
	records := make([]model.EvidenceRecord, 0, len(parsed.Results))
	for _, hit := range parsed.Results {
		if hit.URL == "" {
			continue
		}
		rec := model.EvidenceRecord{
			Title:          hit.Title,
			URL:            hit.URL,
			Snippet:        hit.Snippet,
			Credibility:    ClassifyCredibility(hit.URL),
			SourceKind:     kind,
			RelevanceScore: hit.Score,
		}
		if rec.Snippet == "" && s.fetcher != nil {
			rec.Snippet = s.fetcher.SnippetFor(ctx, hit.URL)
		}
		records = append(records, rec)
	}

	slog.Debug("web search", "variant", string(s.variant), "query", query, "results", len(records))
	return records, nil
}

func (s *WebSource) buildURL(query string, limit int) (string, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("count", strconv.Itoa(limit))
	if s.variant != WebVariantGeneral {
		q.Set("freshness", string(s.variant))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
