package evidence

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	wmodels "github.com/weaviate/weaviate/entities/models"

	"veracity/internal/model"
)

const defaultKnowledgeBaseLimit = 5

// KnowledgeBaseSource searches previously verified facts stored in
// Weaviate. Records carry the verdict they were stored with, which
// downstream surfaces as RelatedVerdict.
type KnowledgeBaseSource struct {
	client    *weaviate.Client
	className string
}

// NewKnowledgeBaseSource creates a knowledge-base source from config.
func NewKnowledgeBaseSource(cfg model.WeaviateConfig) (*KnowledgeBaseSource, error) {
	scheme := "http"
	host := cfg.URL
	if strings.HasPrefix(host, "https://") {
		scheme = "https"
		host = strings.TrimPrefix(host, "https://")
	} else if strings.HasPrefix(host, "http://") {
		host = strings.TrimPrefix(host, "http://")
	}

	wcfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if cfg.APIKey != "" {
		wcfg.AuthConfig = auth.ApiKey{Value: cfg.APIKey}
	}

	client, err := weaviate.NewClient(wcfg)
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}

	className := cfg.ClassName
	if className == "" {
		className = "FactRecord"
	}

	return &KnowledgeBaseSource{
		client:    client,
		className: className,
	}, nil
}

// Kind identifies knowledge-base records.
func (s *KnowledgeBaseSource) Kind() model.SourceKind {
	return model.SourceKindVector
}

// Search performs a semantic near-text query over the fact class.
func (s *KnowledgeBaseSource) Search(ctx context.Context, query string, params SearchParams) ([]model.EvidenceRecord, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultKnowledgeBaseLimit
	}

	nearText := s.client.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{query})

	fields := []graphql.Field{
		{Name: "claim"},
		{Name: "verdict"},
		{Name: "sourceTitle"},
		{Name: "sourceUrl"},
		{Name: "snippet"},
		{Name: "credibility"},
		{Name: "_additional { certainty }"},
	}

	result, err := s.client.GraphQL().Get().
		WithClassName(s.className).
		WithFields(fields...).
		WithNearText(nearText).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("knowledge base search: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("knowledge base search: %s", result.Errors[0].Message)
	}

	records := s.parseResults(result)
	slog.Debug("knowledge base search", "query", query, "results", len(records))
	return records, nil
}

func (s *KnowledgeBaseSource) parseResults(result *wmodels.GraphQLResponse) []model.EvidenceRecord {
	data, ok := result.Data["Get"].(map[string]interface{})
	if !ok {
		return nil
	}
	objects, ok := data[s.className].([]interface{})
	if !ok {
		return nil
	}

	records := make([]model.EvidenceRecord, 0, len(objects))
	for _, obj := range objects {
		m, ok := obj.(map[string]interface{})
		if !ok {
			continue
		}

		rec := model.EvidenceRecord{
			Title:          getString(m, "sourceTitle"),
			URL:            getString(m, "sourceUrl"),
			Snippet:        getString(m, "snippet"),
			Credibility:    model.ParseCredibility(getString(m, "credibility")),
			SourceKind:     model.SourceKindVector,
			RelatedVerdict: getString(m, "verdict"),
		}
		if rec.Title == "" {
			rec.Title = getString(m, "claim")
		}
		if rec.URL == "" {
			rec.URL = model.KnowledgeBaseURL
		}

		if additional, ok := m["_additional"].(map[string]interface{}); ok {
			if certainty, ok := additional["certainty"].(float64); ok {
				score := certainty
				rec.RelevanceScore = &score
			}
		}

		records = append(records, rec)
	}
	return records
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
