package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"veracity/internal/model"
)

// Flags shared by the verify, batch, and serve commands.
var (
	llmModel       string
	llmBaseURL     string
	weaviateURL    string
	weaviateClass  string
	searchEndpoint string
	noWebSearch    bool
	noVectorSearch bool
	noCritique     bool
	forceStrategy  string
	noCache        bool
	enrichSnippets bool
	httpTimeout    time.Duration
	httpProxy      string
	httpsProxy     string
)

func registerPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	cmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "custom LLM endpoint (optional)")
	cmd.Flags().StringVar(&weaviateURL, "weaviate-url", "http://localhost:8080", "Weaviate knowledge base URL (empty to disable)")
	cmd.Flags().StringVar(&weaviateClass, "weaviate-class", "FactRecord", "Weaviate class holding verified facts")
	cmd.Flags().StringVar(&searchEndpoint, "search-endpoint", "", "web search API endpoint (empty to disable web search)")
	cmd.Flags().BoolVar(&noWebSearch, "no-web-search", false, "disable web evidence sources")
	cmd.Flags().BoolVar(&noVectorSearch, "no-vector-search", false, "disable the knowledge base source")
	cmd.Flags().BoolVar(&noCritique, "no-critique", false, "skip the self-critique pass")
	cmd.Flags().StringVar(&forceStrategy, "strategy", "", "force a strategy (simple, hybrid, agentic) instead of routing")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable search-result caching")
	cmd.Flags().BoolVar(&enrichSnippets, "enrich-snippets", false, "fetch result pages to backfill empty snippets (robots-aware)")
	cmd.Flags().DurationVar(&httpTimeout, "http-timeout", 30*time.Second, "outbound HTTP timeout")
	cmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	cmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

// buildConfig assembles the config from defaults, environment, and flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	cfg.HTTP.Timeout = httpTimeout
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy

	cfg.LLM.Model = llmModel
	cfg.LLM.BaseURL = llmBaseURL
	cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	cfg.Weaviate.URL = weaviateURL
	cfg.Weaviate.ClassName = weaviateClass
	cfg.Weaviate.APIKey = os.Getenv("WEAVIATE_API_KEY")

	cfg.WebSearch.Endpoint = searchEndpoint
	cfg.WebSearch.APIKey = os.Getenv("SEARCH_API_KEY")
	cfg.WebSearch.EnrichSnippets = enrichSnippets

	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose

	return cfg, nil
}

// buildRequest maps the shared toggles onto a base verify request.
func buildRequest(claim, claimContext string) model.VerifyRequest {
	req := model.VerifyRequest{
		Claim:         claim,
		Context:       claimContext,
		ForceStrategy: forceStrategy,
	}
	if noWebSearch {
		f := false
		req.UseWebSearch = &f
	}
	if noVectorSearch {
		f := false
		req.UseVectorSearch = &f
	}
	if noCritique {
		f := false
		req.EnableCritique = &f
	}
	return req
}
