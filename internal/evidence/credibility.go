package evidence

import (
	"net/url"
	"strings"

	"veracity/internal/model"
)

// highCredibilityDomains are institutional sources: official bodies,
// academic publishers, and wire services.
var highCredibilityDomains = []string{
	"who.int", "un.org", "europa.eu", "nature.com", "science.org",
	"nejm.org", "thelancet.com", "reuters.com", "apnews.com",
	"britannica.com",
}

// mediumCredibilityDomains are established encyclopedias and major
// national outlets.
var mediumCredibilityDomains = []string{
	"wikipedia.org", "bbc.com", "bbc.co.uk", "nytimes.com",
	"theguardian.com", "washingtonpost.com", "economist.com",
	"npr.org", "aljazeera.com", "ft.com",
}

// ClassifyCredibility maps a source URL to a coarse trust tier. Hosts
// with no signal default to low rather than medium: an unrecognized web
// domain has earned less trust than a source that arrived with an
// explicit medium rating.
func ClassifyCredibility(rawURL string) model.CredibilityTier {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return model.CredibilityLow
	}

	host := parsed.Host
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}
	host = strings.TrimPrefix(host, "www.")

	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") ||
		strings.HasSuffix(host, ".ac.uk") || strings.HasSuffix(host, ".gov.uk") {
		return model.CredibilityHigh
	}

	for _, domain := range highCredibilityDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return model.CredibilityHigh
		}
	}

	for _, domain := range mediumCredibilityDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return model.CredibilityMedium
		}
	}

	return model.CredibilityLow
}
