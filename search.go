package gradscout

import "context"

// Hit is a single search result. Its URL is the candidate page the
// pipeline fetches and scores.
type Hit struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Searcher queries a web search backend.
type Searcher interface {
	// Search returns at most max hits for the query.
	// Implementations return hits in the backend's ranking order.
	Search(ctx context.Context, query string, max int) ([]Hit, error)
}

// QuerySet holds the search query templates loaded from queries.json.
type QuerySet struct {
	BaseQueries []string `json:"base_queries"`
	CountryBias []string `json:"country_bias"`
	SiteBias    []string `json:"site_bias"`
}

// Expand returns every query variant in order: each base query, followed by
// the base query suffixed with each country bias, followed by the base query
// restricted to each site suffix. Duplicate variants are removed, keeping the
// first occurrence.
func (q *QuerySet) Expand() []string {
	if q == nil {
		return nil
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, base := range q.BaseQueries {
		add(base)
		for _, country := range q.CountryBias {
			add(base + " " + country)
		}
		for _, site := range q.SiteBias {
			add(base + " site:*" + site)
		}
	}
	return out
}
