package duckduckgo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/gradscout"
	"github.com/fwojciec/gradscout/duckduckgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<div class="result results_links result--ad">
  <a class="result__a" href="https://ads.example.com/click">Sponsored</a>
</div>
<div class="result results_links">
  <h2><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.example.edu%2Fmsc%3Fref%3D1&amp;rut=abc">Fully <b>Funded</b> MSc</a></h2>
  <a class="result__snippet" href="#">Tuition waiver &amp; <b>stipend</b>   for
  international students.</a>
</div>
<div class="result results_links">
  <a class="result__a" href="https://grad.uni.de/phd">PhD Positions</a>
  <div class="result__snippet">No GRE required.</div>
</div>
<div class="result results_links">
  <a class="result__a" href="/relative/only">Broken</a>
</div>
<div class="result results_links">
  <a class="result__a" href="https://third.ac.uk/">Third</a>
</div>
</body></html>`

func newServer(t *testing.T, gotQuery chan<- string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotQuery != nil {
			gotQuery <- r.URL.Query().Get("q")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(resultsPage))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSearcher_Search(t *testing.T) {
	t.Parallel()

	t.Run("parses organic results in order", func(t *testing.T) {
		t.Parallel()

		q := make(chan string, 1)
		server := newServer(t, q)
		s := duckduckgo.NewSearcher(duckduckgo.WithBaseURL(server.URL + "/html/"))

		hits, err := s.Search(context.Background(), "funded msc site:*.edu", 10)

		require.NoError(t, err)
		assert.Equal(t, "funded msc site:*.edu", <-q)
		require.Len(t, hits, 3)
		assert.Equal(t, gradscout.Hit{
			URL:     "https://www.example.edu/msc?ref=1",
			Title:   "Fully Funded MSc",
			Snippet: "Tuition waiver & stipend for international students.",
		}, hits[0])
		assert.Equal(t, "https://grad.uni.de/phd", hits[1].URL)
		assert.Equal(t, "No GRE required.", hits[1].Snippet)
		assert.Equal(t, "https://third.ac.uk/", hits[2].URL)
		assert.Empty(t, hits[2].Snippet)
	})

	t.Run("respects max results", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, nil)
		s := duckduckgo.NewSearcher(duckduckgo.WithBaseURL(server.URL))

		hits, err := s.Search(context.Background(), "q", 1)

		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "https://www.example.edu/msc?ref=1", hits[0].URL)
	})

	t.Run("returns error for non-200 status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		s := duckduckgo.NewSearcher(duckduckgo.WithBaseURL(server.URL))

		_, err := s.Search(context.Background(), "q", 10)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("rejects empty query", func(t *testing.T) {
		t.Parallel()

		s := duckduckgo.NewSearcher()

		_, err := s.Search(context.Background(), "  ", 10)

		assert.Equal(t, gradscout.EINVALID, gradscout.ErrorCode(err))
	})

	t.Run("returns no hits for page without results", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html><body><div class=\"no-results\">No results.</div></body></html>"))
		}))
		defer server.Close()

		s := duckduckgo.NewSearcher(duckduckgo.WithBaseURL(server.URL))

		hits, err := s.Search(context.Background(), "q", 10)

		require.NoError(t, err)
		assert.Empty(t, hits)
	})
}

func TestSearcher_Host(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "html.duckduckgo.com", duckduckgo.NewSearcher().Host())
	assert.Equal(t, "127.0.0.1:8080", duckduckgo.NewSearcher(duckduckgo.WithBaseURL("http://127.0.0.1:8080/html/")).Host())
}
