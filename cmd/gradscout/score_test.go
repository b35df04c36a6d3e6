package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/gradscout"
	main "github.com/fwojciec/gradscout/cmd/gradscout"
	"github.com/fwojciec/gradscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoreDeps(result *gradscout.FetchResult, doc *gradscout.Document) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Config: main.DefaultConfig(),
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) *gradscout.FetchResult {
				return result
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(_, _ string) *gradscout.Document {
				return doc
			},
		},
		Detector: gradscout.NewDetector(&mock.DateParser{
			ParseDateFn: func(_ string) (time.Time, error) {
				return time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), nil
			},
		}),
		Domains: &mock.DomainResolver{
			DomainFn: func(_ string) string { return "example.edu" },
		},
	}
	return deps, stdout, stderr
}

func TestScoreCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints signals and score", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := scoreDeps(
			&gradscout.FetchResult{HTML: "<html></html>", ResolvedURL: "https://www.example.edu/msc", StatusCode: 200},
			&gradscout.Document{Title: "MSc Funded Program", Text: fundedText + filler, Method: gradscout.ExtractReadability},
		)

		err := (&main.ScoreCmd{URL: "https://example.edu/msc"}).Run(deps)

		require.NoError(t, err)
		assert.Empty(t, stderr.String())

		output := stdout.String()
		assert.Contains(t, output, "https://www.example.edu/msc")
		assert.Contains(t, output, "example.edu")
		assert.Contains(t, output, "MSc Funded Program")
		assert.Contains(t, output, "readability")
		assert.Contains(t, output, "scholarship; stipend; tuition waiver; funded; living allowance")
		assert.Contains(t, output, "no gre")
		assert.Contains(t, output, "ielts waiver")
		assert.Contains(t, output, "2026-03-15")
		assert.Contains(t, output, "Score:     3.70")
		assert.NotContains(t, output, "Note:")
	})

	t.Run("notes text too short to be scored in runs", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := scoreDeps(
			&gradscout.FetchResult{HTML: "<html></html>", ResolvedURL: "https://example.edu/msc", StatusCode: 200},
			&gradscout.Document{Title: "MSc", Text: "scholarship", Method: gradscout.ExtractFallback},
		)

		err := (&main.ScoreCmd{URL: "https://example.edu/msc"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Score:     0.50")
		assert.Contains(t, stdout.String(), "shorter than 500 characters")
	})

	t.Run("notes score below min_score", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := scoreDeps(
			&gradscout.FetchResult{HTML: "<html></html>", ResolvedURL: "https://example.edu/msc", StatusCode: 200},
			&gradscout.Document{Title: "MSc", Text: "A scholarship. " + filler, Method: gradscout.ExtractReadability},
		)

		err := (&main.ScoreCmd{URL: "https://example.edu/msc"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "below min_score 2.50")
		assert.Contains(t, stdout.String(), "No GRE:    -")
	})

	t.Run("returns error when fetch fails", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := scoreDeps(
			&gradscout.FetchResult{ResolvedURL: "https://example.edu/msc", StatusCode: 404, Err: errors.New("HTTP 404 for https://example.edu/msc")},
			nil,
		)

		err := (&main.ScoreCmd{URL: "https://example.edu/msc"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, gradscout.EINVALID, gradscout.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: fetch failed: HTTP 404")
		assert.Empty(t, stdout.String())
	})
}
