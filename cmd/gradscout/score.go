package main

import (
	"fmt"

	"github.com/fwojciec/gradscout"
)

// Run executes the score command.
func (c *ScoreCmd) Run(deps *Dependencies) error {
	result := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if !result.OK() {
		err := gradscout.Errorf(gradscout.EINVALID, "fetch failed for %s", c.URL)
		if result != nil && result.Err != nil {
			err = gradscout.Errorf(gradscout.EINVALID, "fetch failed: %v", result.Err)
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", gradscout.ErrorMessage(err))
		return err
	}

	doc := deps.Extractor.Extract(result.HTML, result.ResolvedURL)
	if doc == nil {
		doc = &gradscout.Document{Method: gradscout.ExtractNone}
	}
	signals := deps.Detector.Detect(doc.Text)

	w := deps.Stdout
	fmt.Fprintf(w, "URL:       %s\n", result.ResolvedURL)
	fmt.Fprintf(w, "Domain:    %s\n", deps.Domains.Domain(result.ResolvedURL))
	fmt.Fprintf(w, "Title:     %s\n", doc.Title)
	fmt.Fprintf(w, "Method:    %s\n", doc.Method)
	fmt.Fprintf(w, "Length:    %d\n", doc.Len())
	fmt.Fprintf(w, "Funding:   %s\n", listOrNone(signals.Funding))
	fmt.Fprintf(w, "No GRE:    %s\n", listOrNone(signals.NoGRE))
	fmt.Fprintf(w, "No IELTS:  %s\n", listOrNone(signals.NoIELTS))
	fmt.Fprintf(w, "Deadlines: %s\n", listOrNone(signals.Deadlines))

	score := gradscout.DefaultWeights.Score(signals)
	fmt.Fprintf(w, "Score:     %s\n", gradscout.FormatScore(score))

	if !doc.Scoreable() {
		fmt.Fprintf(w, "Note: text is shorter than %d characters; runs skip this page.\n", gradscout.MinTextLength)
	} else if score < deps.Config.Filters.MinScore {
		fmt.Fprintf(w, "Note: score is below min_score %s.\n", gradscout.FormatScore(deps.Config.Filters.MinScore))
	}
	return nil
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return gradscout.JoinSignals(values)
}
