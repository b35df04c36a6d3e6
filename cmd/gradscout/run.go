package main

import (
	"fmt"

	"github.com/fwojciec/gradscout"
	"github.com/fwojciec/gradscout/crawl"
)

// progressURLWidth is the URL width used in progress lines.
const progressURLWidth = 70

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	ctx := deps.Ctx
	started := deps.now()

	minScore := deps.Config.Filters.MinScore
	if c.MinScore >= 0 {
		minScore = c.MinScore
	}

	queries := deps.Queries.Expand()
	fmt.Fprintf(deps.Stdout, "Total query variants: %d\n", len(queries))

	progress := func(e crawl.ProgressEvent) {
		if deps.Metrics != nil {
			deps.Metrics.Observe(e)
		}
		if line := crawl.FormatOutcome(e, progressURLWidth); line != "" {
			fmt.Fprintln(deps.Stdout, line)
		}
	}

	hits, err := deps.Collector.Collect(ctx, queries, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gradscout.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Fetched %d result URLs before filtering.\n", len(hits))

	candidates, result, err := deps.Scanner.Scan(ctx, hits, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gradscout.ErrorMessage(err))
		return err
	}

	rows := gradscout.Aggregate(candidates, minScore)
	if len(rows) == 0 {
		fmt.Fprintln(deps.Stdout, "No rows matched filters. Consider lowering min_score in config.yaml.")
	}

	if err := deps.CSV.WriteRows(ctx, rows); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gradscout.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s with %d rows.\n", deps.CSVPath, len(rows))

	if !c.NoTable && deps.Table != nil && len(rows) > 0 {
		if err := deps.Table.WriteRows(ctx, rows); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", gradscout.ErrorMessage(err))
			return err
		}
	}

	finished := deps.now()
	if deps.Runs != nil {
		run := &gradscout.Run{
			StartedAt:  started,
			FinishedAt: finished,
			Queries:    len(queries),
			Hits:       len(hits),
			Scored:     result.Scored,
		}
		if err := deps.Runs.CreateRun(ctx, run, rows); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", gradscout.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Recorded run %s.\n", run.ID)
	}

	c.notify(deps, len(rows))

	if deps.Metrics != nil {
		deps.Metrics.Rows.Set(float64(len(rows)))
		deps.Metrics.LastRunSeconds.Set(float64(finished.Unix()))
		if c.Metrics != "" {
			if err := deps.Metrics.WriteTextfile(c.Metrics); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", gradscout.ErrorMessage(err))
				return err
			}
		}
	}

	return nil
}

// notify e-mails the CSV. Delivery failures are reported but do not fail
// the run.
func (c *RunCmd) notify(deps *Dependencies, rows int) {
	if c.NoEmail {
		return
	}
	if deps.Notifier == nil {
		fmt.Fprintln(deps.Stdout, "EMAIL_USER/EMAIL_PASS/TO_EMAIL not set; skipping email.")
		return
	}

	digest := &gradscout.Digest{
		Subject:        deps.Config.Email.Subject,
		FromName:       deps.Config.Email.FromName,
		Rows:           rows,
		AttachmentPath: deps.CSVPath,
	}
	if err := deps.Notifier.Notify(deps.Ctx, digest); err != nil {
		fmt.Fprintf(deps.Stderr, "error: email failed: %s\n", gradscout.ErrorMessage(err))
		return
	}
	fmt.Fprintln(deps.Stdout, "Email sent.")
}
