package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/gradscout"
	"github.com/fwojciec/gradscout/crawl"
	"github.com/fwojciec/gradscout/pretty"
	"github.com/fwojciec/gradscout/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *Config
	Queries *gradscout.QuerySet

	Collector *crawl.Collector
	Scanner   *crawl.Scanner
	Fetcher   gradscout.Fetcher
	Extractor gradscout.Extractor
	Detector  *gradscout.Detector
	Domains   gradscout.DomainResolver

	CSV      gradscout.RowWriter
	CSVPath  string
	Table    *pretty.TableWriter
	Runs     gradscout.RunService
	Notifier gradscout.Notifier
	Metrics  *prometheus.Metrics

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

func (d *Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" default:"config.yaml" type:"path" help:"Path to config.yaml (fetch.timeout takes 20s or whole seconds)"`
	Queries string `short:"q" default:"queries.json" type:"path" help:"Path to the query file"`
	Verbose bool   `short:"v" help:"Log fetches, extractions and searches to stderr"`
	DB      string `type:"path" help:"Path to the run history database (default GRADSCOUT_DB or ~/.gradscout/gradscout.db)"`

	Run     RunCmd     `cmd:"" help:"Search, score and report funded opportunities"`
	Score   ScoreCmd   `cmd:"" help:"Fetch and score a single URL"`
	Expand  QueriesCmd `cmd:"" name:"queries" help:"Print the expanded query list"`
	History HistoryCmd `cmd:"" help:"List past runs or the rows of one run"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Out      string  `short:"o" default:"scholarships_latest.csv" type:"path" help:"CSV output path"`
	MinScore float64 `default:"-1" help:"Override filters.min_score (negative keeps the configured value)"`
	NoEmail  bool    `help:"Skip the e-mail digest"`
	NoTable  bool    `help:"Don't print the results table"`
	Metrics  string  `type:"path" help:"Write Prometheus metrics to this textfile"`
}

// ScoreCmd is the "score" subcommand.
type ScoreCmd struct {
	URL string `arg:"" help:"Page URL to score"`
}

// QueriesCmd is the "queries" subcommand.
type QueriesCmd struct{}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	RunID string `arg:"" optional:"" help:"Run ID to show rows for"`
	Limit int    `short:"n" default:"10" help:"Number of runs to list"`
}
