package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/gradscout"
	"github.com/fwojciec/gradscout/crawl"
	"github.com/fwojciec/gradscout/dateparser"
	"github.com/fwojciec/gradscout/duckduckgo"
	"github.com/fwojciec/gradscout/fs"
	gshttp "github.com/fwojciec/gradscout/http"
	"github.com/fwojciec/gradscout/pretty"
	"github.com/fwojciec/gradscout/prometheus"
	"github.com/fwojciec/gradscout/publicsuffix"
	"github.com/fwojciec/gradscout/readability"
	gsslog "github.com/fwojciec/gradscout/slog"
	"github.com/fwojciec/gradscout/smtp"
	"github.com/fwojciec/gradscout/sqlite"
	"github.com/fwojciec/gradscout/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); the --db flag overrides it.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Getenv looks up e-mail credentials. Defaults to os.Getenv.
	Getenv func(string) string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Getenv: os.Getenv,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("gradscout"),
		kong.Description("Discover funded graduate programs from web search results."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'gradscout --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg, err := LoadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "warning: %s; using defaults\n", gradscout.ErrorMessage(err))
		cfg = DefaultConfig()
	}
	deps.Config = cfg

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	if cmd == "run" || cmd == "queries" {
		queries, err := LoadQueries(cli.Queries)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", gradscout.ErrorMessage(err))
			return err
		}
		deps.Queries = queries
	}

	if cmd == "run" || cmd == "history" {
		if cli.DB != "" {
			m.DBPath = cli.DB
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set GRADSCOUT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		deps.Runs = sqlite.NewRunService(m.DB)
		deps.Table = pretty.NewTableWriter(stdout)
	}

	if cmd == "run" || cmd == "score" {
		extractor, err := newExtractor(cfg.Extractor)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", gradscout.ErrorMessage(err))
			return err
		}

		fetcher := gshttp.NewFetcher(gshttp.WithTimeout(time.Duration(cfg.Fetch.Timeout)))
		defer fetcher.Close()

		deps.Fetcher = fetcher
		deps.Extractor = extractor
		if logger != nil {
			deps.Fetcher = gsslog.NewLoggingFetcher(deps.Fetcher, logger)
			deps.Extractor = gsslog.NewLoggingExtractor(deps.Extractor, logger)
		}
		deps.Detector = gradscout.NewDetector(dateparser.NewParser())
		deps.Domains = publicsuffix.NewResolver()
	}

	if cmd == "run" {
		limiter := crawl.NewDomainLimiter(cfg.Fetch.RatePerDomain)

		ddg := duckduckgo.NewSearcher(duckduckgo.WithTimeout(time.Duration(cfg.Fetch.Timeout)))
		var searcher gradscout.Searcher = ddg
		if logger != nil {
			searcher = gsslog.NewLoggingSearcher(searcher, logger)
		}

		deps.Collector = &crawl.Collector{
			Searcher:    searcher,
			RateLimiter: limiter,
			Backend:     ddg.Host(),
			MaxPerQuery: cfg.Filters.MaxResultsPerQuery,
			MaxTotal:    cfg.Filters.MaxTotalResults,
			RetryDelays: crawl.DefaultRetryDelays(),
		}
		deps.Scanner = &crawl.Scanner{
			Fetcher:     deps.Fetcher,
			Extractor:   deps.Extractor,
			Detector:    deps.Detector,
			Domains:     deps.Domains,
			RateLimiter: limiter,
			Concurrency: cfg.Fetch.Concurrency,
		}

		csv := fs.NewCSVWriter(cli.Run.Out)
		deps.CSV = csv
		deps.CSVPath = csv.Path()
		deps.Metrics = prometheus.NewMetrics()

		user, pass, to := m.Getenv("EMAIL_USER"), m.Getenv("EMAIL_PASS"), m.Getenv("TO_EMAIL")
		if user != "" && pass != "" && to != "" {
			deps.Notifier = smtp.NewNotifier(cfg.Email.SMTPHost, cfg.Email.SMTPPort, user, pass, to)
		}
	}

	return kongCtx.Run(deps)
}

// newExtractor returns the content extractor named in config.yaml.
func newExtractor(name string) (gradscout.Extractor, error) {
	switch name {
	case "", ExtractorReadability:
		return readability.NewExtractor(), nil
	case ExtractorTrafilatura:
		return trafilatura.NewExtractor(), nil
	default:
		return nil, gradscout.Errorf(gradscout.EINVALID, "unknown extractor %q", name)
	}
}

func defaultDBPath() string {
	if path := os.Getenv("GRADSCOUT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "gradscout.db"
	}
	dir := filepath.Join(home, ".gradscout")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "gradscout.db")
}
