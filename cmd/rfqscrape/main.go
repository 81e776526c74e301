package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/rfqscrape"
	"github.com/fwojciec/rfqscrape/crawl"
	"github.com/fwojciec/rfqscrape/fs"
	"github.com/fwojciec/rfqscrape/goquery"
	rfqhttp "github.com/fwojciec/rfqscrape/http"
	"github.com/fwojciec/rfqscrape/rod"
	rfqslog "github.com/fwojciec/rfqscrape/slog"
	"github.com/fwojciec/rfqscrape/sqlite"
	"github.com/google/uuid"
)

func main() {
	// An interrupt stops pagination; records collected so far are still
	// written out.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("rfqscrape"),
		kong.Description("Scrape RFQ sourcing listings to a CSV file"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.Pages < 1 {
		return fmt.Errorf("pages must be at least 1")
	}

	out := cli.Out
	if out == "" {
		out = time.Now().Format("rfq_2006_01_02_150405.csv")
	}

	// Every log line carries the run ID so interleaved runs stay separable.
	logger := slog.New(slog.NewTextHandler(stderr, nil)).With("run_id", uuid.NewString())

	var fetcher rfqscrape.Fetcher
	if cli.NoBrowser {
		fetcher = rfqhttp.NewFetcher(rfqhttp.WithTimeout(cli.Timeout))
	} else {
		rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rodFetcher
	}
	defer fetcher.Close()

	extractor := goquery.NewExtractor()
	extractor.Country = cli.Country

	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Fetcher:   rod.NewLoggingFetcher(fetcher, logger),
		Extractor: rfqslog.NewLoggingExtractor(extractor, logger),
		Writer:    rfqslog.NewLoggingWriter(fs.NewWriter(out), logger),
		Limiter:   crawl.NewLimiter(crawl.DefaultMinPageInterval, crawl.DefaultPageJitter),
	}

	if cli.DB != "" {
		db := sqlite.NewDB(cli.DB)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer db.Close()
		deps.Records = sqlite.NewRecordService(db)
	}

	cmd := &ScrapeCmd{
		URL:   cli.URL,
		Pages: cli.Pages,
		Out:   out,
	}

	return cmd.Run(deps)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Pages     int           `short:"p" default:"10" help:"Maximum number of listing pages to scrape"`
	Out       string        `short:"o" help:"Output CSV path (default: rfq_<timestamp>.csv)"`
	DB        string        `help:"Optional SQLite archive path; records accumulate across runs"`
	Timeout   time.Duration `short:"t" default:"60s" help:"Fetch timeout per page"`
	Country   string        `default:"United Arab Emirates" help:"Country label stamped on every record"`
	NoBrowser bool          `help:"Fetch with plain HTTP instead of headless Chrome (static listings only)"`
	URL       string        `arg:"" required:"" help:"RFQ listing URL to scrape"`
}
