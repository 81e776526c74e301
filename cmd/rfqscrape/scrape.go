package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/rfqscrape"
	"github.com/fwojciec/rfqscrape/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Fetcher   rfqscrape.Fetcher
	Extractor rfqscrape.RecordExtractor
	Writer    rfqscrape.RecordWriter
	Limiter   *crawl.Limiter

	// Records is the optional cross-run archive. Nil when no archive
	// path was given.
	Records rfqscrape.RecordService
}

// ScrapeCmd handles the scrape operation.
type ScrapeCmd struct {
	URL   string
	Pages int
	Out   string
}

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	scraper := &crawl.Scraper{
		Fetcher:   deps.Fetcher,
		Extractor: deps.Extractor,
		Limiter:   deps.Limiter,
	}

	progress := func(ev crawl.ProgressEvent) {
		switch ev.Type {
		case crawl.ProgressPageStarted:
			fmt.Fprintf(deps.Stdout, "page %d: %s\n", ev.Page, ev.URL)
		case crawl.ProgressPageFailed:
			fmt.Fprintf(deps.Stderr, "page %d failed: %v\n", ev.Page, ev.Error)
		case crawl.ProgressPageRetried:
			fmt.Fprintf(deps.Stdout, "page %d: retrying with %s\n", ev.Page, ev.URL)
		case crawl.ProgressPageCompleted:
			fmt.Fprintf(deps.Stdout, "page %d: %d accepted (%d total)\n", ev.Page, ev.Accepted, ev.Total)
		case crawl.ProgressStopped:
			fmt.Fprintf(deps.Stdout, "no records on page %d, stopping\n", ev.Page)
		}
	}

	records := scraper.Run(deps.Ctx, c.URL, c.Pages, progress)

	// An interrupt cancels the scrape but must not lose what was already
	// collected, so the flush runs detached from the scrape context.
	flushCtx := context.WithoutCancel(deps.Ctx)

	if err := deps.Writer.WriteRecords(flushCtx, records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}

	if deps.Records != nil {
		archived := 0
		for _, rec := range records {
			err := deps.Records.CreateRecord(flushCtx, rec)
			switch rfqscrape.ErrorCode(err) {
			case "":
				archived++
			case rfqscrape.ECONFLICT, rfqscrape.EINVALID:
				// Repeats from earlier runs and records without a usable
				// inquiry URL are skipped; the CSV already carries them.
				continue
			default:
				return fmt.Errorf("failed to archive record: %w", err)
			}
		}
		fmt.Fprintf(deps.Stdout, "Archived %d new records\n", archived)
	}

	fmt.Fprintf(deps.Stdout, "Saved %d records to %s\n", len(records), c.Out)
	return nil
}
