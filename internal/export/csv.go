// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders a finished research ledger to the operator's
// deliverable formats. Exporters receive the ordered ledger snapshot and
// write a single file; they never touch the network.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/shakeelsaga/sourcefolio/internal/ledger"
)

var csvHeader = []string{
	"Keyword", "Source", "Title/Name", "Author/Publisher", "Description", "Link", "Published At",
}

// CSV writes every collected record as one row, grouped by keyword in
// input order. Unlike the PDF, nothing is capped here; the CSV is the
// machine-readable complete record.
func CSV(entries []ledger.Entry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, entry := range entries {
		b := entry.Bucket

		if b.Wiki != nil && b.Wiki.Body != "" {
			if err := w.Write([]string{
				entry.Key, "Wikipedia", b.Wiki.Title, "", b.Wiki.Body, b.Wiki.URL, "",
			}); err != nil {
				return fmt.Errorf("writing wikipedia row: %w", err)
			}
		}

		for _, book := range b.Books {
			year := ""
			if book.FirstPublishYear != 0 {
				year = strconv.Itoa(book.FirstPublishYear)
			}
			if err := w.Write([]string{
				entry.Key, "OpenLibrary", book.Title, book.Author, "", book.Link, year,
			}); err != nil {
				return fmt.Errorf("writing book row: %w", err)
			}
		}

		for _, article := range b.News {
			if err := w.Write([]string{
				entry.Key, "NewsAPI", article.Title, article.Source,
				article.Description, article.URL, article.PublishedAt,
			}); err != nil {
				return fmt.Errorf("writing news row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}
