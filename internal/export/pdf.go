// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/shakeelsaga/sourcefolio/internal/ledger"
	"github.com/shakeelsaga/sourcefolio/pkg/types"
)

const (
	pdfMaxBooks = 5
	pdfMaxNews  = 5
)

// PDF writes the human-readable report: a title page followed by one
// section per keyword. Book and news lists are capped so a broad query
// does not turn the report into a dump; the CSV carries the full record.
func PDF(entries []ledger.Entry, path string) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont("Helvetica", "I", 8)
		doc.CellFormat(0, 10, "Powered by SourceFolio", "", 0, "C", false, 0, "")
	})

	writePDFTitlePage(doc)
	for _, entry := range entries {
		writePDFSection(doc, entry.Key, entry.Bucket)
	}

	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writePDFTitlePage(doc *fpdf.Fpdf) {
	doc.AddPage()
	doc.SetFont("Helvetica", "B", 28)
	doc.Ln(80)
	doc.CellFormat(0, 14, "SourceFolio", "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 14)
	doc.CellFormat(0, 10, "Research Report", "", 1, "C", false, 0, "")
}

func writePDFSection(doc *fpdf.Fpdf, key string, b *types.Bucket) {
	doc.AddPage()
	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 12, key, "B", 1, "L", false, 0, "")
	doc.Ln(4)

	writePDFHeading(doc, "Wikipedia")
	if b.Wiki != nil && b.Wiki.Body != "" {
		doc.SetFont("Helvetica", "", 11)
		doc.MultiCell(0, 6, b.Wiki.Body, "", "L", false)
		writePDFLink(doc, b.Wiki.URL)
	} else {
		writePDFNone(doc, "No Wikipedia data available.")
	}
	doc.Ln(4)

	writePDFHeading(doc, "Books")
	if len(b.Books) > 0 {
		for _, book := range capBooks(b.Books) {
			doc.SetFont("Helvetica", "B", 11)
			doc.MultiCell(0, 6, book.Title, "", "L", false)
			doc.SetFont("Helvetica", "", 10)
			line := "by " + book.Author
			if book.FirstPublishYear != 0 {
				line = fmt.Sprintf("%s (%d)", line, book.FirstPublishYear)
			}
			doc.MultiCell(0, 5, line, "", "L", false)
			writePDFLink(doc, book.Link)
			doc.Ln(2)
		}
	} else {
		writePDFNone(doc, "No books found.")
	}
	doc.Ln(4)

	writePDFHeading(doc, "News")
	if len(b.News) > 0 {
		for _, article := range capNews(b.News) {
			doc.SetFont("Helvetica", "B", 11)
			doc.MultiCell(0, 6, article.Title, "", "L", false)
			doc.SetFont("Helvetica", "", 10)
			doc.MultiCell(0, 5, fmt.Sprintf("%s, %s", article.Source, article.PublishedAt), "", "L", false)
			if article.Description != "" {
				doc.MultiCell(0, 5, article.Description, "", "L", false)
			}
			writePDFLink(doc, article.URL)
			doc.Ln(2)
		}
	} else {
		writePDFNone(doc, "No news articles found.")
	}
}

func writePDFHeading(doc *fpdf.Fpdf, title string) {
	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
}

func writePDFNone(doc *fpdf.Fpdf, msg string) {
	doc.SetFont("Helvetica", "I", 10)
	doc.CellFormat(0, 6, msg, "", 1, "L", false, 0, "")
}

func writePDFLink(doc *fpdf.Fpdf, url string) {
	if url == "" {
		return
	}
	doc.SetFont("Helvetica", "U", 9)
	doc.SetTextColor(0, 0, 200)
	doc.WriteLinkString(5, url, url)
	doc.Ln(6)
	doc.SetTextColor(0, 0, 0)
}

func capBooks(books []types.Book) []types.Book {
	if len(books) > pdfMaxBooks {
		return books[:pdfMaxBooks]
	}
	return books
}

func capNews(articles []types.NewsArticle) []types.NewsArticle {
	if len(articles) > pdfMaxNews {
		return articles[:pdfMaxNews]
	}
	return articles
}
