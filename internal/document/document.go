// Package document loads a source PDF and splits its pages into overlapping
// text chunks for ingestion.
package document

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/tmc/langchaingo/textsplitter"

	"floorassist/internal/ingest"
)

// Page is one page of extracted text. Number is zero-based, matching what is
// stored in the vector index; display code converts to one-based.
type Page struct {
	Text   string
	Number int
	Source string
}

// LoadPDF extracts plain text page by page. The source recorded on each page
// is the path as given.
func LoadPDF(path string) ([]Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	var pages []Page
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", i, err)
		}
		pages = append(pages, Page{Text: text, Number: i - 1, Source: path})
	}
	return pages, nil
}

// Split cuts each page into overlapping chunks with a recursive character
// splitter, keeping the page's metadata on every chunk it yields.
func Split(pages []Page, chunkSize, chunkOverlap int) ([]ingest.Chunk, error) {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
		textsplitter.WithSeparators([]string{"\n\n", "\n", ". ", " ", ""}),
	)

	var chunks []ingest.Chunk
	for _, page := range pages {
		parts, err := splitter.SplitText(page.Text)
		if err != nil {
			return nil, fmt.Errorf("split page %d: %w", page.Number, err)
		}
		for _, part := range parts {
			if strings.TrimSpace(part) == "" {
				continue
			}
			chunks = append(chunks, ingest.Chunk{Text: part, Page: page.Number, Source: page.Source})
		}
	}
	return chunks, nil
}
