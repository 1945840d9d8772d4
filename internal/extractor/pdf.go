package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractionError reports a document that could not be opened or parsed.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// PDFExtractor reads PDF files from disk.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

func (x *PDFExtractor) Extract(ctx context.Context, path string) (int, string, error) {
	if err := ctx.Err(); err != nil {
		return 0, "", &ExtractionError{Path: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, "", &ExtractionError{Path: path, Err: err}
	}

	pages, text, err := ExtractPDF(data)
	if err != nil {
		return 0, "", &ExtractionError{Path: path, Err: err}
	}
	return pages, text, nil
}

// ExtractPDF returns the page count and the concatenated plain text of every
// page. A PDF without a text layer yields an empty string and no error.
func ExtractPDF(data []byte) (pages int, text string, err error) {
	// The content stream interpreter panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			pages, text = 0, ""
			err = fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	reader := bytes.NewReader(data)

	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return 0, "", fmt.Errorf("failed to create PDF reader: %w", err)
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Keep the pages that did decode.
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}

	return numPages, strings.TrimSpace(textBuilder.String()), nil
}
