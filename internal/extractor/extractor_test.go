package extractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPDFRejectsNonPDF(t *testing.T) {
	_, _, err := ExtractPDF([]byte("this is plainly not a pdf"))
	assert.Error(t, err)
}

func TestExtractPDFRejectsEmptyInput(t *testing.T) {
	_, _, err := ExtractPDF(nil)
	assert.Error(t, err)
}

func TestPDFExtractorMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.pdf")

	_, _, err := NewPDFExtractor().Extract(context.Background(), path)
	require.Error(t, err)

	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, path, extErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPDFExtractorCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\ngarbage without xref"), 0o644))

	_, _, err := NewPDFExtractor().Extract(context.Background(), path)
	require.Error(t, err)

	var extErr *ExtractionError
	assert.True(t, errors.As(err, &extErr))
	assert.Contains(t, err.Error(), "corrupt.pdf")
}

func TestExtractPDF(t *testing.T) {
	data, err := os.ReadFile("testdata/sample.pdf")
	require.NoError(t, err)

	pages, text, err := ExtractPDF(data)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
	assert.Contains(t, text, "Birds fly high.")

	t.Logf("Extracted PDF text:\n%s", text)
}

func TestPDFExtractorReadsFromDisk(t *testing.T) {
	pages, text, err := NewPDFExtractor().Extract(context.Background(), "testdata/sample.pdf")
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
	assert.Contains(t, text, "Cats are great.")
}

func TestExtractPDFCountsEveryPage(t *testing.T) {
	data, err := os.ReadFile("testdata/medium.pdf")
	require.NoError(t, err)

	pages, text, err := ExtractPDF(data)
	require.NoError(t, err)
	assert.Equal(t, 12, pages)
	assert.Contains(t, text, "Page 1 covers")
	assert.Contains(t, text, "Page 12 covers")
}

func TestPDFExtractorStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewPDFExtractor().Extract(ctx, "testdata/sample.pdf")
	require.Error(t, err)

	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, "testdata/sample.pdf", extErr.Path)
	assert.ErrorIs(t, err, context.Canceled)
}
