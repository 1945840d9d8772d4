package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/analyzer"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/config"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/extractor"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/models"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/repository"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/segment"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/storage"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/utils"
)

const (
	PhaseExtract   = "extract"
	PhaseCreate    = "create"
	PhaseSummarize = "summarize"
	PhaseKeywords  = "keywords"
	PhaseUpdate    = "update"
	PhaseArchive   = "archive"
)

// PhaseError records which pipeline step failed for a document.
type PhaseError struct {
	FileName string
	Phase    string
	Err      error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.FileName, e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// TextExtractor returns the page count and text of the document at path.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (int, string, error)
}

type DocumentService interface {
	ProcessFolder(ctx context.Context, folder string) (*models.BatchReport, error)
	ResetFolder(ctx context.Context, folder string) error
	GetDocument(ctx context.Context, fileName string) (*models.MetadataRecord, error)
	ListDocuments(ctx context.Context) ([]models.MetadataRecord, error)
	Summarize(text string, category models.Category) (*models.AnalysisResult, error)
}

// Pipeline runs extraction, analysis and persistence for documents. Batches
// fan out over a fixed number of workers, one whole document per worker.
type Pipeline struct {
	extractor TextExtractor
	repo      repository.Repository
	analyzer  analyzer.Analyzer
	archive   storage.Storage
	workers   int
	logger    *utils.Logger
}

// NewPipeline wires a pipeline from explicit collaborators. archive may be
// nil to skip archiving.
func NewPipeline(ext TextExtractor, repo repository.Repository, an analyzer.Analyzer, archive storage.Storage, workers int, logger *utils.Logger) *Pipeline {
	if workers <= 0 {
		workers = 1
	}
	return &Pipeline{
		extractor: ext,
		repo:      repo,
		analyzer:  an,
		archive:   archive,
		workers:   workers,
		logger:    logger,
	}
}

// NewService builds the production pipeline from configuration around an
// already opened repository.
func NewService(ctx context.Context, repo repository.Repository, cfg *config.Config, logger *utils.Logger) (*Pipeline, error) {
	freqAnalyzer, err := analyzer.NewFrequencyAnalyzer(segment.NewProseSegmenter(), cfg.StopwordLanguage, cfg.KeywordCount)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize analyzer: %w", err)
	}

	var archive storage.Storage
	if cfg.S3Enabled {
		archive, err = storage.NewS3Storage(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
	}

	return NewPipeline(extractor.NewPDFExtractor(), repo, freqAnalyzer, archive, cfg.Workers, logger), nil
}

// ListPDFs returns the PDF files directly inside folder, sorted by name.
func ListPDFs(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", folder, err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			paths = append(paths, filepath.Join(folder, entry.Name()))
		}
	}
	return paths, nil
}

func (p *Pipeline) ProcessFolder(ctx context.Context, folder string) (*models.BatchReport, error) {
	paths, err := ListPDFs(folder)
	if err != nil {
		return nil, err
	}

	report := p.ProcessFiles(ctx, paths)
	report.Folder = folder
	return report, nil
}

// ProcessFiles processes every path and returns one outcome per path in the
// order given. A failing document never stops the others.
func (p *Pipeline) ProcessFiles(ctx context.Context, paths []string) *models.BatchReport {
	start := time.Now()
	report := &models.BatchReport{
		RunID:    utils.GenerateID(),
		Outcomes: make([]models.Outcome, len(paths)),
	}

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, path := range paths {
		g.Go(func() error {
			report.Outcomes[i] = p.ProcessDocument(ctx, path)
			return nil
		})
	}
	_ = g.Wait()

	for _, outcome := range report.Outcomes {
		if outcome.Succeeded() {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	report.Duration = time.Since(start)

	p.logger.Info("Processed batch",
		"run_id", report.RunID,
		"documents", len(paths),
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"duration", report.Duration)

	return report
}

// ProcessDocument runs the full pipeline for one file. Errors and panics are
// logged and returned in the outcome, never propagated.
func (p *Pipeline) ProcessDocument(ctx context.Context, path string) (outcome models.Outcome) {
	start := time.Now()
	outcome.FileName = filepath.Base(path)

	defer func() {
		if r := recover(); r != nil {
			outcome.Duration = time.Since(start)
			p.failed(&outcome, &PhaseError{
				FileName: outcome.FileName,
				Phase:    outcome.Phase,
				Err:      fmt.Errorf("panic: %v", r),
			})
		}
	}()

	err := p.processDocument(ctx, path, &outcome)
	outcome.Duration = time.Since(start)

	if err != nil {
		p.failed(&outcome, err)
		return outcome
	}

	outcome.Phase = ""
	p.logger.Info("Finished processing document",
		"file_name", outcome.FileName,
		"category", outcome.Category,
		"duration", outcome.Duration)
	return outcome
}

func (p *Pipeline) failed(outcome *models.Outcome, err error) {
	var phaseErr *PhaseError
	if errors.As(err, &phaseErr) {
		outcome.Phase = phaseErr.Phase
	}
	outcome.Err = err
	outcome.Error = err.Error()

	p.logger.Error("Failed to process document",
		"file_name", outcome.FileName,
		"phase", outcome.Phase,
		"error", err,
		"duration", outcome.Duration)
}

func (p *Pipeline) processDocument(ctx context.Context, path string, outcome *models.Outcome) error {
	fileName := outcome.FileName
	fail := func(phase string, err error) error {
		return &PhaseError{FileName: fileName, Phase: phase, Err: err}
	}

	// outcome.Phase tracks the running step so a panic can be attributed.
	outcome.Phase = PhaseExtract
	pages, text, err := p.extractor.Extract(ctx, path)
	if err != nil {
		return fail(PhaseExtract, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fail(PhaseExtract, err)
	}

	doc := models.Document{
		FileName:  fileName,
		FilePath:  path,
		FileSize:  info.Size(),
		PageCount: pages,
		Category:  analyzer.Classify(pages),
		Text:      text,
	}
	outcome.Category = doc.Category

	p.logger.Info("Processing document",
		"file_name", doc.FileName,
		"category", doc.Category,
		"pages", doc.PageCount,
		"text_length", len(doc.Text))

	now := time.Now().UTC()
	rec := &models.MetadataRecord{
		ID:        utils.GenerateID(),
		FileName:  doc.FileName,
		FilePath:  doc.FilePath,
		FileSize:  doc.FileSize,
		PageCount: doc.PageCount,
		Category:  doc.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	outcome.Phase = PhaseCreate
	if err := p.repo.Create(ctx, rec); err != nil {
		return fail(PhaseCreate, err)
	}
	p.logger.Debug("Inserted metadata", "file_name", doc.FileName, "id", rec.ID)

	outcome.Phase = PhaseSummarize
	summary, err := p.analyzer.Summarize(doc.Text, doc.Category)
	if err != nil {
		return fail(PhaseSummarize, err)
	}

	outcome.Phase = PhaseKeywords
	keywords, err := p.analyzer.Keywords(doc.Text)
	if err != nil {
		return fail(PhaseKeywords, err)
	}

	outcome.Phase = PhaseUpdate
	if err := p.repo.UpdateResults(ctx, doc.FileName, summary, keywords); err != nil {
		return fail(PhaseUpdate, err)
	}
	p.logger.Debug("Updated summary and keywords",
		"file_name", doc.FileName,
		"summary_length", len(summary),
		"keywords", keywords)

	outcome.Phase = PhaseArchive
	if p.archive != nil {
		if err := p.archive.Archive(ctx, storage.ObjectKey(doc.FileName), path); err != nil {
			return fail(PhaseArchive, err)
		}
	}

	return nil
}

// Reset removes stored records and archived copies for paths so they can be
// processed again.
func (p *Pipeline) Reset(ctx context.Context, paths []string) error {
	for _, path := range paths {
		fileName := filepath.Base(path)
		if err := p.repo.Delete(ctx, fileName); err != nil {
			return err
		}
		if p.archive != nil {
			if err := p.archive.Remove(ctx, storage.ObjectKey(fileName)); err != nil {
				return err
			}
		}
	}
	return nil
}

// ResetFolder clears stored state for every PDF in folder.
func (p *Pipeline) ResetFolder(ctx context.Context, folder string) error {
	paths, err := ListPDFs(folder)
	if err != nil {
		return err
	}
	return p.Reset(ctx, paths)
}

func (p *Pipeline) GetDocument(ctx context.Context, fileName string) (*models.MetadataRecord, error) {
	rec, err := p.repo.GetByFileName(ctx, fileName)
	if err != nil {
		p.logger.Error("Failed to get document", "error", err, "file_name", fileName)
		return nil, utils.NewInternalError("Failed to retrieve document")
	}
	if rec == nil {
		return nil, utils.NewNotFoundError("Document not found")
	}

	return rec, nil
}

func (p *Pipeline) ListDocuments(ctx context.Context) ([]models.MetadataRecord, error) {
	records, err := p.repo.List(ctx)
	if err != nil {
		p.logger.Error("Failed to list documents", "error", err)
		return nil, utils.NewInternalError("Failed to list documents")
	}

	return records, nil
}

// Summarize analyzes text without touching the store.
func (p *Pipeline) Summarize(text string, category models.Category) (*models.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, utils.NewBadRequestError("Text is required")
	}

	result, err := p.analyzer.Analyze(text, category)
	if err != nil {
		p.logger.Error("Failed to analyze text", "error", err, "category", category)
		return nil, utils.NewInternalError("Failed to analyze text")
	}

	return result, nil
}
