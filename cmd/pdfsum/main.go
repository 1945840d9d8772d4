package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/analyzer"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/bench"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/config"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/extractor"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/models"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/repository"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/segment"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/services"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/utils"
)

var (
	app = kingpin.New("pdfsum", "summarize a folder of pdf files and store the results")

	processCmd  = app.Command("process", "process every pdf in a folder")
	processArgs = struct {
		folder  *string
		workers *int
		replace *bool
	}{
		folder:  processCmd.Flag("folder", "folder to scan, defaults to INPUT_FOLDER").Short('f').String(),
		workers: processCmd.Flag("workers", "number of documents processed at once").Short('w').Int(),
		replace: processCmd.Flag("replace", "delete stored records for the listed files first").Bool(),
	}

	summarizeCmd  = app.Command("summarize", "print the summary and keywords of one pdf without storing them")
	summarizeArgs = struct {
		input *string
	}{
		input: summarizeCmd.Flag("in", "input file to process").Short('i').Required().ExistingFile(),
	}

	benchCmd  = app.Command("bench", "time one pdf alone and then all pdfs concurrently")
	benchArgs = struct {
		folder  *string
		files   *[]string
		workers *int
	}{
		folder:  benchCmd.Flag("folder", "folder of pdfs to benchmark").Short('f').String(),
		files:   benchCmd.Flag("file", "pdf to benchmark, repeatable").ExistingFiles(),
		workers: benchCmd.Flag("workers", "number of documents processed at once").Short('w').Int(),
	}
)

func main() {
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := config.Load()
	app.FatalIfError(err, "config")

	logger := utils.NewLoggerTo(os.Stderr, cfg.LogLevel)
	ctx := context.Background()

	switch cmd {
	case processCmd.FullCommand():
		if *processArgs.workers > 0 {
			cfg.Workers = *processArgs.workers
		}
		runProcess(ctx, cfg, logger)
	case summarizeCmd.FullCommand():
		runSummarize(ctx, cfg)
	case benchCmd.FullCommand():
		if *benchArgs.workers > 0 {
			cfg.Workers = *benchArgs.workers
		}
		runBench(ctx, cfg, logger)
	}
}

func openPipeline(ctx context.Context, cfg *config.Config, logger *utils.Logger) (*services.Pipeline, func() error) {
	repo, closeRepo, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open document store", "driver", cfg.StoreDriver, "error", err)
	}

	pipeline, err := services.NewService(ctx, repo, cfg, logger)
	if err != nil {
		_ = closeRepo()
		logger.Fatal("Failed to initialize pipeline", "error", err)
	}
	return pipeline, closeRepo
}

func runProcess(ctx context.Context, cfg *config.Config, logger *utils.Logger) {
	folder := *processArgs.folder
	if folder == "" {
		folder = cfg.InputFolder
	}

	pipeline, closeRepo := openPipeline(ctx, cfg, logger)

	if *processArgs.replace {
		app.FatalIfError(pipeline.ResetFolder(ctx, folder), "reset")
	}

	report, err := pipeline.ProcessFolder(ctx, folder)
	app.FatalIfError(err, "process")

	printBatch(report)
	if err := closeRepo(); err != nil {
		logger.Error("Failed to close document store", "error", err)
	}
	if report.Failed > 0 {
		os.Exit(1)
	}
}

func printBatch(report *models.BatchReport) {
	for _, o := range report.Outcomes {
		if o.Succeeded() {
			fmt.Printf("ok    %-40s %-6s %s\n", o.FileName, o.Category, o.Duration.Round(time.Millisecond))
		} else {
			fmt.Printf("fail  %-40s %-6s %s: %s\n", o.FileName, o.Phase, o.Duration.Round(time.Millisecond), o.Error)
		}
	}
	fmt.Printf("\nrun %s: %d succeeded, %d failed in %s\n",
		report.RunID, report.Succeeded, report.Failed, report.Duration.Round(time.Millisecond))
}

func runSummarize(ctx context.Context, cfg *config.Config) {
	an, err := analyzer.NewFrequencyAnalyzer(segment.NewProseSegmenter(), cfg.StopwordLanguage, cfg.KeywordCount)
	app.FatalIfError(err, "analyzer")

	info, err := os.Stat(*summarizeArgs.input)
	app.FatalIfError(err, "summarize")

	pages, text, err := extractor.NewPDFExtractor().Extract(ctx, *summarizeArgs.input)
	app.FatalIfError(err, "extract")

	result, err := an.Analyze(text, analyzer.Classify(pages))
	app.FatalIfError(err, "analyze")

	fmt.Printf("file:     %s (%s, %d pages)\n", info.Name(), humanize.Bytes(uint64(info.Size())), pages)
	fmt.Printf("category: %s\n", result.Category)
	fmt.Printf("keywords: %s\n", strings.Join(result.Keywords, ", "))
	fmt.Printf("summary:\n%s\n", result.Summary)
}

func runBench(ctx context.Context, cfg *config.Config, logger *utils.Logger) {
	files := *benchArgs.files
	if *benchArgs.folder != "" {
		paths, err := services.ListPDFs(*benchArgs.folder)
		app.FatalIfError(err, "bench")
		files = append(files, paths...)
	}
	if len(files) == 0 {
		app.Fatalf("bench: pass --folder or at least one --file")
	}

	pipeline, closeRepo := openPipeline(ctx, cfg, logger)
	defer closeRepo()

	sampler, err := bench.NewProcessSampler()
	app.FatalIfError(err, "bench")

	report, err := bench.Run(ctx, pipeline, files, sampler)
	app.FatalIfError(err, "bench")

	fmt.Print(report.String())
}
