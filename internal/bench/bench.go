package bench

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/models"
)

var ErrNoFiles = errors.New("bench: no files to process")

// Sample is the cost of one measured run.
type Sample struct {
	Elapsed    time.Duration
	RSSBytes   uint64
	CPUPercent float64
}

// Sampler reads resource usage around a unit of work. End reports CPU usage
// since the matching Begin.
type Sampler interface {
	Begin() error
	End() (rss uint64, cpuPercent float64, err error)
}

// Processor is the part of the pipeline the harness drives.
type Processor interface {
	ProcessDocument(ctx context.Context, path string) models.Outcome
	ProcessFiles(ctx context.Context, paths []string) *models.BatchReport
	Reset(ctx context.Context, paths []string) error
}

// ProcessSampler samples the current process through gopsutil.
type ProcessSampler struct {
	proc *process.Process
}

func NewProcessSampler() (*ProcessSampler, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("failed to open process: %w", err)
	}
	return &ProcessSampler{proc: proc}, nil
}

func (s *ProcessSampler) Begin() error {
	_, err := s.proc.Percent(0)
	return err
}

func (s *ProcessSampler) End() (uint64, float64, error) {
	cpu, err := s.proc.Percent(0)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read cpu usage: %w", err)
	}
	mem, err := s.proc.MemoryInfo()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read memory usage: %w", err)
	}
	return mem.RSS, cpu, nil
}

type Report struct {
	Single        Sample
	SingleOutcome models.Outcome
	Concurrent    Sample
	Batch         *models.BatchReport
}

// Run measures the first file on its own, then every file through the
// worker pool. Stored records for files are cleared before each phase so
// both phases do the full amount of work.
func Run(ctx context.Context, p Processor, files []string, sampler Sampler) (*Report, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	report := &Report{}

	if err := p.Reset(ctx, files[:1]); err != nil {
		return nil, fmt.Errorf("failed to reset before single run: %w", err)
	}
	single, err := measure(sampler, func() {
		report.SingleOutcome = p.ProcessDocument(ctx, files[0])
	})
	if err != nil {
		return nil, err
	}
	report.Single = single

	if err := p.Reset(ctx, files); err != nil {
		return nil, fmt.Errorf("failed to reset before concurrent run: %w", err)
	}
	concurrent, err := measure(sampler, func() {
		report.Batch = p.ProcessFiles(ctx, files)
	})
	if err != nil {
		return nil, err
	}
	report.Concurrent = concurrent

	return report, nil
}

func measure(sampler Sampler, work func()) (Sample, error) {
	if err := sampler.Begin(); err != nil {
		return Sample{}, fmt.Errorf("failed to start sampling: %w", err)
	}

	start := time.Now()
	work()
	elapsed := time.Since(start)

	rss, cpu, err := sampler.End()
	if err != nil {
		return Sample{}, err
	}
	return Sample{Elapsed: elapsed, RSSBytes: rss, CPUPercent: cpu}, nil
}

func (r *Report) String() string {
	var b strings.Builder
	files := 0
	failed := 0
	if r.Batch != nil {
		files = len(r.Batch.Outcomes)
		failed = r.Batch.Failed
	}

	b.WriteString("### Performance Report ###\n")
	fmt.Fprintf(&b, "Single PDF processing time: %.2f seconds\n", r.Single.Elapsed.Seconds())
	fmt.Fprintf(&b, "Single PDF memory usage: %s\n", humanize.IBytes(r.Single.RSSBytes))
	fmt.Fprintf(&b, "Single PDF CPU usage: %.2f %%\n", r.Single.CPUPercent)
	if !r.SingleOutcome.Succeeded() {
		fmt.Fprintf(&b, "Single PDF failed at %s: %s\n", r.SingleOutcome.Phase, r.SingleOutcome.Error)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Concurrent processing time (%d PDFs): %.2f seconds\n", files, r.Concurrent.Elapsed.Seconds())
	fmt.Fprintf(&b, "Concurrent memory usage: %s\n", humanize.IBytes(r.Concurrent.RSSBytes))
	fmt.Fprintf(&b, "Concurrent CPU usage: %.2f %%\n", r.Concurrent.CPUPercent)
	if failed > 0 {
		fmt.Fprintf(&b, "Concurrent failures: %d of %d\n", failed, files)
	}
	return b.String()
}
