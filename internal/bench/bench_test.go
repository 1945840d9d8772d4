package bench

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/models"
)

type fakeProcessor struct {
	calls  []string
	failOn string
}

func (p *fakeProcessor) ProcessDocument(_ context.Context, path string) models.Outcome {
	p.calls = append(p.calls, "single:"+filepath.Base(path))
	time.Sleep(time.Millisecond)
	return p.outcome(path)
}

func (p *fakeProcessor) ProcessFiles(_ context.Context, paths []string) *models.BatchReport {
	p.calls = append(p.calls, "batch")
	report := &models.BatchReport{}
	for _, path := range paths {
		o := p.outcome(path)
		report.Outcomes = append(report.Outcomes, o)
		if o.Succeeded() {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	return report
}

func (p *fakeProcessor) Reset(_ context.Context, paths []string) error {
	p.calls = append(p.calls, "reset")
	return nil
}

func (p *fakeProcessor) outcome(path string) models.Outcome {
	o := models.Outcome{FileName: filepath.Base(path)}
	if o.FileName == p.failOn {
		o.Err = errors.New("broken")
		o.Error = "broken"
		o.Phase = "extract"
	}
	return o
}

type fakeSampler struct {
	begins int
	rss    []uint64
}

func (s *fakeSampler) Begin() error {
	s.begins++
	return nil
}

func (s *fakeSampler) End() (uint64, float64, error) {
	rss := s.rss[0]
	s.rss = s.rss[1:]
	return rss, 12.5, nil
}

func TestRunMeasuresSingleThenConcurrent(t *testing.T) {
	p := &fakeProcessor{failOn: "c.pdf"}
	s := &fakeSampler{rss: []uint64{40 << 20, 64 << 20}}

	report, err := Run(context.Background(), p, []string{"/in/a.pdf", "/in/b.pdf", "/in/c.pdf"}, s)
	require.NoError(t, err)

	assert.Equal(t, []string{"reset", "single:a.pdf", "reset", "batch"}, p.calls)
	assert.Equal(t, 2, s.begins)
	assert.Equal(t, uint64(40<<20), report.Single.RSSBytes)
	assert.Equal(t, uint64(64<<20), report.Concurrent.RSSBytes)
	assert.Greater(t, report.Single.Elapsed, time.Duration(0))
	assert.True(t, report.SingleOutcome.Succeeded())
	assert.Equal(t, 1, report.Batch.Failed)

	out := report.String()
	assert.Contains(t, out, "### Performance Report ###")
	assert.Contains(t, out, "Single PDF memory usage: 40 MiB")
	assert.Contains(t, out, "Single PDF CPU usage: 12.50 %")
	assert.Contains(t, out, "Concurrent processing time (3 PDFs)")
	assert.Contains(t, out, "Concurrent memory usage: 64 MiB")
	assert.Contains(t, out, "Concurrent failures: 1 of 3")
}

func TestRunWithoutFiles(t *testing.T) {
	_, err := Run(context.Background(), &fakeProcessor{}, nil, &fakeSampler{})
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestProcessSampler(t *testing.T) {
	s, err := NewProcessSampler()
	require.NoError(t, err)

	require.NoError(t, s.Begin())
	rss, cpu, err := s.End()
	require.NoError(t, err)
	assert.Greater(t, rss, uint64(0))
	assert.GreaterOrEqual(t, cpu, 0.0)
}
