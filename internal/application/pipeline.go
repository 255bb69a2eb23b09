package application

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBatchSize bounds one store round trip during ingestion.
const DefaultBatchSize = 500

// FileResult is the outcome of one source file. Err is nil on success.
type FileResult struct {
	Symbol string
	Rows   int
	Err    error
}

// Report aggregates the per-file outcomes of one ingestion run. Results are
// ordered like the source files (lexicographic by path).
type Report struct {
	RunID   string
	Results []FileResult
}

func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Pipeline loads every source file into the price store. One file is the
// unit of failure: a bad file yields an ERROR audit entry and the run moves
// on to the next file. No transaction spans more than one batch.
type Pipeline struct {
	sources   SourceDir
	names     NameTable
	prices    PriceRepo
	audit     *AuditLogger
	batchSize int
	workers   int
	log       *zap.Logger
}

type PipelineOption func(*Pipeline)

func WithBatchSize(n int) PipelineOption {
	return func(p *Pipeline) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

// WithWorkers bounds the number of files processed concurrently.
func WithWorkers(n int) PipelineOption {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

func WithPipelineLogger(l *zap.Logger) PipelineOption {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

func NewPipeline(sources SourceDir, names NameTable, prices PriceRepo, audit *AuditLogger, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		sources:   sources,
		names:     names,
		prices:    prices,
		audit:     audit,
		batchSize: DefaultBatchSize,
		workers:   1,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run ingests every discovered file. The returned error covers run-level
// failures only (discovery, reference load); per-file failures land in the
// Report and on the audit trail.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	report := Report{RunID: uuid.NewString()}

	names, err := p.names.Load(ctx)
	if err != nil {
		return report, fmt.Errorf("load security names: %w", err)
	}
	files, err := p.sources.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list source files: %w", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	p.log.Info("ingestion started",
		zap.String("run_id", report.RunID),
		zap.Int("files", len(files)),
		zap.Int("workers", p.workers),
	)

	report.Results = make([]FileResult, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				report.Results[i] = p.processFile(ctx, files[i], names)
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	p.log.Info("ingestion finished",
		zap.String("run_id", report.RunID),
		zap.Int("files", len(files)),
		zap.Int("failed", report.Failed()),
	)
	return report, nil
}

func (p *Pipeline) processFile(ctx context.Context, f SourceFile, names map[string]string) FileResult {
	res := FileResult{Symbol: f.Symbol}
	rows, err := p.sources.Load(ctx, f)
	if err == nil {
		for i := range rows {
			rows[i].Symbol = f.Symbol
			// Left enrichment: a symbol without a reference entry keeps a
			// NULL security name.
			if name, ok := names[f.Symbol]; ok {
				n := name
				rows[i].SecurityName = &n
			}
		}
		err = p.prices.Append(ctx, rows, p.batchSize)
	}
	if err != nil {
		res.Err = err
		p.audit.Error(ctx, f.Symbol, fmt.Sprintf("error processing stock file %s: %v", f.Path, err))
		return res
	}
	res.Rows = len(rows)
	p.audit.Info(ctx, f.Symbol, fmt.Sprintf("processed %d rows for %s", len(rows), f.Symbol))
	return res
}
