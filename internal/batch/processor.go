// Package batch processes several receipt documents concurrently.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"fjacquet/receipt-csv/internal/assembler"
	"fjacquet/receipt-csv/internal/extractor"
	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/models"
)

// Result is the outcome of processing one file.
// Invoice may be set together with Err when a strict total mismatch was reported.
type Result struct {
	File    string
	Invoice *models.Invoice
	Err     error
}

// Processor runs extraction and assembly over a worker pool.
type Processor struct {
	extractor   extractor.TextExtractor
	assembler   *assembler.Assembler
	logger      logging.Logger
	workerCount int
}

// NewProcessor creates a processor. A non-positive worker count uses runtime.NumCPU().
func NewProcessor(ext extractor.TextExtractor, asm *assembler.Assembler, logger logging.Logger, workers int) *Processor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Processor{
		extractor:   ext,
		assembler:   asm,
		logger:      logger,
		workerCount: workers,
	}
}

// Workers returns the size of the worker pool.
func (p *Processor) Workers() int { return p.workerCount }

type indexedFile struct {
	index int
	path  string
}

type indexedResult struct {
	index  int
	result Result
}

// ProcessFiles processes every file and returns one Result per input, in input order.
// Files not started before ctx is cancelled carry the context error.
func (p *Processor) ProcessFiles(ctx context.Context, files []string) []Result {
	results := make([]Result, len(files))
	if len(files) == 0 {
		return results
	}

	workers := p.workerCount
	if workers > len(files) {
		workers = len(files)
	}
	p.logger.Info("Processing receipt files",
		logging.F(logging.FieldCount, len(files)),
		logging.F(logging.FieldWorkers, workers))

	fileChan := make(chan indexedFile, workers)
	resultChan := make(chan indexedResult, len(files))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go p.worker(ctx, &wg, fileChan, resultChan)
	}

	go func() {
		defer close(fileChan)
		for i, f := range files {
			select {
			case fileChan <- indexedFile{index: i, path: f}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	done := make([]bool, len(files))
	for r := range resultChan {
		results[r.index] = r.result
		done[r.index] = true
	}

	for i, ok := range done {
		if !ok {
			results[i] = Result{File: files[i], Err: fmt.Errorf("file not processed: %w", ctx.Err())}
		}
	}
	return results
}

func (p *Processor) worker(ctx context.Context, wg *sync.WaitGroup, in <-chan indexedFile, out chan<- indexedResult) {
	defer wg.Done()
	for f := range in {
		if err := ctx.Err(); err != nil {
			out <- indexedResult{index: f.index, result: Result{File: f.path, Err: err}}
			continue
		}
		out <- indexedResult{index: f.index, result: p.ProcessFile(ctx, f.path)}
	}
}

// ProcessFile extracts and assembles a single file.
func (p *Processor) ProcessFile(ctx context.Context, path string) Result {
	log := p.logger.WithField(logging.FieldFile, path)

	text, err := p.extractor.ExtractText(ctx, path)
	if err != nil {
		log.WithError(err).Warn("Failed to extract text")
		return Result{File: path, Err: err}
	}

	inv, err := p.assembler.Parse(text)
	if err != nil {
		log.WithError(err).Warn("Failed to parse receipt")
	}
	return Result{File: path, Invoice: inv, Err: err}
}

// Summary counts the outcomes of a batch run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Invoices  []*models.Invoice
	Period    DateRange
}

// Summarize aggregates results. Invoices returned with an error are counted as failures
// but still listed, so strict mismatches can be exported for review.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
		} else {
			s.Succeeded++
		}
		if r.Invoice != nil {
			s.Invoices = append(s.Invoices, r.Invoice)
			s.Period = s.Period.Merge(DateRange{Start: r.Invoice.PaymentDate, End: r.Invoice.PaymentDate})
		}
	}
	return s
}
