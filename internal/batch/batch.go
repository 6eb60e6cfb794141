// Package batch runs extraction and analysis over a list of resumes, one file
// at a time, turning every per-file failure into a Result.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/extract"
	"github.com/spigell/resume-analyzer/internal/logger"
)

var (
	// ErrNotFound marks a path that does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrNoFiles is returned when a batch has no files.
	ErrNoFiles = errors.New("no files uploaded")
	// ErrNoJobTitle is returned when the job title is blank.
	ErrNoJobTitle = errors.New("job title is required")
)

// Analyzer scores extracted resume text against a job title.
type Analyzer interface {
	Analyze(ctx context.Context, text, jobTitle string) (string, error)
}

// Upload is a resume received in memory, e.g. from a web form.
type Upload struct {
	Name string
	Data []byte
}

// Result is the outcome for one file. Err is nil when Analysis holds the
// model's answer.
type Result struct {
	Index    int    `json:"index"`
	File     string `json:"file"`
	Analysis string `json:"analysis,omitempty"`
	Err      error  `json:"-"`
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Summary counts batch outcomes.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Summarize counts successful and failed results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.OK() {
			s.Succeeded++
			continue
		}
		s.Failed++
	}
	return s
}

// Processor drives the extract-then-analyze sequence. It holds no per-batch
// state and may be shared.
type Processor struct {
	analyzer Analyzer
	logger   *zap.Logger
}

func New(analyzer Analyzer, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{analyzer: analyzer, logger: log}
}

// ValidateInput checks the batch-level guards. Nothing is processed when it
// returns an error.
func ValidateInput(count int, jobTitle string) error {
	if count == 0 {
		return ErrNoFiles
	}
	if strings.TrimSpace(jobTitle) == "" {
		return ErrNoJobTitle
	}
	return nil
}

// ProcessPath handles a single file on disk. index is the 1-based position
// reported back in the Result.
func (p *Processor) ProcessPath(ctx context.Context, index int, path, jobTitle string) Result {
	result := Result{Index: index, File: path}
	log := logger.ForResume(p.logger, index, path)

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result.Err = fmt.Errorf("%s: %w", path, ErrNotFound)
		} else {
			result.Err = err
		}
		log.Warn("resume skipped", zap.Error(result.Err))
		return result
	}

	if extract.DetectFormat(path) == extract.FormatUnknown {
		result.Err = fmt.Errorf("%s: %w", path, extract.ErrUnsupported)
		log.Warn("resume skipped", zap.Error(result.Err))
		return result
	}

	text, err := extract.File(path)
	if err != nil {
		result.Err = fmt.Errorf("extract: %w", err)
		log.Warn("extraction failed", zap.Error(err))
		return result
	}

	return p.analyze(ctx, log, result, text, jobTitle)
}

// ProcessUpload handles a single in-memory file.
func (p *Processor) ProcessUpload(ctx context.Context, index int, upload Upload, jobTitle string) Result {
	result := Result{Index: index, File: upload.Name}
	log := logger.ForResume(p.logger, index, upload.Name)

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	if extract.DetectFormat(upload.Name) == extract.FormatUnknown {
		result.Err = fmt.Errorf("%s: %w", upload.Name, extract.ErrUnsupported)
		log.Warn("resume skipped", zap.Error(result.Err))
		return result
	}

	text, err := extract.Bytes(upload.Name, upload.Data)
	if err != nil {
		result.Err = fmt.Errorf("extract: %w", err)
		log.Warn("extraction failed", zap.Error(err))
		return result
	}

	return p.analyze(ctx, log, result, text, jobTitle)
}

// ProcessPaths runs ProcessPath over every path in order.
func (p *Processor) ProcessPaths(ctx context.Context, paths []string, jobTitle string) ([]Result, error) {
	if err := ValidateInput(len(paths), jobTitle); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(paths))
	for i, path := range paths {
		results = append(results, p.ProcessPath(ctx, i+1, path, jobTitle))
	}

	p.logSummary(results)
	return results, nil
}

// ProcessUploads runs ProcessUpload over every upload in order.
func (p *Processor) ProcessUploads(ctx context.Context, uploads []Upload, jobTitle string) ([]Result, error) {
	if err := ValidateInput(len(uploads), jobTitle); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(uploads))
	for i, upload := range uploads {
		results = append(results, p.ProcessUpload(ctx, i+1, upload, jobTitle))
	}

	p.logSummary(results)
	return results, nil
}

func (p *Processor) analyze(ctx context.Context, log *zap.Logger, result Result, text, jobTitle string) Result {
	if p.analyzer == nil {
		result.Err = errors.New("analyzer is not configured")
		return result
	}

	analysis, err := p.analyzer.Analyze(ctx, text, jobTitle)
	if err != nil {
		result.Err = err
		log.Warn("analysis failed", zap.Error(err))
		return result
	}

	log.Info("resume analyzed", zap.String("job_title", jobTitle))
	result.Analysis = analysis
	return result
}

func (p *Processor) logSummary(results []Result) {
	s := Summarize(results)
	p.logger.Info("batch completed",
		zap.Int("total", s.Total),
		zap.Int("succeeded", s.Succeeded),
		zap.Int("failed", s.Failed),
	)
}
