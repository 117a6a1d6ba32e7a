// Package engine orchestrates the comparison pipeline: extraction,
// normalization, the word-level diff, block matching, and rule
// filtering. It is the library entry point; the CLI and TUI are thin
// layers over Engine.Run.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/posidlab/pdfcompare/internal/swarm"
	"github.com/posidlab/pdfcompare/pkg/config"
	"github.com/posidlab/pdfcompare/pkg/engine/history"
	"github.com/posidlab/pdfcompare/pkg/engine/normalize"
	"github.com/posidlab/pdfcompare/pkg/engine/rules"
	"github.com/posidlab/pdfcompare/pkg/pdf"
	"github.com/posidlab/pdfcompare/pkg/telemetry"
	"github.com/posidlab/pdfcompare/pkg/version"
)

// ErrPartialResult indicates the comparison completed but some pages
// could not be extracted.
var ErrPartialResult = errors.New("comparison completed with partial results")

// Config holds engine settings.
type Config struct {
	LeftPath  string
	RightPath string

	RulesPath      string // .hcl file or a directory of them
	DictionaryPath string
	OutputDir      string
	HistoryPath    string // ledger file, empty for the default

	SkipPlaceholders bool
	MaxConcurrency   int
	JsonLogs         bool
	Verbose          bool

	// StrictMode forces a non-zero exit code when pages fail to extract.
	StrictMode bool

	// Telemetry config.
	OtelEndpoint  string
	SkipTelemetry bool

	// Tuning overrides. Zero values fall back to the defaults.
	Match  config.MatchConfig
	Diff   config.DiffConfig
	Layout config.LayoutConfig

	// Dependencies.
	Logger *slog.Logger
}

// Opener produces an extractor for a document path. Tests substitute
// synthetic extractors through this.
type Opener func(path string) (pdf.Extractor, error)

// Engine is the runtime core.
type Engine struct {
	Swarm  *swarm.Engine
	Logger *slog.Logger
	Tracer trace.Tracer

	History *history.Client

	config    Config
	outputDir string
	open      Opener
	shutdown  func(context.Context) error

	match  config.MatchConfig
	diff   config.DiffConfig
	layout config.LayoutConfig

	rules *rules.Engine
	dict  *normalize.Dictionary
}

// Option defines a functional configuration override.
type Option func(*Engine)

// New initializes the Engine.
func New(ctx context.Context, opts ...Option) (*Engine, error) {
	e := &Engine{
		Tracer:    telemetry.Tracer("pdfcompare/engine"),
		outputDir: config.DefaultOutputDir,
		open:      defaultOpener,
		match:     config.DefaultMatchConfig(),
		diff:      config.DefaultDiffConfig(),
		layout:    config.DefaultLayoutConfig(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.Logger == nil {
		e.Logger = newLogger(e.config)
	}

	if e.Swarm == nil {
		workers := e.config.MaxConcurrency
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		e.Swarm = swarm.NewEngine(workers)
	}

	slog.SetDefault(e.Logger)

	if !e.config.SkipTelemetry {
		shutdown, err := telemetry.Init(ctx, version.AppName, version.Current, e.config.OtelEndpoint)
		if err != nil {
			e.Logger.Warn("telemetry init failed", "error", err)
		} else {
			e.shutdown = shutdown
		}
	}

	var backend history.Backend
	if e.config.HistoryPath != "" {
		backend = history.NewLocalBackend(e.config.HistoryPath)
	}
	e.History = history.NewClient(backend)

	if e.config.DictionaryPath != "" {
		dict, err := normalize.LoadDictionary(e.config.DictionaryPath)
		if err != nil {
			return nil, fmt.Errorf("load dictionary: %w", err)
		}
		e.dict = dict
	}

	if err := e.loadRules(); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Engine) loadRules() error {
	if e.config.RulesPath == "" {
		return nil
	}

	info, err := os.Stat(e.config.RulesPath)
	if err != nil {
		return fmt.Errorf("rules path: %w", err)
	}

	var loaded []rules.Rule
	if info.IsDir() {
		loaded, err = rules.LoadDir(e.config.RulesPath)
	} else {
		loaded, err = rules.LoadFile(e.config.RulesPath)
	}
	if err != nil {
		return err
	}
	if len(loaded) == 0 {
		return nil
	}

	engine, err := rules.NewEngine()
	if err != nil {
		return err
	}
	if err := engine.Compile(loaded); err != nil {
		return err
	}
	e.rules = engine
	e.Logger.Info("rules loaded", "count", len(loaded), "path", e.config.RulesPath)
	return nil
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.Logger = l
	}
}

// WithConcurrency sets the worker pool size.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.Swarm = swarm.NewEngine(n)
		}
	}
}

// WithOpener overrides how document paths become extractors.
func WithOpener(open Opener) Option {
	return func(e *Engine) {
		e.open = open
	}
}

// WithConfig sets raw config.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.config = cfg
		if cfg.OutputDir != "" {
			e.outputDir = cfg.OutputDir
		}
		if cfg.Logger != nil {
			e.Logger = cfg.Logger
		}
		if cfg.Match.SimilarityThreshold > 0 {
			e.match.SimilarityThreshold = cfg.Match.SimilarityThreshold
		}
		if cfg.Match.SectionTypeBonus > 0 {
			e.match.SectionTypeBonus = cfg.Match.SectionTypeBonus
		}
		if cfg.Diff.Lookahead > 0 {
			e.diff.Lookahead = cfg.Diff.Lookahead
		}
		if cfg.Diff.MaxMerge > 0 {
			e.diff.MaxMerge = cfg.Diff.MaxMerge
		}
		if cfg.Layout.HeaderYMax > 0 {
			e.layout.HeaderYMax = cfg.Layout.HeaderYMax
		}
		if cfg.Layout.FooterYMin > 0 {
			e.layout.FooterYMin = cfg.Layout.FooterYMin
		}
		if cfg.Layout.SameLineThreshold > 0 {
			e.layout.SameLineThreshold = cfg.Layout.SameLineThreshold
		}
	}
}

// Close flushes pending telemetry spans.
func (e *Engine) Close(ctx context.Context) error {
	if e.shutdown == nil {
		return nil
	}
	return e.shutdown(ctx)
}

// OutputDir returns the directory generated artifacts go to.
func (e *Engine) OutputDir() string {
	return e.outputDir
}

func defaultOpener(path string) (pdf.Extractor, error) {
	return pdf.Open(path)
}

// Run executes the full comparison.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	ctx, span := e.Tracer.Start(ctx, "Engine.Run")
	defer span.End()
	defer e.recoverPanic(ctx)

	e.Logger.Info("starting comparison",
		"left", e.config.LeftPath,
		"right", e.config.RightPath,
	)

	left, err := e.open(e.config.LeftPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", e.config.LeftPath, err)
	}
	defer left.Close()

	right, err := e.open(e.config.RightPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", e.config.RightPath, err)
	}
	defer right.Close()

	e.Swarm.Start(ctx)
	result := e.runPipeline(ctx, left, right)
	e.Swarm.Stop()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.recordRun(result)

	if result.Partial {
		span.SetAttributes(
			attribute.Bool("compare.partial", true),
			attribute.Int("compare.failed_pages", len(result.FailedPages)),
		)
		if e.config.StrictMode {
			e.Logger.Error("strict mode: failing due to partial extraction",
				"failed_pages", result.FailedPages)
			return result, ErrPartialResult
		}
		e.Logger.Warn("comparison finished with extraction errors",
			"failed_pages", result.FailedPages)
	}

	return result, nil
}

func (e *Engine) recordRun(r *Result) {
	if r == nil {
		return
	}
	counts := r.BlockCounts()
	err := e.History.Append(history.Snapshot{
		Timestamp:  r.GeneratedAt.Unix(),
		LeftPath:   r.LeftPath,
		RightPath:  r.RightPath,
		Pages:      r.Pages,
		Similarity: r.OverallSimilarity,
		Modified:   counts.Modified,
		Deleted:    counts.Deleted,
		Added:      counts.Added,
		Partial:    r.Partial,
	})
	if err != nil {
		e.Logger.Warn("history append failed", "error", err)
	}
}

// recoverPanic handles failures.
func (e *Engine) recoverPanic(ctx context.Context) {
	if r := recover(); r != nil {
		tr := otel.Tracer("pdfcompare/engine")
		_, span := tr.Start(ctx, "CriticalPanic")

		stack := debug.Stack()
		span.RecordError(fmt.Errorf("%v", r), trace.WithStackTrace(true))
		span.SetStatus(codes.Error, "CRITICAL FAILURE")
		span.SetAttributes(
			attribute.String("crash.stack", string(stack)),
			attribute.String("crash.reason", fmt.Sprintf("%v", r)),
		)
		span.End()

		e.Logger.Error("CRITICAL FAILURE", "error", r, "stack", string(stack))
	}
}

// newLogger builds the default logger from config. Logs go to stderr
// so report output on stdout stays parseable.
func newLogger(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{ReplaceAttr: redactSensitiveData}
	if cfg.Verbose {
		opts.Level = slog.LevelDebug
	} else {
		opts.Level = slog.LevelWarn
	}
	if cfg.JsonLogs {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// redactSensitiveData scrubs sensitive keys from logs.
func redactSensitiveData(groups []string, a slog.Attr) slog.Attr {
	sensitiveKeys := map[string]bool{
		"password": true, "token": true, "secret": true, "api_key": true,
		"auth_token": true, "credential": true, "private_key": true,
	}
	if sensitiveKeys[a.Key] {
		return slog.Attr{
			Key:   a.Key,
			Value: slog.StringValue("[REDACTED]"),
		}
	}
	return a
}
