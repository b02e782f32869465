package executor

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/fieldflow/config"
	"github.com/kbukum/fieldflow/errors"
	"github.com/kbukum/fieldflow/field"
	"github.com/kbukum/fieldflow/logger"
	"github.com/kbukum/fieldflow/resolver"
	"go.opentelemetry.io/otel"
)

// Middleware decorates a transformer looked up from the registry.
type Middleware func(Transformer) Transformer

// Engine evaluates a field catalog wave by wave.
type Engine struct {
	// MaxParallel limits concurrent fields per wave (0 = unlimited).
	MaxParallel int
	// FieldTimeout bounds a single transformation (0 = no limit).
	FieldTimeout time.Duration
	Registry     *Registry
	Logger       *logger.Logger
	// Middleware wraps every transformer; the first entry is outermost.
	Middleware []Middleware
}

// NewEngine builds an engine from executor configuration. Logging is always
// attached, using the global logger when log is nil; tracing and metrics use
// the global OpenTelemetry providers when enabled.
func NewEngine(cfg config.ExecutorConfig, registry *Registry, log *logger.Logger) (*Engine, error) {
	if registry == nil {
		registry = NewRegistry()
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log = log.WithComponent("executor")

	e := &Engine{
		MaxParallel:  cfg.MaxParallel,
		FieldTimeout: cfg.FieldTimeout,
		Registry:     registry,
		Logger:       log,
	}
	e.Middleware = append(e.Middleware, func(t Transformer) Transformer { return WithLogging(t, log) })
	if cfg.Tracing {
		tracer := otel.Tracer(instrumentationName)
		e.Middleware = append(e.Middleware, func(t Transformer) Transformer { return WithTracing(t, tracer) })
	}
	if cfg.Metrics {
		m, err := NewMetrics(otel.Meter(instrumentationName))
		if err != nil {
			return nil, errors.Internal(err)
		}
		e.Middleware = append(e.Middleware, func(t Transformer) Transformer { return WithMetrics(t, m) })
	}
	return e, nil
}

// Run evaluates fields. Leaf values are looked up in leaves by field id,
// then by field name.
//
// A catalog that does not pass dependency validation is rejected before any
// transformer runs. Failures of individual fields do not abort the run:
// they are recorded in the result and the fields depending on them are
// skipped. Cancelling ctx stops the run before the next wave.
func (e *Engine) Run(ctx context.Context, fields []field.Field, leaves map[string]field.Value) (*Result, error) {
	start := time.Now()
	log := e.logger()

	schedule, err := resolver.Plan(fields)
	if err != nil {
		log.Warn("catalog rejected", logger.ErrorFields("plan", err), logger.Fields(
			logger.FieldDiagnostics, len(resolver.Diagnostics(err)),
		))
		return nil, err
	}

	results := NewResults()
	result := &Result{
		Fields: make(map[string]FieldResult, len(schedule.Graph.Order)),
		Waves:  len(schedule.Waves),
	}

	for _, wave := range schedule.Waves {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		log.Debug("wave started", logger.Fields(
			logger.FieldWave, wave.Number,
			logger.FieldWaveSize, len(wave.Fields),
		))

		var toRun []field.Field
		for _, f := range wave.Fields {
			if !f.IsTransformation {
				result.Fields[f.ID] = e.evaluateLeaf(f, wave.Number, leaves, results)
				continue
			}
			if blocked, ok := blockedBy(schedule.Graph, f, result); ok {
				result.Fields[f.ID] = FieldResult{
					FieldID: f.ID,
					Name:    f.Name,
					Wave:    wave.Number,
					Status:  StatusSkipped,
				}
				log.Debug("field skipped", logger.Fields(
					logger.FieldFieldName, f.Name,
					"blocked_by", blocked,
				))
				continue
			}
			toRun = append(toRun, f)
		}

		if len(toRun) == 0 {
			continue
		}
		e.executeWave(ctx, schedule.Graph, wave.Number, toRun, results, result)
	}

	result.Duration = time.Since(start)
	log.Info("run finished", logger.DurationFields("run", result.Duration), logger.Fields(
		"waves", result.Waves,
		"completed", len(result.ByStatus(StatusCompleted)),
		"failed", len(result.ByStatus(StatusFailed)),
		"skipped", len(result.ByStatus(StatusSkipped)),
	))
	return result, nil
}

func (e *Engine) evaluateLeaf(f field.Field, wave int, leaves map[string]field.Value, results *Results) FieldResult {
	fr := FieldResult{FieldID: f.ID, Name: f.Name, Wave: wave}
	v, ok := leaves[f.ID]
	if !ok {
		v, ok = leaves[f.Name]
	}
	if !ok {
		fr.Status = StatusSkipped
		fr.Value = field.Null()
		return fr
	}
	results.Set(f.ID, v)
	fr.Status = StatusCompleted
	fr.Value = v
	return fr
}

// blockedBy returns the name of the first dependency of f that did not
// complete.
func blockedBy(g *resolver.Graph, f field.Field, result *Result) (string, bool) {
	for _, id := range g.Dependencies(f.ID) {
		if fr, ok := result.Fields[id]; !ok || fr.Status != StatusCompleted {
			return g.Nodes[id].Name, true
		}
	}
	return "", false
}

func (e *Engine) executeWave(ctx context.Context, g *resolver.Graph, wave int, fields []field.Field, results *Results, result *Result) {
	var mu sync.Mutex
	var wg sync.WaitGroup

	sem := make(chan struct{}, e.concurrency(len(fields)))

	for _, f := range fields {
		deps := make([]field.Field, 0, len(g.Edges[f.ID]))
		for _, id := range g.Dependencies(f.ID) {
			deps = append(deps, g.Nodes[id])
		}
		in := newInputs(deps, results)

		wg.Add(1)
		go func(f field.Field) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			fr := e.executeField(ctx, f, in)
			fr.Wave = wave
			if fr.Status == StatusCompleted {
				results.Set(f.ID, fr.Value)
			}
			mu.Lock()
			result.Fields[f.ID] = fr
			mu.Unlock()
		}(f)
	}

	wg.Wait()
}

func (e *Engine) executeField(ctx context.Context, f field.Field, in Inputs) (fr FieldResult) {
	start := time.Now()
	fr = FieldResult{FieldID: f.ID, Name: f.Name}
	defer func() {
		if r := recover(); r != nil {
			fr.Status = StatusFailed
			fr.Error = errors.Internal(fmt.Errorf("transformer for %q panicked: %v", f.Name, r))
		}
		fr.Duration = time.Since(start)
	}()

	t, ok := e.transformer(f)
	if !ok {
		fr.Status = StatusFailed
		fr.Error = errors.NotFound("transformer", f.Name)
		return fr
	}

	if e.FieldTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.FieldTimeout)
		defer cancel()
	}

	v, err := t.Transform(ctx, f, in)
	if err != nil {
		fr.Status = StatusFailed
		fr.Error = classify(ctx, f, err)
		return fr
	}
	fr.Status = StatusCompleted
	fr.Value = v
	return fr
}

func classify(ctx context.Context, f field.Field, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Timeout("transform " + f.Name).WithCause(err)
	}
	if errors.IsAppError(err) {
		return err
	}
	return errors.TransformFailed(f.Name, err)
}

func (e *Engine) transformer(f field.Field) (Transformer, bool) {
	if e.Registry == nil {
		return nil, false
	}
	t, ok := e.Registry.Lookup(f)
	if !ok {
		return nil, false
	}
	for i := len(e.Middleware) - 1; i >= 0; i-- {
		t = e.Middleware[i](t)
	}
	return t, true
}

func (e *Engine) logger() *logger.Logger {
	if e.Logger == nil {
		return logger.Nop()
	}
	return e.Logger
}

func (e *Engine) concurrency(waveSize int) int {
	if e.MaxParallel <= 0 || e.MaxParallel > waveSize {
		return waveSize
	}
	return e.MaxParallel
}
