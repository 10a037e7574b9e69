// Package bench measures the mapping strategies against each other: a fixed
// batch of random records, a warmup phase, then timed iterations per case.
package bench

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"record-mapper/internal/binding"
	"record-mapper/internal/mapper"
	"record-mapper/internal/pipeline"
	"record-mapper/internal/profile"
	"record-mapper/internal/record"
)

// Default run shape.
const (
	DefaultWarmup     = 100
	DefaultIterations = 1000
	DefaultSize       = 100
	DefaultWorkers    = 4
)

// Case names.
const (
	CaseTyped       = "typed"
	CaseStructural  = "structural"
	CaseConstructor = "constructor"
	CaseDocument    = "document"
	CaseParallel    = "parallel"
)

// AllCases lists every case in run order.
var AllCases = []string{CaseTyped, CaseStructural, CaseConstructor, CaseDocument, CaseParallel}

var ErrUnknownCase = errors.New("unknown bench case")

// Config controls a run.
type Config struct {
	Warmup     int
	Iterations int
	Size       int
	Workers    int
	Seed       uint64
	Cases      []string
}

// DefaultConfig returns a Config with every case and the default run shape.
func DefaultConfig() Config {
	return Config{
		Warmup:     DefaultWarmup,
		Iterations: DefaultIterations,
		Size:       DefaultSize,
		Workers:    DefaultWorkers,
		Cases:      AllCases,
	}
}

// Report is the outcome of one case.
type Report struct {
	Case       string        `json:"case"`
	Iterations int           `json:"iterations"`
	Total      time.Duration `json:"total"`
	PerOp      time.Duration `json:"per_op"`
}

type typedResult = mapper.Result[string, string, float64]

// caseFunc maps the batch once and returns the typed results.
type caseFunc func(ctx context.Context) ([]typedResult, error)

// Run executes the configured cases and returns one report per case.
func Run(ctx context.Context, cfg Config, logger *zap.Logger) ([]Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.Iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", cfg.Iterations)
	}

	if cfg.Size < 0 {
		return nil, fmt.Errorf("size must not be negative, got %d", cfg.Size)
	}

	cases := cfg.Cases
	if len(cases) == 0 {
		cases = AllCases
	}

	originals := record.Random(cfg.Size, rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)))

	fns := make([]caseFunc, len(cases))
	for i, name := range cases {
		fn, err := newCase(name, originals, cfg.Workers)
		if err != nil {
			return nil, err
		}

		fns[i] = fn
	}

	reports := make([]Report, 0, len(cases))

	for i, name := range cases {
		log := logger.With(zap.String("case", name))

		log.Info("warming up", zap.Int("iterations", cfg.Warmup))

		for range cfg.Warmup {
			if _, err := fns[i](ctx); err != nil {
				return nil, fmt.Errorf("%s warmup: %w", name, err)
			}
		}

		log.Info("warmup finished, now measuring", zap.Int("iterations", cfg.Iterations))

		var (
			total  time.Duration
			sample []typedResult
		)

		for range cfg.Iterations {
			start := time.Now()

			out, err := fns[i](ctx)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}

			total += time.Since(start)
			sample = out
		}

		if len(sample) > 0 && log.Core().Enabled(zap.DebugLevel) {
			log.Debug("sample result", zap.String("dump", spew.Sdump(sample[0])))
		}

		report := Report{
			Case:       name,
			Iterations: cfg.Iterations,
			Total:      total,
			PerOp:      total / time.Duration(cfg.Iterations),
		}

		log.Info("case finished", zap.Duration("total", report.Total), zap.Duration("per_op", report.PerOp))

		reports = append(reports, report)
	}

	return reports, nil
}

func newCase(name string, originals []record.Original, workers int) (caseFunc, error) {
	toFloat := func(a, b string, n int) typedResult {
		return mapper.NewResult(a, b, float64(n))
	}

	switch name {
	case CaseTyped:
		build := mapper.Construct(toFloat)

		return func(context.Context) ([]typedResult, error) {
			return mapper.MapArray(originals, build), nil
		}, nil

	case CaseStructural:
		build := mapper.StructuralStrategy[string, string, int]()

		return func(context.Context) ([]typedResult, error) {
			return viaJSON(mapper.MapArray(originals, build))
		}, nil

	case CaseConstructor:
		ctor, err := binding.ParseConstructor(toFloat)
		if err != nil {
			return nil, err
		}

		return func(context.Context) ([]typedResult, error) {
			out := make([]typedResult, len(originals))

			for i, o := range originals {
				v, err := ctor.Call(o.El1(), o.El2(), float64(mapper.Clamp(o.I())))
				if err != nil {
					return nil, err
				}

				out[i] = v.(typedResult)
			}

			return out, nil
		}, nil

	case CaseDocument:
		input, err := json.Marshal(originals)
		if err != nil {
			return nil, err
		}

		runner, err := pipeline.NewRunner(nil)
		if err != nil {
			return nil, err
		}

		req := pipeline.Request{Input: input, InputFormat: pipeline.FormatJSON, Settings: profile.DefaultSettings()}

		return func(ctx context.Context) ([]typedResult, error) {
			data, err := runner.Run(ctx, req)
			if err != nil {
				return nil, err
			}

			var out []typedResult
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, err
			}

			return out, nil
		}, nil

	case CaseParallel:
		build := mapper.Construct(toFloat)
		opts := mapper.Options{Workers: workers}

		return func(ctx context.Context) ([]typedResult, error) {
			return mapper.MapArrayParallel(ctx, originals, build, opts)
		}, nil

	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownCase, name)
	}
}

// viaJSON converts intermediate results into typed results through their JSON
// encoding.
func viaJSON(v any) ([]typedResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var out []typedResult
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}

	return out, nil
}
