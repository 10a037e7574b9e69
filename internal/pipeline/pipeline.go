// Package pipeline drives the mapper over dynamic documents: decode, bind the
// accessors named by a profile, map, encode.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"record-mapper/internal/binding"
	"record-mapper/internal/mapper"
	"record-mapper/internal/profile"
	"record-mapper/internal/record"
)

// Runner maps documents. It is safe for concurrent use.
type Runner struct {
	logger *zap.Logger
	cache  *profile.Cache
	ctor   *binding.Constructor
}

// Option configures a Runner.
type Option func(*Runner)

// WithConstructor makes typed-style mappings build results with ctor instead
// of mapper.Result.
func WithConstructor(ctor binding.Constructor) Option {
	return func(r *Runner) {
		r.ctor = &ctor
	}
}

// WithCache shares a profile cache between runners.
func WithCache(cache *profile.Cache) Option {
	return func(r *Runner) {
		r.cache = cache
	}
}

// NewRunner creates a Runner. A nil logger discards logs.
func NewRunner(logger *zap.Logger, opts ...Option) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Runner{logger: logger}
	for _, opt := range opts {
		opt(r)
	}

	if r.cache == nil {
		cache, err := profile.NewCache(profile.DefaultCacheSize)
		if err != nil {
			return nil, err
		}

		r.cache = cache
	}

	return r, nil
}

// Request is one mapping job.
type Request struct {
	// Input holds the encoded documents.
	Input []byte
	// InputFormat is the encoding of Input.
	InputFormat Format
	// OutputFormat is the encoding of the result; empty means InputFormat.
	OutputFormat Format
	// Settings configure the mapping.
	Settings profile.Settings
}

// Run decodes, maps and encodes one request.
func (r *Runner) Run(ctx context.Context, req Request) ([]byte, error) {
	start := time.Now()

	docs, err := req.InputFormat.Decode(req.Input)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("documents decoded",
		zap.Int("count", len(docs)),
		zap.String("format", string(req.InputFormat)))

	out, err := r.MapDocuments(ctx, docs, req.Settings)
	if err != nil {
		return nil, err
	}

	outFormat := req.OutputFormat
	if outFormat == "" {
		outFormat = req.InputFormat
	}

	data, err := outFormat.Encode(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode results as %s: %w", outFormat, err)
	}

	r.logger.Info("documents mapped",
		zap.Int("count", len(docs)),
		zap.Stringer("style", req.Settings.Style),
		zap.Stringer("nan", req.Settings.NaN),
		zap.Int("workers", req.Settings.Workers),
		zap.Duration("elapsed", time.Since(start)))

	return data, nil
}

// RunProfile runs req with the settings of the profile at path. Profiles are
// cached between calls.
func (r *Runner) RunProfile(ctx context.Context, path string, req Request) ([]byte, error) {
	p, err := r.cache.Load(path)
	if err != nil {
		return nil, err
	}

	settings, err := profile.Resolve(p, path)
	if err != nil {
		return nil, err
	}

	req.Settings = settings

	return r.Run(ctx, req)
}

// MapDocuments binds and maps docs. The result is a []mapper.Structural,
// a []mapper.Result[any, any, float64], or a []any built by the runner's
// constructor. Nothing is returned when any document fails.
func (r *Runner) MapDocuments(ctx context.Context, docs []record.Document, s profile.Settings) (any, error) {
	bound, err := record.BindAll(docs, s.Fields)
	if err != nil {
		return nil, err
	}

	opts := s.Options()

	switch {
	case s.Style == mapper.StyleTyped && r.ctor != nil:
		return r.construct(ctx, bound, opts)
	case s.Style == mapper.StyleTyped:
		return mapper.MapArrayParallel(ctx, bound, mapper.Typed[any, any, float64](), opts)
	default:
		return mapper.MapArrayParallel(ctx, bound, mapper.StructuralStrategy[any, any, float64](), opts)
	}
}

type constructed struct {
	value any
	err   error
}

func (r *Runner) construct(ctx context.Context, bound []record.Bound, opts mapper.Options) ([]any, error) {
	ctor := *r.ctor

	built, err := mapper.MapArrayParallel(ctx, bound, mapper.Construct(func(map1, map2 any, n float64) constructed {
		v, err := ctor.Call(map1, map2, n)
		return constructed{value: v, err: err}
	}), opts)
	if err != nil {
		return nil, err
	}

	out := make([]any, len(built))

	for i, c := range built {
		if c.err != nil {
			return nil, fmt.Errorf("document %d: %w", i, c.err)
		}

		out[i] = c.value
	}

	return out, nil
}
