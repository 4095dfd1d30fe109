// Package transforms runs ordered DOM transforms over rendered HTML pages.
//
// A Pipeline parses a page once, hands the same Document to every registered
// transform in registration order and serializes the result once. A transform
// never starts before the previous one has returned. Any failure aborts the
// page; there is no partial output.
package transforms

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"git.home.luguber.info/inful/docsite/internal/dom"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Transform mutates a parsed page in place. raw is the unparsed page content and
// path the output path the page will be written to.
type Transform func(ctx context.Context, doc dom.Document, raw, path string) error

type loggerKey struct{}

// LoggerFrom returns the logger Pipeline.Run hands to its transforms, already
// carrying the page path and transform name. Outside a pipeline it returns
// slog.Default().
func LoggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

// DefaultExtensions lists output extensions the pipeline applies to.
var DefaultExtensions = []string{".html"}

type step struct {
	name string
	fn   Transform
}

// Pipeline is an ordered list of named transforms.
type Pipeline struct {
	steps      []step
	extensions []string
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithExtensions replaces the output extensions the pipeline applies to.
func WithExtensions(exts ...string) Option {
	return func(p *Pipeline) {
		p.extensions = append([]string(nil), exts...)
	}
}

// WithLogger sets the logger used for per-transform debug output.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPipeline creates an empty pipeline.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		extensions: append([]string(nil), DefaultExtensions...),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Register appends a transform. Names must be unique within a pipeline.
func (p *Pipeline) Register(name string, fn Transform) error {
	if name == "" || fn == nil {
		return errors.ValidationError("transform requires a name and a function").
			WithContext(logfields.KeyTransform, name).
			Build()
	}
	for _, s := range p.steps {
		if s.name == name {
			return errors.ValidationError(fmt.Sprintf("transform %q registered twice", name)).
				WithContext(logfields.KeyTransform, name).
				Build()
		}
	}
	p.steps = append(p.steps, step{name: name, fn: fn})
	return nil
}

// Names returns transform names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, 0, len(p.steps))
	for _, s := range p.steps {
		names = append(names, s.name)
	}
	return names
}

// Extensions returns the output extensions the pipeline applies to.
func (p *Pipeline) Extensions() []string {
	return append([]string(nil), p.extensions...)
}

// Applies reports whether path has one of the pipeline's extensions.
func (p *Pipeline) Applies(path string) bool {
	if path == "" {
		return false
	}
	for _, ext := range p.extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Run post-processes one page. Pages whose path does not match are returned unchanged.
func (p *Pipeline) Run(ctx context.Context, raw, path string) (string, error) {
	if !p.Applies(path) {
		return raw, nil
	}

	doc, err := dom.ParseString(raw)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryParse, "failed to parse HTML document").
			Fatal().
			WithContext(logfields.KeyPath, path).
			Build()
	}

	for _, s := range p.steps {
		if err := ctx.Err(); err != nil {
			return "", errors.WrapError(err, errors.CategoryRuntime, "page processing canceled").
				WithContext(logfields.KeyPath, path).
				WithContext(logfields.KeyTransform, s.name).
				Build()
		}
		start := time.Now()
		stepCtx := context.WithValue(ctx, loggerKey{}, p.logger.With(logfields.Path(path), logfields.Transform(s.name)))
		if err := s.fn(stepCtx, doc, raw, path); err != nil {
			return "", errors.WrapError(err, errors.CategoryTransform, fmt.Sprintf("transform %q failed", s.name)).
				Fatal().
				WithContext(logfields.KeyPath, path).
				WithContext(logfields.KeyTransform, s.name).
				Build()
		}
		p.logger.Debug("Transform applied",
			logfields.Path(path),
			logfields.Transform(s.name),
			logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	}

	out, err := doc.Render()
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryParse, "failed to serialize HTML document").
			Fatal().
			WithContext(logfields.KeyPath, path).
			Build()
	}
	return out, nil
}
