// Package postprocess runs rendered output files through an ordered chain of
// content stages (DOM transforms, minifiers). Each stage declares the output
// extensions it handles; other content passes through it untouched.
package postprocess

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/transforms"
)

// Stage names.
const (
	StageHTMLTransform = "html-transform"
	StageHTMLMinify    = "html-minify"
	StageXMLMinify     = "xml-minify"
)

// ApplyFunc transforms the content of one output file.
type ApplyFunc func(ctx context.Context, content, path string) (string, error)

// Stage is one named step of the chain.
type Stage struct {
	Name       string
	Extensions []string
	Apply      ApplyFunc
	// Transforms lists DOM transform names for visualization only.
	Transforms []string
}

// Handles reports whether the stage applies to path.
func (s Stage) Handles(path string) bool {
	for _, ext := range s.Extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Processor applies stages in order.
type Processor struct {
	stages   []Stage
	recorder metrics.Recorder
}

// Option configures a Processor.
type Option func(*Processor)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Processor) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithStage appends a stage.
func WithStage(s Stage) Option {
	return func(p *Processor) { p.stages = append(p.stages, s) }
}

// New creates a processor from explicit stages.
func New(opts ...Option) *Processor {
	p := &Processor{recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FromConfig builds the standard chain: DOM transforms, then HTML and XML
// minification when enabled.
func FromConfig(cfg config.PostprocessConfig, opts ...Option) (*Processor, error) {
	pipeline, err := transforms.Build(cfg.HTMLTransforms, transforms.WithExtensions(cfg.Extensions...))
	if err != nil {
		return nil, err
	}
	stages := []Option{WithStage(PipelineStage(pipeline))}
	if cfg.MinifyHTML {
		stages = append(stages, WithStage(HTMLMinifyStage()))
	}
	if cfg.MinifyXML {
		stages = append(stages, WithStage(XMLMinifyStage()))
	}
	return New(append(stages, opts...)...), nil
}

// PipelineStage wraps a DOM transform pipeline as a stage.
func PipelineStage(p *transforms.Pipeline) Stage {
	return Stage{
		Name:       StageHTMLTransform,
		Extensions: p.Extensions(),
		Apply:      p.Run,
		Transforms: p.Names(),
	}
}

// Stages returns the configured stages in order.
func (p *Processor) Stages() []Stage {
	return append([]Stage(nil), p.stages...)
}

// Views describes the chain for visualization.
func (p *Processor) Views() []transforms.StageView {
	views := make([]transforms.StageView, 0, len(p.stages))
	for _, s := range p.stages {
		views = append(views, transforms.StageView{Name: s.Name, Extensions: s.Extensions, Transforms: s.Transforms})
	}
	return views
}

// Handles reports whether any stage applies to path.
func (p *Processor) Handles(path string) bool {
	for _, s := range p.stages {
		if s.Handles(path) {
			return true
		}
	}
	return false
}

// Process runs content through every stage that handles path. The first
// failure aborts; its error carries the page path.
func (p *Processor) Process(ctx context.Context, content, path string) (string, error) {
	for _, s := range p.stages {
		if !s.Handles(path) {
			continue
		}
		start := time.Now()
		out, err := s.Apply(ctx, content, path)
		p.recorder.ObserveStageDuration(s.Name, time.Since(start))
		p.recorder.IncStageResult(s.Name, err == nil)
		if err != nil {
			if errors.IsClassified(err) {
				return "", err
			}
			return "", errors.WrapError(err, errors.CategoryBuild, fmt.Sprintf("stage %q failed", s.Name)).
				Fatal().
				WithContext(logfields.KeyPath, path).
				WithContext(logfields.KeyStage, s.Name).
				Build()
		}
		slog.Debug("Stage applied", logfields.Stage(s.Name), logfields.Path(path))
		content = out
	}
	return content, nil
}
