package site

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// ContentProcessor post-processes the content of one output file.
type ContentProcessor interface {
	Handles(path string) bool
	Process(ctx context.Context, content, path string) (string, error)
}

// Report summarizes a ProcessDir run.
type Report struct {
	RunID     string
	Processed int
	Changed   int
	Skipped   int
	Duration  time.Duration
}

type pendingWrite struct {
	path    string
	content string
	perm    fs.FileMode
}

// ProcessDir runs every file under dir that proc handles through proc and
// rewrites files whose content changed. Files are processed one at a time in
// lexical order. Nothing is written unless every file succeeds.
func ProcessDir(ctx context.Context, dir string, proc ContentProcessor, rec metrics.Recorder) (report Report, err error) {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	report = Report{RunID: uuid.NewString()}
	start := time.Now()
	logger := slog.With(logfields.RunID(report.RunID))
	defer func() {
		report.Duration = time.Since(start)
		rec.ObserveRunDuration(report.Duration)
	}()

	var writes []pendingWrite
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !proc.Handles(path) {
			report.Skipped++
			rec.IncPageResult(metrics.ResultSkipped)
			return nil
		}
		w, changed, err := processFile(ctx, path, proc)
		if err != nil {
			rec.IncPageResult(metrics.ResultFailed)
			return err
		}
		report.Processed++
		if changed {
			writes = append(writes, w)
			report.Changed++
			rec.IncPageResult(metrics.ResultChanged)
		} else {
			rec.IncPageResult(metrics.ResultUnchanged)
		}
		logger.Debug("Processed file", logfields.Path(path), slog.Bool("changed", changed))
		return nil
	})
	if err != nil {
		if errors.IsClassified(err) {
			return report, err
		}
		if ctx.Err() != nil {
			return report, errors.WrapError(err, errors.CategoryRuntime, "post-processing cancelled").Build()
		}
		return report, errors.WrapError(err, errors.CategoryFileSystem, "failed to process output directory").
			WithContext("dir", dir).Build()
	}

	for _, w := range writes {
		if err := os.WriteFile(w.path, []byte(w.content), w.perm); err != nil {
			return report, errors.WrapError(err, errors.CategoryFileSystem, "failed to write output file").
				WithContext(logfields.KeyPath, w.path).Build()
		}
	}

	logger.Info("Post-processing complete",
		logfields.Pages(report.Processed),
		slog.Int("changed", report.Changed),
		slog.Int("skipped", report.Skipped),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return report, nil
}

func processFile(ctx context.Context, path string, proc ContentProcessor) (pendingWrite, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return pendingWrite{}, false, errors.WrapError(err, errors.CategoryFileSystem, "failed to read output file").
			WithContext(logfields.KeyPath, path).Build()
	}
	out, err := proc.Process(ctx, string(raw), path)
	if err != nil {
		return pendingWrite{}, false, err
	}
	if out == string(raw) {
		return pendingWrite{}, false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return pendingWrite{}, false, errors.WrapError(err, errors.CategoryFileSystem, "failed to stat output file").
			WithContext(logfields.KeyPath, path).Build()
	}
	return pendingWrite{path: path, content: out, perm: info.Mode().Perm()}, true, nil
}
