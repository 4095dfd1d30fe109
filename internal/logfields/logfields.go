package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyTransform  = "transform"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPages      = "pages"
	KeyRunID      = "run_id"
	KeyHeading    = "heading"
	KeyPattern    = "pattern"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Transform(n string) slog.Attr    { return slog.String(KeyTransform, n) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Heading(text string) slog.Attr   { return slog.String(KeyHeading, text) }
func Pattern(p string) slog.Attr      { return slog.String(KeyPattern, p) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
