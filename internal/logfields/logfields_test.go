package logfields

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Path", KeyPath, "dist/index.html", Path("dist/index.html")},
		{"Transform", KeyTransform, "anchors", Transform("anchors")},
		{"Stage", KeyStage, "html-minify", Stage("html-minify")},
		{"RunID", KeyRunID, "abc", RunID("abc")},
		{"Heading", KeyHeading, "Intro", Heading("Intro")},
		{"Pattern", KeyPattern, "images", Pattern("images")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.attrKey, c.attr.Key)
			assert.Equal(t, c.attrVal, c.attr.Value.String())
		})
	}
}

func TestNumericAndErrorHelpers(t *testing.T) {
	assert.Equal(t, int64(3), Pages(3).Value.Int64())
	assert.InDelta(t, 1.5, DurationMS(1.5).Value.Float64(), 0.0001)
	assert.Equal(t, "", Error(nil).Value.String())
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
}
