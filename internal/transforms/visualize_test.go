package transforms

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStages = []StageView{
	{Name: "html-transform", Extensions: []string{".html"}, Transforms: []string{NameAnchors, NameCodeLanguage}},
	{Name: "xml-minify", Extensions: []string{".xml"}},
}

func TestVisualizeText(t *testing.T) {
	out, err := Visualize(testStages, FormatText)
	require.NoError(t, err)
	assert.Contains(t, out, "Stage 1: html-transform (.html)")
	assert.Contains(t, out, "├── [anchors]")
	assert.Contains(t, out, "└── [code-language]")
	assert.Contains(t, out, "Stage 2: xml-minify (.xml)")
}

func TestVisualizeMermaid(t *testing.T) {
	out, err := Visualize(testStages, FormatMermaid)
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "input --> s0")
	assert.Contains(t, out, "s0 --> s1")
	assert.Contains(t, out, "s1 --> output")
}

func TestVisualizeJSON(t *testing.T) {
	out, err := Visualize(testStages, FormatJSON)
	require.NoError(t, err)

	var decoded struct {
		Stages []StageView `json:"stages"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, testStages, decoded.Stages)
}

func TestVisualizeUnsupported(t *testing.T) {
	_, err := Visualize(testStages, "dot")
	assert.Error(t, err)
	assert.Len(t, SupportedFormats(), 3)
}
