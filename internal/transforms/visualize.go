package transforms

import (
	"encoding/json"
	"fmt"
	"strings"
)

// VisualizationFormat represents the output format for pipeline visualization.
type VisualizationFormat string

const (
	FormatText    VisualizationFormat = "text"
	FormatMermaid VisualizationFormat = "mermaid"
	FormatJSON    VisualizationFormat = "json"
)

// StageView describes one step of the page post-processing chain.
type StageView struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
	Transforms []string `json:"transforms,omitempty"`
}

// Visualize renders stages in the requested format.
func Visualize(stages []StageView, format VisualizationFormat) (string, error) {
	switch format {
	case FormatText:
		return visualizeText(stages), nil
	case FormatMermaid:
		return visualizeMermaid(stages), nil
	case FormatJSON:
		out, err := json.MarshalIndent(map[string]any{"stages": stages}, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// SupportedFormats lists the formats accepted by Visualize.
func SupportedFormats() []VisualizationFormat {
	return []VisualizationFormat{FormatText, FormatMermaid, FormatJSON}
}

func visualizeText(stages []StageView) string {
	var sb strings.Builder
	sb.WriteString("Post-processing Pipeline\n")
	sb.WriteString("========================\n\n")
	for i, st := range stages {
		fmt.Fprintf(&sb, "┌─ Stage %d: %s (%s)\n", i+1, st.Name, strings.Join(st.Extensions, ", "))
		for j, name := range st.Transforms {
			prefix := "├──"
			if j == len(st.Transforms)-1 {
				prefix = "└──"
			}
			fmt.Fprintf(&sb, "│ %s [%s]\n", prefix, name)
		}
		sb.WriteString("│\n")
	}
	sb.WriteString("└─ serialize\n")
	return sb.String()
}

func visualizeMermaid(stages []StageView) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	prev := "input"
	sb.WriteString("    input([rendered page])\n")
	for i, st := range stages {
		id := fmt.Sprintf("s%d", i)
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", id, st.Name)
		fmt.Fprintf(&sb, "    %s --> %s\n", prev, id)
		prev = id
		for j, name := range st.Transforms {
			tid := fmt.Sprintf("%s_t%d", id, j)
			fmt.Fprintf(&sb, "    %s(\"%s\")\n", tid, name)
			fmt.Fprintf(&sb, "    %s -.-> %s\n", id, tid)
		}
	}
	sb.WriteString("    output([written page])\n")
	fmt.Fprintf(&sb, "    %s --> output\n", prev)
	return sb.String()
}
