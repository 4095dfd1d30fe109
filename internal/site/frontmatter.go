package site

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// splitFrontMatter separates `---` delimited YAML frontmatter from the body.
// Documents without frontmatter return had=false and the full input as body.
func splitFrontMatter(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := []byte("\n")
	if bytes.HasPrefix(content, []byte("---\r\n")) {
		nl = []byte("\r\n")
	} else if !bytes.HasPrefix(content, []byte("---\n")) {
		return nil, content, false, nil
	}

	start := 3 + len(nl)
	closing := append(append([]byte{}, nl...), []byte("---")...)
	if bytes.HasPrefix(content[start:], []byte("---")) {
		rest := content[start+3:]
		return []byte{}, bytes.TrimPrefix(rest, nl), true, nil
	}
	idx := bytes.Index(content[start:], closing)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	end := start + idx
	rest := content[end+len(closing):]
	return content[start:end], bytes.TrimPrefix(rest, nl), true, nil
}

// parseFrontMatter decodes YAML frontmatter into a map.
func parseFrontMatter(fm []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(fm)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(fm, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}
