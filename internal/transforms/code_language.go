package transforms

import (
	"context"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/dom"
)

// CodeLanguage copies the language-* class of a <code> block onto its <pre>
// parent and records it as data-language, which syntax highlighting styles
// key on. "lang-go" is normalized to "language-go".
func CodeLanguage(_ context.Context, doc dom.Document, _, _ string) error {
	codes, err := doc.QuerySelectorAll("code[class]")
	if err != nil {
		return err
	}
	for _, code := range codes {
		parent, ok := code.Parent()
		if !ok || parent.Tag() != "pre" {
			continue
		}
		class, _ := code.GetAttribute("class")
		lang := languageFromClass(class)
		if lang == "" {
			continue
		}
		addClass(parent, "language-"+lang)
		parent.SetAttribute("data-language", lang)
	}
	return nil
}

func languageFromClass(class string) string {
	for _, c := range strings.Fields(class) {
		if lang, ok := strings.CutPrefix(c, "language-"); ok && lang != "" {
			return lang
		}
		if lang, ok := strings.CutPrefix(c, "lang-"); ok && lang != "" {
			return lang
		}
	}
	return ""
}

func addClass(e dom.Element, class string) {
	existing, _ := e.GetAttribute("class")
	for _, c := range strings.Fields(existing) {
		if c == class {
			return
		}
	}
	if existing = strings.TrimSpace(existing); existing == "" {
		e.SetAttribute("class", class)
		return
	}
	e.SetAttribute("class", existing+" "+class)
}
