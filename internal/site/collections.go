package site

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Page is one content file selected into a collection.
type Page struct {
	// Input is the slash-separated path relative to the input directory.
	Input string
	URL   string
	Title string
	// Date is zero when the frontmatter has no usable date.
	Date time.Time
	Data map[string]any
	Body []byte
}

// OutputPath returns the file the page renders to, relative to the output directory.
func (p Page) OutputPath() string {
	if strings.HasSuffix(p.URL, "/") {
		return strings.TrimPrefix(p.URL, "/") + "index.html"
	}
	return strings.TrimPrefix(p.URL, "/")
}

// LoadCollection returns the pages under inputDir matching any of the globs,
// ordered by date and then input path.
func LoadCollection(inputDir string, patterns []string) ([]Page, error) {
	globs, err := compileGlobs(patterns)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid collection pattern").Fatal().Build()
	}

	var pages []Page
	err = filepath.WalkDir(inputDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(inputDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !matchAny(globs, rel) {
			return nil
		}
		page, err := loadPage(p, rel)
		if err != nil {
			return err
		}
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		if errors.IsClassified(err) {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to walk input directory").
			WithContext("dir", inputDir).Build()
	}

	sort.SliceStable(pages, func(i, j int) bool {
		if !pages[i].Date.Equal(pages[j].Date) {
			return pages[i].Date.Before(pages[j].Date)
		}
		return pages[i].Input < pages[j].Input
	})
	return pages, nil
}

func loadPage(file, rel string) (Page, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return Page{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to read page").
			WithContext(logfields.KeyPath, rel).Build()
	}
	fm, body, _, err := splitFrontMatter(raw)
	if err != nil {
		return Page{}, errors.WrapError(err, errors.CategoryParse, "invalid frontmatter").
			Fatal().WithContext(logfields.KeyPath, rel).Build()
	}
	data, err := parseFrontMatter(fm)
	if err != nil {
		return Page{}, errors.WrapError(err, errors.CategoryParse, "invalid frontmatter").
			Fatal().WithContext(logfields.KeyPath, rel).Build()
	}

	page := Page{Input: rel, URL: pageURL(rel), Data: data, Body: body}
	if title, ok := data["title"].(string); ok {
		page.Title = title
	}
	if permalink, ok := data["permalink"].(string); ok && permalink != "" {
		page.URL = "/" + strings.TrimPrefix(permalink, "/")
	}
	if d, ok := parseDate(data["date"]); ok {
		page.Date = d
	} else if raw, present := data["date"]; present {
		return Page{}, errors.ValidationError(fmt.Sprintf("unrecognized date %v", raw)).
			WithContext(logfields.KeyPath, rel).Build()
	}
	return page, nil
}

// pageURL maps "articles/foo/index.md" to "/articles/foo/" and "pages/about.md"
// to "/pages/about/".
func pageURL(rel string) string {
	trimmed := strings.TrimSuffix(rel, path.Ext(rel))
	if path.Base(trimmed) == "index" {
		dir := path.Dir(trimmed)
		if dir == "." {
			return "/"
		}
		return "/" + dir + "/"
	}
	return "/" + trimmed + "/"
}

var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05", time.DateOnly}

func parseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, true
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(d)); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
