package transforms

import (
	"fmt"
	"sort"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Names of the built-in transforms.
const (
	NameAnchors      = "anchors"
	NameCodeLanguage = "code-language"
)

// catalog holds transforms selectable by name from configuration.
var catalog = map[string]Transform{}

// Register adds a named transform to the catalog (idempotent by name).
// Intended to be called from init().
func Register(name string, fn Transform) {
	if name == "" || fn == nil {
		return
	}
	if _, ok := catalog[name]; !ok {
		catalog[name] = fn
	}
}

// Lookup returns the catalog transform with the given name.
func Lookup(name string) (Transform, bool) {
	fn, ok := catalog[name]
	return fn, ok
}

// Available returns catalog names sorted alphabetically.
func Available() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs a pipeline running the named catalog transforms in the given order.
func Build(names []string, opts ...Option) (*Pipeline, error) {
	p := NewPipeline(opts...)
	for _, name := range names {
		fn, ok := Lookup(name)
		if !ok {
			return nil, errors.ConfigError(fmt.Sprintf("unknown transform %q", name)).
				WithContext("available", Available()).
				Build()
		}
		if err := p.Register(name, fn); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// --- Test helpers ---

// SnapshotForTest returns a shallow copy of the catalog.
func SnapshotForTest() map[string]Transform {
	cp := make(map[string]Transform, len(catalog))
	for k, v := range catalog {
		cp[k] = v
	}
	return cp
}

// RestoreForTest replaces the catalog with a snapshot.
func RestoreForTest(cp map[string]Transform) { catalog = cp }

func init() {
	Register(NameAnchors, Anchors)
	Register(NameCodeLanguage, CodeLanguage)
}
