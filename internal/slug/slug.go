// Package slug turns free text such as heading titles into URL-safe identifiers.
//
// Slugs are lowercase ASCII. Accented Latin letters are folded to their base
// letter, other scripts are transliterated (Привет -> privet), every run of other characters collapses to a single separator and the
// result never starts or ends with a separator. Camel-case words are kept as one
// token unless decamelizing is switched on.
package slug

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultSeparator joins the words of a slug.
const DefaultSeparator = "-"

// replacements covers lowercase letters that have no canonical decomposition.
var replacements = map[rune]string{
	'&': " and ",
	'ß': "ss",
	'æ': "ae",
	'œ': "oe",
	'ø': "o",
	'đ': "d",
	'ð': "d",
	'ł': "l",
	'þ': "th",
	'ı': "i",
}

// Slugifier builds slugs with a fixed set of options. The zero value is not
// usable; construct one with New.
type Slugifier struct {
	separator  string
	decamelize bool
}

// Option configures a Slugifier.
type Option func(*Slugifier)

// WithSeparator sets the string placed between words.
func WithSeparator(sep string) Option {
	return func(s *Slugifier) { s.separator = sep }
}

// WithDecamelize controls whether "fooBar" becomes "foo-bar" (true) or "foobar" (false).
func WithDecamelize(on bool) Option {
	return func(s *Slugifier) { s.decamelize = on }
}

// New returns a Slugifier. By default it uses "-" and does not decamelize.
func New(opts ...Option) *Slugifier {
	s := &Slugifier{separator: DefaultSeparator}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSlugifier = New()

// Make slugifies text with the default options.
func Make(text string) string {
	return defaultSlugifier.Make(text)
}

// Make returns the slug for text. Text with no letters or digits yields "".
func (s *Slugifier) Make(text string) string {
	if s.decamelize {
		text = splitCamel(text)
	}
	text = fold(strings.ToLower(text))

	var b strings.Builder
	b.Grow(len(text))
	pending := false
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteString(s.separator)
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// fold replaces letters without a decomposition, strips combining marks and
// transliterates what is left outside ASCII.
func fold(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if rep, ok := replacements[r]; ok {
			b.WriteString(rep)
			continue
		}
		b.WriteRune(r)
	}
	// transform.Chain is stateful, so build one per call.
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, b.String())
	if err != nil {
		out = b.String()
	}
	if isASCII(out) {
		return out
	}
	// Transliterations may be capitalized ("日本" -> "Ri Ben").
	return strings.ToLower(unidecode.Unidecode(out))
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// splitCamel inserts a space at lower-to-upper and acronym-to-word boundaries.
func splitCamel(text string) string {
	rs := []rune(text)
	var b strings.Builder
	b.Grow(len(text) + 8)
	for i, r := range rs {
		if i > 0 && unicode.IsUpper(r) {
			prev := rs[i-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
