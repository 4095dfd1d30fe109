package filters

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/config"
)

var linkAttr = regexp.MustCompile(`(^|\s)(src|href)="([^"]*)"`)

// Absolute rewrites src/href attributes in rendered page content so they work
// outside the site, e.g. in feed readers. Root-relative links get the site
// domain; document-relative links get the domain plus the page URL. Links that
// already carry a scheme, are protocol-relative, fragments, or mailto/tel/data
// URIs are left alone.
func Absolute(site config.SiteData, pageURL, content string) string {
	domain := strings.TrimRight(site.Domain, "/")
	base := pageURL
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	if !strings.HasSuffix(base, "/") {
		base = base[:strings.LastIndex(base, "/")+1]
	}

	return linkAttr.ReplaceAllStringFunc(content, func(match string) string {
		parts := linkAttr.FindStringSubmatch(match)
		lead, attr, target := parts[1], parts[2], parts[3]
		if !isRewritable(target) {
			return match
		}
		if strings.HasPrefix(target, "/") {
			return lead + attr + `="` + domain + target + `"`
		}
		return lead + attr + `="` + domain + base + strings.TrimPrefix(target, "./") + `"`
	})
}

func isRewritable(target string) bool {
	if target == "" || strings.HasPrefix(target, "#") || strings.HasPrefix(target, "//") {
		return false
	}
	if i := strings.IndexByte(target, ':'); i > 0 {
		// scheme per RFC 3986 only ever appears before the first slash
		if j := strings.IndexAny(target, "/?#"); j < 0 || i < j {
			return false
		}
	}
	return true
}
