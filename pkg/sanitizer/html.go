package sanitizer

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
			"h2", "h3", "img",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.AllowAttrs("src", "alt").OnElements("img")
		safePolicy.RequireNoFollowOnLinks(true)
	})
}

// StripHTML removes every tag and returns plain text.
// Entities produced by the policy are decoded back, so "Tom & Jerry" survives
// unchanged while "<b>Tom</b>" becomes "Tom".
func StripHTML(s string) string {
	if s == "" {
		return s
	}
	initPolicies()
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// SanitizeHTML keeps basic formatting (paragraphs, emphasis, lists, code,
// links and images) and drops scripts, handlers and dangerous URLs.
// Used for blog post bodies rendered by clients.
func SanitizeHTML(s string) string {
	initPolicies()
	return safePolicy.Sanitize(s)
}

// SanitizeHTMLCustom applies a custom bluemonday policy.
// Returns input unchanged if policy is nil.
func SanitizeHTMLCustom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
