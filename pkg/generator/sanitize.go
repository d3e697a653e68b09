package generator

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	contentPolicyOnce sync.Once
	contentPolicy     *bluemonday.Policy
)

// SanitizeHTML strips scripts, event handlers and unsafe URLs from markup
// while keeping ordinary content elements. Inline styles survive only as a
// validated color.
func SanitizeHTML(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(contentSanitizer().Sanitize(trimmed))
}

func contentSanitizer() *bluemonday.Policy {
	contentPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Globally()
		policy.AllowDataAttributes()
		policy.AllowStyles("color").Globally()
		policy.AllowElements("section", "main", "header", "footer", "nav", "label")
		policy.AllowAttrs("for").OnElements("label")
		contentPolicy = policy
	})
	return contentPolicy
}
