// Package markup holds the text helpers every fragment renderer goes through:
// entity escaping, link normalization and mail URL composition.
package markup

import (
	"net/url"
	"strings"
)

// Order matters: '&' is replaced first so later entities are not re-escaped.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape replaces the five markup-significant characters with entities.
// Already escaped input is escaped again: Escape("&amp;") is "&amp;amp;".
func Escape(s string) string {
	return escaper.Replace(s)
}

// NormalizeURL turns a bare host/path into an absolute https URL. Empty input
// yields "". The result is not validated.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "https://" + strings.TrimLeft(u, "/")
}

// Mailto builds a mail composition URL. Empty subject or body are left out.
func Mailto(to, subject, body string) string {
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(encode(to))

	sep := "?"
	if subject != "" {
		b.WriteString(sep + "subject=" + encode(subject))
		sep = "&"
	}
	if body != "" {
		b.WriteString(sep + "body=" + encode(body))
	}
	return b.String()
}

// encode percent-encodes for mailto (RFC 6068): spaces become %20, not '+'.
func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
