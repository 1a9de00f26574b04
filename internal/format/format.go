// Package format holds the text helpers shared by the dashboard views and
// the CLI output.
package format

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// Relative renders t relative to now, e.g. "3 hours ago".
func Relative(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// Duration renders a span in words, e.g. "2 days".
func Duration(d time.Duration) string {
	if d <= 0 {
		return "now"
	}
	var base time.Time
	return strings.TrimSpace(humanize.RelTime(base, base.Add(d), "", ""))
}

// Preview collapses whitespace and truncates s to at most n runes.
func Preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:n-1]), " ") + "…"
}

// Highlight wraps every case-insensitive occurrence of query in text with
// mark. Matching is done on lowercased runes so byte offsets stay valid for
// ASCII and most Latin text; when lowercasing changes the length the text
// is returned unmarked.
func Highlight(text, query string, mark func(string) string) string {
	if query == "" {
		return text
	}
	lower := strings.ToLower(text)
	q := strings.ToLower(query)
	if len(lower) != len(text) {
		return text
	}

	var b strings.Builder
	for {
		i := strings.Index(lower, q)
		if i < 0 {
			b.WriteString(text)
			break
		}
		b.WriteString(text[:i])
		b.WriteString(mark(text[i : i+len(q)]))
		text = text[i+len(q):]
		lower = lower[i+len(q):]
	}
	return b.String()
}

// Label turns an enum value like "in-review" into "In review".
func Label(v string) string {
	if v == "" {
		return v
	}
	v = strings.ReplaceAll(v, "-", " ")
	return strings.ToUpper(v[:1]) + v[1:]
}

// Count renders n with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}
