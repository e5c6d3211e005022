package pipeline

import (
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

// truncate bounds text to at most ceiling bytes. Oversized text is cut
// at the last whitespace boundary that leaves room for the ellipsis
// marker, so the output never ends mid-word and never exceeds the
// ceiling. Text with no whitespace before the boundary is hard-cut at a
// rune boundary instead.
func truncate(text string, ceiling int) string {
	if ceiling <= 0 || len(text) <= ceiling {
		return text
	}

	budget := ceiling - len(ellipsis)
	if budget <= 0 {
		return ""
	}

	cut := text[:budget]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}

	if i := strings.LastIndexAny(cut, " \t\n"); i > 0 {
		cut = cut[:i]
	}
	cut = strings.TrimRight(cut, " \t\n")

	return cut + ellipsis
}
