package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var separators = strings.NewReplacer(
	"/", " ",
	"(", " ",
	")", " ",
	",", " ",
	":", " ",
	"–", " ",
	"-", " ",
)

var apostrophes = strings.NewReplacer("‘", "'", "’", "'")

// Normalize replaces separators with spaces, lowercases with French rules
// and collapses whitespace.
func Normalize(text string) string {
	s := separators.Replace(text)
	s = cases.Lower(language.French).String(s)
	return strings.Join(strings.Fields(s), " ")
}

// StripArticles normalizes text then removes every whole-word occurrence of
// each article, in list order.
func StripArticles(text string, articles []string) string {
	s := Normalize(text)
	for _, article := range articles {
		s = removeWholeWord(s, article)
	}
	return strings.Join(strings.Fields(s), " ")
}

func removeWholeWord(s, word string) string {
	if word == "" {
		return s
	}
	var b strings.Builder
	last, i := 0, 0
	for i <= len(s)-len(word) {
		idx := strings.Index(s[i:], word)
		if idx < 0 {
			break
		}
		start := i + idx
		end := start + len(word)
		if isBoundary(s, start) && isBoundary(s, end) {
			b.WriteString(s[last:start])
			last, i = end, end
			continue
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		i = start + size
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// isBoundary mirrors a Unicode-aware \b at byte offset pos.
func isBoundary(s string, pos int) bool {
	before, after := false, false
	if pos > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:pos])
		before = isWordRune(r)
	}
	if pos < len(s) {
		r, _ := utf8.DecodeRuneInString(s[pos:])
		after = isWordRune(r)
	}
	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
