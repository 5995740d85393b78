package domain

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// GenerateCombinations returns every distinct contiguous word run of text,
// in start-then-end order. trimEdges drops a leading and a trailing article
// from each run; it is off by default.
func GenerateCombinations(text string, articles []string, trimEdges bool) []string {
	set := toSet(articles)
	words := strings.Split(text, " ")
	out := make([]string, 0, len(words)*(len(words)+1)/2)
	seen := map[string]struct{}{}
	for i := range words {
		for j := i; j < len(words); j++ {
			combo := prepareCombination(strings.Join(words[i:j+1], " "), set, trimEdges)
			if combo == "" {
				continue
			}
			if _, ok := seen[combo]; ok {
				continue
			}
			seen[combo] = struct{}{}
			out = append(out, combo)
		}
	}
	return out
}

func prepareCombination(combo string, articles map[string]struct{}, trimEdges bool) string {
	combo = apostrophes.Replace(combo)
	if trimEdges {
		combo = trimEdgeArticles(combo, articles)
	}
	return strings.TrimSpace(combo)
}

// TrimEdgeArticles removes one leading and one trailing article word.
func TrimEdgeArticles(phrase string, articles []string) string {
	return trimEdgeArticles(phrase, toSet(articles))
}

func trimEdgeArticles(phrase string, articles map[string]struct{}) string {
	words := strings.Split(phrase, " ")
	if len(words) > 0 && contains(articles, words[0]) {
		words = words[1:]
	}
	if len(words) > 0 && contains(articles, words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// SortByLengthDesc orders phrases longest first by character count; ties keep input order.
func SortByLengthDesc(phrases []string) {
	sort.SliceStable(phrases, func(i, j int) bool {
		return utf8.RuneCountInString(phrases[i]) > utf8.RuneCountInString(phrases[j])
	})
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func contains(set map[string]struct{}, item string) bool {
	_, ok := set[item]
	return ok
}
