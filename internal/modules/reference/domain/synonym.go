package domain

import "strings"

// SynonymList is a flat legacy record: a name and its comma-separated synonyms.
type SynonymList struct {
	Name         string
	KeywordsList string
}

// Synonyms splits KeywordsList on commas and trims each entry, skipping blanks.
func (l SynonymList) Synonyms() []string {
	parts := strings.Split(l.KeywordsList, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// SeedKeyword is a nested keyword tree as written in seed documents.
type SeedKeyword struct {
	Name      string
	Intention bool
	Children  []SeedKeyword
}

type Seed struct {
	Keywords          []SeedKeyword
	ProjectReferences []ProjectReference
	SynonymLists      []SynonymList
}
