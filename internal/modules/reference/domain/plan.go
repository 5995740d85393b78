package domain

type PlanKind string

const (
	PlanExactMatch PlanKind = "exact_match"
	PlanExpanded   PlanKind = "expanded"
)

// CandidatePlan is the ordered list of phrases looked up in the keyword graph.
type CandidatePlan struct {
	Kind    PlanKind
	Phrases []string
}

// PlanCandidates keeps projectName verbatim when it is already a keyword,
// otherwise expands its normalized form into every sub-phrase, longest first.
func PlanCandidates(projectName string, exactMatch bool, trimEdges bool) CandidatePlan {
	if exactMatch {
		return CandidatePlan{Kind: PlanExactMatch, Phrases: []string{projectName}}
	}
	phrases := GenerateCombinations(Normalize(projectName), Articles(), trimEdges)
	SortByLengthDesc(phrases)
	return CandidatePlan{Kind: PlanExpanded, Phrases: phrases}
}

// Exclude drops the phrases the project reference excludes.
func (p CandidatePlan) Exclude(ref ProjectReference) CandidatePlan {
	if len(ref.ExcludedKeywordNames) == 0 {
		return p
	}
	kept := make([]string, 0, len(p.Phrases))
	for _, phrase := range p.Phrases {
		if ref.Excludes(phrase) {
			continue
		}
		kept = append(kept, phrase)
	}
	return CandidatePlan{Kind: p.Kind, Phrases: kept}
}
