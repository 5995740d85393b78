package domain

type ProjectReference struct {
	ID                   int64
	Name                 string
	ExcludedKeywordNames []string
}

func (p ProjectReference) Excludes(name string) bool {
	for _, excluded := range p.ExcludedKeywordNames {
		if excluded == name {
			return true
		}
	}
	return false
}
