package domain

type Expansion struct {
	IntentionsString  string
	ObjectsString     string
	SimpleWordsString string
	OriginalName      string
}

func NewExpansion(originalName string, buckets *Buckets) Expansion {
	return Expansion{
		IntentionsString:  QuotedString(buckets.Intentions()),
		ObjectsString:     QuotedString(buckets.Objects()),
		SimpleWordsString: StripArticles(Normalize(originalName), Articles()),
		OriginalName:      originalName,
	}
}
