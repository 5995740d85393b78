package dto

type ExpandInput struct {
	ProjectName string
}

type ExpansionOutput struct {
	IntentionsString  string `json:"intentions_string"`
	ObjectsString     string `json:"objects_string"`
	SimpleWordsString string `json:"simple_words_string"`
	OriginalName      string `json:"original_name"`
}

type KeywordNodeOutput struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Intention bool   `json:"intention"`
}

type KeywordOutput struct {
	KeywordNodeOutput
	Parent   *KeywordNodeOutput  `json:"parent,omitempty"`
	Children []KeywordNodeOutput `json:"children"`
}

type SeedInput struct {
	Path string
}

type SeedOutput struct {
	Keywords          int `json:"keywords"`
	ProjectReferences int `json:"project_references"`
}

type ImportSynonymsInput struct {
	Path string
}

type ImportOutput struct {
	Lists           int `json:"lists"`
	CreatedRoots    int `json:"created_roots"`
	CreatedChildren int `json:"created_children"`
}
