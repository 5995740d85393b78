package in

import (
	"context"

	"aidref/internal/modules/reference/dto"
)

type Usecase interface {
	Expand(ctx context.Context, input dto.ExpandInput) (dto.ExpansionOutput, error)
	HighlightedWords(ctx context.Context, keyword string) ([]string, error)
	ShowKeyword(ctx context.Context, name string) (dto.KeywordOutput, error)
	Seed(ctx context.Context, input dto.SeedInput) (dto.SeedOutput, error)
	ImportSynonymLists(ctx context.Context, input dto.ImportSynonymsInput) (dto.ImportOutput, error)
}
