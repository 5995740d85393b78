package in

import (
	"context"
	"strings"

	"aidref/internal/modules/reference/dto"
	referencein "aidref/internal/modules/reference/port/in"
)

type CLIHandler struct {
	usecase referencein.Usecase
}

func NewCLIHandler(usecase referencein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Expand joins the command words back into a single project name.
func (h CLIHandler) Expand(ctx context.Context, words []string) (dto.ExpansionOutput, error) {
	return h.usecase.Expand(ctx, dto.ExpandInput{ProjectName: strings.Join(words, " ")})
}

func (h CLIHandler) HighlightedWords(ctx context.Context, words []string) ([]string, error) {
	return h.usecase.HighlightedWords(ctx, strings.Join(words, " "))
}

func (h CLIHandler) ShowKeyword(ctx context.Context, name string) (dto.KeywordOutput, error) {
	return h.usecase.ShowKeyword(ctx, name)
}

func (h CLIHandler) Seed(ctx context.Context, path string) (dto.SeedOutput, error) {
	return h.usecase.Seed(ctx, dto.SeedInput{Path: path})
}

func (h CLIHandler) ImportSynonymLists(ctx context.Context, path string) (dto.ImportOutput, error) {
	return h.usecase.ImportSynonymLists(ctx, dto.ImportSynonymsInput{Path: path})
}
