package usecase

import (
	"context"

	"aidref/internal/modules/reference/domain"
	"aidref/internal/modules/reference/dto"
	referencein "aidref/internal/modules/reference/port/in"
	"aidref/internal/modules/reference/service"
)

type Interactor struct {
	references *service.ReferenceService
	imports    *service.ImportService
}

func NewInteractor(references *service.ReferenceService, imports *service.ImportService) referencein.Usecase {
	return &Interactor{references: references, imports: imports}
}

func (i *Interactor) Expand(ctx context.Context, input dto.ExpandInput) (dto.ExpansionOutput, error) {
	expansion, err := i.references.Expand(ctx, input.ProjectName)
	if err != nil {
		return dto.ExpansionOutput{}, err
	}
	return dto.ExpansionOutput{
		IntentionsString:  expansion.IntentionsString,
		ObjectsString:     expansion.ObjectsString,
		SimpleWordsString: expansion.SimpleWordsString,
		OriginalName:      expansion.OriginalName,
	}, nil
}

func (i *Interactor) HighlightedWords(ctx context.Context, keyword string) ([]string, error) {
	return i.references.HighlightedWords(ctx, keyword)
}

func (i *Interactor) ShowKeyword(ctx context.Context, name string) (dto.KeywordOutput, error) {
	keyword, err := i.references.Keyword(ctx, name)
	if err != nil {
		return dto.KeywordOutput{}, err
	}
	out := dto.KeywordOutput{
		KeywordNodeOutput: mapNode(keyword),
		Children:          make([]dto.KeywordNodeOutput, 0, len(keyword.Children)),
	}
	if keyword.Parent != nil {
		parent := mapNode(keyword.Parent)
		out.Parent = &parent
	}
	for _, child := range keyword.Children {
		out.Children = append(out.Children, mapNode(child))
	}
	return out, nil
}

func (i *Interactor) Seed(ctx context.Context, input dto.SeedInput) (dto.SeedOutput, error) {
	res, err := i.imports.SeedFromFile(ctx, input.Path)
	if err != nil {
		return dto.SeedOutput{}, err
	}
	return dto.SeedOutput{Keywords: res.Keywords, ProjectReferences: res.ProjectReferences}, nil
}

func (i *Interactor) ImportSynonymLists(ctx context.Context, input dto.ImportSynonymsInput) (dto.ImportOutput, error) {
	res, err := i.imports.ImportSynonymsFromFile(ctx, input.Path)
	if err != nil {
		return dto.ImportOutput{}, err
	}
	return dto.ImportOutput{Lists: res.Lists, CreatedRoots: res.CreatedRoots, CreatedChildren: res.CreatedChildren}, nil
}

func mapNode(k *domain.Keyword) dto.KeywordNodeOutput {
	return dto.KeywordNodeOutput{ID: k.ID, Name: k.Name, Intention: k.Intention}
}
