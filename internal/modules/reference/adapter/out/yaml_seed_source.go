package out

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"aidref/internal/modules/reference/domain"
	"aidref/internal/platform/validation"
)

type seedFile struct {
	Keywords          []seedKeyword          `yaml:"keywords" validate:"dive"`
	ProjectReferences []seedProjectReference `yaml:"project_references" validate:"dive"`
	SynonymLists      []seedSynonymList      `yaml:"synonym_lists" validate:"dive"`
}

type seedKeyword struct {
	Name      string        `yaml:"name" validate:"notblank,max=255"`
	Intention bool          `yaml:"intention"`
	Children  []seedKeyword `yaml:"children" validate:"dive"`
}

type seedProjectReference struct {
	Name             string   `yaml:"name" validate:"notblank,max=255"`
	ExcludedKeywords []string `yaml:"excluded_keywords" validate:"dive,notblank"`
}

type seedSynonymList struct {
	Name         string `yaml:"name" validate:"notblank,max=255"`
	KeywordsList string `yaml:"keywords_list"`
}

// YAMLSeedSource decodes seed documents. Unknown keys are rejected.
type YAMLSeedSource struct{}

func NewYAMLSeedSource() YAMLSeedSource {
	return YAMLSeedSource{}
}

func (YAMLSeedSource) Load(_ context.Context, path string) (domain.Seed, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Seed{}, fmt.Errorf("read seed file: %w", err)
	}
	var file seedFile
	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return domain.Seed{}, fmt.Errorf("decode seed file: %w", err)
	}
	if err := validation.Struct(file); err != nil {
		return domain.Seed{}, fmt.Errorf("validate seed file %s: %w", path, err)
	}
	return file.toDomain(), nil
}

func (f seedFile) toDomain() domain.Seed {
	seed := domain.Seed{
		Keywords:          make([]domain.SeedKeyword, 0, len(f.Keywords)),
		ProjectReferences: make([]domain.ProjectReference, 0, len(f.ProjectReferences)),
		SynonymLists:      make([]domain.SynonymList, 0, len(f.SynonymLists)),
	}
	for _, k := range f.Keywords {
		seed.Keywords = append(seed.Keywords, k.toDomain())
	}
	for _, ref := range f.ProjectReferences {
		seed.ProjectReferences = append(seed.ProjectReferences, domain.ProjectReference{
			Name:                 ref.Name,
			ExcludedKeywordNames: ref.ExcludedKeywords,
		})
	}
	for _, list := range f.SynonymLists {
		seed.SynonymLists = append(seed.SynonymLists, domain.SynonymList{Name: list.Name, KeywordsList: list.KeywordsList})
	}
	return seed
}

func (k seedKeyword) toDomain() domain.SeedKeyword {
	out := domain.SeedKeyword{Name: k.Name, Intention: k.Intention}
	for _, child := range k.Children {
		out.Children = append(out.Children, child.toDomain())
	}
	return out
}
