package out

import (
	"context"

	"aidref/internal/modules/reference/domain"
)

// KeywordStore returns keywords with Parent and Children resolved deep enough
// for the expansion walk. Absence is apperrors.ErrNotFound.
type KeywordStore interface {
	FindKeywordByExactName(ctx context.Context, name string) (*domain.Keyword, error)
	FindKeywordsByNameIn(ctx context.Context, names []string) ([]*domain.Keyword, error)
}

type ProjectReferenceStore interface {
	FindProjectReferenceByExactName(ctx context.Context, name string) (domain.ProjectReference, error)
}

type KeywordWriter interface {
	CreateKeyword(ctx context.Context, keyword domain.Keyword) (int64, error)
}

type ProjectReferenceWriter interface {
	SaveProjectReference(ctx context.Context, ref domain.ProjectReference) error
}

type SeedSource interface {
	Load(ctx context.Context, path string) (domain.Seed, error)
}
