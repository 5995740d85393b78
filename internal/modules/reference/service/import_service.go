package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"aidref/internal/modules/reference/domain"
	referenceout "aidref/internal/modules/reference/port/out"
	apperrors "aidref/internal/platform/errors"
	"aidref/internal/platform/logging"
	"aidref/internal/platform/tx"
)

type SeedResult struct {
	Keywords          int
	ProjectReferences int
}

type ImportResult struct {
	Lists           int
	CreatedRoots    int
	CreatedChildren int
}

// ImportService fills the keyword graph from seed documents and legacy synonym lists.
type ImportService struct {
	keywords referenceout.KeywordStore
	writer   referenceout.KeywordWriter
	projects referenceout.ProjectReferenceWriter
	source   referenceout.SeedSource
	units    tx.Manager
	logger   *zap.Logger
}

// NewImportService runs every seed and import inside units; a nil manager runs them without one.
func NewImportService(keywords referenceout.KeywordStore, writer referenceout.KeywordWriter, projects referenceout.ProjectReferenceWriter, source referenceout.SeedSource, units tx.Manager, logger *zap.Logger) *ImportService {
	if units == nil {
		units = tx.NoopManager{}
	}
	return &ImportService{keywords: keywords, writer: writer, projects: projects, source: source, units: units, logger: logging.OrNop(logger)}
}

func (s *ImportService) SeedFromFile(ctx context.Context, path string) (SeedResult, error) {
	seed, err := s.source.Load(ctx, path)
	if err != nil {
		return SeedResult{}, err
	}
	return s.Seed(ctx, seed)
}

// Seed writes the whole document or nothing.
func (s *ImportService) Seed(ctx context.Context, seed domain.Seed) (SeedResult, error) {
	result := SeedResult{}
	err := s.units.Within(ctx, func(ctx context.Context) error {
		for _, keyword := range seed.Keywords {
			n, err := s.createTree(ctx, keyword, 0)
			if err != nil {
				return err
			}
			result.Keywords += n
		}
		for _, ref := range seed.ProjectReferences {
			if err := s.projects.SaveProjectReference(ctx, ref); err != nil {
				return fmt.Errorf("save project reference %q: %w", ref.Name, err)
			}
			result.ProjectReferences++
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	s.logger.Info("seeded keyword graph",
		zap.Int("keywords", result.Keywords),
		zap.Int("project_references", result.ProjectReferences),
	)
	return result, nil
}

func (s *ImportService) createTree(ctx context.Context, keyword domain.SeedKeyword, parentID int64) (int, error) {
	name := strings.TrimSpace(keyword.Name)
	if name == "" {
		return 0, fmt.Errorf("keyword name is required: %w", apperrors.ErrInvalidInput)
	}
	id, err := s.writer.CreateKeyword(ctx, domain.Keyword{
		Name:      name,
		Intention: keyword.Intention,
		ParentID:  parentID,
	})
	if err != nil {
		return 0, fmt.Errorf("create keyword %q: %w", name, err)
	}
	created := 1
	for _, child := range keyword.Children {
		n, err := s.createTree(ctx, child, id)
		if err != nil {
			return created, err
		}
		created += n
	}
	return created, nil
}

func (s *ImportService) ImportSynonymsFromFile(ctx context.Context, path string) (ImportResult, error) {
	seed, err := s.source.Load(ctx, path)
	if err != nil {
		return ImportResult{}, err
	}
	return s.ImportSynonymLists(ctx, seed.SynonymLists)
}

// ImportSynonymLists merges each list into the keyword whose name matches the
// list name (or, failing that, one of its synonyms), adding missing synonyms
// as object children. Unmatched lists become new root keywords.
func (s *ImportService) ImportSynonymLists(ctx context.Context, lists []domain.SynonymList) (ImportResult, error) {
	result := ImportResult{}
	err := s.units.Within(ctx, func(ctx context.Context) error {
		for _, list := range lists {
			if err := s.importList(ctx, list, &result); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

func (s *ImportService) importList(ctx context.Context, list domain.SynonymList, result *ImportResult) error {
	name := strings.TrimSpace(list.Name)
	if name == "" {
		return fmt.Errorf("synonym list name is required: %w", apperrors.ErrInvalidInput)
	}
	synonyms := list.Synonyms()
	target, err := s.findTarget(ctx, name, synonyms)
	if err != nil {
		return err
	}
	if target == nil {
		rootID, err := s.writer.CreateKeyword(ctx, domain.Keyword{Name: name})
		if err != nil {
			return fmt.Errorf("create keyword %q: %w", name, err)
		}
		result.CreatedRoots++
		target = &domain.Keyword{ID: rootID, Name: name}
	}

	// A synonym is attached once and never under a keyword of the same name.
	added := map[string]struct{}{target.Name: {}}
	for _, synonym := range synonyms {
		if _, ok := added[synonym]; ok || domain.HasSynonym(target, synonym) {
			continue
		}
		if _, err := s.writer.CreateKeyword(ctx, domain.Keyword{Name: synonym, ParentID: target.ID}); err != nil {
			return fmt.Errorf("create synonym %q: %w", synonym, err)
		}
		added[synonym] = struct{}{}
		result.CreatedChildren++
	}
	result.Lists++
	s.logger.Info("imported synonym list", zap.String("name", name), zap.Int("synonyms", len(synonyms)), zap.Int64("keyword_id", target.ID))
	return nil
}

func (s *ImportService) findTarget(ctx context.Context, name string, synonyms []string) (*domain.Keyword, error) {
	keyword, err := s.keywords.FindKeywordByExactName(ctx, name)
	if err == nil {
		return keyword, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("find keyword %q: %w", name, err)
	}
	if len(synonyms) == 0 {
		return nil, nil
	}
	matches, err := s.keywords.FindKeywordsByNameIn(ctx, synonyms)
	if err != nil {
		return nil, fmt.Errorf("find keywords by synonyms: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}
