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
)

type Options struct {
	TrimEdgeArticles bool
}

// ReferenceService expands free-text project names into synonym keywords.
type ReferenceService struct {
	keywords referenceout.KeywordStore
	projects referenceout.ProjectReferenceStore
	logger   *zap.Logger
	opts     Options
}

func NewReferenceService(keywords referenceout.KeywordStore, projects referenceout.ProjectReferenceStore, logger *zap.Logger, opts Options) *ReferenceService {
	return &ReferenceService{keywords: keywords, projects: projects, logger: logging.OrNop(logger), opts: opts}
}

func (s *ReferenceService) Expand(ctx context.Context, projectName string) (domain.Expansion, error) {
	exact, err := s.isKeyword(ctx, projectName)
	if err != nil {
		return domain.Expansion{}, err
	}
	plan := domain.PlanCandidates(projectName, exact, s.opts.TrimEdgeArticles)

	ref, err := s.projects.FindProjectReferenceByExactName(ctx, projectName)
	switch {
	case err == nil:
		plan = plan.Exclude(ref)
	case !errors.Is(err, apperrors.ErrNotFound):
		return domain.Expansion{}, fmt.Errorf("find project reference: %w", err)
	}

	buckets := &domain.Buckets{}
	if len(plan.Phrases) > 0 {
		matches, err := s.keywords.FindKeywordsByNameIn(ctx, plan.Phrases)
		if err != nil {
			return domain.Expansion{}, fmt.Errorf("find keywords: %w", err)
		}
		byName := map[string][]*domain.Keyword{}
		for _, k := range matches {
			byName[k.Name] = append(byName[k.Name], k)
		}
		for _, phrase := range plan.Phrases {
			for _, k := range byName[phrase] {
				buckets.Collect(k)
			}
		}
	}

	expansion := domain.NewExpansion(projectName, buckets)
	s.logger.Debug("expanded project name",
		zap.String("project_name", projectName),
		zap.String("plan", string(plan.Kind)),
		zap.Int("candidates", len(plan.Phrases)),
		zap.Int("intentions", len(buckets.Intentions())),
		zap.Int("objects", len(buckets.Objects())),
	)
	return expansion, nil
}

// HighlightedWords returns the article-free words of keyword; an empty keyword yields none.
func (s *ReferenceService) HighlightedWords(ctx context.Context, keyword string) ([]string, error) {
	if keyword == "" {
		return []string{}, nil
	}
	expansion, err := s.Expand(ctx, keyword)
	if err != nil {
		return nil, err
	}
	words := strings.Fields(expansion.SimpleWordsString)
	out := make([]string, 0, len(words))
	for _, word := range words {
		out = append(out, strings.ReplaceAll(word, `"`, ""))
	}
	return out, nil
}

func (s *ReferenceService) Keyword(ctx context.Context, name string) (*domain.Keyword, error) {
	return s.keywords.FindKeywordByExactName(ctx, name)
}

func (s *ReferenceService) isKeyword(ctx context.Context, name string) (bool, error) {
	_, err := s.keywords.FindKeywordByExactName(ctx, name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperrors.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("find keyword: %w", err)
	}
}
