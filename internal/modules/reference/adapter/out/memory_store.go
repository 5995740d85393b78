package out

import (
	"context"
	"fmt"
	"sync"

	"aidref/internal/modules/reference/domain"
	apperrors "aidref/internal/platform/errors"
	"aidref/internal/platform/tx"
)

// MemoryReferenceStore keeps the keyword graph and project references in
// process memory. The graph is rebuilt after every write. Its units of work
// do not roll back.
type MemoryReferenceStore struct {
	tx.NoopManager

	mu            sync.RWMutex
	rows          []domain.Keyword
	graph         *domain.Graph
	projects      []domain.ProjectReference
	nextKeywordID int64
	nextProjectID int64
}

func NewMemoryReferenceStore() *MemoryReferenceStore {
	return &MemoryReferenceStore{graph: domain.NewGraph(nil)}
}

func (s *MemoryReferenceStore) FindKeywordByExactName(_ context.Context, name string) (*domain.Keyword, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keyword, ok := s.graph.FirstByName(name)
	if !ok {
		return nil, fmt.Errorf("keyword %q: %w", name, apperrors.ErrNotFound)
	}
	return keyword, nil
}

func (s *MemoryReferenceStore) FindKeywordsByNameIn(_ context.Context, names []string) ([]*domain.Keyword, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph.ByNames(names), nil
}

func (s *MemoryReferenceStore) CreateKeyword(_ context.Context, keyword domain.Keyword) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if keyword.ParentID != 0 {
		if _, ok := s.graph.ByID(keyword.ParentID); !ok {
			return 0, fmt.Errorf("parent keyword %d: %w", keyword.ParentID, apperrors.ErrNotFound)
		}
	}
	s.nextKeywordID++
	s.rows = append(s.rows, domain.Keyword{
		ID:        s.nextKeywordID,
		Name:      keyword.Name,
		Intention: keyword.Intention,
		ParentID:  keyword.ParentID,
	})
	s.graph = domain.NewGraph(s.rows)
	return s.nextKeywordID, nil
}

func (s *MemoryReferenceStore) FindProjectReferenceByExactName(_ context.Context, name string) (domain.ProjectReference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ref := range s.projects {
		if ref.Name == name {
			return cloneProjectReference(ref), nil
		}
	}
	return domain.ProjectReference{}, fmt.Errorf("project reference %q: %w", name, apperrors.ErrNotFound)
}

func (s *MemoryReferenceStore) SaveProjectReference(_ context.Context, ref domain.ProjectReference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].Name == ref.Name {
			ref.ID = s.projects[i].ID
			s.projects[i] = cloneProjectReference(ref)
			return nil
		}
	}
	s.nextProjectID++
	ref.ID = s.nextProjectID
	s.projects = append(s.projects, cloneProjectReference(ref))
	return nil
}

func cloneProjectReference(ref domain.ProjectReference) domain.ProjectReference {
	ref.ExcludedKeywordNames = append([]string(nil), ref.ExcludedKeywordNames...)
	return ref
}
