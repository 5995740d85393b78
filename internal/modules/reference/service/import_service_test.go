package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	referenceout "aidref/internal/modules/reference/adapter/out"
	"aidref/internal/modules/reference/domain"
	"aidref/internal/modules/reference/service"
	"aidref/internal/platform/clock"
	apperrors "aidref/internal/platform/errors"
)

func childNames(k *domain.Keyword) []string {
	out := make([]string, 0, len(k.Children))
	for _, c := range k.Children {
		out = append(out, c.Name)
	}
	return out
}

func TestImportSynonymListsCreatesNewRoots(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := referenceout.NewMemoryReferenceStore()
	svc := service.NewImportService(store, store, store, nil, store, nil)

	res, err := svc.ImportSynonymLists(ctx, []domain.SynonymList{{Name: " vélo ", KeywordsList: "bicyclette, vtt"}})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res != (service.ImportResult{Lists: 1, CreatedRoots: 1, CreatedChildren: 2}) {
		t.Fatalf("result = %+v", res)
	}
	k, err := store.FindKeywordByExactName(ctx, "vélo")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if k.Intention || !reflect.DeepEqual(childNames(k), []string{"bicyclette", "vtt"}) {
		t.Fatalf("unexpected keyword: %+v", k)
	}
}

func TestImportSynonymListsMergesIntoExisting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := seededStore(t, domain.Seed{Keywords: []domain.SeedKeyword{
		{Name: "vélo", Children: []domain.SeedKeyword{{Name: "bicyclette"}}},
	}})
	svc := service.NewImportService(store, store, store, nil, store, nil)

	res, err := svc.ImportSynonymLists(ctx, []domain.SynonymList{
		{Name: "vélo", KeywordsList: "vélo, bicyclette, vtt, vtt"},
		{Name: "cycle", KeywordsList: "bicyclette, tandem"},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res != (service.ImportResult{Lists: 2, CreatedChildren: 2}) {
		t.Fatalf("result = %+v", res)
	}
	root, err := store.FindKeywordByExactName(ctx, "vélo")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !reflect.DeepEqual(childNames(root), []string{"bicyclette", "vtt"}) {
		t.Fatalf("vélo children = %#v", childNames(root))
	}
	bike, err := store.FindKeywordByExactName(ctx, "bicyclette")
	if err != nil {
		t.Fatalf("find bicyclette: %v", err)
	}
	if !reflect.DeepEqual(childNames(bike), []string{"tandem"}) {
		t.Fatalf("bicyclette children = %#v", childNames(bike))
	}
}

func TestSeedFromFileIntoSQLite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tmp := t.TempDir()
	seedPath := filepath.Join(tmp, "seed.yaml")
	raw := `
keywords:
  - name: vélo
    children:
      - name: piste cyclable
project_references:
  - name: vélo
    excluded_keywords: [piste cyclable]
`
	if err := os.WriteFile(seedPath, []byte(raw), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	store, err := referenceout.NewSQLiteReferenceStore(filepath.Join(tmp, "aidref.db"), clock.Fixed(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	svc := service.NewImportService(store, store, store, referenceout.NewYAMLSeedSource(), store, nil)
	res, err := svc.SeedFromFile(ctx, seedPath)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if res != (service.SeedResult{Keywords: 2, ProjectReferences: 1}) {
		t.Fatalf("result = %+v", res)
	}

	expander := service.NewReferenceService(store, store, nil, service.Options{})
	got, err := expander.Expand(ctx, "vélo")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got.ObjectsString != `vélo "piste cyclable"` {
		t.Fatalf("objects = %q", got.ObjectsString)
	}
}

type failingProjectWriter struct{}

func (failingProjectWriter) SaveProjectReference(context.Context, domain.ProjectReference) error {
	return errStoreDown
}

func TestImportServiceSeedIsAtomic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, err := referenceout.NewSQLiteReferenceStore(filepath.Join(t.TempDir(), "aidref.db"), clock.Fixed(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	svc := service.NewImportService(store, store, failingProjectWriter{}, nil, store, nil)
	_, err = svc.Seed(ctx, domain.Seed{
		Keywords:          []domain.SeedKeyword{{Name: "vélo", Children: []domain.SeedKeyword{{Name: "bicyclette"}}}},
		ProjectReferences: []domain.ProjectReference{{Name: "vélo"}},
	})
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("seed err = %v, want store down", err)
	}
	if _, err := store.FindKeywordByExactName(ctx, "vélo"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("keyword survived failed seed: %v", err)
	}
}

func TestImportSynonymListsNewRootAttachesEachSynonymOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := referenceout.NewMemoryReferenceStore()
	svc := service.NewImportService(store, store, store, nil, store, nil)

	res, err := svc.ImportSynonymLists(ctx, []domain.SynonymList{{Name: "vélo", KeywordsList: "vtt, vtt, vélo"}})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res != (service.ImportResult{Lists: 1, CreatedRoots: 1, CreatedChildren: 1}) {
		t.Fatalf("result = %+v", res)
	}
	root, err := store.FindKeywordByExactName(ctx, "vélo")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !reflect.DeepEqual(childNames(root), []string{"vtt"}) {
		t.Fatalf("vélo children = %#v", childNames(root))
	}
}

func TestImportSynonymListsRejectsBlankListName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := referenceout.NewMemoryReferenceStore()
	svc := service.NewImportService(store, store, store, nil, store, nil)

	_, err := svc.ImportSynonymLists(ctx, []domain.SynonymList{{Name: "  ", KeywordsList: "vtt"}})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("err = %v, want invalid input", err)
	}
	if _, err := store.FindKeywordByExactName(ctx, ""); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("blank keyword stored: %v", err)
	}
	if _, err := store.FindKeywordByExactName(ctx, "vtt"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("synonym of blank list stored: %v", err)
	}
}

func TestImportServiceSeedRejectsBlankKeywordNames(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cases := map[string][]domain.SeedKeyword{
		"root":  {{Name: "   "}},
		"child": {{Name: "vélo", Children: []domain.SeedKeyword{{Name: "\t"}}}},
	}
	for name, keywords := range cases {
		store, err := referenceout.NewSQLiteReferenceStore(filepath.Join(t.TempDir(), "aidref.db"), clock.Fixed(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
		if err != nil {
			t.Fatalf("%s: open store: %v", name, err)
		}
		svc := service.NewImportService(store, store, store, nil, store, nil)
		_, err = svc.Seed(ctx, domain.Seed{Keywords: keywords})
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("%s: err = %v, want invalid input", name, err)
		}
		if _, err := store.FindKeywordByExactName(ctx, ""); !errors.Is(err, apperrors.ErrNotFound) {
			t.Fatalf("%s: blank keyword stored: %v", name, err)
		}
		if _, err := store.FindKeywordByExactName(ctx, "vélo"); !errors.Is(err, apperrors.ErrNotFound) {
			t.Fatalf("%s: partial seed kept: %v", name, err)
		}
		_ = store.Close()
	}
}
