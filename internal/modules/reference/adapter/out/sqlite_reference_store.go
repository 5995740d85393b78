package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"aidref/internal/modules/reference/domain"
	"aidref/internal/platform/clock"
	apperrors "aidref/internal/platform/errors"
	"aidref/internal/platform/tx"

	_ "modernc.org/sqlite"
)

type SQLiteReferenceStore struct {
	db    *sql.DB
	tx    tx.SQLManager
	clock clock.Clock
}

func NewSQLiteReferenceStore(dbPath string, clk clock.Clock) (*SQLiteReferenceStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := &SQLiteReferenceStore{db: db, tx: tx.NewSQLManager(db), clock: clk}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteReferenceStore) Close() error {
	return s.db.Close()
}

// Within runs fn in one transaction shared by every store call made with its context.
func (s *SQLiteReferenceStore) Within(ctx context.Context, fn func(context.Context) error) error {
	return s.tx.Within(ctx, fn)
}

func (s *SQLiteReferenceStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS keyword_references (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  intention INTEGER NOT NULL DEFAULT 0,
  parent_id INTEGER REFERENCES keyword_references(id),
  updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_keyword_references_name ON keyword_references(name);
CREATE INDEX IF NOT EXISTS idx_keyword_references_parent ON keyword_references(parent_id);
CREATE TABLE IF NOT EXISTS project_references (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS project_reference_excluded_keywords (
  project_reference_id INTEGER NOT NULL REFERENCES project_references(id),
  keyword_name TEXT NOT NULL,
  PRIMARY KEY (project_reference_id, keyword_name)
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create reference tables: %w", err)
	}
	return nil
}

func (s *SQLiteReferenceStore) FindKeywordByExactName(ctx context.Context, name string) (*domain.Keyword, error) {
	var id int64
	err := s.tx.Conn(ctx).QueryRowContext(ctx, `SELECT id FROM keyword_references WHERE name = ? ORDER BY id LIMIT 1`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("keyword %q: %w", name, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find keyword: %w", err)
	}
	matched, err := s.selectKeywords(ctx, "id", []any{id})
	if err != nil {
		return nil, err
	}
	graph, err := s.loadNeighborhood(ctx, matched)
	if err != nil {
		return nil, err
	}
	keyword, ok := graph.ByID(id)
	if !ok {
		return nil, fmt.Errorf("keyword %q: %w", name, apperrors.ErrNotFound)
	}
	return keyword, nil
}

func (s *SQLiteReferenceStore) FindKeywordsByNameIn(ctx context.Context, names []string) ([]*domain.Keyword, error) {
	if len(names) == 0 {
		return []*domain.Keyword{}, nil
	}
	args := make([]any, 0, len(names))
	for _, name := range names {
		args = append(args, name)
	}
	matched, err := s.selectKeywords(ctx, "name", args)
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return []*domain.Keyword{}, nil
	}
	graph, err := s.loadNeighborhood(ctx, matched)
	if err != nil {
		return nil, err
	}
	return graph.ByNames(names), nil
}

// loadNeighborhood links matched rows with the rows the expansion walk can
// reach: two levels of children, the parent and the parent's children.
func (s *SQLiteReferenceStore) loadNeighborhood(ctx context.Context, matched []domain.Keyword) (*domain.Graph, error) {
	rows := map[int64]domain.Keyword{}
	add := func(keywords []domain.Keyword) []any {
		ids := make([]any, 0, len(keywords))
		for _, k := range keywords {
			if _, ok := rows[k.ID]; !ok {
				rows[k.ID] = k
			}
			ids = append(ids, k.ID)
		}
		return ids
	}
	matchedIDs := add(matched)

	parentIDs := make([]any, 0, len(matched))
	for _, k := range matched {
		if k.ParentID != 0 {
			parentIDs = append(parentIDs, k.ParentID)
		}
	}
	parents, err := s.selectKeywords(ctx, "id", parentIDs)
	if err != nil {
		return nil, err
	}
	add(parents)

	children, err := s.selectKeywords(ctx, "parent_id", append(matchedIDs, parentIDs...))
	if err != nil {
		return nil, err
	}
	add(children)

	isMatch := make(map[int64]bool, len(matched))
	for _, k := range matched {
		isMatch[k.ID] = true
	}
	childIDs := make([]any, 0, len(children))
	for _, k := range children {
		if isMatch[k.ParentID] {
			childIDs = append(childIDs, k.ID)
		}
	}
	grandchildren, err := s.selectKeywords(ctx, "parent_id", childIDs)
	if err != nil {
		return nil, err
	}
	add(grandchildren)

	keywords := make([]domain.Keyword, 0, len(rows))
	for _, k := range rows {
		keywords = append(keywords, k)
	}
	sort.Slice(keywords, func(i, j int) bool { return keywords[i].ID < keywords[j].ID })
	return domain.NewGraph(keywords), nil
}

// selectKeywords returns the rows whose column is one of values, by id.
func (s *SQLiteReferenceStore) selectKeywords(ctx context.Context, column string, values []any) ([]domain.Keyword, error) {
	if len(values) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(values)), ",")
	query := fmt.Sprintf(`
SELECT id, name, intention, parent_id
FROM keyword_references
WHERE %s IN (%s)
ORDER BY id
`, column, placeholders)
	rows, err := s.tx.Conn(ctx).QueryContext(ctx, query, values...)
	if err != nil {
		return nil, fmt.Errorf("load keywords by %s: %w", column, err)
	}
	defer rows.Close()

	keywords := make([]domain.Keyword, 0)
	for rows.Next() {
		var (
			k        domain.Keyword
			parentID sql.NullInt64
		)
		if err := rows.Scan(&k.ID, &k.Name, &k.Intention, &parentID); err != nil {
			return nil, fmt.Errorf("scan keyword: %w", err)
		}
		k.ParentID = parentID.Int64
		keywords = append(keywords, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keywords: %w", err)
	}
	return keywords, nil
}

func (s *SQLiteReferenceStore) CreateKeyword(ctx context.Context, keyword domain.Keyword) (int64, error) {
	var parentID any
	if keyword.ParentID != 0 {
		parentID = keyword.ParentID
	}
	res, err := s.tx.Conn(ctx).ExecContext(ctx, `
INSERT INTO keyword_references (name, intention, parent_id, updated_at)
VALUES (?, ?, ?, ?)
`, keyword.Name, keyword.Intention, parentID, s.now())
	if err != nil {
		return 0, fmt.Errorf("insert keyword: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("keyword id: %w", err)
	}
	return id, nil
}

func (s *SQLiteReferenceStore) FindProjectReferenceByExactName(ctx context.Context, name string) (domain.ProjectReference, error) {
	ref := domain.ProjectReference{}
	err := s.tx.Conn(ctx).QueryRowContext(ctx, `SELECT id, name FROM project_references WHERE name = ?`, name).Scan(&ref.ID, &ref.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ProjectReference{}, fmt.Errorf("project reference %q: %w", name, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.ProjectReference{}, fmt.Errorf("find project reference: %w", err)
	}
	rows, err := s.tx.Conn(ctx).QueryContext(ctx, `
SELECT keyword_name
FROM project_reference_excluded_keywords
WHERE project_reference_id = ?
ORDER BY keyword_name
`, ref.ID)
	if err != nil {
		return domain.ProjectReference{}, fmt.Errorf("list excluded keywords: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var excluded string
		if err := rows.Scan(&excluded); err != nil {
			return domain.ProjectReference{}, fmt.Errorf("scan excluded keyword: %w", err)
		}
		ref.ExcludedKeywordNames = append(ref.ExcludedKeywordNames, excluded)
	}
	if err := rows.Err(); err != nil {
		return domain.ProjectReference{}, fmt.Errorf("iterate excluded keywords: %w", err)
	}
	return ref, nil
}

// SaveProjectReference upserts by name and replaces the excluded keyword set.
func (s *SQLiteReferenceStore) SaveProjectReference(ctx context.Context, ref domain.ProjectReference) error {
	return s.tx.Within(ctx, func(ctx context.Context) error {
		q := s.tx.Conn(ctx)
		if _, err := q.ExecContext(ctx, `
INSERT INTO project_references (name, updated_at)
VALUES (?, ?)
ON CONFLICT(name) DO UPDATE SET updated_at=excluded.updated_at;
`, ref.Name, s.now()); err != nil {
			return fmt.Errorf("upsert project reference: %w", err)
		}
		var id int64
		if err := q.QueryRowContext(ctx, `SELECT id FROM project_references WHERE name = ?`, ref.Name).Scan(&id); err != nil {
			return fmt.Errorf("project reference id: %w", err)
		}
		if _, err := q.ExecContext(ctx, `DELETE FROM project_reference_excluded_keywords WHERE project_reference_id = ?`, id); err != nil {
			return fmt.Errorf("reset excluded keywords: %w", err)
		}
		for _, name := range ref.ExcludedKeywordNames {
			if _, err := q.ExecContext(ctx, `
INSERT INTO project_reference_excluded_keywords (project_reference_id, keyword_name)
VALUES (?, ?)
ON CONFLICT(project_reference_id, keyword_name) DO NOTHING;
`, id, name); err != nil {
				return fmt.Errorf("insert excluded keyword: %w", err)
			}
		}
		return nil
	})
}

func (s *SQLiteReferenceStore) now() string {
	return s.clock.Now().Format("2006-01-02T15:04:05Z07:00")
}
