package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/daeil-group/tender-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS rule_docs (
	name       TEXT PRIMARY KEY,
	doc        TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS rosters (
	name       TEXT PRIMARY KEY,
	doc        TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS evaluation_runs (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	owner      TEXT NOT NULL DEFAULT '',
	input      TEXT NOT NULL,
	result     TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_evaluation_runs_kind ON evaluation_runs(kind);
CREATE INDEX IF NOT EXISTS idx_evaluation_runs_owner ON evaluation_runs(owner);
CREATE INDEX IF NOT EXISTS idx_evaluation_runs_created_at ON evaluation_runs(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRuleDoc(ctx context.Context, name string, doc *model.RuleDoc) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal rule doc")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO rule_docs (name, doc, updated_at) VALUES (?, ?, datetime('now'))
		 ON CONFLICT(name) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		name, string(data),
	)
	return eris.Wrapf(err, "sqlite: save rule doc %s", name)
}

func (s *SQLiteStore) GetRuleDoc(ctx context.Context, name string) (*model.RuleDoc, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM rule_docs WHERE name = ?`, name,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get rule doc %s", name)
	}

	var doc model.RuleDoc
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, eris.Wrapf(err, "sqlite: unmarshal rule doc %s", name)
	}
	return &doc, nil
}

func (s *SQLiteStore) SaveRoster(ctx context.Context, name string, r *model.Roster) error {
	data, err := json.Marshal(r)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal roster")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO rosters (name, doc, updated_at) VALUES (?, ?, datetime('now'))
		 ON CONFLICT(name) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		name, string(data),
	)
	return eris.Wrapf(err, "sqlite: save roster %s", name)
}

func (s *SQLiteStore) GetRoster(ctx context.Context, name string) (*model.Roster, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM rosters WHERE name = ?`, name,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get roster %s", name)
	}

	var r model.Roster
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return nil, eris.Wrapf(err, "sqlite: unmarshal roster %s", name)
	}
	return &r, nil
}

func (s *SQLiteStore) RecordRun(ctx context.Context, run *model.EvaluationRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO evaluation_runs (id, kind, owner, input, result, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Kind), run.Owner, string(run.Input), string(run.Result), run.CreatedAt,
	)
	return eris.Wrapf(err, "sqlite: record run %s", run.ID)
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*model.EvaluationRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, owner, input, result, created_at FROM evaluation_runs WHERE id = ?`,
		id,
	)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get run %s", id)
	}
	return run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.EvaluationRun, error) {
	query := `SELECT id, kind, owner, input, result, created_at FROM evaluation_runs WHERE 1=1`
	var args []any

	if filter.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(filter.Kind))
	}
	if filter.Owner != "" {
		query += ` AND owner = ?`
		args = append(args, filter.Owner)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []model.EvaluationRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, *run)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*model.EvaluationRun, error) {
	var run model.EvaluationRun
	var kind, input, result string
	if err := row.Scan(&run.ID, &kind, &run.Owner, &input, &result, &run.CreatedAt); err != nil {
		return nil, err
	}
	run.Kind = model.RunKind(kind)
	run.Input = json.RawMessage(input)
	run.Result = json.RawMessage(result)
	return &run, nil
}
