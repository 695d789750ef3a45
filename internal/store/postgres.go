package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/daeil-group/tender-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS rule_docs (
	name       TEXT PRIMARY KEY,
	doc        JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS rosters (
	name       TEXT PRIMARY KEY,
	doc        JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS evaluation_runs (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	kind       TEXT NOT NULL,
	owner      TEXT NOT NULL DEFAULT '',
	input      JSONB NOT NULL,
	result     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_evaluation_runs_kind ON evaluation_runs(kind);
CREATE INDEX IF NOT EXISTS idx_evaluation_runs_owner ON evaluation_runs(owner);
CREATE INDEX IF NOT EXISTS idx_evaluation_runs_created_at ON evaluation_runs(created_at DESC);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveRuleDoc(ctx context.Context, name string, doc *model.RuleDoc) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal rule doc")
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO rule_docs (name, doc, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (name) DO UPDATE SET doc = $2, updated_at = now()`,
		name, data,
	)
	return eris.Wrapf(err, "postgres: save rule doc %s", name)
}

func (s *PostgresStore) GetRuleDoc(ctx context.Context, name string) (*model.RuleDoc, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM rule_docs WHERE name = $1`, name,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get rule doc %s", name)
	}

	var doc model.RuleDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "postgres: unmarshal rule doc %s", name)
	}
	return &doc, nil
}

func (s *PostgresStore) SaveRoster(ctx context.Context, name string, r *model.Roster) error {
	data, err := json.Marshal(r)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal roster")
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO rosters (name, doc, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (name) DO UPDATE SET doc = $2, updated_at = now()`,
		name, data,
	)
	return eris.Wrapf(err, "postgres: save roster %s", name)
}

func (s *PostgresStore) GetRoster(ctx context.Context, name string) (*model.Roster, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM rosters WHERE name = $1`, name,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get roster %s", name)
	}

	var r model.Roster
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, eris.Wrapf(err, "postgres: unmarshal roster %s", name)
	}
	return &r, nil
}

func (s *PostgresStore) RecordRun(ctx context.Context, run *model.EvaluationRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO evaluation_runs (id, kind, owner, input, result, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		run.ID, string(run.Kind), run.Owner, []byte(run.Input), []byte(run.Result), run.CreatedAt,
	)
	return eris.Wrapf(err, "postgres: record run %s", run.ID)
}

func (s *PostgresStore) GetRun(ctx context.Context, id string) (*model.EvaluationRun, error) {
	var run model.EvaluationRun
	var kind string
	var input, result []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, kind, owner, input, result, created_at FROM evaluation_runs WHERE id = $1`,
		id,
	).Scan(&run.ID, &kind, &run.Owner, &input, &result, &run.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get run %s", id)
	}

	run.Kind = model.RunKind(kind)
	run.Input = json.RawMessage(input)
	run.Result = json.RawMessage(result)
	return &run, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.EvaluationRun, error) {
	query := `SELECT id, kind, owner, input, result, created_at FROM evaluation_runs WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Kind != "" {
		query += fmt.Sprintf(` AND kind = $%d`, argIdx)
		args = append(args, string(filter.Kind))
		argIdx++
	}
	if filter.Owner != "" {
		query += fmt.Sprintf(` AND owner = $%d`, argIdx)
		args = append(args, filter.Owner)
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []model.EvaluationRun
	for rows.Next() {
		var run model.EvaluationRun
		var kind string
		var input, result []byte
		if err := rows.Scan(&run.ID, &kind, &run.Owner, &input, &result, &run.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		run.Kind = model.RunKind(kind)
		run.Input = json.RawMessage(input)
		run.Result = json.RawMessage(result)
		runs = append(runs, run)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: list runs iterate")
}
