// Package store persists rule documents, rosters, and evaluation runs behind
// a backend-neutral interface with SQLite and Postgres implementations.
package store

import (
	"context"

	"github.com/daeil-group/tender-cli/internal/model"
)

// RunFilter specifies criteria for listing evaluation runs.
type RunFilter struct {
	Kind  model.RunKind `json:"kind,omitempty"`
	Owner string        `json:"owner,omitempty"`
	Limit int           `json:"limit,omitempty"`
}

// Store defines the persistence interface for the engine's documents and run
// history. Get methods return nil (not an error) when nothing matches.
type Store interface {
	// Rule documents, keyed by name ("default" for the active set).
	SaveRuleDoc(ctx context.Context, name string, doc *model.RuleDoc) error
	GetRuleDoc(ctx context.Context, name string) (*model.RuleDoc, error)

	// Rosters, keyed by name.
	SaveRoster(ctx context.Context, name string, r *model.Roster) error
	GetRoster(ctx context.Context, name string) (*model.Roster, error)

	// Evaluation runs.
	RecordRun(ctx context.Context, run *model.EvaluationRun) error
	GetRun(ctx context.Context, id string) (*model.EvaluationRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.EvaluationRun, error)

	// Lifecycle.
	Migrate(ctx context.Context) error
	Close() error
}
