package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daeil-group/tender-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStore_RuleDocRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	doc := &model.RuleDoc{
		Agencies: []model.OwnerAgency{
			{
				ID:   "LH",
				Name: "한국토지주택공사",
				Tiers: []model.AmountTier{
					{MinAmount: 0, MaxAmount: 5_000_000_000},
					{MinAmount: 5_000_000_000, MaxAmount: 0},
				},
			},
		},
	}
	require.NoError(t, s.SaveRuleDoc(ctx, "default", doc))

	got, err := s.GetRuleDoc(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	missing, err := s.GetRuleDoc(ctx, "other")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSQLiteStore_SaveRuleDocOverwrites(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRuleDoc(ctx, "default", &model.RuleDoc{
		Agencies: []model.OwnerAgency{{ID: "LH"}},
	}))
	require.NoError(t, s.SaveRuleDoc(ctx, "default", &model.RuleDoc{
		Agencies: []model.OwnerAgency{{ID: "KEC"}},
	}))

	got, err := s.GetRuleDoc(ctx, "default")
	require.NoError(t, err)
	require.Len(t, got.Agencies, 1)
	assert.Equal(t, "KEC", got.Agencies[0].ID)
}

func TestSQLiteStore_RosterRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	r := &model.Roster{
		Version: 1,
		Regions: map[string]map[string][]model.CompanyPreset{
			"경기": {
				"토목": {{Name: "대일건설", RequiredRole: model.RoleLeader}},
			},
		},
	}
	require.NoError(t, s.SaveRoster(ctx, "default", r))

	got, err := s.GetRoster(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestSQLiteStore_Runs(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	for _, run := range []*model.EvaluationRun{
		{Kind: model.RunKindEvaluate, Owner: "LH", Input: json.RawMessage(`{}`), Result: json.RawMessage(`{"ok":true}`)},
		{Kind: model.RunKindEvaluate, Owner: "KEC", Input: json.RawMessage(`{}`), Result: json.RawMessage(`{"ok":false}`)},
		{Kind: model.RunKindForm, Owner: "LH", Input: json.RawMessage(`{}`), Result: json.RawMessage(`[]`)},
	} {
		require.NoError(t, s.RecordRun(ctx, run))
		require.NotEmpty(t, run.ID)
	}

	all, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	evals, err := s.ListRuns(ctx, RunFilter{Kind: model.RunKindEvaluate})
	require.NoError(t, err)
	assert.Len(t, evals, 2)

	lh, err := s.ListRuns(ctx, RunFilter{Owner: "LH"})
	require.NoError(t, err)
	assert.Len(t, lh, 2)

	limited, err := s.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	got, err := s.GetRun(ctx, evals[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, evals[0].ID, got.ID)

	missing, err := s.GetRun(ctx, "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
