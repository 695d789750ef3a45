package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/daeil-group/tender-cli/internal/config"
	"github.com/daeil-group/tender-cli/internal/model"
	"github.com/daeil-group/tender-cli/internal/roster"
	"github.com/daeil-group/tender-cli/internal/rules"
	"github.com/daeil-group/tender-cli/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "tender-cli",
	Short: "Bid eligibility and consortium formation for public construction tenders",
	Long:  "Evaluates single-bid eligibility against per-agency amount-tier rules and forms consortium teams from a regional company roster.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// initStore opens the configured store and runs migrations.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := cfg.OpenStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

// loadRules resolves the active ruleset: an explicit file path wins, then the
// stored "default" document, then the built-in rules.
func loadRules(ctx context.Context, st store.Store, path string) (*model.RuleDoc, error) {
	if path == "" && cfg != nil {
		path = cfg.Engine.RulesPath
	}
	if path != "" {
		return rules.Load(path)
	}
	if st != nil {
		doc, err := st.GetRuleDoc(ctx, "default")
		if err != nil {
			return nil, err
		}
		if doc != nil {
			return doc, nil
		}
	}
	return rules.Default(), nil
}

// loadRoster resolves the active roster: an explicit file path wins, then the
// stored "default" document.
func loadRoster(ctx context.Context, st store.Store, path string) (*model.Roster, error) {
	if path == "" && cfg != nil {
		path = cfg.Engine.RosterPath
	}
	if path != "" {
		return roster.Load(path)
	}
	if st != nil {
		r, err := st.GetRoster(ctx, "default")
		if err != nil {
			return nil, err
		}
		if r != nil {
			return r, nil
		}
	}
	return nil, fmt.Errorf("no roster configured: pass --roster or import one")
}

// recordRun snapshots an engine invocation into the run history.
func recordRun(ctx context.Context, st store.Store, kind model.RunKind, owner string, input, result any) error {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		return err
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return st.RecordRun(ctx, &model.EvaluationRun{
		Kind:   kind,
		Owner:  owner,
		Input:  inputJSON,
		Result: resultJSON,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
