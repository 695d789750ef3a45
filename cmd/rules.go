package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/daeil-group/tender-cli/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage the per-agency eligibility ruleset",
}

var rulesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active ruleset",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		path, _ := cmd.Flags().GetString("file")
		doc, err := loadRules(ctx, st, path)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	},
}

var rulesInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Store the built-in ruleset as the active one",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		doc := rules.Default()
		if err := st.SaveRuleDoc(ctx, "default", doc); err != nil {
			return eris.Wrap(err, "rules init")
		}
		zap.L().Info("built-in ruleset stored", zap.Int("agencies", len(doc.Agencies)))
		return nil
	},
}

var rulesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validate a rules file and store it as the active ruleset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		doc, err := rules.Load(args[0])
		if err != nil {
			return err
		}
		if err := rules.Validate(doc); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.SaveRuleDoc(ctx, "default", doc); err != nil {
			return eris.Wrap(err, "rules import")
		}
		zap.L().Info("ruleset imported",
			zap.String("file", args[0]),
			zap.Int("agencies", len(doc.Agencies)),
		)
		return nil
	},
}

var rulesExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the active ruleset to a YAML or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		doc, err := loadRules(ctx, st, "")
		if err != nil {
			return err
		}
		if err := rules.Save(args[0], doc); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %d agencies to %s.\n", len(doc.Agencies), args[0])
		return nil
	},
}

func init() {
	rulesShowCmd.Flags().String("file", "", "show a rules file instead of the active ruleset")

	rulesCmd.AddCommand(rulesShowCmd)
	rulesCmd.AddCommand(rulesInitCmd)
	rulesCmd.AddCommand(rulesImportCmd)
	rulesCmd.AddCommand(rulesExportCmd)
	rootCmd.AddCommand(rulesCmd)
}
