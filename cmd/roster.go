package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/daeil-group/tender-cli/internal/roster"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Manage the regional company roster",
}

var rosterShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active roster",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		path, _ := cmd.Flags().GetString("file")
		r, err := loadRoster(ctx, st, path)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	},
}

var rosterImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store a YAML or JSON roster file as the active roster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		r, err := roster.Load(args[0])
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.SaveRoster(ctx, "default", r); err != nil {
			return eris.Wrap(err, "roster import")
		}
		zap.L().Info("roster imported", zap.String("file", args[0]))
		return nil
	},
}

var rosterImportXLSXCmd = &cobra.Command{
	Use:   "import-xlsx <file>",
	Short: "Import a roster spreadsheet and store it as the active roster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		region, _ := cmd.Flags().GetString("region")
		trade, _ := cmd.Flags().GetString("trade")

		r, err := roster.ImportXLSX(args[0], region, trade)
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.SaveRoster(ctx, "default", r); err != nil {
			return eris.Wrap(err, "roster import-xlsx")
		}

		total := 0
		for _, trades := range r.Regions {
			for _, presets := range trades {
				total += len(presets)
			}
		}
		zap.L().Info("roster spreadsheet imported",
			zap.String("file", args[0]),
			zap.Int("companies", total),
		)
		return nil
	},
}

var rosterExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the active roster to a YAML or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		r, err := loadRoster(ctx, st, "")
		if err != nil {
			return err
		}
		if err := roster.Save(args[0], r); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote roster to %s.\n", args[0])
		return nil
	},
}

func init() {
	rosterShowCmd.Flags().String("file", "", "show a roster file instead of the active roster")
	rosterImportXLSXCmd.Flags().String("region", "기타", "fallback region for rows without one")
	rosterImportXLSXCmd.Flags().String("trade", "기타", "fallback trade for rows without one")

	rosterCmd.AddCommand(rosterShowCmd)
	rosterCmd.AddCommand(rosterImportCmd)
	rosterCmd.AddCommand(rosterImportXLSXCmd)
	rosterCmd.AddCommand(rosterExportCmd)
	rootCmd.AddCommand(rosterCmd)
}
