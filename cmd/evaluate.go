package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/daeil-group/tender-cli/internal/krw"
	"github.com/daeil-group/tender-cli/internal/lookup"
	"github.com/daeil-group/tender-cli/internal/model"
	"github.com/daeil-group/tender-cli/internal/tender"
)

var (
	evalInput     string
	evalOwner     string
	evalRange     string
	evalEstimated string
	evalBase      string
	evalEntry     string
	evalRegions   []string
	evalCompany   string
	evalLookup    string
	evalRules     string
	evalNoSave    bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate single-bid eligibility for one company",
	Long:  "Resolves the agency's amount tier for the tender, derives the performance target, and checks the company's 시평, 5년 실적, and duty region against it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		bc, err := buildBidContext()
		if err != nil {
			return err
		}

		if evalLookup != "" {
			client := lookup.NewClient(cfg.Lookup.BaseURL,
				lookup.WithAPIKey(cfg.Lookup.APIKey),
				lookup.WithRateLimit(cfg.Lookup.RatePerSec, cfg.Lookup.Burst),
			)
			record, found, err := client.Lookup(ctx, evalLookup)
			if err != nil {
				return eris.Wrapf(err, "lookup %s", evalLookup)
			}
			if !found {
				zap.L().Warn("company not found in record service", zap.String("name", evalLookup))
			}
			bc.Company = record
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		doc, err := loadRules(ctx, st, evalRules)
		if err != nil {
			return err
		}

		resolver := tender.NewResolver(doc, tender.DefaultOverrides())
		result := resolver.EvaluateSingleBid(*bc)

		if !evalNoSave {
			if err := recordRun(ctx, st, model.RunKindEvaluate, bc.Owner, bc, result); err != nil {
				zap.L().Warn("failed to record run", zap.Error(err))
			}
		}

		zap.L().Info("evaluation complete",
			zap.String("owner", bc.Owner),
			zap.Bool("ok", result.OK),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

// buildBidContext assembles the bid context from --input or individual flags.
// Flags override fields read from the input file.
func buildBidContext() (*model.BidContext, error) {
	var bc model.BidContext
	if evalInput != "" {
		data, err := os.ReadFile(evalInput)
		if err != nil {
			return nil, eris.Wrapf(err, "read input %s", evalInput)
		}
		if err := json.Unmarshal(data, &bc); err != nil {
			return nil, eris.Wrapf(err, "parse input %s", evalInput)
		}
	}

	if evalOwner != "" {
		bc.Owner = evalOwner
	}
	if evalRange != "" {
		bc.RangeLabel = evalRange
	}
	if evalEstimated != "" {
		bc.EstimatedAmount = krw.Amount(evalEstimated)
	}
	if evalBase != "" {
		bc.BaseAmount = krw.Amount(evalBase)
	}
	if evalEntry != "" {
		bc.EntryAmount = krw.Amount(evalEntry)
	}
	if len(evalRegions) > 0 {
		bc.DutyRegions = evalRegions
	}
	if evalCompany != "" {
		data, err := os.ReadFile(evalCompany)
		if err != nil {
			return nil, eris.Wrapf(err, "read company %s", evalCompany)
		}
		if err := json.Unmarshal(data, &bc.Company); err != nil {
			return nil, eris.Wrapf(err, "parse company %s", evalCompany)
		}
	}

	if bc.Owner == "" {
		return nil, eris.New("owner is required: pass --owner or set it in --input")
	}
	return &bc, nil
}

func init() {
	evaluateCmd.Flags().StringVar(&evalInput, "input", "", "bid context JSON file")
	evaluateCmd.Flags().StringVar(&evalOwner, "owner", "", "owner agency (ID, Korean name, or alias)")
	evaluateCmd.Flags().StringVar(&evalRange, "range", "", "tender range label, e.g. \"50억~100억\"")
	evaluateCmd.Flags().StringVar(&evalEstimated, "estimated", "", "estimated amount in KRW")
	evaluateCmd.Flags().StringVar(&evalBase, "base", "", "base amount in KRW")
	evaluateCmd.Flags().StringVar(&evalEntry, "entry", "", "entry amount in KRW")
	evaluateCmd.Flags().StringSliceVar(&evalRegions, "region", nil, "duty region (repeatable)")
	evaluateCmd.Flags().StringVar(&evalCompany, "company", "", "company record JSON file")
	evaluateCmd.Flags().StringVar(&evalLookup, "lookup", "", "fetch the company record by name from the lookup service")
	evaluateCmd.Flags().StringVar(&evalRules, "rules", "", "rules file (default: stored or built-in rules)")
	evaluateCmd.Flags().BoolVar(&evalNoSave, "no-save", false, "do not record the run")
	rootCmd.AddCommand(evaluateCmd)
}
