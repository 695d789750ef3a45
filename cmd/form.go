package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/daeil-group/tender-cli/internal/consortium"
	"github.com/daeil-group/tender-cli/internal/krw"
	"github.com/daeil-group/tender-cli/internal/lookup"
	"github.com/daeil-group/tender-cli/internal/model"
	"github.com/daeil-group/tender-cli/internal/tender"
)

var (
	formOwner     string
	formRegion    string
	formTrade     string
	formEstimated string
	formRange     string
	formRoster    string
	formRules     string
	formTeamSize  int
	formDutyRate  float64
	formResolve   bool
	formJSON      bool
	formNoSave    bool
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Form consortium teams from the roster",
	Long:  "Filters the regional roster against the tender, optionally pre-checks each candidate's single-bid eligibility via the record service, and partitions the survivors into leader-led teams.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		r, err := loadRoster(ctx, st, formRoster)
		if err != nil {
			return err
		}
		presets := r.Entries(formRegion, formTrade)
		if len(presets) == 0 {
			fmt.Fprintf(os.Stderr, "No roster entries for %s/%s.\n", formRegion, formTrade)
			return nil
		}

		estimated := krw.Amount(formEstimated)
		if estimated == 0 && formRange != "" {
			estimated = tender.ParseRangeHint(tender.NormalizeOwner(formOwner), formRange)
		}

		doc, err := loadRules(ctx, st, formRules)
		if err != nil {
			return err
		}
		resolver := tender.NewResolver(doc, tender.DefaultOverrides())

		entries := make([]consortium.Entry, len(presets))
		for i, p := range presets {
			entries[i] = consortium.Entry{Preset: p}
		}

		resolved := map[string]map[string]any{}
		if formResolve {
			if err := resolveCandidates(cmd, entries, resolver, estimated, resolved); err != nil {
				return err
			}
		}

		dutyRate := formDutyRate
		if dutyRate < 0 {
			dutyRate = cfg.Engine.DutyShareRate
		}
		bidCtx := consortium.Context{
			Owner:           formOwner,
			EstimatedAmount: estimated,
			DutyShareRate:   dutyRate,
		}
		for _, e := range entries {
			if e.CandidateSingleBid {
				bidCtx.SingleBidEligible = true
				break
			}
		}

		allowed := consortium.Filter(entries, bidCtx)
		zap.L().Info("roster filtered",
			zap.Int("total", len(entries)),
			zap.Int("allowed", len(allowed)),
			zap.Bool("single_bid_eligible", bidCtx.SingleBidEligible),
		)

		allowedPresets := make([]model.CompanyPreset, len(allowed))
		for i, e := range allowed {
			allowedPresets[i] = e.Preset
		}

		teamSize := formTeamSize
		if teamSize <= 0 {
			teamSize = cfg.Engine.MaxTeamSize
		}
		teams := consortium.BuildGroups(allowedPresets, teamSize, func(name string) (map[string]any, bool) {
			record, ok := resolved[name]
			return record, ok
		})

		if !formNoSave {
			input := map[string]any{
				"owner":     formOwner,
				"region":    formRegion,
				"trade":     formTrade,
				"estimated": estimated,
			}
			if err := recordRun(ctx, st, model.RunKindForm, formOwner, input, teams); err != nil {
				zap.L().Warn("failed to record run", zap.Error(err))
			}
		}

		if formJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(teams)
		}
		formatTeams(os.Stdout, teams)
		return nil
	},
}

// resolveCandidates looks up each roster entry's live record and pre-checks
// whether that candidate alone would be single-bid eligible. Lookups run
// concurrently; a missing record leaves the entry name-only.
func resolveCandidates(cmd *cobra.Command, entries []consortium.Entry, resolver *tender.Resolver, estimated int64, resolved map[string]map[string]any) error {
	client := lookup.NewClient(cfg.Lookup.BaseURL,
		lookup.WithAPIKey(cfg.Lookup.APIKey),
		lookup.WithRateLimit(cfg.Lookup.RatePerSec, cfg.Lookup.Burst),
	)

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(4)

	for i := range entries {
		g.Go(func() error {
			name := entries[i].Preset.Name
			record, found, err := client.Lookup(ctx, name)
			if err != nil {
				return eris.Wrapf(err, "lookup %s", name)
			}
			if !found {
				return nil
			}

			result := resolver.EvaluateSingleBid(model.BidContext{
				Owner:           formOwner,
				RangeLabel:      formRange,
				EstimatedAmount: estimated,
				Company:         record,
			})

			mu.Lock()
			entries[i].Candidate = record
			entries[i].CandidateSingleBid = result.OK
			resolved[name] = record
			mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

// formatTeams writes a tabular team listing to w.
func formatTeams(out io.Writer, teams []model.Team) {
	if len(teams) == 0 {
		fmt.Fprintln(out, "No teams formed.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TEAM\tLEADER\tMEMBERS\tSHARES")
	_, _ = fmt.Fprintln(w, "----\t------\t-------\t------")
	for i, team := range teams {
		names := make([]string, 0, len(team.Members))
		for _, m := range team.Members {
			names = append(names, m.Name)
		}
		shares := make([]string, 0, len(team.Shares))
		for _, s := range team.Shares {
			shares = append(shares, fmt.Sprintf("%d%%", s))
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			i+1,
			team.Leader.Name,
			strings.Join(names, ", "),
			strings.Join(shares, "/"),
		)
	}
	_ = w.Flush()
}

func init() {
	formCmd.Flags().StringVar(&formOwner, "owner", "", "owner agency (ID, Korean name, or alias)")
	formCmd.Flags().StringVar(&formRegion, "region", "", "roster region (required)")
	formCmd.Flags().StringVar(&formTrade, "trade", "", "roster trade category (required)")
	formCmd.Flags().StringVar(&formEstimated, "estimated", "", "estimated amount in KRW")
	formCmd.Flags().StringVar(&formRange, "range", "", "tender range label used when no estimate is given")
	formCmd.Flags().StringVar(&formRoster, "roster", "", "roster file (default: stored roster)")
	formCmd.Flags().StringVar(&formRules, "rules", "", "rules file for candidate pre-checks")
	formCmd.Flags().IntVar(&formTeamSize, "max-team-size", 0, "max companies per team (default from config)")
	formCmd.Flags().Float64Var(&formDutyRate, "duty-share-rate", -1, "duty-region share of the estimate (default from config)")
	formCmd.Flags().BoolVar(&formResolve, "resolve", false, "resolve candidates via the lookup service and pre-check single-bid eligibility")
	formCmd.Flags().BoolVar(&formJSON, "json", false, "output teams as JSON")
	formCmd.Flags().BoolVar(&formNoSave, "no-save", false, "do not record the run")
	_ = formCmd.MarkFlagRequired("region")
	_ = formCmd.MarkFlagRequired("trade")
	rootCmd.AddCommand(formCmd)
}
