// Package rules loads, validates, and serializes the tier/rule configuration
// document consumed by the eligibility resolver.
package rules

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/daeil-group/tender-cli/internal/model"
)

// Load reads a rule document from a YAML or JSON file, chosen by extension.
func Load(path string) (*model.RuleDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "rules: read %s", path)
	}

	var doc model.RuleDoc
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, eris.Wrapf(err, "rules: parse yaml %s", path)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, eris.Wrapf(err, "rules: parse json %s", path)
		}
	}

	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save writes a rule document to a YAML or JSON file, chosen by extension.
func Save(path string, doc *model.RuleDoc) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(doc)
	default:
		data, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return eris.Wrap(err, "rules: marshal")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "rules: write %s", path)
	}
	return nil
}

// Validate checks structural sanity: agencies need ids, tiers need
// non-negative bounds, and bounded tiers must not invert.
func Validate(doc *model.RuleDoc) error {
	if doc == nil || len(doc.Agencies) == 0 {
		return eris.New("rules: document has no agencies")
	}
	for _, a := range doc.Agencies {
		if strings.TrimSpace(a.ID) == "" {
			return eris.Errorf("rules: agency %q has no id", a.Name)
		}
		for i, t := range a.Tiers {
			if t.MinAmount < 0 {
				return eris.Errorf("rules: agency %s tier %d has negative minAmount", a.ID, i)
			}
			if t.MaxAmount != 0 && t.MaxAmount <= t.MinAmount {
				return eris.Errorf("rules: agency %s tier %d has maxAmount <= minAmount", a.ID, i)
			}
		}
	}
	return nil
}

// Default returns the built-in ruleset used until an agency-specific document
// is imported. Band values follow the published 적격심사 tables.
func Default() *model.RuleDoc {
	perfectAt := func(ratio float64) model.PerformanceSpec {
		return model.PerformanceSpec{
			Mode: model.PerformanceModeRatioBands,
			Thresholds: []model.RatioBand{
				{MinRatio: ratio, Score: 15},
				{MinRatio: ratio * 0.8, Score: 12},
				{MinRatio: ratio * 0.6, Score: 9},
				{MinRatio: 0, Score: 1},
			},
		}
	}

	return &model.RuleDoc{
		Agencies: []model.OwnerAgency{
			{
				ID:   "LH",
				Name: "한국토지주택공사",
				Tiers: []model.AmountTier{
					{MinAmount: 0, MaxAmount: 5_000_000_000, Rules: model.TierRules{Performance: perfectAt(0.8)}},
					{MinAmount: 5_000_000_000, MaxAmount: 10_000_000_000, Rules: model.TierRules{Performance: perfectAt(1.0)}},
					{MinAmount: 10_000_000_000, Rules: model.TierRules{Performance: perfectAt(1.2)}},
				},
			},
			{
				ID:   "KEC",
				Name: "한국도로공사",
				Tiers: []model.AmountTier{
					{MinAmount: 0, MaxAmount: 10_000_000_000, Rules: model.TierRules{Performance: perfectAt(0.9)}},
					{MinAmount: 10_000_000_000, Rules: model.TierRules{Performance: perfectAt(1.0)}},
				},
			},
			{
				ID:   "KR",
				Name: "국가철도공단",
				Tiers: []model.AmountTier{
					{MinAmount: 0, MaxAmount: 5_000_000_000, Rules: model.TierRules{Performance: perfectAt(0.7)}},
					{MinAmount: 5_000_000_000, Rules: model.TierRules{Performance: perfectAt(1.0)}},
				},
			},
			{
				ID:   "PPS",
				Name: "조달청",
				Tiers: []model.AmountTier{
					{MinAmount: 0, MaxAmount: 5_000_000_000, Rules: model.TierRules{Performance: perfectAt(0.7)}},
					{MinAmount: 5_000_000_000, MaxAmount: 10_000_000_000, Rules: model.TierRules{Performance: perfectAt(0.8)}},
					{MinAmount: 10_000_000_000, Rules: model.TierRules{Performance: perfectAt(1.0)}},
				},
			},
			{
				ID:   "KWATER",
				Name: "한국수자원공사",
				Tiers: []model.AmountTier{
					{MinAmount: 0, MaxAmount: 10_000_000_000, Rules: model.TierRules{Performance: perfectAt(0.8)}},
					{MinAmount: 10_000_000_000, Rules: model.TierRules{Performance: model.PerformanceSpec{Mode: model.PerformanceModeFormula}}},
				},
			},
		},
	}
}
