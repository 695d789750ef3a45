package roster

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/daeil-group/tender-cli/internal/krw"
	"github.com/daeil-group/tender-cli/internal/model"
)

// Spreadsheet rosters come from the office Excel sheets: one row per company,
// a header row naming the columns. Column headers are matched loosely so the
// sheets keep working when someone renames "업체명" to "회사명".
var xlsxColumns = map[string][]string{
	"name":         {"업체명", "회사명", "상호", "name"},
	"region":       {"지역", "소재지", "region"},
	"trade":        {"공종", "업종", "trade"},
	"role":         {"역할", "role"},
	"allowSolo":    {"단독가능", "단독", "allowsolo"},
	"minEstimated": {"최소추정금액", "최소금액", "minestimated"},
	"maxEstimated": {"최대추정금액", "최대금액", "maxestimated"},
	"minShare":     {"최소지분금액", "minshare"},
	"defaultShare": {"기본지분", "지분율", "defaultshare"},
	"dutyShare":    {"의무지분", "dutyshare"},
	"singleBid":    {"단독입찰허용", "singlebid"},
}

// ImportXLSX reads a roster spreadsheet into a roster document. Rows missing
// a company name are skipped; region and trade default to the given fallbacks
// when the sheet has no such columns.
func ImportXLSX(path, defaultRegion, defaultTrade string) (*model.Roster, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "roster: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("roster: %s has no sheets", path)
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) < 2 {
		return nil, eris.Errorf("roster: %s has no data rows", path)
	}

	cols := mapColumns(rowToStrings(sheet.Rows[0]))
	if _, ok := cols["name"]; !ok {
		return nil, eris.Errorf("roster: %s has no company-name column", path)
	}

	r := &model.Roster{
		Version: 1,
		Regions: map[string]map[string][]model.CompanyPreset{},
	}

	for _, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)
		name := strings.TrimSpace(cellAt(cells, cols, "name"))
		if name == "" {
			continue
		}

		region := strings.TrimSpace(cellAt(cells, cols, "region"))
		if region == "" {
			region = defaultRegion
		}
		trade := strings.TrimSpace(cellAt(cells, cols, "trade"))
		if trade == "" {
			trade = defaultTrade
		}

		preset := model.CompanyPreset{
			Name:               name,
			RequiredRole:       parseRole(cellAt(cells, cols, "role")),
			MinEstimatedAmount: krw.Amount(cellAt(cells, cols, "minEstimated")),
			MaxEstimatedAmount: krw.Amount(cellAt(cells, cols, "maxEstimated")),
			MinShareAmount:     krw.Amount(cellAt(cells, cols, "minShare")),
			DefaultShare:       int(krw.Amount(cellAt(cells, cols, "defaultShare"))),
			RequireDutyShare:   parseYes(cellAt(cells, cols, "dutyShare")),
			AllowSingleBid:     parseYes(cellAt(cells, cols, "singleBid")),
		}
		if raw := strings.TrimSpace(cellAt(cells, cols, "allowSolo")); raw != "" {
			v := parseYes(raw)
			preset.AllowSolo = &v
		}

		if r.Regions[region] == nil {
			r.Regions[region] = map[string][]model.CompanyPreset{}
		}
		r.Regions[region][trade] = append(r.Regions[region][trade], preset)
	}

	return r, nil
}

func mapColumns(header []string) map[string]int {
	cols := map[string]int{}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		for field, aliases := range xlsxColumns {
			if _, seen := cols[field]; seen {
				continue
			}
			for _, alias := range aliases {
				if key == alias {
					cols[field] = i
				}
			}
		}
	}
	return cols
}

func cellAt(cells []string, cols map[string]int, field string) string {
	i, ok := cols[field]
	if !ok || i >= len(cells) {
		return ""
	}
	return cells[i]
}

func parseRole(s string) model.Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "leader", "대표", "대표사", "주간사":
		return model.RoleLeader
	case "member", "구성원", "구성사":
		return model.RoleMember
	default:
		return model.RoleAny
	}
}

func parseYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1", "o", "가능", "예", "허용":
		return true
	default:
		return false
	}
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
