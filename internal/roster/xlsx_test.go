package roster

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/daeil-group/tender-cli/internal/model"
)

func createRosterXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("업체목록")
	require.NoError(t, err)
	for _, rowData := range rows {
		row := sheet.AddRow()
		for _, cellData := range rowData {
			cell := row.AddCell()
			cell.SetString(cellData)
		}
	}
	path := filepath.Join(t.TempDir(), "roster.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestImportXLSX(t *testing.T) {
	path := createRosterXLSX(t, [][]string{
		{"업체명", "지역", "공종", "역할", "단독가능", "최소추정금액", "기본지분", "단독입찰허용"},
		{"대일건설", "경기", "토목", "대표사", "", "5,000,000,000", "60", "Y"},
		{"한빛산업", "경기", "토목", "", "N", "", "", ""},
		{"", "경기", "토목", "", "", "", "", ""}, // nameless row skipped
		{"부산중공업", "부산", "건축", "구성원", "가능", "", "", ""},
	})

	r, err := ImportXLSX(path, "기타", "기타")
	require.NoError(t, err)

	gyeonggi := r.Entries("경기", "토목")
	require.Len(t, gyeonggi, 2)

	lead := gyeonggi[0]
	assert.Equal(t, "대일건설", lead.Name)
	assert.Equal(t, model.RoleLeader, lead.RequiredRole)
	assert.Equal(t, int64(5_000_000_000), lead.MinEstimatedAmount)
	assert.Equal(t, 60, lead.DefaultShare)
	assert.True(t, lead.AllowSingleBid)
	assert.Nil(t, lead.AllowSolo) // blank cell keeps the default

	second := gyeonggi[1]
	require.NotNil(t, second.AllowSolo)
	assert.False(t, *second.AllowSolo)

	busan := r.Entries("부산", "건축")
	require.Len(t, busan, 1)
	assert.Equal(t, model.RoleMember, busan[0].RequiredRole)
	require.NotNil(t, busan[0].AllowSolo)
	assert.True(t, *busan[0].AllowSolo)
}

func TestImportXLSXDefaultsRegionTrade(t *testing.T) {
	path := createRosterXLSX(t, [][]string{
		{"업체명"},
		{"대일건설"},
	})

	r, err := ImportXLSX(path, "경기", "토목")
	require.NoError(t, err)
	require.Len(t, r.Entries("경기", "토목"), 1)
}

func TestImportXLSXErrors(t *testing.T) {
	t.Run("no name column", func(t *testing.T) {
		path := createRosterXLSX(t, [][]string{
			{"지역", "공종"},
			{"경기", "토목"},
		})
		_, err := ImportXLSX(path, "", "")
		assert.Error(t, err)
	})

	t.Run("no data rows", func(t *testing.T) {
		path := createRosterXLSX(t, [][]string{{"업체명"}})
		_, err := ImportXLSX(path, "", "")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ImportXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), "", "")
		assert.Error(t, err)
	})
}
