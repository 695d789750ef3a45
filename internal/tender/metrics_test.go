package tender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMetrics(t *testing.T) {
	t.Run("direct aliases", func(t *testing.T) {
		m := ExtractMetrics(map[string]any{
			"시평":   "3,500,000,000",
			"5년실적": int64(2_000_000_000),
			"지역":   "경기",
		})
		require.NotNil(t, m.Sipyung)
		assert.Equal(t, int64(3_500_000_000), *m.Sipyung)
		require.NotNil(t, m.Perf5y)
		assert.Equal(t, int64(2_000_000_000), *m.Perf5y)
		assert.Equal(t, "경기", m.Region)
	})

	t.Run("english aliases case-insensitive", func(t *testing.T) {
		m := ExtractMetrics(map[string]any{
			"Sipyung":  5_000,
			"PERF5Y":   7_000,
			"Location": "서울",
		})
		require.NotNil(t, m.Sipyung)
		assert.Equal(t, int64(5_000), *m.Sipyung)
		require.NotNil(t, m.Perf5y)
		assert.Equal(t, int64(7_000), *m.Perf5y)
		assert.Equal(t, "서울", m.Region)
	})

	t.Run("keyword fallback", func(t *testing.T) {
		m := ExtractMetrics(map[string]any{
			"2025년 시평액(원)":  "1,000",
			"최근 5년간 실적 합계": "2,000",
			"본사 소재 지역":     "부산",
		})
		require.NotNil(t, m.Sipyung)
		assert.Equal(t, int64(1_000), *m.Sipyung)
		require.NotNil(t, m.Perf5y)
		assert.Equal(t, int64(2_000), *m.Perf5y)
		assert.Equal(t, "부산", m.Region)
	})

	t.Run("absent is distinct from zero", func(t *testing.T) {
		absent := ExtractMetrics(map[string]any{"name": "대일건설"})
		assert.Nil(t, absent.Sipyung)
		assert.Nil(t, absent.Perf5y)

		zero := ExtractMetrics(map[string]any{"시평": 0})
		require.NotNil(t, zero.Sipyung)
		assert.Zero(t, *zero.Sipyung)
	})

	t.Run("empty record", func(t *testing.T) {
		m := ExtractMetrics(nil)
		assert.Nil(t, m.Sipyung)
		assert.Nil(t, m.Perf5y)
		assert.Empty(t, m.Region)
	})

	t.Run("malformed values coerce to zero", func(t *testing.T) {
		m := ExtractMetrics(map[string]any{"시평": "비공개"})
		require.NotNil(t, m.Sipyung)
		assert.Zero(t, *m.Sipyung)
	})
}
