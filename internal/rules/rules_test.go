package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daeil-group/tender-cli/internal/model"
)

func TestDefaultValidates(t *testing.T) {
	doc := Default()
	require.NoError(t, Validate(doc))
	assert.NotNil(t, doc.Agency("lh"))
	assert.NotNil(t, doc.Agency("PPS"))
	assert.Nil(t, doc.Agency("NOPE"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	doc := Default()

	for _, name := range []string{"rules.json", "rules.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, doc))

		loaded, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, doc, loaded)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"agencies":[]}`), 0o644))
	_, err := Load(empty)
	assert.Error(t, err)

	inverted := filepath.Join(dir, "inverted.json")
	require.NoError(t, os.WriteFile(inverted, []byte(
		`{"agencies":[{"id":"LH","tiers":[{"minAmount":100,"maxAmount":50}]}]}`), 0o644))
	_, err = Load(inverted)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.Error(t, Validate(nil))
	assert.Error(t, Validate(&model.RuleDoc{}))
	assert.Error(t, Validate(&model.RuleDoc{Agencies: []model.OwnerAgency{{Name: "이름만"}}}))
	assert.NoError(t, Validate(&model.RuleDoc{Agencies: []model.OwnerAgency{{ID: "LH"}}}))
}
