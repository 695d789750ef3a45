// Package roster loads, validates, and serializes the candidate-company
// roster document, keyed region → trade category.
package roster

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/daeil-group/tender-cli/internal/model"
)

// Load reads a roster document from a YAML or JSON file.
func Load(path string) (*model.Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "roster: read %s", path)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes roster bytes. ext picks the codec (".yaml"/".yml" or JSON).
// Documents without a regions key are rejected before they can replace an
// in-memory roster.
func Parse(data []byte, ext string) (*model.Roster, error) {
	var r model.Roster
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &r); err != nil {
			return nil, eris.Wrap(err, "roster: parse yaml")
		}
	default:
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, eris.Wrap(err, "roster: parse json")
		}
	}

	if r.Regions == nil {
		return nil, eris.New("roster: document has no regions key")
	}
	return &r, nil
}

// Save writes a roster document to a YAML or JSON file.
func Save(path string, r *model.Roster) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(r)
	default:
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return eris.Wrap(err, "roster: marshal")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "roster: write %s", path)
	}
	return nil
}
