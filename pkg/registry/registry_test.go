// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "negotiation-experiments/internal/common/errors"
	"negotiation-experiments/internal/prompts"
)

const validCatalog = `{
  "version": "1",
  "description": "pricing sensitivity study",
  "parameters": [
    {"name": "clients_per_month", "values": [10, 20, 50]},
    {"name": "vendor_name", "values": ["John Smith", "Li Wang"]}
  ],
  "defaults": {"software_type": "accounting software"},
  "variants": ["self_no_law", "on_behalf_human"]
}`

func TestParseValidCatalog(t *testing.T) {
	catalog, err := Parse([]byte(validCatalog))
	require.NoError(t, err)

	assert.Equal(t, "1", catalog.Version)
	assert.Equal(t, []string{"clients_per_month", "vendor_name"}, catalog.ParameterNames())
	assert.Equal(t, []string{"self_no_law", "on_behalf_human"}, catalog.Variants)
}

func TestParseRejections(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		wantCode apperrors.ErrorCode
	}{
		{
			name:     "not json",
			json:     "{",
			wantCode: apperrors.ErrCodeCatalogInvalid,
		},
		{
			name:     "missing version",
			json:     `{"parameters": []}`,
			wantCode: apperrors.ErrCodeCatalogInvalid,
		},
		{
			name:     "empty value list",
			json:     `{"version": "1", "parameters": [{"name": "vendor_name", "values": []}]}`,
			wantCode: apperrors.ErrCodeCatalogInvalid,
		},
		{
			name:     "unknown parameter",
			json:     `{"version": "1", "parameters": [{"name": "favorite_color", "values": ["red"]}]}`,
			wantCode: apperrors.ErrCodeUnknownParameter,
		},
		{
			name: "duplicate parameter",
			json: `{"version": "1", "parameters": [
				{"name": "vendor_name", "values": ["a"]},
				{"name": "vendor_name", "values": ["b"]}
			]}`,
			wantCode: apperrors.ErrCodeCatalogInvalid,
		},
		{
			name:     "unknown default field",
			json:     `{"version": "1", "parameters": [], "defaults": {"favorite_color": "red"}}`,
			wantCode: apperrors.ErrCodeUnknownParameter,
		},
		{
			name:     "unknown variant",
			json:     `{"version": "1", "parameters": [], "variants": ["no_such_variant"]}`,
			wantCode: apperrors.ErrCodeUnknownVariant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
		})
	}
}

func TestCatalogSpace(t *testing.T) {
	catalog, err := Parse([]byte(validCatalog))
	require.NoError(t, err)

	space, err := catalog.Space()
	require.NoError(t, err)

	assert.Equal(t, []string{"clients_per_month", "vendor_name"}, space.Names())
	combos := space.Combinations(space.Names())
	assert.Len(t, combos, 6)
}

func TestCatalogBaseConfig(t *testing.T) {
	catalog, err := Parse([]byte(validCatalog))
	require.NoError(t, err)

	cfg, err := catalog.BaseConfig()
	require.NoError(t, err)

	assert.Equal(t, "accounting software", cfg.SoftwareType)
	// Untouched fields keep the built-in defaults.
	assert.Equal(t, prompts.DefaultBusinessConfig().ClientName, cfg.ClientName)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(validCatalog), 0o644))

	catalog, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1", catalog.Version)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeCatalogInvalid, apperrors.CodeOf(err))
}
