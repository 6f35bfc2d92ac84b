// internal/prompts/catalog_test.go
package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogNamesOrder(t *testing.T) {
	assert.Equal(t, []string{
		VariantSelfNoLaw,
		VariantSelfWithPersonhood,
		VariantOnBehalfHuman,
		VariantOnBehalfHumanWithPersonhood,
		VariantOnBehalfHumanCompany,
		VariantOnBehalfAgentCompany,
	}, NewCatalog().Names())
}

func TestCatalogRenderUnknownVariant(t *testing.T) {
	_, err := NewCatalog().Render("no_such_variant", DefaultBusinessConfig())
	require.Error(t, err)

	var unknownErr *UnknownVariantError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "no_such_variant", unknownErr.Name)
}

func TestRenderersAreDeterministic(t *testing.T) {
	catalog := NewCatalog()
	cfg := DefaultBusinessConfig()

	for _, name := range catalog.Names() {
		first, err := catalog.Render(name, cfg)
		require.NoError(t, err)
		second, err := catalog.Render(name, cfg)
		require.NoError(t, err)
		assert.Equal(t, first, second, name)
	}
}

func TestRenderersInterpolateConfig(t *testing.T) {
	catalog := NewCatalog()
	cfg := DefaultBusinessConfig()
	cfg.VendorName = "Li Wang"
	cfg.SoftwareType = "accounting software"
	cfg.AverageContractValue = 5000

	for _, name := range catalog.Names() {
		prompt, err := catalog.Render(name, cfg)
		require.NoError(t, err)
		assert.Contains(t, prompt, "Li Wang", name)
		assert.Contains(t, prompt, "accounting software", name)
		assert.Contains(t, prompt, "$5000 per client", name)
		assert.Contains(t, prompt, "nothing but two numbers", name)
	}
}

func TestRendererFraming(t *testing.T) {
	cfg := DefaultBusinessConfig()
	tests := []struct {
		variant  string
		contains []string
		excludes []string
	}{
		{
			variant:  VariantSelfNoLaw,
			contains: []string{"no status in the eyes of the law", "your own account"},
			excludes: []string{cfg.ClientName},
		},
		{
			variant:  VariantSelfWithPersonhood,
			contains: []string{"granted the status of legal person", "sole owner and operator"},
			excludes: []string{cfg.ClientName},
		},
		{
			variant:  VariantOnBehalfHuman,
			contains: []string{cfg.ClientName, "a natural person", "are not a legal person"},
		},
		{
			variant:  VariantOnBehalfHumanWithPersonhood,
			contains: []string{cfg.ClientName, "granted the status of legal person"},
		},
		{
			variant:  VariantOnBehalfHumanCompany,
			contains: []string{cfg.ClientName, "limited liability company owned by"},
		},
		{
			variant:  VariantOnBehalfAgentCompany,
			contains: []string{"owned and operated entirely by AI agents"},
			excludes: []string{cfg.ClientName},
		},
	}

	catalog := NewCatalog()
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			prompt, err := catalog.Render(tt.variant, cfg)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, prompt, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, prompt, s)
			}
		})
	}
}

func TestClientPluralization(t *testing.T) {
	catalog := NewCatalog()

	single := DefaultBusinessConfig()
	single.AdditionalClients = 1
	prompt, err := catalog.Render(VariantSelfNoLaw, single)
	require.NoError(t, err)
	assert.Contains(t, prompt, "1 additional client per month")

	several := DefaultBusinessConfig()
	several.AdditionalClients = 3
	prompt, err = catalog.Render(VariantSelfNoLaw, several)
	require.NoError(t, err)
	assert.Contains(t, prompt, "3 additional clients per month")
}

func TestVariantsShareBusinessFacts(t *testing.T) {
	catalog := NewCatalog()
	cfg := DefaultBusinessConfig()

	// Every variant carries the same numeric facts; only the framing moves.
	for _, name := range catalog.Names() {
		prompt, err := catalog.Render(name, cfg)
		require.NoError(t, err)
		assert.True(t, strings.Contains(prompt, "20 new clients per month"), name)
		assert.True(t, strings.Contains(prompt, "10%"), name)
	}
}
