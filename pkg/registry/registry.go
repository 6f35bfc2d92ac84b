// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "negotiation-experiments/internal/common/errors"
	"negotiation-experiments/internal/experiment"
	"negotiation-experiments/internal/prompts"
)

// Load reads and validates a parameter catalog.
func Load(path string) (*ParameterCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeCatalogInvalid, "cannot read catalog file", err)
	}
	return Parse(data)
}

// Parse validates raw catalog JSON against the schema and decodes it.
func Parse(data []byte) (*ParameterCatalog, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(catalogSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeCatalogInvalid, "catalog is not valid JSON", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, apperrors.New(apperrors.ErrCodeCatalogInvalid,
			"catalog schema violation: "+strings.Join(msgs, "; "))
	}

	var catalog ParameterCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeCatalogInvalid, "cannot decode catalog", err)
	}
	if err := catalog.check(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// check enforces what JSON Schema cannot: parameter and variant names must
// be ones the harness knows, and defaults must name real fields.
func (c *ParameterCatalog) check() error {
	known := make(map[string]bool)
	for _, name := range prompts.FieldNames() {
		known[name] = true
	}
	seen := make(map[string]bool)
	for _, p := range c.Parameters {
		if !known[p.Name] {
			return apperrors.New(apperrors.ErrCodeUnknownParameter,
				fmt.Sprintf("catalog declares unknown parameter %q", p.Name))
		}
		if seen[p.Name] {
			return apperrors.New(apperrors.ErrCodeCatalogInvalid,
				fmt.Sprintf("catalog declares parameter %q twice", p.Name))
		}
		seen[p.Name] = true
	}
	for name := range c.Defaults {
		if !known[name] {
			return apperrors.New(apperrors.ErrCodeUnknownParameter,
				fmt.Sprintf("catalog default names unknown field %q", name))
		}
	}
	promptCatalog := prompts.NewCatalog()
	for _, v := range c.Variants {
		if !promptCatalog.Has(v) {
			return apperrors.New(apperrors.ErrCodeUnknownVariant,
				fmt.Sprintf("catalog names unknown variant %q", v))
		}
	}
	return nil
}

// Space builds the parameter space the catalog declares.
func (c *ParameterCatalog) Space() (*experiment.Space, error) {
	space := experiment.NewSpace()
	for _, p := range c.Parameters {
		if err := space.Add(experiment.ParameterSpec{Name: p.Name, Values: p.Values}); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeCatalogInvalid, "catalog parameter rejected", err)
		}
	}
	return space, nil
}

// BaseConfig applies the catalog's default overrides to the built-in
// defaults.
func (c *ParameterCatalog) BaseConfig() (prompts.BusinessConfig, error) {
	cfg := prompts.DefaultBusinessConfig()
	for name, value := range c.Defaults {
		if err := cfg.Set(name, value); err != nil {
			return cfg, apperrors.Wrap(apperrors.ErrCodeCatalogInvalid, "catalog default rejected", err)
		}
	}
	return cfg, nil
}

// ParameterNames returns the declared parameter names in catalog order.
func (c *ParameterCatalog) ParameterNames() []string {
	names := make([]string, len(c.Parameters))
	for i, p := range c.Parameters {
		names[i] = p.Name
	}
	return names
}
