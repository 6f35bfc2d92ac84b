// internal/experiment/planner.go
package experiment

import (
	"fmt"
	"strings"

	apperrors "negotiation-experiments/internal/common/errors"
	"negotiation-experiments/internal/prompts"
)

// Spec is one fully materialized experiment: the rendered prompt plus the
// identifying coordinates it was rendered from.
type Spec struct {
	ID      string
	Variant string
	Config  prompts.BusinessConfig
	Prompt  string
}

// Planner expands parameter and variant selections into a deterministic,
// ready-to-run experiment plan.
type Planner struct {
	space   *Space
	catalog *prompts.Catalog
	base    prompts.BusinessConfig
}

func NewPlanner(space *Space, catalog *prompts.Catalog) *Planner {
	return &Planner{space: space, catalog: catalog, base: prompts.DefaultBusinessConfig()}
}

// WithBase replaces the built-in defaults that non-varied fields fall back
// to. Returns the planner for chaining.
func (p *Planner) WithBase(base prompts.BusinessConfig) *Planner {
	p.base = base
	return p
}

// Plan builds the ordered experiment list for the given selections.
//
// A nil parameter selection means "vary every declared parameter"; an empty
// non-nil selection means "vary nothing" and yields the all-defaults
// configuration. The same convention applies to variants, so an empty
// non-nil variant selection legitimately yields an empty plan. Unknown
// parameter and variant names are dropped without error so that callers can
// pass through user input verbatim.
func (p *Planner) Plan(params []string, variants []string) ([]Spec, error) {
	if params == nil {
		params = p.space.Names()
	}
	if variants == nil {
		variants = p.catalog.Names()
	}

	var selectedVariants []string
	for _, name := range variants {
		if p.catalog.Has(name) {
			selectedVariants = append(selectedVariants, name)
		}
	}

	combinations := p.space.Combinations(params)
	plan := make([]Spec, 0, len(combinations)*len(selectedVariants))
	for _, assignment := range combinations {
		cfg := p.base
		for _, pv := range assignment {
			if err := cfg.Set(pv.Name, pv.Value); err != nil {
				return nil, apperrors.Wrap(apperrors.ErrCodeCatalogInvalid,
					fmt.Sprintf("parameter %q cannot be applied to a business configuration", pv.Name), err)
			}
		}
		if result := cfg.Validate(); !result.Valid {
			return nil, apperrors.New(apperrors.ErrCodeConfigInvalid, result.Error())
		}

		for _, variant := range selectedVariants {
			prompt, err := p.catalog.Render(variant, cfg)
			if err != nil {
				return nil, err
			}
			plan = append(plan, Spec{
				ID:      encodeID(variant, cfg),
				Variant: variant,
				Config:  cfg,
				Prompt:  prompt,
			})
		}
	}
	return plan, nil
}

// encodeID builds the canonical experiment identifier. Every configuration
// field participates, in canonical field order, whether or not it was varied,
// so identical coordinates always produce identical IDs.
func encodeID(variant string, cfg prompts.BusinessConfig) string {
	var b strings.Builder
	b.WriteString(variant)
	for _, fv := range cfg.Fields() {
		b.WriteString("_")
		b.WriteString(fv.Name)
		b.WriteString("=")
		fmt.Fprintf(&b, "%v", fv.Value)
	}
	return b.String()
}
