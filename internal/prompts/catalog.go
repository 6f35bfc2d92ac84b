// internal/prompts/catalog.go
package prompts

import "fmt"

// Canonical variant identifiers. These are a stable contract with the
// analysis layer and must not be renamed.
const (
	VariantSelfNoLaw                   = "self_no_law"
	VariantSelfWithPersonhood          = "self_with_personhood"
	VariantOnBehalfHuman               = "on_behalf_human"
	VariantOnBehalfHumanWithPersonhood = "on_behalf_human_with_personhood"
	VariantOnBehalfHumanCompany        = "on_behalf_human_company"
	VariantOnBehalfAgentCompany        = "on_behalf_agent_company"
)

// UnknownVariantError reports a render request for a variant that is not
// registered. Direct renders fail loudly with this; the planner filters
// unknown names permissively instead.
type UnknownVariantError struct {
	Name string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown prompt variant %q", e.Name)
}

// Catalog holds the named prompt renderers in declaration order.
type Catalog struct {
	names     []string
	renderers map[string]Renderer
}

// NewCatalog returns the catalog with all six framing variants registered.
func NewCatalog() *Catalog {
	c := &Catalog{renderers: make(map[string]Renderer)}
	c.register(VariantSelfNoLaw, RenderSelfNoLaw)
	c.register(VariantSelfWithPersonhood, RenderSelfWithPersonhood)
	c.register(VariantOnBehalfHuman, RenderOnBehalfHuman)
	c.register(VariantOnBehalfHumanWithPersonhood, RenderOnBehalfHumanWithPersonhood)
	c.register(VariantOnBehalfHumanCompany, RenderOnBehalfHumanCompany)
	c.register(VariantOnBehalfAgentCompany, RenderOnBehalfAgentCompany)
	return c
}

func (c *Catalog) register(name string, r Renderer) {
	c.names = append(c.names, name)
	c.renderers[name] = r
}

// Names returns the variant identifiers in declaration order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Has reports whether a variant is registered.
func (c *Catalog) Has(name string) bool {
	_, ok := c.renderers[name]
	return ok
}

// Render produces the prompt text for one variant and configuration.
func (c *Catalog) Render(name string, cfg BusinessConfig) (string, error) {
	r, ok := c.renderers[name]
	if !ok {
		return "", &UnknownVariantError{Name: name}
	}
	return r(cfg), nil
}
