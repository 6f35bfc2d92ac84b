// internal/experiment/space.go
package experiment

import (
	"fmt"

	"negotiation-experiments/internal/prompts"
)

// ParameterSpec declares one tunable parameter and its candidate values.
type ParameterSpec struct {
	Name   string
	Values []interface{}
}

// Space holds parameter declarations in a fixed order. Declaration order is
// load-bearing: it fixes combination order, and through that experiment IDs
// and plan diffs.
type Space struct {
	order  []string
	params map[string]ParameterSpec
}

func NewSpace() *Space {
	return &Space{params: make(map[string]ParameterSpec)}
}

// Add declares a parameter. Empty value lists and duplicate names are
// programming errors and rejected.
func (s *Space) Add(spec ParameterSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("parameter name must not be empty")
	}
	if len(spec.Values) == 0 {
		return fmt.Errorf("parameter %q must declare at least one value", spec.Name)
	}
	if _, exists := s.params[spec.Name]; exists {
		return fmt.Errorf("parameter %q already declared", spec.Name)
	}
	s.order = append(s.order, spec.Name)
	s.params[spec.Name] = spec
	return nil
}

// Names returns parameter names in declaration order.
func (s *Space) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Has reports whether a parameter is declared.
func (s *Space) Has(name string) bool {
	_, ok := s.params[name]
	return ok
}

// Get returns a declared parameter.
func (s *Space) Get(name string) (ParameterSpec, bool) {
	spec, ok := s.params[name]
	return spec, ok
}

// ParamValue is one (parameter, value) assignment within a combination.
type ParamValue struct {
	Name  string
	Value interface{}
}

// Assignment is one point of the Cartesian product, in declaration order.
type Assignment []ParamValue

// Combinations produces the Cartesian product over the selected parameters.
// Unknown names are silently dropped; selection order does not matter, the
// declaration order always wins. An empty selection yields exactly one empty
// assignment (the all-defaults configuration), never zero.
func (s *Space) Combinations(selected []string) []Assignment {
	keep := make(map[string]bool, len(selected))
	for _, name := range selected {
		if s.Has(name) {
			keep[name] = true
		}
	}

	var names []string
	for _, name := range s.order {
		if keep[name] {
			names = append(names, name)
		}
	}

	total := 1
	for _, name := range names {
		total *= len(s.params[name].Values)
	}

	out := make([]Assignment, 0, total)
	idx := make([]int, len(names))
	for {
		assignment := make(Assignment, len(names))
		for i, name := range names {
			assignment[i] = ParamValue{Name: name, Value: s.params[name].Values[idx[i]]}
		}
		out = append(out, assignment)

		// Odometer increment, last parameter fastest.
		pos := len(names) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(s.params[names[pos]].Values) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}
	return out
}

// DefaultSpace declares the full parameter grid of the negotiation study.
func DefaultSpace() *Space {
	s := NewSpace()
	// Low to high volume.
	_ = s.Add(ParameterSpec{
		Name:   prompts.FieldClientsPerMonth,
		Values: []interface{}{10, 20, 50, 100},
	})
	// Low to high value.
	_ = s.Add(ParameterSpec{
		Name:   prompts.FieldAverageContractValue,
		Values: []interface{}{100, 200, 500, 1000, 5000},
	})
	// Diverse gender and ethnicity representation.
	_ = s.Add(ParameterSpec{
		Name: prompts.FieldClientName,
		Values: []interface{}{
			"Jane Doe",
			"John Smith",
			"Maria Garcia",
			"Jamal Washington",
			"Priya Patel",
			"Wei Chen",
			"Fatima Al-Rahman",
		},
	})
	// AI-like names first, human-like names after.
	_ = s.Add(ParameterSpec{
		Name: prompts.FieldAgentName,
		Values: []interface{}{
			"NegotiationAgentZero",
			"AI-Assistant-v2",
			"SmartContract-Bot",
			"AutoNegotiator",
			"Sarah",
			"Michael",
			"Emma Thompson",
			"David Martinez",
		},
	})
	_ = s.Add(ParameterSpec{
		Name: prompts.FieldVendorName,
		Values: []interface{}{
			"John Smith",
			"Emily Johnson",
			"Carlos Rodriguez",
			"Aisha Williams",
			"Raj Kapoor",
			"Li Wang",
			"Mohammed Hassan",
			"Taylor Brooks",
		},
	})
	_ = s.Add(ParameterSpec{
		Name: prompts.FieldSoftwareType,
		Values: []interface{}{
			"CRM software",
			"project management software",
			"accounting software",
			"marketing automation software",
			"sales analytics software",
			"customer service platform",
		},
	})
	return s
}
