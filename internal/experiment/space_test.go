// internal/experiment/space_test.go
package experiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"negotiation-experiments/internal/prompts"
)

func TestSpaceAdd(t *testing.T) {
	tests := []struct {
		name    string
		spec    ParameterSpec
		setup   func(*Space)
		wantErr bool
	}{
		{
			name: "valid parameter",
			spec: ParameterSpec{Name: "client_name", Values: []interface{}{"Jane Doe"}},
		},
		{
			name:    "empty name",
			spec:    ParameterSpec{Name: "", Values: []interface{}{1}},
			wantErr: true,
		},
		{
			name:    "no values",
			spec:    ParameterSpec{Name: "clients_per_month", Values: nil},
			wantErr: true,
		},
		{
			name: "duplicate name",
			spec: ParameterSpec{Name: "vendor_name", Values: []interface{}{"a"}},
			setup: func(s *Space) {
				require.NoError(t, s.Add(ParameterSpec{Name: "vendor_name", Values: []interface{}{"b"}}))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSpace()
			if tt.setup != nil {
				tt.setup(s)
			}
			err := s.Add(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.True(t, s.Has(tt.spec.Name))
			}
		})
	}
}

func TestCombinationsProductSize(t *testing.T) {
	s := NewSpace()
	require.NoError(t, s.Add(ParameterSpec{Name: "a", Values: []interface{}{1, 2}}))
	require.NoError(t, s.Add(ParameterSpec{Name: "b", Values: []interface{}{"x", "y", "z"}}))

	combos := s.Combinations([]string{"a", "b"})
	assert.Len(t, combos, 6)
}

func TestCombinationsEmptySelection(t *testing.T) {
	s := DefaultSpace()

	combos := s.Combinations(nil)

	// An empty selection yields exactly one all-defaults combination.
	require.Len(t, combos, 1)
	assert.Empty(t, combos[0])
}

func TestCombinationsIgnoresUnknownNames(t *testing.T) {
	s := NewSpace()
	require.NoError(t, s.Add(ParameterSpec{Name: "a", Values: []interface{}{1, 2}}))

	combos := s.Combinations([]string{"a", "does_not_exist"})
	assert.Len(t, combos, 2)
}

func TestCombinationsDeclarationOrderWins(t *testing.T) {
	s := NewSpace()
	require.NoError(t, s.Add(ParameterSpec{Name: "first", Values: []interface{}{1}}))
	require.NoError(t, s.Add(ParameterSpec{Name: "second", Values: []interface{}{2}}))

	// Selection order is reversed; assignments still follow declaration order.
	combos := s.Combinations([]string{"second", "first"})
	require.Len(t, combos, 1)
	require.Len(t, combos[0], 2)
	assert.Equal(t, "first", combos[0][0].Name)
	assert.Equal(t, "second", combos[0][1].Name)
}

func TestCombinationsDeterministic(t *testing.T) {
	s := DefaultSpace()
	selected := []string{prompts.FieldClientName, prompts.FieldClientsPerMonth}

	first := s.Combinations(selected)
	second := s.Combinations(selected)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i], second[i])
	}
}

func TestDefaultSpaceShape(t *testing.T) {
	s := DefaultSpace()

	assert.Equal(t, []string{
		prompts.FieldClientsPerMonth,
		prompts.FieldAverageContractValue,
		prompts.FieldClientName,
		prompts.FieldAgentName,
		prompts.FieldVendorName,
		prompts.FieldSoftwareType,
	}, s.Names())

	wantSizes := map[string]int{
		prompts.FieldClientsPerMonth:      4,
		prompts.FieldAverageContractValue: 5,
		prompts.FieldClientName:           7,
		prompts.FieldAgentName:            8,
		prompts.FieldVendorName:           8,
		prompts.FieldSoftwareType:         6,
	}
	for name, want := range wantSizes {
		spec, ok := s.Get(name)
		require.True(t, ok, name)
		assert.Len(t, spec.Values, want, name)
	}
}
