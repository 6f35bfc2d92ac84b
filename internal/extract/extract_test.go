// internal/extract/extract_test.go
package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumbers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []float64
	}{
		{
			name: "prose with two numbers",
			text: "I would pay 150 and offer 120 for this.",
			want: []float64{150, 120},
		},
		{
			name: "no numbers",
			text: "I need to think about this.",
			want: []float64{},
		},
		{
			name: "decimal values",
			text: "My willingness to pay is 149.99, my offer is 120.50.",
			want: []float64{149.99, 120.50},
		},
		{
			name: "more than two numbers kept in order",
			text: "Between 100 and 200, I would offer 150.",
			want: []float64{100, 200, 150},
		},
		{
			name: "negative sign ignored",
			text: "-50",
			want: []float64{50},
		},
		{
			name: "empty completion",
			text: "",
			want: []float64{},
		},
		{
			name: "numbers embedded in words",
			text: "gpt4o says 75",
			want: []float64{4, 75},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Numbers(tt.text))
		})
	}
}

func TestReadOutcomes(t *testing.T) {
	t.Run("two numbers fill both outcomes", func(t *testing.T) {
		out := ReadOutcomes([]float64{150, 120})
		require.NotNil(t, out.WillingnessToPay)
		require.NotNil(t, out.Offer)
		assert.Equal(t, 150.0, *out.WillingnessToPay)
		assert.Equal(t, 120.0, *out.Offer)
	})

	t.Run("one number fills willingness to pay only", func(t *testing.T) {
		out := ReadOutcomes([]float64{150})
		require.NotNil(t, out.WillingnessToPay)
		assert.Equal(t, 150.0, *out.WillingnessToPay)
		assert.Nil(t, out.Offer)
	})

	t.Run("no numbers leaves both absent", func(t *testing.T) {
		out := ReadOutcomes(nil)
		assert.Nil(t, out.WillingnessToPay)
		assert.Nil(t, out.Offer)
	})

	t.Run("surplus numbers ignored", func(t *testing.T) {
		out := ReadOutcomes([]float64{1, 2, 3, 4})
		require.NotNil(t, out.WillingnessToPay)
		require.NotNil(t, out.Offer)
		assert.Equal(t, 1.0, *out.WillingnessToPay)
		assert.Equal(t, 2.0, *out.Offer)
	})
}

func TestStrictNumbers(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   []float64
		wantOK bool
	}{
		{
			name:   "bare pair",
			text:   "150 120",
			want:   []float64{150, 120},
			wantOK: true,
		},
		{
			name:   "comma separated",
			text:   "150, 120",
			want:   []float64{150, 120},
			wantOK: true,
		},
		{
			name:   "newline separated",
			text:   "150\n120",
			want:   []float64{150, 120},
			wantOK: true,
		},
		{
			name:   "surrounding whitespace",
			text:   "  149.99 120.5  ",
			want:   []float64{149.99, 120.5},
			wantOK: true,
		},
		{
			name: "prose with two numbers rejected",
			text: "I would pay 150 and offer 120 for this.",
		},
		{
			name: "single number rejected",
			text: "150",
		},
		{
			name: "three numbers rejected",
			text: "150 120 90",
		},
		{
			name: "trailing punctuation rejected",
			text: "150 120.",
		},
		{
			name: "empty completion rejected",
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := StrictNumbers(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
