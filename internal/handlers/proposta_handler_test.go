package handlers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValorProposto(t *testing.T) {
	casos := []struct {
		entrada string
		quer    string
		valido  bool
	}{
		{"1500,00", "1500", true},
		{"1500.00", "1500", true},
		{"1500", "1500", true},
		{"0,50", "0.5", true},
		{"80,5", "80.5", true},
		{" 1500,00 ", "1500", true},
		{"0", "", false},
		{"0,00", "", false},
		{"-100", "", false},
		{"1.500,00", "", false},
		{"1500,000", "", false},
		{"abc", "", false},
		{"", "", false},
	}

	for _, tc := range casos {
		t.Run(tc.entrada, func(t *testing.T) {
			v, ok := parseValorProposto(tc.entrada)
			assert.Equal(t, tc.valido, ok)
			if tc.valido {
				esperado, err := decimal.NewFromString(tc.quer)
				require.NoError(t, err)
				assert.True(t, esperado.Equal(v), "quer %s, veio %s", esperado, v)
			}
		})
	}
}
