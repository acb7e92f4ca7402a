package util

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		code   string
		want   string
	}{
		{"grouping and one fraction digit", "1234.50", "USD", "$1,234.5"},
		{"whole amount drops fraction", "10", "EUR", "€10"},
		{"rounds to two digits", "19.999", "USD", "$20"},
		{"zero", "0", "USD", "$0"},
		{"negative", "-5.25", "USD", "-$5.25"},
		{"unknown code falls back to code", "12", "XYZ", "XYZ 12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatMoney(decimal.RequireFromString(tt.amount), tt.code)
			assert.Equal(t, tt.want, got)
		})
	}
}
