package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{
			name:     "Valor com mais de duas casas deve ser arredondado",
			input:    10.456,
			expected: 10.46,
		},
		{
			name:     "Meio centavo arredonda para cima",
			input:    10.455,
			expected: 10.46,
		},
		{
			name:     "Valor exato não muda",
			input:    10.45,
			expected: 10.45,
		},
		{
			name:     "Zero permanece zero",
			input:    0,
			expected: 0,
		},
		{
			name:     "Valor negativo arredonda para longe de zero",
			input:    -10.455,
			expected: -10.46,
		},
		{
			name:     "Meio centavo negativo exato arredonda para longe de zero",
			input:    -0.125,
			expected: -0.13,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RoundWithTwoDecimalPlace(tt.input))
		})
	}
}

func TestRoundWithFourDecimalPlace(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{
			name:     "Taxa com mais de quatro casas deve ser arredondada",
			input:    0.049523,
			expected: 0.0495,
		},
		{
			name:     "Quinta casa igual a 5 arredonda para cima",
			input:    0.00005,
			expected: 0.0001,
		},
		{
			name:     "Zero permanece zero",
			input:    0,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RoundWithFourDecimalPlace(tt.input))
		})
	}
}

func TestSafeDivide(t *testing.T) {
	tests := []struct {
		name        string
		numerator   float64
		denominator float64
		fallback    float64
		expected    float64
	}{
		{
			name:        "Divisão normal",
			numerator:   10,
			denominator: 4,
			fallback:    0,
			expected:    2.5,
		},
		{
			name:        "Denominador zero retorna o fallback",
			numerator:   10,
			denominator: 0,
			fallback:    5,
			expected:    5,
		},
		{
			name:        "Numerador zero retorna zero",
			numerator:   0,
			denominator: 3,
			fallback:    9,
			expected:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SafeDivide(tt.numerator, tt.denominator, tt.fallback))
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{
			name:     "Dentro do intervalo não muda",
			value:    0.5,
			min:      0,
			max:      0.8,
			expected: 0.5,
		},
		{
			name:     "Acima do máximo corta no máximo",
			value:    2.0,
			min:      0,
			max:      0.8,
			expected: 0.8,
		},
		{
			name:     "Abaixo do mínimo corta no mínimo",
			value:    -0.1,
			min:      0,
			max:      0.9,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clamp(tt.value, tt.min, tt.max))
		})
	}
}
