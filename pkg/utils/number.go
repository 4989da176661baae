package utils

import "math"

// RoundWithTwoDecimalPlace arredonda valores monetários para 2 casas decimais.
// O motor de simulação reutiliza valores já arredondados nos meses seguintes,
// então arredondar aqui (e não apenas na saída) faz parte do contrato.
// math.Round arredonda metades negativas para longe de zero (-1.005 vira
// -1.01, não -1.00); a diferença só aparece em meio centavo exato de um
// valor negativo.
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// RoundWithFourDecimalPlace arredonda taxas e razões para 4 casas decimais.
func RoundWithFourDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*10000) / 10000
}

// SafeDivide divide numerador por denominador, retornando o fallback quando o
// denominador for zero. Nenhuma razão derivada do forecast produz NaN ou Inf.
func SafeDivide(numerator, denominator, fallback float64) float64 {
	if denominator == 0 {
		return fallback
	}

	return numerator / denominator
}

// Clamp limita o valor ao intervalo [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
