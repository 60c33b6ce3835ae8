package validator

import (
	"strings"
	"unicode"
)

const cpfLength = 11

// NormalizeCPF strips every non-digit rune, so "123.456.789-09" becomes "12345678909".
func NormalizeCPF(cpf string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}

		return -1
	}, cpf)
}

// IsValidCPF checks length, repeated digits and both check digits of a Brazilian CPF.
func IsValidCPF(cpf string) bool {
	cpf = NormalizeCPF(cpf)
	if len(cpf) != cpfLength {
		return false
	}

	if strings.Count(cpf, cpf[:1]) == cpfLength {
		return false
	}

	for pos := 9; pos < cpfLength; pos++ {
		sum := 0
		for idx := range pos {
			sum += int(cpf[idx]-'0') * (pos + 1 - idx)
		}

		digit := ((10 * sum) % 11) % 10
		if int(cpf[pos]-'0') != digit {
			return false
		}
	}

	return true
}
