package validation

import "strings"

// ValidCPF verifies the two check digits of an 11-digit CPF. Expects an
// already-normalized, digits-only string.
func ValidCPF(cpf string) bool {
	if len(cpf) != 11 || allSameDigit(cpf) {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(cpf[i]-'0') * (10 - i)
	}
	if checkDigit(sum) != int(cpf[9]-'0') {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(cpf[i]-'0') * (11 - i)
	}
	return checkDigit(sum) == int(cpf[10]-'0')
}

// ValidCNPJ verifies the two check digits of a 14-digit CNPJ. Expects an
// already-normalized, digits-only string.
func ValidCNPJ(cnpj string) bool {
	if len(cnpj) != 14 || allSameDigit(cnpj) {
		return false
	}

	if cnpjDigit(cnpj, 12) != int(cnpj[12]-'0') {
		return false
	}
	return cnpjDigit(cnpj, 13) == int(cnpj[13]-'0')
}

func cnpjDigit(cnpj string, length int) int {
	sum := 0
	pos := length - 7
	for i := 0; i < length; i++ {
		sum += int(cnpj[i]-'0') * pos
		pos--
		if pos < 2 {
			pos = 9
		}
	}
	if sum%11 < 2 {
		return 0
	}
	return 11 - sum%11
}

func checkDigit(sum int) int {
	digit := 11 - sum%11
	if digit >= 10 {
		return 0
	}
	return digit
}

func allSameDigit(s string) bool {
	return strings.Count(s, s[:1]) == len(s)
}
