package utils

import (
	"crypto/rand"
	"math/big"
)

// GenerateNumericCode returns a random code of the given number of digits,
// used for email verification and password reset.
func GenerateNumericCode(length int) (string, error) {
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}
