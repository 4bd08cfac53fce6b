package utils // package utils provides helper functions for code generation, tokens and hashing

import (
	"crypto/rand" // secure random source; reference codes must not be guessable
	"math/big"
)

// RefCodeAlphabet is the character set reference codes are drawn from.
const RefCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NewRefCode returns a reference code of the given length with every
// character drawn uniformly from RefCodeAlphabet. rand.Int is modulo-free,
// so no character is more likely than another. At length 10 the space is
// 62^10, large enough that collisions are handled by the storage layer's
// unique constraint rather than a pre-check.
func NewRefCode(length int) (string, error) {
	max := big.NewInt(int64(len(RefCodeAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = RefCodeAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// NewOTPCode returns a 6-digit numeric one-time code as a string,
// zero-padded and drawn from the secure random source.
func NewOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := n.Int64()
	digits := make([]byte, 6)
	for i := 5; i >= 0; i-- {
		digits[i] = byte('0' + code%10)
		code /= 10
	}
	return string(digits), nil
}
