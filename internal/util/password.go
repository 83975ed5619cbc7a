package util

import (
	"crypto/rand"
	"math/big"
)

// tempPasswordChars avoids ambiguous characters (0/O, 1/l/I) so temporary
// passwords survive being read aloud or retyped from an email.
const tempPasswordChars = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

const TempPasswordLength = 10

// GenerateTempPassword returns a human-readable temporary password.
func GenerateTempPassword(length int) (string, error) {
	if length <= 0 {
		length = TempPasswordLength
	}
	chars := []byte(tempPasswordChars)
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		if err != nil {
			return "", err
		}
		out[i] = chars[n.Int64()]
	}
	return string(out), nil
}
