package common

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString generates a random hexadecimal string. The size
// parameter is the number of random bytes drawn, so the resulting string is
// twice as long. It returns an error only if the random source fails.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// AccessTokenHeaderName is the HTTP header carrying the access token on
// API requests.
const AccessTokenHeaderName = "Authorization"
