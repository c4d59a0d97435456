package common

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

func Sha256HMAC(msg string, key []byte) (string, error) {
	h := hmac.New(sha256.New, key)
	if _, err := h.Write([]byte(msg)); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifySha256HMAC reports whether signature is the hex encoded HMAC-SHA256
// of msg under key. The comparison is constant time.
func VerifySha256HMAC(msg, signature string, key []byte) bool {
	expected, err := Sha256HMAC(msg, key)
	if err != nil {
		return false
	}

	return hmac.Equal([]byte(expected), []byte(signature))
}
