// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 100000
	pbkdf2KeyLen     = 32
	saltBytes        = 32
)

// HashPassword derives a PBKDF2-SHA256 hash with a fresh random salt.
// Both return values are hex encoded.
func HashPassword(password string) (hash, salt string, err error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}
	salt = hex.EncodeToString(raw)
	return hashWithSalt(password, salt), salt, nil
}

// VerifyPassword checks a password against a stored hash+salt pair using
// a constant-time compare.
func VerifyPassword(password, hash, salt string) bool {
	candidate := hashWithSalt(password, salt)
	return hmac.Equal([]byte(candidate), []byte(hash))
}

func hashWithSalt(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return hex.EncodeToString(key)
}
