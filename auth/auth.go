// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrMissingIdentity  = errors.New("caller identity required")
	ErrInvalidCallerKey = errors.New("invalid caller key")
)

// GenerateCallerKey derives the key a caller presents alongside its identity.
// It is an HMAC of the identity, so it can be checked without being stored.
func GenerateCallerKey(identity, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(identity))
	sum := h.Sum(nil)
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateCallerKey checks that key was issued for identity
func ValidateCallerKey(identity, key, salt string) error {
	if identity == "" {
		return ErrMissingIdentity
	}
	expected := GenerateCallerKey(identity, salt)
	if !hmac.Equal([]byte(key), []byte(expected)) {
		return ErrInvalidCallerKey
	}
	return nil
}
