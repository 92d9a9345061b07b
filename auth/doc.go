// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth issues and checks caller keys.

# Caller Keys

Every request names its caller with X-Caller-ID and proves it with
X-Caller-Key. Keys are HMAC-SHA256 of the identity under a server salt:

	key := auth.GenerateCallerKey("alice", salt)
	err := auth.ValidateCallerKey("alice", key, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
nothing has to be stored: the organizer's key is derived at startup and each
voter's key is returned when the organizer registers them.
*/
package auth
