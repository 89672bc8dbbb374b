// Package password hashes and verifies user passwords with argon2id.
//
// Hashes are stored in the standard PHC string form
// ($argon2id$v=19$m=...,t=...,p=...$salt$key), so a stored hash carries
// everything needed to verify a candidate password later.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Fixed public parameters. Changing these only affects newly created
// hashes; verification always uses the parameters embedded in the
// stored string.
const (
	SaltLength = 64
	keyLength  = 64
	timeCost   = 8
	memoryKiB  = 65535
	lanes      = 1
)

// Hash derives an argon2id hash from plain with a fresh random salt.
// It returns the salt and the PHC-encoded hash string. An error means
// the entropy source failed, which the caller should treat as an I/O
// failure of the whole operation.
func Hash(plain []byte) (salt []byte, encoded string, err error) {
	salt = make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, "", fmt.Errorf("salt generation error: %w", err)
	}

	key := argon2.IDKey(plain, salt, timeCost, memoryKiB, lanes, keyLength)

	encoded = fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memoryKiB, timeCost, lanes,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))

	return salt, encoded, nil
}

// Verify reports whether plain matches the PHC-encoded hash. A malformed
// stored hash is never an error, only a mismatch. The final comparison is
// constant-time.
func Verify(encoded string, plain []byte) bool {
	salt, key, time, memory, threads, ok := decode(encoded)
	if !ok {
		return false
	}

	candidate := argon2.IDKey(plain, salt, time, memory, threads, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, candidate) == 1
}

// Argon2 adapts the package functions to the hasher interface the auth
// engine consumes.
type Argon2 struct{}

func (Argon2) Hash(plain []byte) ([]byte, string, error) { return Hash(plain) }

func (Argon2) Verify(encoded string, plain []byte) bool { return Verify(encoded, plain) }

func decode(encoded string) (salt, key []byte, time, memory uint32, threads uint8, ok bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, false
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, false
	}
	if memory == 0 || time == 0 || threads == 0 {
		return nil, nil, 0, 0, 0, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, false
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return nil, nil, 0, 0, 0, false
	}

	return salt, key, time, memory, threads, true
}
