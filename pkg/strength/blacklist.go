// SPDX-License-Identifier: MIT

package strength

import (
	"bufio"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"strings"
)

// Blacklist answers set membership for known-bad passwords. Implementations
// must be safe for concurrent use once built.
type Blacklist interface {
	Contains(password string) bool
}

// HashedSet is a Blacklist over uppercase SHA-1 hex digests. SHA-1 keeps the
// digests interchangeable with the Pwned Passwords corpus format; this is a
// lookup key, not a security boundary.
type HashedSet map[string]struct{}

// DefaultBlacklist returns a two-entry demo set (the digests of "password"
// and "123456"). It is nowhere near exhaustive; production deployments
// should load a real corpus with LoadBlacklist instead.
func DefaultBlacklist() HashedSet {
	return HashedSet{
		"5BAA61E4C9B93F3F0682250B6CF8331B7EE68FD8": {}, // "password"
		"7C4A8D09CA3762AF61E59520943DC26494F8941B": {}, // "123456"
	}
}

// Contains hashes the password and checks membership.
func (s HashedSet) Contains(password string) bool {
	_, ok := s[Sha1Hex(password)]
	return ok
}

// Add inserts a plaintext password into the set.
func (s HashedSet) Add(password string) {
	s[Sha1Hex(password)] = struct{}{}
}

// LoadBlacklist builds a HashedSet from a plaintext corpus, one password per
// line. Blank lines are skipped. Lines that already look like SHA-1 hex
// digests are taken as-is, so both plaintext lists and pre-hashed dumps work.
func LoadBlacklist(r io.Reader) (HashedSet, error) {
	set := make(HashedSet)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if isSha1Hex(line) {
			set[strings.ToUpper(line)] = struct{}{}
		} else {
			set.Add(line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return set, nil
}

// Sha1Hex returns the uppercase hexadecimal SHA-1 digest of the password.
// The same digest feeds the blacklist and the k-anonymity breach lookup.
func Sha1Hex(password string) string {
	h := sha1.New()
	h.Write([]byte(password))
	return strings.ToUpper(hex.EncodeToString(h.Sum(nil)))
}

func isSha1Hex(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') && (r < 'A' || r > 'F') {
			return false
		}
	}
	return true
}
