// Package otp generates and checks the one-time numeric codes used to
// authenticate an email or phone identifier.
package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"
)

// DefaultTTL is how long a code stays valid after issuance.
const DefaultTTL = 3 * time.Minute

// Generate returns a uniformly random 6-digit code in [100000, 999999].
func Generate() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// there is nothing sensible to fall back to.
		panic(fmt.Sprintf("otp: rand.Int: %v", err))
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

// Expiry returns the expiry timestamp for a code issued now.
func Expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return time.Now().Add(ttl)
}

// IsExpired reports whether the stored expiry is strictly in the past.
func IsExpired(expiresAt time.Time) bool {
	return time.Now().After(expiresAt)
}

// Match compares a submitted code against the stored one in constant time.
func Match(stored, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}
