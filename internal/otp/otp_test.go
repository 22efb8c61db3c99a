package otp

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SixDigitRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := Generate()
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err, "code must be numeric: %s", code)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestExpiry(t *testing.T) {
	expiry := Expiry(3 * time.Minute)
	assert.WithinDuration(t, time.Now().Add(3*time.Minute), expiry, time.Second)

	// Non-positive TTL falls back to the default.
	fallback := Expiry(0)
	assert.WithinDuration(t, time.Now().Add(DefaultTTL), fallback, time.Second)
}

func TestIsExpired_StrictlyPast(t *testing.T) {
	assert.False(t, IsExpired(time.Now().Add(time.Minute)))
	assert.True(t, IsExpired(time.Now().Add(-time.Millisecond)))
	// A future boundary is still valid.
	assert.False(t, IsExpired(time.Now().Add(time.Hour)))
}

func TestMatch(t *testing.T) {
	assert.True(t, Match("123456", "123456"))
	assert.False(t, Match("123456", "123457"))
	assert.False(t, Match("123456", ""))
	assert.False(t, Match("123456", "1234567"))
}
