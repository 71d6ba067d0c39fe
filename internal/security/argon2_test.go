package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastParams = &Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHashAndCompare(t *testing.T) {
	h := NewArgon2Hasher(fastParams)

	encoded, err := h.Hash("good boy")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$"))

	assert.NoError(t, h.Compare(encoded, "good boy"))
	assert.ErrorIs(t, h.Compare(encoded, "bad boy"), ErrPasswordMismatch)
}

func TestHashUsesFreshSalt(t *testing.T) {
	h := NewArgon2Hasher(fastParams)

	a, err := h.Hash("pw")
	require.NoError(t, err)
	b, err := h.Hash("pw")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCompareRejectsMalformedHash(t *testing.T) {
	h := NewArgon2Hasher(fastParams)

	for _, encoded := range []string{"", "plain", "$argon2i$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA", "$argon2id$v=1$m=1,t=1,p=1$c2FsdA$aGFzaA"} {
		assert.Error(t, h.Compare(encoded, "pw"), encoded)
	}
}
