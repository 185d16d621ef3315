package cryptopackage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFromPassword(t *testing.T) {
	hash, err := GenerateFromPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	// 相同密码每次生成的盐不同
	other, err := GenerateFromPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestComparePasswordAndHash(t *testing.T) {
	hash, err := GenerateFromPassword("correct horse")
	require.NoError(t, err)

	ok, err := ComparePasswordAndHash("correct horse", hash)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = ComparePasswordAndHash("battery staple", hash)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestComparePasswordAndHash_InvalidFormat(t *testing.T) {
	_, err := ComparePasswordAndHash("x", "not-a-hash")
	assert.Error(t, err)

	_, err = ComparePasswordAndHash("x", "$bcrypt$v=19$m=65536,t=2,p=4$c2FsdA$aGFzaA")
	assert.Error(t, err)
}
