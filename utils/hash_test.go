package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteCodeHashing(t *testing.T) {
	hash, err := HashInviteCode("a1b2c3d4")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "a1b2c3d4", hash)

	assert.True(t, CheckInviteCode(hash, "a1b2c3d4"))
	assert.False(t, CheckInviteCode(hash, "wrong"))
	assert.False(t, CheckInviteCode("not-a-hash", "a1b2c3d4"))
}
