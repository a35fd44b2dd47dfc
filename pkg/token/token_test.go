package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestInviteToken_RoundTrip(t *testing.T) {
	schoolID := uint(7)
	signed, err := GenerateInviteToken("coach@example.org", &schoolID, "school_admin", testSecret, 24)
	require.NoError(t, err)

	claims, err := ValidateInviteToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "coach@example.org", claims.Email)
	assert.Equal(t, "school_admin", claims.Role)
	require.NotNil(t, claims.SchoolID)
	assert.Equal(t, uint(7), *claims.SchoolID)
}

func TestInviteToken_SuperAdminHasNoSchool(t *testing.T) {
	signed, err := GenerateInviteToken("ops@example.org", nil, "super_admin", testSecret, 24)
	require.NoError(t, err)

	claims, err := ValidateInviteToken(signed, testSecret)
	require.NoError(t, err)
	assert.Nil(t, claims.SchoolID)
}

func TestInviteToken_WrongSecretRejected(t *testing.T) {
	signed, err := GenerateInviteToken("coach@example.org", nil, "school_admin", testSecret, 24)
	require.NoError(t, err)

	_, err = ValidateInviteToken(signed, "other-secret")
	assert.Error(t, err)
}

func TestInviteToken_ExpiredRejected(t *testing.T) {
	signed, err := GenerateInviteToken("coach@example.org", nil, "school_admin", testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateInviteToken(signed, testSecret)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestInviteToken_GarbageRejected(t *testing.T) {
	_, err := ValidateInviteToken("not.a.token", testSecret)
	assert.Error(t, err)
}

func TestGenerateInviteToken_EmptySecret(t *testing.T) {
	_, err := GenerateInviteToken("coach@example.org", nil, "school_admin", "", 24)
	assert.Error(t, err)
}
