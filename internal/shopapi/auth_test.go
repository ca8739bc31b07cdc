package shopapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/toughmall/internal/auth"
)

func TestVerifyCredentialsUnknownEmailAndWrongPasswordAreIdentical(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	unknownEmailErr := verifyCredentials("", false, "correct-horse")
	wrongPasswordErr := verifyCredentials(hash, true, "battery-staple")

	// credential-enumeration resistance: both failures look the same
	require.Error(t, unknownEmailErr)
	require.Error(t, wrongPasswordErr)
	assert.Equal(t, unknownEmailErr, wrongPasswordErr)
	assert.ErrorIs(t, unknownEmailErr, auth.ErrInvalidCredentials)
}

func TestVerifyCredentialsSuccess(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	assert.NoError(t, verifyCredentials(hash, true, "correct-horse"))
}
