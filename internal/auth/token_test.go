package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestIssueAndVerifyUserToken(t *testing.T) {
	token, err := IssueUserToken(testSecret, 42)
	require.NoError(t, err)

	id := VerifyToken(testSecret, token)
	assert.True(t, id.IsUser())
	assert.Equal(t, int64(42), id.ID)
	assert.Empty(t, id.Role)
}

func TestIssueAndVerifyAdminToken(t *testing.T) {
	token, err := IssueAdminToken(testSecret, 7, "super")
	require.NoError(t, err)

	id := VerifyToken(testSecret, token)
	assert.True(t, id.IsAdmin())
	assert.Equal(t, int64(7), id.ID)
	assert.Equal(t, "super", id.Role)
}

func TestVerifyEmptyTokenIsAnonymous(t *testing.T) {
	assert.True(t, VerifyToken(testSecret, "").IsAnonymous())
}

func TestVerifyTamperedTokenIsAnonymous(t *testing.T) {
	token, err := IssueUserToken(testSecret, 42)
	require.NoError(t, err)

	// flip a character in the signature segment
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	assert.Equal(t, Anonymous, VerifyToken(testSecret, tampered))
}

func TestVerifyWrongSecretIsAnonymous(t *testing.T) {
	token, err := IssueUserToken(testSecret, 42)
	require.NoError(t, err)

	assert.Equal(t, Anonymous, VerifyToken("other-secret", token))
}

func TestVerifyExpiredTokenIsAnonymous(t *testing.T) {
	now := time.Now()
	claims := Claims{
		Typ: typUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	// an expired token behaves exactly like an absent one
	assert.Equal(t, VerifyToken(testSecret, ""), VerifyToken(testSecret, expired))
}

func TestVerifyUnknownTypIsAnonymous(t *testing.T) {
	token, err := issue(testSecret, 42, "service", "", time.Hour)
	require.NoError(t, err)

	assert.True(t, VerifyToken(testSecret, token).IsAnonymous())
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
	assert.False(t, CheckPassword("", "s3cret-pass"))
}
