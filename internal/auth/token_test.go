package auth

import (
	"testing"
	"time"

	"github.com/Domenick1991/travelagency/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	tm, err := NewTokenManager("", "travelagency", time.Hour)
	assert.Nil(t, tm)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tm, err := NewTokenManager("secret", "", 0)
	require.NoError(t, err)

	token, err := tm.Issue(domain.Principal{ID: 7, Email: "agent@example.com"})
	require.NoError(t, err)

	p, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Principal{ID: 7, Email: "agent@example.com"}, p)
}

func TestTokenManager_ExpiresAfterTTL(t *testing.T) {
	tm, err := NewTokenManager("secret", "travelagency", DefaultTokenTTL)
	require.NoError(t, err)

	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tm.now = func() time.Time { return issuedAt }

	token, err := tm.Issue(domain.Principal{ID: 1, Email: "a@b.c"})
	require.NoError(t, err)

	tm.now = func() time.Time { return issuedAt.Add(23 * time.Hour) }
	_, err = tm.Verify(token)
	assert.NoError(t, err)

	tm.now = func() time.Time { return issuedAt.Add(24*time.Hour + time.Second) }
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsTampering(t *testing.T) {
	tm, err := NewTokenManager("secret", "travelagency", time.Hour)
	require.NoError(t, err)
	other, err := NewTokenManager("other-secret", "travelagency", time.Hour)
	require.NoError(t, err)
	foreignIssuer, err := NewTokenManager("secret", "someone-else", time.Hour)
	require.NoError(t, err)

	forged, err := other.Issue(domain.Principal{ID: 1, Email: "a@b.c"})
	require.NoError(t, err)
	wrongIssuer, err := foreignIssuer.Issue(domain.Principal{ID: 1, Email: "a@b.c"})
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":  1,
		"exp": time.Now().Add(time.Hour).Unix(),
		"iss": "travelagency",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  1,
		"iss": "travelagency",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "empty", token: ""},
		{name: "wrong key", token: forged},
		{name: "wrong issuer", token: wrongIssuer},
		{name: "alg none", token: none},
		{name: "no expiry", token: noExpiry},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tm.Verify(tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestExtractBearer(t *testing.T) {
	assert.Equal(t, "abc", ExtractBearer("Bearer abc"))
	assert.Equal(t, "abc", ExtractBearer("bearer abc"))
	assert.Equal(t, "", ExtractBearer("Bearer "))
	assert.Equal(t, "", ExtractBearer("Basic abc"))
	assert.Equal(t, "", ExtractBearer("abc"))
	assert.Equal(t, "", ExtractBearer(""))
}
