package security

import (
	"testing"
	"time"

	"ngoforum-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-hs256"

func TestTokenManager_AccessTokenRoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, 24*time.Hour)
	orgID := int32(7)
	user := &domain.User{ID: 42, Email: "member@ngo.org", OrgID: &orgID}

	token, err := m.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(42), claims.UserID)
	assert.Equal(t, "member@ngo.org", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	require.NotNil(t, claims.OrgID)
	assert.Equal(t, int32(7), *claims.OrgID)
	assert.False(t, claims.IsStaff)

	p := claims.Principal()
	id, err := p.MemberOrgID()
	require.NoError(t, err)
	assert.Equal(t, int32(7), id)
}

func TestTokenManager_PairTypes(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, 24*time.Hour)
	pair, err := m.GeneratePair(&domain.User{ID: 1, Email: "staff@ngoforum.org", IsStaff: true})
	require.NoError(t, err)

	access, err := m.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeAccess, access.Type)
	assert.True(t, access.IsStaff)
	assert.Nil(t, access.OrgID)

	refresh, err := m.ValidateToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refresh.Type)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Minute, time.Hour).(*tokenManager)
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tm.now = func() time.Time { return issued }

	token, err := tm.GenerateAccessToken(&domain.User{ID: 1})
	require.NoError(t, err)

	tm.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager(testSecret, time.Hour, time.Hour).GenerateAccessToken(&domain.User{ID: 1})
	require.NoError(t, err)

	other := NewTokenManager("another-secret-that-is-also-long-enough", time.Hour, time.Hour)
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = other.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
