package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iemarche/inquiry-service/internal/auth"
	"github.com/iemarche/inquiry-service/internal/domain"
)

func TestTokenRoundTripCarriesRoleAndCompanyScope(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 60)
	companyID := int64(3)

	token, expiresAt, err := tm.GenerateToken(42, domain.RoleMember, &companyID)
	require.NoError(t, err)
	require.False(t, expiresAt.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.AccountID)
	require.Equal(t, domain.RoleMember, claims.Role)
	require.NotNil(t, claims.CompanyID)
	require.Equal(t, companyID, *claims.CompanyID)
}

func TestTokenCustomerHasNoCompanyScope(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 60)

	token, _, err := tm.GenerateToken(7, domain.RoleCustomer, nil)
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleCustomer, claims.Role)
	require.Nil(t, claims.CompanyID)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 60)
	other := auth.NewTokenManager("other-secret", 60)

	token, _, err := tm.GenerateToken(7, domain.RoleAdmin, nil)
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	require.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-password", 4)
	require.NoError(t, err)
	require.NoError(t, auth.ComparePassword(hash, "s3cret-password"))
	require.Error(t, auth.ComparePassword(hash, "wrong-password"))
}
