package jwtutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"workspace-service/internal/model"
	"workspace-service/pkg/config"
	"workspace-service/pkg/jwtutil"
)

func newUtil(ttl time.Duration) *jwtutil.JWTUtil {
	return jwtutil.NewJWTUtil(&config.JWTConfig{
		SigningKey: "test-signing-key",
		ExpiresIn:  ttl,
	})
}

func TestGenerateValidateRoundTrip(t *testing.T) {
	util := newUtil(time.Hour)

	user := &model.User{
		ID:       42,
		Email:    "alice@x.com",
		TenantID: "t1",
		Role:     model.RoleEditor,
	}

	token, err := util.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := util.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "t1", claims.TenantID)
	require.Equal(t, "editor", claims.Role)
}

func TestValidateExpiredToken(t *testing.T) {
	util := newUtil(-time.Minute)

	token, err := util.GenerateToken(&model.User{ID: 1, TenantID: "t1", Role: model.RoleViewer})
	require.NoError(t, err)

	_, err = util.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateWrongKey(t *testing.T) {
	issued, err := newUtil(time.Hour).GenerateToken(&model.User{ID: 1, TenantID: "t1", Role: model.RoleViewer})
	require.NoError(t, err)

	other := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "different-key", ExpiresIn: time.Hour})
	_, err = other.ValidateToken(issued)
	require.Error(t, err)
}

func TestValidateMalformedToken(t *testing.T) {
	util := newUtil(time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := util.ValidateToken(tok)
		require.Error(t, err, "token %q should not validate", tok)
	}
}
