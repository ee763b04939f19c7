package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrustid-lab/medtrust_api/model"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := &JWTService{AccessTokenDuration: 24 * time.Hour, jwtSecretKey: "test-secret"}

	token, err := svc.ToJWT(&model.User{ID: "user-1", Email: "john@example.com", Role: "patient"})
	require.NoError(t, err)

	claims, err := svc.VerifyJWTToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "john@example.com", claims.Email)
	assert.Equal(t, "patient", claims.Role)
	assert.Equal(t, "MedTrustID", claims.Issuer)
}

func TestVerifyJWTTokenRejectsWrongKey(t *testing.T) {
	issuer := &JWTService{AccessTokenDuration: time.Hour, jwtSecretKey: "secret-a"}
	verifier := &JWTService{AccessTokenDuration: time.Hour, jwtSecretKey: "secret-b"}

	token, err := issuer.ToJWT(&model.User{ID: "user-1", Email: "john@example.com", Role: "patient"})
	require.NoError(t, err)

	_, err = verifier.VerifyJWTToken(token)
	assert.Error(t, err)
}

func TestVerifyJWTTokenRejectsExpired(t *testing.T) {
	svc := &JWTService{AccessTokenDuration: -time.Hour, jwtSecretKey: "test-secret"}

	token, err := svc.ToJWT(&model.User{ID: "user-1", Email: "john@example.com", Role: "patient"})
	require.NoError(t, err)

	_, err = svc.VerifyJWTToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	svc := &JWTService{}

	token, err := svc.ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = svc.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = svc.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)
}
