package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims, key any) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func TestDecodeJWT(t *testing.T) {
	secret := []byte("secret")

	token := sign(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "b7f4c1de-8a55-4c6e-9a8f-0c9d0f5a8e21",
		"exp": time.Now().Add(time.Minute).Unix(),
	}, secret)

	claims, err := DecodeJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "b7f4c1de-8a55-4c6e-9a8f-0c9d0f5a8e21", claims["id"])
}

func TestDecodeJWT_Rejects(t *testing.T) {
	secret := []byte("secret")

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "expired",
			token: sign(t, jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()}, secret),
		},
		{
			name:  "wrong secret",
			token: sign(t, jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Minute).Unix()}, []byte("other")),
		},
		{
			name:  "unsigned",
			token: sign(t, jwt.SigningMethodNone, jwt.MapClaims{}, jwt.UnsafeAllowNoneSignatureType),
		},
		{
			name:  "garbage",
			token: "not-a-token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJWT(tt.token, secret)
			assert.Error(t, err)
		})
	}
}
