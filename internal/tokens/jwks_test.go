package tokens

import (
	"crypto/rsa"
	"encoding/base64"
	"math/big"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestCodec_JWKS_Shape(t *testing.T) {
	t.Parallel()

	key := testKey(t)
	codec := NewCodec(key, testAuthConfig())

	set := codec.JWKS()
	require.Len(t, set.Keys, 1)

	jwk := set.Keys[0]
	require.Equal(t, "RSA", jwk.Kty)
	require.Equal(t, "sig", jwk.Use)
	require.Equal(t, "RS256", jwk.Alg)
	require.Equal(t, "test-kid", jwk.Kid)

	// base64url без паддинга.
	require.NotContains(t, jwk.N, "=")
	require.NotContains(t, jwk.E, "=")
	require.NotContains(t, jwk.N, "+")
	require.NotContains(t, jwk.N, "/")

	nBytes, err := base64.RawURLEncoding.DecodeString(jwk.N)
	require.NoError(t, err)
	eBytes, err := base64.RawURLEncoding.DecodeString(jwk.E)
	require.NoError(t, err)

	// Минимальная big-endian форма: без ведущих нулей.
	require.NotEmpty(t, nBytes)
	require.NotZero(t, nBytes[0])
	require.NotEmpty(t, eBytes)
	require.NotZero(t, eBytes[0])

	require.Equal(t, key.Public.N.Bytes(), nBytes)
	require.Equal(t, key.Public.E, int(new(big.Int).SetBytes(eBytes).Int64()))
}

// Ключ, восстановленный из JWKS, должен проверять подпись токена,
// выпущенного этим же кодеком.
func TestCodec_JWKS_VerifiesIssuedToken(t *testing.T) {
	t.Parallel()

	codec := NewCodec(testKey(t), testAuthConfig())

	signed, err := codec.SignAccess("user-1", "alice")
	require.NoError(t, err)

	jwk := codec.JWKS().Keys[0]

	nBytes, err := base64.RawURLEncoding.DecodeString(jwk.N)
	require.NoError(t, err)
	eBytes, err := base64.RawURLEncoding.DecodeString(jwk.E)
	require.NoError(t, err)

	restored := &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(new(big.Int).SetBytes(eBytes).Int64()),
	}

	parsed, err := jwt.ParseWithClaims(signed, &Claims{},
		func(t *jwt.Token) (interface{}, error) { return restored, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
	)
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(*Claims)
	require.True(t, ok)
	require.Equal(t, "user-1", claims.Subject)
}
