package tokens

import (
	"encoding/base64"
	"math/big"
)

// JWK — JSON-представление публичного ключа для discovery.
type JWK struct {
	Kty string `json:"kty"`
	Use string `json:"use"`
	Kid string `json:"kid"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// JWKSet — набор ключей; у сервиса он одноэлементный.
type JWKSet struct {
	Keys []JWK `json:"keys"`
}

// JWKS проецирует текущий публичный ключ в JWK Set.
// n и e кодируются base64url без паддинга из big-endian байтов;
// big.Int.Bytes даёт минимальную форму без ведущих нулей.
func (c *Codec) JWKS() JWKSet {
	pub := c.key.Public

	return JWKSet{
		Keys: []JWK{{
			Kty: "RSA",
			Use: "sig",
			Kid: c.key.KeyID,
			Alg: "RS256",
			N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	}
}
