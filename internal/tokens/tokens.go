// tokens реализует кодек access/refresh-токенов: выпуск и проверку
// компактных JWS, подписанных RS256 ключом процесса.
//
// Кодек не хранит состояния между запросами; все методы безопасны для
// конкурентного использования.
package tokens

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/astraios/auth-service/internal/config"
	"github.com/astraios/auth-service/internal/keys"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Значения клейма token_type.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	// ErrTokenExpired — срок действия токена истёк.
	// Транспорт: codes.Unauthenticated (HTTP 401).
	ErrTokenExpired = errors.New("token expired")

	// ErrSignatureInvalid — подпись не сходится с текущим ключом
	// (чужой ключ, подмена алгоритма). Транспорт: codes.Unauthenticated.
	ErrSignatureInvalid = errors.New("token signature invalid")

	// ErrMalformedToken — токен пуст, не является компактным JWS или
	// несёт некорректные клеймы. Транспорт: codes.Unauthenticated.
	ErrMalformedToken = errors.New("malformed token")
)

// Claims — полезная нагрузка токена.
// token_type присутствует всегда; username — только у access-токенов,
// jti — только у refresh-токенов.
type Claims struct {
	Username  string `json:"username,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// IsAccess сообщает, является ли токен access-токеном.
func (c *Claims) IsAccess() bool { return c.TokenType == TypeAccess }

// IsRefresh сообщает, является ли токен refresh-токеном.
func (c *Claims) IsRefresh() bool { return c.TokenType == TypeRefresh }

// Codec подписывает и проверяет токены одним процессным ключом.
type Codec struct {
	key        *keys.SigningKey
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec создаёт кодек поверх загруженного ключа.
func NewCodec(key *keys.SigningKey, cfg config.AuthConfig) *Codec {
	return &Codec{
		key:        key,
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}
}

// Key возвращает ключ кодека (для публикации JWKS).
func (c *Codec) Key() *keys.SigningKey { return c.key }

// RefreshTTL возвращает срок жизни refresh-токена; он же — TTL
// привязки в хранилище.
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// SignAccess выпускает access-токен для пользователя.
func (c *Codec) SignAccess(userID, username string) (string, error) {
	const op = "tokens.SignAccess"

	now := time.Now().UTC()
	claims := Claims{
		Username:  username,
		TokenType: TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTTL)),
		},
	}

	signed, err := c.sign(claims)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// SignRefresh выпускает refresh-токен со свежим jti.
func (c *Codec) SignRefresh(userID string) (string, error) {
	const op = "tokens.SignRefresh"

	now := time.Now().UTC()
	claims := Claims{
		TokenType: TypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.refreshTTL)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := c.sign(claims)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

func (c *Codec) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = c.key.KeyID

	return token.SignedString(c.key.Private)
}

// Parse проверяет подпись, издателя и срок действия токена и возвращает
// клеймы. Допуск рассинхронизации часов — ноль: проверяющие сервисы при
// необходимости ослабляют его на своей стороне.
func (c *Codec) Parse(tokenStr string) (*Claims, error) {
	const op = "tokens.Parse"

	if strings.TrimSpace(tokenStr) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMalformedToken)
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodRS256 {
				return nil, fmt.Errorf("%s: unexpected method %q", op, t.Method.Alg())
			}

			return c.key.Public, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("%s: %w", op, ErrSignatureInvalid)
		default:
			return nil, fmt.Errorf("%s: %w", op, ErrMalformedToken)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrMalformedToken)
	}

	if claims.Subject == "" || claims.TokenType == "" {
		return nil, fmt.Errorf("%s: %w: required claims missing", op, ErrMalformedToken)
	}

	return claims, nil
}
