// keys отвечает за ключевой материал сервиса: разбор PEM-пар RSA и
// выбор источника (локальная конфигурация или common-service).
// SigningKey создаётся один раз на старте процесса и далее неизменяем.
package keys

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrNoKeyMaterial — ключевой материал отсутствует после исчерпания
	// всех источников. Для процесса это фатально.
	ErrNoKeyMaterial = errors.New("no usable key material")

	// ErrOpenSSHKey — ключ в формате OpenSSH; поддерживаются только
	// X.509 SubjectPublicKeyInfo (публичный) и PKCS#8 (приватный).
	ErrOpenSSHKey = errors.New("openssh key format is not supported")

	// ErrKeyMismatch — публичная и приватная половины не образуют пару.
	ErrKeyMismatch = errors.New("public and private keys do not match")

	// ErrBadPEM — PEM не разбирается (повреждён, пуст или не RSA).
	ErrBadPEM = errors.New("malformed PEM key material")
)

// SigningKey — RSA-пара и идентификатор ключа (kid).
// Значение неизменяемо после создания и безопасно для конкурентного чтения.
type SigningKey struct {
	KeyID   string
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
}

// Material — нормализованная запись jwt-секции конфигурации
// (локальной или удалённой) до разбора PEM.
type Material struct {
	PublicKeyPEM  string
	PrivateKeyPEM string
	KeyID         string
}

// FromMaterial разбирает PEM-материал и возвращает готовый SigningKey.
// Если kid не задан, синтезируется случайный UUID.
func FromMaterial(m Material) (*SigningKey, error) {
	const op = "keys.FromMaterial"

	if strings.TrimSpace(m.PublicKeyPEM) == "" || strings.TrimSpace(m.PrivateKeyPEM) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoKeyMaterial)
	}

	pub, err := ParsePublicKey(m.PublicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("%s: public: %w", op, err)
	}

	priv, err := ParsePrivateKey(m.PrivateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("%s: private: %w", op, err)
	}

	// Инвариант: половины математически спарены.
	if priv.PublicKey.N.Cmp(pub.N) != 0 || priv.PublicKey.E != pub.E {
		return nil, fmt.Errorf("%s: %w", op, ErrKeyMismatch)
	}

	kid := strings.TrimSpace(m.KeyID)
	if kid == "" {
		kid = uuid.NewString()
	}

	return &SigningKey{
		KeyID:   kid,
		Private: priv,
		Public:  pub,
	}, nil
}

// ParsePublicKey разбирает PEM-публичный ключ (X.509 SubjectPublicKeyInfo).
func ParsePublicKey(raw string) (*rsa.PublicKey, error) {
	const op = "keys.ParsePublicKey"

	block, err := decodePEM(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrBadPEM, err)
	}

	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%s: %w: not an RSA key", op, ErrBadPEM)
	}

	return pub, nil
}

// ParsePrivateKey разбирает PEM-приватный ключ (PKCS#8).
func ParsePrivateKey(raw string) (*rsa.PrivateKey, error) {
	const op = "keys.ParsePrivateKey"

	block, err := decodePEM(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrBadPEM, err)
	}

	priv, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%s: %w: not an RSA key", op, ErrBadPEM)
	}

	return priv, nil
}

// decodePEM снимает PEM-армирование с учётом того, что YAML/ENV могут
// принести лишние пробелы вокруг блока. OpenSSH-ключи отклоняются явно,
// чтобы ошибка конфигурации была диагностируемой.
func decodePEM(raw string) (*pem.Block, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, ErrBadPEM
	}

	if strings.Contains(s, "OPENSSH PRIVATE KEY") || strings.HasPrefix(s, "ssh-rsa ") {
		return nil, ErrOpenSSHKey
	}

	block, _ := pem.Decode([]byte(s))
	if block == nil {
		return nil, ErrBadPEM
	}

	return block, nil
}
