// service содержит бизнес-логику auth-сервиса: логин и регистрацию
// через user-service, выпуск и ротацию токенов, работу с хранилищем
// refresh-привязок через интерфейс store.RefreshStore.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин — вся
//     изменяемая часть живёт во внешнем хранилище.
//   - Ошибки возвращаются закрытым набором sentinel-значений и далее
//     маппятся транспортом на gRPC-коды (см. комментарии ниже).
package service

import (
	"errors"

	"github.com/astraios/auth-service/internal/clients/users"
	"github.com/astraios/auth-service/internal/store"
	"github.com/astraios/auth-service/internal/tokens"
)

var (
	// ErrEmptyCredentials — логин или пароль пусты.
	// Транспорт: codes.InvalidArgument (HTTP 400).
	ErrEmptyCredentials = errors.New("username or password is empty")

	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь
	// не найден; user-service намеренно не различает эти случаи.
	// Транспорт: codes.Unauthenticated (HTTP 401).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken — refresh-токен некорректен по формату/подписи,
	// не того типа или не совпадает с действующей привязкой.
	// Транспорт: codes.Unauthenticated (HTTP 401).
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия refresh-токена истёк.
	// Транспорт: codes.Unauthenticated (HTTP 401).
	ErrTokenExpired = errors.New("token expired")

	// ErrUserServiceUnavailable — user-service недоступен или не ответил
	// в срок. Транспорт: codes.Unavailable (HTTP 503).
	ErrUserServiceUnavailable = errors.New("user service unavailable")

	// ErrRegisterFailed — user-service отказал в регистрации
	// (ненулевой код ответа). Транспорт: codes.Internal (HTTP 500).
	ErrRegisterFailed = errors.New("register failed")
)

// Service описывает бизнес-логику auth-сервиса.
type Service struct {
	users   users.Client
	codec   *tokens.Codec
	refresh store.RefreshStore
}

// New создаёт новый экземпляр Service.
func New(users users.Client, codec *tokens.Codec, refresh store.RefreshStore) *Service {
	return &Service{
		users:   users,
		codec:   codec,
		refresh: refresh,
	}
}

// Codec возвращает кодек токенов (транспорту нужен доступ к JWKS).
func (s *Service) Codec() *tokens.Codec { return s.codec }
