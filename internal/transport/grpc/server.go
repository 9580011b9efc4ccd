// transport/grpc содержит реализацию gRPC-эндпоинтов AuthService.
// Здесь выполняется только маппинг данных и ошибок доменного слоя (service) в gRPC.
// Вся валидация и бизнес-логика находятся в пакете service.
//
// Принципы:
//   - Контекст запроса прокидывается в сервис без потерь;
//   - Ошибки сервиса явно транслируются в коды gRPC:
//   - ErrEmptyCredentials -> codes.InvalidArgument;
//   - ErrInvalidCredentials/ErrInvalidToken/ErrTokenExpired -> codes.Unauthenticated;
//   - ErrUserServiceUnavailable -> codes.Unavailable;
//   - иные ошибки -> codes.Internal c единым безопасным сообщением.
//
// Безопасность:
//   - Для codes.Internal наружу не утекают детали внутренних ошибок; подробности
//     должны попадать в логи через интерсепторы на уровне сервера;
//   - Unauthenticated-ответы не различают «нет пользователя» и «неверный пароль».
package grpc

import (
	"context"
	"errors"

	authv1 "github.com/astraios/auth-service/gen/go/auth"
	"github.com/astraios/auth-service/internal/models"
	"github.com/astraios/auth-service/internal/service"
	"github.com/astraios/auth-service/internal/tokens"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AuthService — контракт сервисного слоя, видимый транспорту.
// Реализуется *service.Service.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.TokenPair, error)
	Register(ctx context.Context, username, password string) error
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Codec() *tokens.Codec
}

// Проверка на соответствие контракту.
var _ AuthService = (*service.Service)(nil)

type AuthServer struct {
	authv1.UnimplementedAuthServiceServer
	service AuthService
}

// NewAuthServer создаёт gRPC-сервер авторизации поверх сервисного слоя.
func NewAuthServer(service AuthService) *AuthServer {
	return &AuthServer{service: service}
}

// Login аутентифицирует пользователя и возвращает пару токенов.
// Маппинг ошибок:
//   - ErrEmptyCredentials -> InvalidArgument;
//   - ErrInvalidCredentials -> Unauthenticated;
//   - ErrUserServiceUnavailable -> Unavailable;
//   - прочее -> Internal (без раскрытия деталей).
func (s *AuthServer) Login(ctx context.Context, req *authv1.LoginRequest) (*authv1.LoginResponse, error) {
	const op = "transport/grpc/server/Login"

	pair, err := s.service.Login(ctx, req.GetUsername(), req.GetPassword())
	if err != nil {
		return nil, mapError(op, err)
	}

	// Успех с пустым токеном — это баг выпуска, а не ответ клиенту.
	if pair == nil || pair.AccessToken == "" || pair.RefreshToken == "" {
		return nil, status.Errorf(codes.Internal, "internal server error")
	}

	return &authv1.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Register регистрирует пользователя; токены не выпускаются.
func (s *AuthServer) Register(ctx context.Context, req *authv1.RegisterRequest) (*authv1.RegisterResponse, error) {
	const op = "transport/grpc/server/Register"

	if err := s.service.Register(ctx, req.GetUsername(), req.GetPassword()); err != nil {
		return nil, mapError(op, err)
	}

	return &authv1.RegisterResponse{}, nil
}

// RefreshToken выпускает новую пару токенов по валидному refresh-токену.
func (s *AuthServer) RefreshToken(ctx context.Context, req *authv1.RefreshTokenRequest) (*authv1.RefreshTokenResponse, error) {
	const op = "transport/grpc/server/RefreshToken"

	pair, err := s.service.Refresh(ctx, req.GetRefreshToken())
	if err != nil {
		return nil, mapError(op, err)
	}

	if pair == nil || pair.AccessToken == "" || pair.RefreshToken == "" {
		return nil, status.Errorf(codes.Internal, "internal server error")
	}

	return &authv1.RefreshTokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout отзывает refresh-привязку пользователя.
func (s *AuthServer) Logout(ctx context.Context, req *authv1.LogoutRequest) (*authv1.LogoutResponse, error) {
	const op = "transport/grpc/server/Logout"

	if err := s.service.Logout(ctx, req.GetRefreshToken()); err != nil {
		return nil, mapError(op, err)
	}

	return &authv1.LogoutResponse{Ok: true}, nil
}

// GetJwks отдаёт одноключевой JWK Set текущего ключа подписи.
// Эндпоинт неаутентифицированный: публикуется только публичная половина.
func (s *AuthServer) GetJwks(_ context.Context, _ *authv1.GetJwksRequest) (*authv1.JwksResponse, error) {
	set := s.service.Codec().JWKS()

	keys := make([]*authv1.Jwk, 0, len(set.Keys))
	for _, k := range set.Keys {
		keys = append(keys, &authv1.Jwk{
			Kty: k.Kty,
			Use: k.Use,
			Kid: k.Kid,
			Alg: k.Alg,
			N:   k.N,
			E:   k.E,
		})
	}

	return &authv1.JwksResponse{Keys: keys}, nil
}

// mapError — единственное место, где доменные ошибки становятся
// wire-статусами.
func mapError(op string, err error) error {
	switch {
	case errors.Is(err, service.ErrEmptyCredentials):
		return status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenExpired):
		return status.Errorf(codes.Unauthenticated, "%s: %v", op, err)
	case errors.Is(err, service.ErrUserServiceUnavailable):
		return status.Errorf(codes.Unavailable, "%s: %v", op, err)
	default:
		return status.Errorf(codes.Internal, "internal server error")
	}
}
