package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/astraios/auth-service/internal/models"
	"github.com/astraios/auth-service/internal/pkg/log"
	"github.com/astraios/auth-service/internal/pkg/redact"
	"github.com/astraios/auth-service/internal/tokens"
)

// Login проверяет учётные данные через user-service и выпускает пару
// токенов. Успешный логин заменяет действующую refresh-привязку
// пользователя — одна активная сессия на пользователя.
func (s *Service) Login(ctx context.Context, username, password string) (*models.TokenPair, error) {
	const op = "service.auth.Login"

	lg := log.From(ctx)

	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyCredentials)
	}

	result, err := s.users.VerifyPassword(ctx, username, password)
	if err != nil {
		lg.Error("verify_password_rpc_failed",
			slog.String("op", op),
			slog.String("username", redact.Username(username)),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrUserServiceUnavailable)
	}

	if !result.Matched {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return s.issueTokenPair(ctx, result.UserID, username)
}

// Register создаёт пользователя через user-service. Токены при
// регистрации не выпускаются: клиент должен затем выполнить логин.
func (s *Service) Register(ctx context.Context, username, password string) error {
	const op = "service.auth.Register"

	lg := log.From(ctx)

	if strings.TrimSpace(username) == "" || password == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyCredentials)
	}

	code, err := s.users.Register(ctx, username, password)
	if err != nil {
		lg.Error("register_rpc_failed",
			slog.String("op", op),
			slog.String("username", redact.Username(username)),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: %w", op, ErrUserServiceUnavailable)
	}

	if code != 0 {
		lg.Warn("register_rejected",
			slog.String("op", op),
			slog.Int("code", int(code)),
		)
		return fmt.Errorf("%s: %w", op, ErrRegisterFailed)
	}

	return nil
}

// Refresh ротирует пару токенов по действующему refresh-токену.
// Предъявленный токен сверяется побайтово с привязкой в хранилище:
// после ротации старый токен перестаёт проходить эту проверку, чем и
// обеспечивается одноразовость.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	const op = "service.auth.Refresh"

	lg := log.From(ctx)

	claims, err := s.validateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	userID := claims.Subject

	account, err := s.users.GetUserData(ctx, userID)
	if err != nil {
		lg.Error("get_user_data_rpc_failed",
			slog.String("op", op),
			slog.String("user_id", userID),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrUserServiceUnavailable)
	}

	return s.issueTokenPair(ctx, userID, account.Username)
}

// Logout удаляет refresh-привязку пользователя. Предъявленный токен
// проходит ту же проверку, что и при ротации.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	const op = "service.auth.Logout"

	lg := log.From(ctx)

	claims, err := s.validateRefreshToken(ctx, refreshToken)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.refresh.Del(ctx, claims.Subject); err != nil {
		lg.Error("refresh_binding_delete_failed",
			slog.String("op", op),
			slog.String("user_id", claims.Subject),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// validateRefreshToken проверяет подпись/срок, тип токена и совпадение
// с действующей привязкой в хранилище.
func (s *Service) validateRefreshToken(ctx context.Context, refreshToken string) (*tokens.Claims, error) {
	const op = "service.auth.validateRefreshToken"

	lg := log.From(ctx)

	claims, err := s.codec.Parse(refreshToken)
	if err != nil {
		if errors.Is(err, tokens.ErrTokenExpired) {
			return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	// Access-токен в роли refresh отклоняется до обращения к хранилищу.
	if !claims.IsRefresh() {
		lg.Warn("refresh_wrong_token_type",
			slog.String("op", op),
			slog.String("token_type", claims.TokenType),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	bound, ok, err := s.refresh.Get(ctx, claims.Subject)
	if err != nil {
		lg.Error("refresh_binding_lookup_failed",
			slog.String("op", op),
			slog.String("user_id", claims.Subject),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !ok || subtle.ConstantTimeCompare([]byte(bound), []byte(refreshToken)) != 1 {
		lg.Warn("refresh_binding_mismatch",
			slog.String("op", op),
			slog.String("user_id", claims.Subject),
		)
		return nil, fmt.Errorf("%s: %w: expired or invalid", op, ErrInvalidToken)
	}

	return claims, nil
}

// issueTokenPair выпускает новую пару и заменяет refresh-привязку
// пользователя (последняя запись выигрывает).
func (s *Service) issueTokenPair(ctx context.Context, userID, username string) (*models.TokenPair, error) {
	const op = "service.auth.issueTokenPair"

	lg := log.From(ctx)

	accessToken, err := s.codec.SignAccess(userID, username)
	if err != nil {
		lg.Error("access_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, err := s.codec.SignRefresh(userID)
	if err != nil {
		lg.Error("refresh_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.refresh.Put(ctx, userID, refreshToken, s.codec.RefreshTTL()); err != nil {
		lg.Error("refresh_binding_put_failed",
			slog.String("op", op),
			slog.String("user_id", userID),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
