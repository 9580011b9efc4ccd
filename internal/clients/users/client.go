// users — клиент внешнего user-service. auth-service не хранит
// учётные записи: проверка пароля, регистрация и профиль делегируются
// этому сервису по gRPC.
package users

import (
	"context"
	"fmt"

	userv1 "github.com/astraios/auth-service/gen/go/user"
	"github.com/astraios/auth-service/internal/models"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// VerifyResult — результат проверки пары логин/пароль.
// Контракт user-service: matched == true тогда и только тогда,
// когда учётные данные верны; «нет такого пользователя» и «неверный
// пароль» неразличимы по ответу.
type VerifyResult struct {
	Matched bool
	UserID  string
	Roles   []string
}

// Client — контракт user-service, видимый сервисному слою.
type Client interface {
	VerifyPassword(ctx context.Context, username, password string) (*VerifyResult, error)
	Register(ctx context.Context, username, password string) (int32, error)
	GetUserData(ctx context.Context, userID string) (*models.Account, error)
}

// GRPCClient — реализация Client поверх сгенерированного стаба.
type GRPCClient struct {
	conn *grpc.ClientConn
	stub userv1.UserServiceClient
}

// New создаёт клиент user-service. Соединение ленивое; дедлайны
// пробрасываются из контекста запроса.
func New(addr string) (*GRPCClient, error) {
	const op = "clients.users.New"

	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &GRPCClient{conn: conn, stub: userv1.NewUserServiceClient(conn)}, nil
}

// VerifyPassword проверяет учётные данные пользователя.
func (c *GRPCClient) VerifyPassword(ctx context.Context, username, password string) (*VerifyResult, error) {
	const op = "clients.users.VerifyPassword"

	resp, err := c.stub.VerifyPassword(ctx, &userv1.VerifyPasswordRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &VerifyResult{
		Matched: resp.GetMatched(),
		UserID:  resp.GetUserId(),
		Roles:   resp.GetRoles(),
	}, nil
}

// Register создаёт пользователя; имя пробрасывается без изменений.
func (c *GRPCClient) Register(ctx context.Context, username, password string) (int32, error) {
	const op = "clients.users.Register"

	resp, err := c.stub.Register(ctx, &userv1.RegisterRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return resp.GetCode(), nil
}

// GetUserData возвращает отображаемые данные пользователя.
func (c *GRPCClient) GetUserData(ctx context.Context, userID string) (*models.Account, error) {
	const op = "clients.users.GetUserData"

	resp, err := c.stub.GetUserData(ctx, &userv1.UserDataRequest{UserId: userID})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.Account{
		UserID:   userID,
		Username: resp.GetNickname(),
	}, nil
}

// Close закрывает соединение с user-service.
func (c *GRPCClient) Close() error { return c.conn.Close() }

// Проверка на соответствие интерфейсу Client.
var _ Client = (*GRPCClient)(nil)
