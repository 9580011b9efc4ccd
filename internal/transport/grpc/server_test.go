package grpc_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"net"
	"testing"
	"time"

	authv1 "github.com/astraios/auth-service/gen/go/auth"
	"github.com/astraios/auth-service/internal/clients/users"
	"github.com/astraios/auth-service/internal/config"
	"github.com/astraios/auth-service/internal/keys"
	"github.com/astraios/auth-service/internal/models"
	"github.com/astraios/auth-service/internal/service"
	"github.com/astraios/auth-service/internal/tokens"
	transportgrpc "github.com/astraios/auth-service/internal/transport/grpc"
	"github.com/astraios/auth-service/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const bufSize = 1024 * 1024

func testCodec(t *testing.T) *tokens.Codec {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	return tokens.NewCodec(
		&keys.SigningKey{KeyID: "test-kid", Private: priv, Public: &priv.PublicKey},
		config.AuthConfig{
			Issuer:          "astraios",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 168 * time.Hour,
		},
	)
}

// startServer поднимает gRPC-сервер на bufconn и возвращает клиента.
func startServer(t *testing.T, svc transportgrpc.AuthService) authv1.AuthServiceClient {
	t.Helper()

	lis := bufconn.Listen(bufSize)

	srv := grpc.NewServer()
	authv1.RegisterAuthServiceServer(srv, transportgrpc.NewAuthServer(svc))

	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return authv1.NewAuthServiceClient(conn)
}

func TestServer_Login_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userClient := mocks.NewMockUserClient(ctrl)
	refreshStore := mocks.NewMockRefreshStore(ctrl)
	codec := testCodec(t)

	userClient.EXPECT().
		VerifyPassword(gomock.Any(), "alice", "secret").
		Return(&users.VerifyResult{Matched: true, UserID: "u1"}, nil)
	refreshStore.EXPECT().
		Put(gomock.Any(), "u1", gomock.Any(), 168*time.Hour).
		Return(nil)

	client := startServer(t, service.New(userClient, codec, refreshStore))

	resp, err := client.Login(context.Background(), &authv1.LoginRequest{
		Username: "alice",
		Password: "secret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.GetAccessToken())
	require.NotEmpty(t, resp.GetRefreshToken())

	claims, err := codec.Parse(resp.GetAccessToken())
	require.NoError(t, err)
	require.Equal(t, "u1", claims.Subject)
}

func TestServer_Login_EmptyCredentials(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := startServer(t, service.New(
		mocks.NewMockUserClient(ctrl),
		testCodec(t),
		mocks.NewMockRefreshStore(ctrl),
	))

	_, err := client.Login(context.Background(), &authv1.LoginRequest{})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestServer_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userClient := mocks.NewMockUserClient(ctrl)
	userClient.EXPECT().
		VerifyPassword(gomock.Any(), "alice", "wrong").
		Return(&users.VerifyResult{Matched: false}, nil)

	client := startServer(t, service.New(
		userClient, testCodec(t), mocks.NewMockRefreshStore(ctrl)))

	_, err := client.Login(context.Background(), &authv1.LoginRequest{
		Username: "alice",
		Password: "wrong",
	})
	require.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestServer_Login_UserServiceDown(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userClient := mocks.NewMockUserClient(ctrl)
	userClient.EXPECT().
		VerifyPassword(gomock.Any(), "alice", "secret").
		Return(nil, errors.New("connection refused"))

	client := startServer(t, service.New(
		userClient, testCodec(t), mocks.NewMockRefreshStore(ctrl)))

	_, err := client.Login(context.Background(), &authv1.LoginRequest{
		Username: "alice",
		Password: "secret",
	})
	require.Equal(t, codes.Unavailable, status.Code(err))
}

func TestServer_Register_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userClient := mocks.NewMockUserClient(ctrl)
	userClient.EXPECT().
		Register(gomock.Any(), "bob", "secret").
		Return(int32(0), nil)

	client := startServer(t, service.New(
		userClient, testCodec(t), mocks.NewMockRefreshStore(ctrl)))

	_, err := client.Register(context.Background(), &authv1.RegisterRequest{
		Username: "bob",
		Password: "secret",
	})
	require.NoError(t, err)
}

func TestServer_Register_Rejected_HidesDetails(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userClient := mocks.NewMockUserClient(ctrl)
	userClient.EXPECT().
		Register(gomock.Any(), "bob", "secret").
		Return(int32(409), nil)

	client := startServer(t, service.New(
		userClient, testCodec(t), mocks.NewMockRefreshStore(ctrl)))

	_, err := client.Register(context.Background(), &authv1.RegisterRequest{
		Username: "bob",
		Password: "secret",
	})

	st, ok := status.FromError(err)
	require.True(t, ok)
	require.Equal(t, codes.Internal, st.Code())
	// Детали внутренних отказов не утекают в ответ.
	require.Equal(t, "internal server error", st.Message())
}

func TestServer_RefreshToken_RotatesPair(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userClient := mocks.NewMockUserClient(ctrl)
	refreshStore := mocks.NewMockRefreshStore(ctrl)
	codec := testCodec(t)

	token, err := codec.SignRefresh("u1")
	require.NoError(t, err)

	refreshStore.EXPECT().
		Get(gomock.Any(), "u1").
		Return(token, true, nil)
	userClient.EXPECT().
		GetUserData(gomock.Any(), "u1").
		Return(&models.Account{UserID: "u1", Username: "alice"}, nil)

	refreshStore.EXPECT().
		Put(gomock.Any(), "u1", gomock.Any(), gomock.Any()).
		Return(nil)

	client := startServer(t, service.New(userClient, codec, refreshStore))

	resp, err := client.RefreshToken(context.Background(), &authv1.RefreshTokenRequest{
		RefreshToken: token,
	})
	require.NoError(t, err)
	require.NotEqual(t, token, resp.GetRefreshToken())

	claims, err := codec.Parse(resp.GetAccessToken())
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
}

func TestServer_RefreshToken_Invalid(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := startServer(t, service.New(
		mocks.NewMockUserClient(ctrl),
		testCodec(t),
		mocks.NewMockRefreshStore(ctrl),
	))

	_, err := client.RefreshToken(context.Background(), &authv1.RefreshTokenRequest{
		RefreshToken: "garbage",
	})
	require.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestServer_Logout_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	refreshStore := mocks.NewMockRefreshStore(ctrl)
	codec := testCodec(t)

	token, err := codec.SignRefresh("u1")
	require.NoError(t, err)

	refreshStore.EXPECT().
		Get(gomock.Any(), "u1").
		Return(token, true, nil)
	refreshStore.EXPECT().
		Del(gomock.Any(), "u1").
		Return(nil)

	client := startServer(t, service.New(
		mocks.NewMockUserClient(ctrl), codec, refreshStore))

	resp, err := client.Logout(context.Background(), &authv1.LogoutRequest{
		RefreshToken: token,
	})
	require.NoError(t, err)
	require.True(t, resp.GetOk())
}

// brokenIssueService отдаёт фиксированную пару без ошибки — имитация
// бага выпуска, при котором «успех» несёт пустой токен.
type brokenIssueService struct {
	pair *models.TokenPair
}

func (s *brokenIssueService) Login(context.Context, string, string) (*models.TokenPair, error) {
	return s.pair, nil
}

func (s *brokenIssueService) Register(context.Context, string, string) error { return nil }

func (s *brokenIssueService) Refresh(context.Context, string) (*models.TokenPair, error) {
	return s.pair, nil
}

func (s *brokenIssueService) Logout(context.Context, string) error { return nil }

func (s *brokenIssueService) Codec() *tokens.Codec { return nil }

func TestServer_EmptyTokenOnSuccess_MapsToInternal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		pair *models.TokenPair
	}{
		{"empty access", &models.TokenPair{AccessToken: "", RefreshToken: "r"}},
		{"empty refresh", &models.TokenPair{AccessToken: "a", RefreshToken: ""}},
		{"both empty", &models.TokenPair{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := startServer(t, &brokenIssueService{pair: tc.pair})

			_, err := client.Login(context.Background(), &authv1.LoginRequest{
				Username: "alice",
				Password: "secret",
			})
			st, ok := status.FromError(err)
			require.True(t, ok)
			require.Equal(t, codes.Internal, st.Code())
			require.Equal(t, "internal server error", st.Message())

			_, err = client.RefreshToken(context.Background(), &authv1.RefreshTokenRequest{
				RefreshToken: "whatever",
			})
			st, ok = status.FromError(err)
			require.True(t, ok)
			require.Equal(t, codes.Internal, st.Code())
			require.Equal(t, "internal server error", st.Message())
		})
	}
}

func TestServer_GetJwks(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	codec := testCodec(t)

	client := startServer(t, service.New(
		mocks.NewMockUserClient(ctrl),
		codec,
		mocks.NewMockRefreshStore(ctrl),
	))

	resp, err := client.GetJwks(context.Background(), &authv1.GetJwksRequest{})
	require.NoError(t, err)
	require.Len(t, resp.GetKeys(), 1)

	key := resp.GetKeys()[0]
	require.Equal(t, "RSA", key.GetKty())
	require.Equal(t, "sig", key.GetUse())
	require.Equal(t, "RS256", key.GetAlg())
	require.Equal(t, "test-kid", key.GetKid())
	require.NotEmpty(t, key.GetN())
	require.NotEmpty(t, key.GetE())
}
