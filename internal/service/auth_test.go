package service_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/astraios/auth-service/internal/clients/users"
	"github.com/astraios/auth-service/internal/config"
	"github.com/astraios/auth-service/internal/keys"
	"github.com/astraios/auth-service/internal/models"
	"github.com/astraios/auth-service/internal/service"
	"github.com/astraios/auth-service/internal/tokens"
	"github.com/astraios/auth-service/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func testCodec(t *testing.T) *tokens.Codec {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	key := &keys.SigningKey{
		KeyID:   "test-kid",
		Private: priv,
		Public:  &priv.PublicKey,
	}

	return tokens.NewCodec(key, config.AuthConfig{
		Issuer:          "astraios",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 168 * time.Hour,
	})
}

// bindStore связывает мок хранилища с in-memory состоянием, чтобы
// можно было проверять ротацию привязок между вызовами.
func bindStore(store *mocks.MockRefreshStore) *sync.Map {
	var state sync.Map

	store.EXPECT().
		Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, userID, token string, _ time.Duration) error {
			state.Store(userID, token)
			return nil
		}).
		AnyTimes()

	store.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, userID string) (string, bool, error) {
			v, ok := state.Load(userID)
			if !ok {
				return "", false, nil
			}
			return v.(string), true, nil
		}).
		AnyTimes()

	store.EXPECT().
		Del(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, userID string) error {
			state.Delete(userID)
			return nil
		}).
		AnyTimes()

	return &state
}

func TestLogin_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userClient := mocks.NewMockUserClient(ctrl)
	refreshStore := mocks.NewMockRefreshStore(ctrl)
	codec := testCodec(t)

	userClient.EXPECT().
		VerifyPassword(gomock.Any(), "alice", "secret").
		Return(&users.VerifyResult{Matched: true, UserID: "u1"}, nil)

	state := bindStore(refreshStore)

	svc := service.New(userClient, codec, refreshStore)

	pair, err := svc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	// Access несёт sub и username, refresh — sub и jti.
	access, err := codec.Parse(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "u1", access.Subject)
	require.Equal(t, "alice", access.Username)
	require.True(t, access.IsAccess())

	refresh, err := codec.Parse(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, "u1", refresh.Subject)
	require.True(t, refresh.IsRefresh())

	// Привязка в хранилище — ровно выданный refresh.
	bound, ok := state.Load("u1")
	require.True(t, ok)
	require.Equal(t, pair.RefreshToken, bound)
}

func TestLogin_ReplacesPreviousBinding(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userClient := mocks.NewMockUserClient(ctrl)
	refreshStore := mocks.NewMockRefreshStore(ctrl)
	codec := testCodec(t)

	userClient.EXPECT().
		VerifyPassword(gomock.Any(), "alice", "secret").
		Return(&users.VerifyResult{Matched: true, UserID: "u1"}, nil).
		Times(2)

	state := bindStore(refreshStore)

	svc := service.New(userClient, codec, refreshStore)

	first, err := svc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	second, err := svc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	bound, _ := state.Load("u1")
	require.Equal(t, second.RefreshToken, bound)
	require.NotEqual(t, first.RefreshToken, bound)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userClient := mocks.NewMockUserClient(ctrl)
	refreshStore := mocks.NewMockRefreshStore(ctrl)

	userClient.EXPECT().
		VerifyPassword(gomock.Any(), "alice", "wrong").
		Return(&users.VerifyResult{Matched: false}, nil)

	svc := service.New(userClient, testCodec(t), refreshStore)

	_, err := svc.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLogin_UserServiceDown(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userClient := mocks.NewMockUserClient(ctrl)
	refreshStore := mocks.NewMockRefreshStore(ctrl)

	userClient.EXPECT().
		VerifyPassword(gomock.Any(), "alice", "secret").
		Return(nil, errors.New("rpc error: connection refused"))

	svc := service.New(userClient, testCodec(t), refreshStore)

	_, err := svc.Login(context.Background(), "alice", "secret")
	require.ErrorIs(t, err, service.ErrUserServiceUnavailable)
}

func TestLogin_EmptyCredentials(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := service.New(
		mocks.NewMockUserClient(ctrl),
		testCodec(t),
		mocks.NewMockRefreshStore(ctrl),
	)

	cases := []struct {
		name               string
		username, password string
	}{
		{"both empty", "", ""},
		{"empty username", "", "secret"},
		{"empty password", "alice", ""},
		{"whitespace username", "   ", "secret"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.username, tc.password)
			require.ErrorIs(t, err, service.ErrEmptyCredentials)
		})
	}
}

func TestRegister_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userClient := mocks.NewMockUserClient(ctrl)

	userClient.EXPECT().
		Register(gomock.Any(), "bob", "secret").
		Return(int32(0), nil)

	svc := service.New(userClient, testCodec(t), mocks.NewMockRefreshStore(ctrl))

	require.NoError(t, svc.Register(context.Background(), "bob", "secret"))
}

func TestRegister_Rejected(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userClient := mocks.NewMockUserClient(ctrl)

	userClient.EXPECT().
		Register(gomock.Any(), "bob", "secret").
		Return(int32(409), nil)

	svc := service.New(userClient, testCodec(t), mocks.NewMockRefreshStore(ctrl))

	err := svc.Register(context.Background(), "bob", "secret")
	require.ErrorIs(t, err, service.ErrRegisterFailed)
}

func TestRegister_UserServiceDown(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userClient := mocks.NewMockUserClient(ctrl)

	userClient.EXPECT().
		Register(gomock.Any(), "bob", "secret").
		Return(int32(0), errors.New("rpc error: unavailable"))

	svc := service.New(userClient, testCodec(t), mocks.NewMockRefreshStore(ctrl))

	err := svc.Register(context.Background(), "bob", "secret")
	require.ErrorIs(t, err, service.ErrUserServiceUnavailable)
}

func TestRegister_EmptyCredentials(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := service.New(
		mocks.NewMockUserClient(ctrl),
		testCodec(t),
		mocks.NewMockRefreshStore(ctrl),
	)

	require.ErrorIs(t,
		svc.Register(context.Background(), "", "secret"), service.ErrEmptyCredentials)
	require.ErrorIs(t,
		svc.Register(context.Background(), "bob", ""), service.ErrEmptyCredentials)
}

func TestRefresh_RotatesAndInvalidatesOldToken(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userClient := mocks.NewMockUserClient(ctrl)
	refreshStore := mocks.NewMockRefreshStore(ctrl)
	codec := testCodec(t)

	userClient.EXPECT().
		VerifyPassword(gomock.Any(), "alice", "secret").
		Return(&users.VerifyResult{Matched: true, UserID: "u1"}, nil)
	userClient.EXPECT().
		GetUserData(gomock.Any(), "u1").
		Return(&models.Account{UserID: "u1", Username: "alice"}, nil)

	state := bindStore(refreshStore)

	svc := service.New(userClient, codec, refreshStore)

	initial, err := svc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	rotated, err := svc.Refresh(context.Background(), initial.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, initial.RefreshToken, rotated.RefreshToken)

	access, err := codec.Parse(rotated.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "u1", access.Subject)
	require.Equal(t, "alice", access.Username)

	bound, _ := state.Load("u1")
	require.Equal(t, rotated.RefreshToken, bound)

	// Старый refresh больше не совпадает с привязкой.
	_, err = svc.Refresh(context.Background(), initial.RefreshToken)
	require.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	codec := testCodec(t)
	svc := service.New(
		mocks.NewMockUserClient(ctrl),
		codec,
		mocks.NewMockRefreshStore(ctrl),
	)

	accessToken, err := codec.SignAccess("u1", "alice")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), accessToken)
	require.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	key := &keys.SigningKey{KeyID: "test-kid", Private: priv, Public: &priv.PublicKey}

	expiredCodec := tokens.NewCodec(key, config.AuthConfig{
		Issuer:          "astraios",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: -time.Minute,
	})
	liveCodec := tokens.NewCodec(key, config.AuthConfig{
		Issuer:          "astraios",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 168 * time.Hour,
	})

	expired, err := expiredCodec.SignRefresh("u1")
	require.NoError(t, err)

	svc := service.New(
		mocks.NewMockUserClient(ctrl),
		liveCodec,
		mocks.NewMockRefreshStore(ctrl),
	)

	_, err = svc.Refresh(context.Background(), expired)
	require.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestRefresh_GarbageToken(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := service.New(
		mocks.NewMockUserClient(ctrl),
		testCodec(t),
		mocks.NewMockRefreshStore(ctrl),
	)

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	require.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestRefresh_NoBinding(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	refreshStore := mocks.NewMockRefreshStore(ctrl)
	codec := testCodec(t)

	refreshStore.EXPECT().
		Get(gomock.Any(), "u1").
		Return("", false, nil)

	svc := service.New(mocks.NewMockUserClient(ctrl), codec, refreshStore)

	token, err := codec.SignRefresh("u1")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), token)
	require.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestRefresh_StoreLookupFails(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	refreshStore := mocks.NewMockRefreshStore(ctrl)
	codec := testCodec(t)

	storeErr := errors.New("redis: connection pool exhausted")
	refreshStore.EXPECT().
		Get(gomock.Any(), "u1").
		Return("", false, storeErr)

	svc := service.New(mocks.NewMockUserClient(ctrl), codec, refreshStore)

	token, err := codec.SignRefresh("u1")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), token)
	require.ErrorIs(t, err, storeErr)
}

func TestRefresh_UserServiceDown(t *testing.T) {
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
		Return(nil, errors.New("rpc error: unavailable"))

	svc := service.New(userClient, codec, refreshStore)

	_, err = svc.Refresh(context.Background(), token)
	require.ErrorIs(t, err, service.ErrUserServiceUnavailable)
}

func TestLogout_OK(t *testing.T) {
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

	svc := service.New(mocks.NewMockUserClient(ctrl), codec, refreshStore)

	require.NoError(t, svc.Logout(context.Background(), token))
}

func TestLogout_UnknownToken(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	refreshStore := mocks.NewMockRefreshStore(ctrl)
	codec := testCodec(t)

	token, err := codec.SignRefresh("u1")
	require.NoError(t, err)

	refreshStore.EXPECT().
		Get(gomock.Any(), "u1").
		Return("", false, nil)

	svc := service.New(mocks.NewMockUserClient(ctrl), codec, refreshStore)

	err = svc.Logout(context.Background(), token)
	require.ErrorIs(t, err, service.ErrInvalidToken)
}
