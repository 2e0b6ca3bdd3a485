package account_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ganot/unolims/internal/domain/account"
	"github.com/ganot/unolims/internal/form"
	"github.com/ganot/unolims/internal/repository"
	"github.com/ganot/unolims/internal/repository/mocks"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type tokenRecorder struct{ token string }

func (r *tokenRecorder) SetToken(token string) { r.token = token }

func TestAccountService_LoginStoresToken(t *testing.T) {
	ctx := context.Background()
	creds := account.Credentials{Email: "ana@lab.test", Password: "s3cret"}

	repo := &mocks.AccountRepository{}
	repo.On("Login", ctx, creds).Return(&account.Session{Token: "tok", User: account.User{Name: "Ana", Role: "ANALISTA"}}, nil)

	sink := &tokenRecorder{}
	svc := account.NewService(repo, sink, nil)
	sess, err := svc.Login(ctx, creds)
	require.NoError(t, err)
	require.Equal(t, "Ana", sess.User.Name)
	require.Equal(t, "tok", sink.token)

	cur, ok := svc.Current()
	require.True(t, ok)
	require.Same(t, sess, cur)

	svc.Logout()
	_, ok = svc.Current()
	require.False(t, ok)
	require.Empty(t, sink.token)
}

func TestAccountService_AuthenticateKeepsNoState(t *testing.T) {
	ctx := context.Background()
	creds := account.Credentials{Email: "ana@lab.test", Password: "s3cret"}

	repo := &mocks.AccountRepository{}
	repo.On("Login", ctx, creds).Return(&account.Session{Token: "tok", User: account.User{Name: "Ana"}}, nil)

	sink := &tokenRecorder{}
	svc := account.NewService(repo, sink, nil)
	sess, err := svc.Authenticate(ctx, creds)
	require.NoError(t, err)
	require.Equal(t, "tok", sess.Token)
	require.Empty(t, sink.token)

	_, ok := svc.Current()
	require.False(t, ok)
}

func TestAccountService_LoginRejected(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.AccountRepository{}
	repo.On("Login", ctx, mock.Anything).Return(nil, &repository.RemoteError{Status: 401, Message: "Credenciais inválidas"})

	_, err := account.NewService(repo, nil, nil).Login(ctx, account.Credentials{Email: "ana@lab.test", Password: "x"})
	require.ErrorIs(t, err, account.ErrInvalidCredentials)
}

func TestAccountService_LoginValidation(t *testing.T) {
	repo := &mocks.AccountRepository{}
	_, err := account.NewService(repo, nil, nil).Login(context.Background(), account.Credentials{Email: "ana"})
	var fe *form.Errors
	require.ErrorAs(t, err, &fe)
	require.Equal(t, form.MsgEmail, fe.Field("email"))
	require.Equal(t, form.MsgRequired, fe.Field("senha"))
	repo.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestAccountService_RegisterPasswordsMustMatch(t *testing.T) {
	repo := &mocks.AccountRepository{}
	svc := account.NewService(repo, nil, nil)

	err := svc.Register(context.Background(), account.Registration{
		Name: "Ana", Email: "ana@lab.test", Password: "a", PasswordConfirm: "b",
	})
	var fe *form.Errors
	require.ErrorAs(t, err, &fe)
	require.Equal(t, form.MsgPasswordMismatch, fe.Field("confirmarSenha"))
	repo.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAccountService_RegisterDefaultsRole(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.AccountRepository{}
	repo.On("Register", ctx, mock.MatchedBy(func(r account.Registration) bool {
		return r.Role == account.DefaultRole
	})).Return(nil)

	err := account.NewService(repo, nil, nil).Register(ctx, account.Registration{
		Name: "Ana", Email: "ana@lab.test", Password: "a", PasswordConfirm: "a",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSession_ExpiresAt(t *testing.T) {
	at := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	s := account.Session{Expiration: json.RawMessage(`"2030-01-02T03:04:05Z"`)}
	got, ok := s.ExpiresAt()
	require.True(t, ok)
	require.True(t, at.Equal(got))

	s = account.Session{Expiration: json.RawMessage(`1893553445`)}
	got, ok = s.ExpiresAt()
	require.True(t, ok)
	require.Equal(t, at.Unix(), got.Unix())

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": at.Unix()}).SignedString([]byte("k"))
	require.NoError(t, err)
	s = account.Session{Token: token}
	got, ok = s.ExpiresAt()
	require.True(t, ok)
	require.Equal(t, at.Unix(), got.Unix())
	require.True(t, s.Expired(at.Add(time.Second)))
	require.False(t, s.Expired(at.Add(-time.Hour)))

	_, ok = account.Session{Token: "opaque"}.ExpiresAt()
	require.False(t, ok)
}
