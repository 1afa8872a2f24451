package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// テスト用のインメモリ SessionStore
type fakeStore struct {
	creds   map[string]*Credential
	revoked map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		creds:   map[string]*Credential{},
		revoked: map[string]bool{},
	}
}

func (f *fakeStore) GetCredentialByEmail(_ context.Context, email string) (*Credential, error) {
	return f.creds[email], nil
}

func (f *fakeStore) GetProfileByID(_ context.Context, id uint64) (*Profile, error) {
	for _, c := range f.creds {
		if c.ID == id {
			return &Profile{ID: c.ID, Email: c.Email, UserType: c.UserType}, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) RevokeToken(_ context.Context, jti string, _ time.Time) error {
	f.revoked[jti] = true
	return nil
}

func (f *fakeStore) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	return f.revoked[jti], nil
}

func newTestService(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)
	store.creds["alice@example.com"] = &Credential{
		ID:           1,
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		UserType:     "admin",
	}
	return &Service{store: store, secret: []byte("test-secret"), ttl: time.Hour}, store
}

func TestLoginIssuesToken(t *testing.T) {
	svc, _ := newTestService(t)

	tokenStr, err := svc.Login(context.Background(), "alice@example.com", "correct-password")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "1", claims["sub"])
	assert.Equal(t, "admin", claims["role"])
	assert.NotEmpty(t, claims["jti"])
	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.Greater(t, int64(exp), time.Now().Unix())
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestLogoutRevokesJTI(t *testing.T) {
	svc, store := newTestService(t)

	require.NoError(t, svc.Logout(context.Background(), "01JTESTJTI", time.Now().Add(time.Hour)))
	assert.True(t, store.revoked["01JTESTJTI"])

	revoked, err := svc.isRevoked(context.Background(), "01JTESTJTI")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestLogoutEmptyJTI(t *testing.T) {
	svc, _ := newTestService(t)
	assert.ErrorIs(t, svc.Logout(context.Background(), "", time.Now()), ErrInvalidToken)
}

// 連続ログインで jti が重複しない
func TestLoginJTIUnique(t *testing.T) {
	svc, _ := newTestService(t)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		tokenStr, err := svc.Login(context.Background(), "alice@example.com", "correct-password")
		require.NoError(t, err)
		token, _, err := jwt.NewParser().ParseUnverified(tokenStr, jwt.MapClaims{})
		require.NoError(t, err)
		jti := token.Claims.(jwt.MapClaims)["jti"].(string)
		assert.False(t, seen[jti], jti)
		seen[jti] = true
	}
}
