package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func protectedRouter(svc *Service) *gin.Engine {
	r := gin.New()
	r.GET("/me", RequireAuth(svc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetUint64(CtxUserIDKey),
			"role":    c.GetString(CtxRoleKey),
		})
	})
	return r
}

func get(r *gin.Engine, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthMissingHeader(t *testing.T) {
	svc, _ := newTestService(t)
	w := get(protectedRouter(svc), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	svc, _ := newTestService(t)
	w := get(protectedRouter(svc), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthGarbageToken(t *testing.T) {
	svc, _ := newTestService(t)
	w := get(protectedRouter(svc), "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	svc, _ := newTestService(t)
	token, err := svc.Login(context.Background(), "alice@example.com", "correct-password")
	require.NoError(t, err)

	w := get(protectedRouter(svc), "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"user_id":1`)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestRequireAuthRejectsRevokedToken(t *testing.T) {
	svc, _ := newTestService(t)
	token, err := svc.Login(context.Background(), "alice@example.com", "correct-password")
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	require.NoError(t, err)
	jti := parsed.Claims.(jwt.MapClaims)["jti"].(string)

	r := protectedRouter(svc)
	require.Equal(t, http.StatusOK, get(r, "Bearer "+token).Code)

	require.NoError(t, svc.Logout(context.Background(), jti, time.Now().Add(time.Hour)))

	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token revoked")
}

func TestRequireAuthRejectsWrongSecret(t *testing.T) {
	svc, _ := newTestService(t)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := other.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	w := get(protectedRouter(svc), "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	svc, _ := newTestService(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	w := get(protectedRouter(svc), "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
