package user

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HRIS-backend/internal/platform/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Register()
}

var userCols = []string{
	"id", "first_name", "middle_name", "last_name", "user_name", "email", "password",
	"phone_number", "profile_photo", "user_type", "created_at", "updated_at",
}

func userRows(ids ...uint64) *sqlmock.Rows {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(userCols)
	for _, id := range ids {
		rows.AddRow(id, "Alice", nil, "Smith", "asmith", "alice@example.com",
			"$2a$10$hashhashhashhashhashha", "0912-000-0000", nil, "user", now, now)
	}
	return rows
}

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	r := gin.New()
	RegisterRoutes(r.Group("/api"), NewService(db))
	return r, mock
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validCreateBody() map[string]any {
	return map[string]any{
		"first_name":   "Alice",
		"last_name":    "Smith",
		"user_name":    "asmith",
		"email":        "alice@example.com",
		"password":     "secret-password",
		"phone_number": "0912-000-0000",
	}
}

func TestCreateUser(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM users WHERE email = ? AND id <> ? LIMIT 1")).
		WithArgs("alice@example.com", uint64(0)).
		WillReturnError(sql.ErrNoRows)
	// password はbcryptハッシュなので値は固定できない
	mock.ExpectExec("INSERT INTO users").
		WithArgs("Alice", nil, "Smith", "asmith", "alice@example.com", sqlmock.AnyArg(),
			"0912-000-0000", nil, "user").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("FROM users").WithArgs(uint64(1)).
		WillReturnRows(userRows(1))

	w := do(r, http.MethodPost, "/api/users", validCreateBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// 平文もハッシュもレスポンスには出ない
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "$2a$")

	var resp UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1), resp.ID)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Equal(t, "user", resp.UserType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM users WHERE email = ? AND id <> ? LIMIT 1")).
		WithArgs("alice@example.com", uint64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	w := do(r, http.MethodPost, "/api/users", validCreateBody())
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "The email has already been taken.")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserValidation(t *testing.T) {
	r, mock := newTestRouter(t)

	body := validCreateBody()
	body["email"] = "not-an-email"
	body["password"] = "short"
	w := do(r, http.MethodPost, "/api/users", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "The email must be a valid email address.")
	assert.Contains(t, w.Body.String(), "The password must be at least 8.")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserNotFound(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery("FROM users").WithArgs(uint64(42)).
		WillReturnError(sql.ErrNoRows)

	w := do(r, http.MethodGet, "/api/users/42", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found.")
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery("FROM users").WithArgs(uint64(1)).
		WillReturnRows(userRows(1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password = ?, updated_at = NOW(6) WHERE id = ?")).
		WithArgs(sqlmock.AnyArg(), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM users").WithArgs(uint64(1)).
		WillReturnRows(userRows(1))

	w := do(r, http.MethodPut, "/api/users/1", map[string]any{"password": "new-password-1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserDuplicateEmail(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery("FROM users").WithArgs(uint64(1)).
		WillReturnRows(userRows(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM users WHERE email = ? AND id <> ? LIMIT 1")).
		WithArgs("bob@example.com", uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	w := do(r, http.MethodPut, "/api/users/1", map[string]any{"email": "bob@example.com"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "The email has already been taken.")
}

func TestDeleteUserNotFound(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = ?")).
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := do(r, http.MethodDelete, "/api/users/9", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found.")
}

func TestBulkUpdateUsers(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE id IN (?, ?)")).
		WithArgs(uint64(1), uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET user_type = ?, updated_at = NOW(6) WHERE id IN (?, ?)")).
		WithArgs("admin", uint64(1), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery("FROM users").
		WithArgs(uint64(1), uint64(2)).
		WillReturnRows(userRows(1, 2))
	mock.ExpectCommit()

	body := map[string]any{"ids": []uint64{1, 2}, "data": map[string]any{"user_type": "admin"}}
	w := do(r, http.MethodPatch, "/api/users/bulk-update", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"updated_count":2`)
	assert.Contains(t, w.Body.String(), `"users":[`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpdateUsersEmptyData(t *testing.T) {
	r, mock := newTestRouter(t)

	body := map[string]any{"ids": []uint64{1}, "data": map[string]any{}}
	w := do(r, http.MethodPatch, "/api/users/bulk-update", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "The data field is required.")
	assert.NoError(t, mock.ExpectationsWereMet())
}
