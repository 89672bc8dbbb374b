package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progrestian/izin/internal/auth"
	"github.com/progrestian/izin/internal/logging"
	"github.com/progrestian/izin/internal/users"
)

type fakeHasher struct{}

func (fakeHasher) Hash(plain []byte) ([]byte, string, error) {
	return []byte("salt"), "hashed:" + string(plain), nil
}

func (fakeHasher) Verify(encoded string, plain []byte) bool {
	return encoded == "hashed:"+string(plain)
}

func newTestServer(t *testing.T) (*echo.Echo, *auth.Service) {
	t.Helper()

	engine := auth.NewService(users.NewMemoryRepository(), fakeHasher{}, []byte("http-secret"))
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	e := echo.New()
	NewHandler(engine, logger).Register(e)

	return e, engine
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateUser(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodPost, "/users", `{"name":"alice","pass":"pw"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodPost, "/users", `{"name":"alice","pass":"other"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(e, http.MethodPost, "/users", `{"pass":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIssueToken(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodPost, "/users", `{"name":"alice","pass":"pw"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodPost, "/", `{"name":"alice","pass":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var tok Token
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	assert.NotEmpty(t, tok.Encoded)

	// wrong password and unknown user are the same 401
	rec = do(e, http.MethodPost, "/", `{"name":"alice","pass":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodPost, "/", `{"name":"nobody","pass":"pw"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// malformed body behaves like empty credentials
	rec = do(e, http.MethodPost, "/", `{"name":`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyToken(t *testing.T) {
	e, engine := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, engine.Register(ctx, "alice", "pw"))
	encoded, err := engine.IssueToken(ctx, "alice", "pw")
	require.NoError(t, err)

	body, err := json.Marshal(Token{Encoded: encoded})
	require.NoError(t, err)

	rec := do(e, http.MethodGet, "/", string(body))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/", `{"enc":"garbage"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// token for a user deleted since issuance
	require.NoError(t, engine.Remove(ctx, "alice"))
	rec = do(e, http.MethodGet, "/", string(body))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeleteUser(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodPost, "/users", `{"name":"alice","pass":"pw"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodDelete, "/users/alice", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodDelete, "/users/alice", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListUsers(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	for _, name := range []string{"carol", "alice"} {
		rec := do(e, http.MethodPost, "/users", `{"name":"`+name+`","pass":"pw"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = do(e, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["alice","carol"]`, rec.Body.String())
}
