package app

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fkhayef/tableboard/internal/config"
	"github.com/fkhayef/tableboard/internal/database/dbtest"
	"github.com/fkhayef/tableboard/pkg/logging"
)

type body = map[string]any

type testServer struct {
	t       *testing.T
	db      *sqlx.DB
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		AppEnv:         config.EnvTest,
		DBDriver:       config.DriverSQLite,
		TokenTTL:       2 * time.Hour,
		BcryptCost:     bcrypt.MinCost,
		SwaggerEnabled: true,
	}
	db := dbtest.New(t)

	return &testServer{t: t, db: db, handler: NewRouter(cfg, db, logging.NewNop())}
}

// do sends a JSON request and decodes the JSON response body
func (s *testServer) do(method, path, token string, payload any) (int, body) {
	s.t.Helper()

	var reader *bytes.Reader
	switch p := payload.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(p))
	default:
		raw, err := sonic.Marshal(p)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	out := body{}
	if rec.Body.Len() > 0 {
		require.NoError(s.t, sonic.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

func (s *testServer) createUser(email, username, password string) body {
	s.t.Helper()

	status, out := s.do(http.MethodPost, "/users", "", body{
		"email":    email,
		"username": username,
		"password": password,
	})
	require.Equal(s.t, http.StatusCreated, status, out)
	return obj(out, "user")
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()

	status, out := s.do(http.MethodPost, "/sessions", "", body{"email": email, "password": password})
	require.Equal(s.t, http.StatusCreated, status, out)
	return obj(out, "token")["token"].(string)
}

// signUp creates a user and returns it with a fresh token
func (s *testServer) signUp(username string) (body, string) {
	s.t.Helper()

	email := username + "@example.com"
	u := s.createUser(email, username, "testPassword")
	return u, s.login(email, "testPassword")
}

func (s *testServer) createGroup(token string, master int64, name string) body {
	s.t.Helper()

	status, out := s.do(http.MethodPost, "/groups", token, body{
		"name":        name,
		"description": "testDescription",
		"schedule":    "testSchedule",
		"location":    "testLocation",
		"chronicle":   "testChronicle",
		"master":      master,
	})
	require.Equal(s.t, http.StatusCreated, status, out)
	return obj(out, "group")
}

func obj(b body, key string) body {
	v, _ := b[key].(map[string]any)
	return v
}

func id(b body) int64 {
	switch v := b["id"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}

func num(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	default:
		return 0
	}
}
