package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fkhayef/tableboard/pkg/apperror"
	"github.com/fkhayef/tableboard/pkg/logging"
)

func echoIdentity(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		require.True(t, ok)
		assert.Equal(t, int64(42), userID)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRequireAuth(t *testing.T) {
	verifier := TokenVerifierFunc(func(_ context.Context, token string) (Identity, error) {
		switch token {
		case "good":
			return Identity{UserID: 42, TokenID: 1}, nil
		case "old":
			return Identity{}, apperror.TokenExpired()
		default:
			return Identity{}, apperror.Unauthorized("invalid api token")
		}
	})
	handler := RequireAuth(verifier)(echoIdentity(t))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid token", header: "Bearer good", status: http.StatusNoContent},
		{name: "lowercase scheme", header: "bearer good", status: http.StatusNoContent},
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", status: http.StatusUnauthorized},
		{name: "no token", header: "Bearer ", status: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer old", status: http.StatusGone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.status >= http.StatusBadRequest {
				var out map[string]any
				require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out))
				assert.EqualValues(t, tc.status, out["status"])
			}
		})
	}
}

func TestGetIdentity_Missing(t *testing.T) {
	_, ok := GetIdentity(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{UserID: 3, TokenID: 9})
	identity, ok := GetIdentity(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(9), identity.TokenID)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := logging.FromZap(zap.New(core))

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/boom" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fine", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/boom", nil))

	require.Equal(t, 2, logs.Len())

	fine := logs.All()[0]
	assert.Equal(t, zap.InfoLevel, fine.Level)
	assert.Equal(t, "/fine", fine.ContextMap()["path"])
	assert.EqualValues(t, http.StatusOK, fine.ContextMap()["status"])
	assert.EqualValues(t, 2, fine.ContextMap()["bytes"])

	boom := logs.All()[1]
	assert.Equal(t, zap.ErrorLevel, boom.Level)
	assert.EqualValues(t, http.StatusInternalServerError, boom.ContextMap()["status"])
}

func TestShouldTrace(t *testing.T) {
	assert.False(t, shouldTrace("/health"))
	assert.False(t, shouldTrace("/swagger/index.html"))
	assert.True(t, shouldTrace("/groups/1/requests"))
}
