package response

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/tableboard/pkg/apperror"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]string{"name": "table"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "table", decode(t, rec)["name"])
}

func TestEmpty(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, Empty{})

	assert.JSONEq(t, `{}`, rec.Body.String())
}

func TestError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	err := errors.Wrap(apperror.Conflict("group request already exists"), "create request")

	Error(context.Background(), rec, err)

	assert.Equal(t, http.StatusConflict, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, apperror.CodeBadRequest, out["code"])
	assert.Equal(t, "group request already exists", out["message"])
	assert.EqualValues(t, http.StatusConflict, out["status"])
	assert.NotContains(t, out, "errors")
}

func TestError_ValidationFields(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(context.Background(), rec, apperror.Validation([]apperror.FieldError{
		{Field: "email", Rule: "required", Message: "required validation failed"},
	}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	out := decode(t, rec)
	errs, ok := out["errors"].([]any)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].(map[string]any)["field"])
}

func TestError_TokenExpired(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(context.Background(), rec, apperror.TokenExpired())

	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Equal(t, apperror.CodeTokenExpired, decode(t, rec)["code"])
}

func TestError_Unknown(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(context.Background(), rec, errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, apperror.CodeInternal, out["code"])
	assert.Equal(t, "internal server error", out["message"])
}
