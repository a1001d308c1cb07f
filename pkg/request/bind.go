package request

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/tableboard/pkg/apperror"
)

// Validator checks a decoded payload
type Validator interface {
	Struct(ctx context.Context, payload any) error
}

// Bind decodes the JSON body into dst and validates it
func Bind(r *http.Request, v Validator, dst any) error {
	if err := Decode(r, dst); err != nil {
		return err
	}
	return v.Struct(r.Context(), dst)
}

// PathID parses a numeric URL parameter. Ids that cannot match any row
// are reported as not found.
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NotFound("resource not found")
	}
	return id, nil
}
