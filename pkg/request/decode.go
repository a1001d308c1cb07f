package request

import (
	"bytes"
	"io"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/fkhayef/tableboard/pkg/apperror"
)

const maxBodyBytes = 1 << 20

// Decode reads a JSON body into dst. An empty body leaves dst untouched so
// that validation reports the missing fields. Malformed JSON and values of
// the wrong type are reported as a 422.
func Decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return apperror.BadRequest("failed to read request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := sonic.Unmarshal(body, dst); err != nil {
		return apperror.Unprocessable("invalid request body")
	}
	return nil
}
