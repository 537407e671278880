package webutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go_course_tracker/internal/model"
)

// DecodeJSONBody はリクエストボディをデコードします
// 空のボディは許可し、dst はゼロ値のままにする
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return model.NewAppError("INVALID_REQUEST_BODY", "The request body is not valid JSON: "+err.Error(), "", model.ErrInvalidInput)
	}
	return nil
}
