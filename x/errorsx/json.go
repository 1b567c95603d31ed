package errorsx

import (
	"context"
	"encoding/json"
	stderr "errors"
	"net/http"

	"github.com/pkg/errors"
)

// WriteJSONError writes err as a JSON body using the status code the error
// carries, falling back to 500 for unrecognized errors.
func WriteJSONError(w http.ResponseWriter, r *http.Request, err error) {
	if c := StatusCodeCarrier(nil); stderr.As(err, &c) {
		WriteJSONErrorCode(w, r, c.StatusCode(), err)
	} else {
		WriteJSONErrorCode(w, r, http.StatusInternalServerError, err)
	}
}

// WriteJSONErrorCode writes err as a JSON body with the given status code.
func WriteJSONErrorCode(w http.ResponseWriter, r *http.Request, code int, err error) {
	if code == 0 {
		code = http.StatusInternalServerError
	}

	if errors.Is(r.Context().Err(), context.Canceled) {
		code = 499
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	_ = json.NewEncoder(w).Encode(err)
}
