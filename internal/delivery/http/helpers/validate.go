package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxBodyBytes caps every JSON request body. Event and reward payloads are a few hundred bytes.
const MaxBodyBytes = 64 << 10

// Validator is implemented by request DTOs that check their own fields.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate reads a single JSON object from the body into dest and runs
// dest.Validate when available. On failure it writes the error envelope and returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	err := dec.Decode(dest)
	if err == nil && dec.More() {
		err = errTrailingData
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteJSONError(w, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid input: "+decodeMessage(err))
		return false
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid input: "+strings.Join(errs, "; "))
			return false
		}
	}
	return true
}

var errTrailingData = errors.New("body must contain a single JSON object")

// decodeMessage rewrites encoding/json errors without Go type names.
func decodeMessage(err error) string {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.Is(err, io.EOF):
		return "request body is required"
	case errors.Is(err, io.ErrUnexpectedEOF):
		return "request body is truncated"
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type.Kind())
		}
		return fmt.Sprintf("body must be a JSON object, got %s", typeErr.Value)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return "unknown field " + strings.TrimPrefix(err.Error(), "json: unknown field ")
	default:
		return err.Error()
	}
}
