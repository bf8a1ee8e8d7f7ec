package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxBodyBytes = 1_048_576

// DecodeJSON decodes a single JSON value from the request body into dst.
// It caps the body at 1 MB and converts decoder failures into INVALID_DATA
// errors with a field-specific message, so a boolean ISBN or a fractional
// quantity is rejected with a message naming the offending field and value.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		var maxBytesErr *http.MaxBytesError

		switch {
		case errors.As(err, &typeErr):
			if typeErr.Field != "" {
				return InvalidData(fmt.Sprintf("Field %q cannot accept %s.", typeErr.Field, describeJSONValue(typeErr.Value)))
			}
			return InvalidData("Body contains incorrect JSON type.")
		case errors.As(err, &syntaxErr):
			return InvalidData(fmt.Sprintf("Body contains badly-formed JSON (at character %d).", syntaxErr.Offset))
		case errors.Is(err, io.ErrUnexpectedEOF):
			return InvalidData("Body contains badly-formed JSON.")
		case errors.Is(err, io.EOF):
			return InvalidData("Body must not be empty.")
		case errors.As(err, &maxBytesErr):
			return InvalidData(fmt.Sprintf("Body must not be larger than %d bytes.", maxBytesErr.Limit))
		default:
			return InvalidData("Body could not be decoded.")
		}
	}

	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return InvalidData("Body must only contain a single JSON value.")
	}
	return nil
}

// describeJSONValue rewords encoding/json's value descriptions ("bool",
// "number 3.5", "string") for client-facing messages.
func describeJSONValue(value string) string {
	switch value {
	case "bool":
		return "a boolean"
	case "string":
		return "a string"
	case "array":
		return "an array"
	case "object":
		return "an object"
	default:
		// encoding/json already includes the literal, e.g. "number 3.5".
		return value
	}
}
