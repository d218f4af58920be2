package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// messages maps a failed rule ("StructField.tag") to the message surfaced
// to the client. Anything not listed falls back to a generic message.
var messages = map[string]string{
	"Address.required":      "Street address is required",
	"City.required":         "City is required",
	"State.required":        "State is required",
	"Country.required":      "Country is required",
	"Lat.required":          "Latitude is required",
	"Lng.required":          "Longitude is required",
	"Name.required":         "Name is required",
	"Name.max":              "Name must be less than 50 characters",
	"Description.required":  "Description is required",
	"Price.required":        "Price per day is required",
	"PreviewImage.required": "Preview image is required",
	"Review.required":       "Review text is required",
	"Stars.required":        "Stars must be an integer from 1 to 5",
	"Stars.min":             "Stars must be an integer from 1 to 5",
	"Stars.max":             "Stars must be an integer from 1 to 5",
	"URL.required":          "Image url is required",
}

// typeMessages maps a JSON field whose value failed to decode into its
// Go type (e.g. a fractional number sent for an integer field) to the
// same message the tag rules use for that field.
var typeMessages = map[string]string{
	"stars": "Stars must be an integer from 1 to 5",
}

// Errors translates a gin binding failure into the field -> message list
// the API documents. Covers both tag-rule failures and wrong-typed JSON
// values; returns nil for anything else (e.g. a JSON syntax error) so
// callers can fall back to a generic 400.
func Errors(err error) map[string]string {
	// A value of the wrong JSON type (4.5 for an int field) fails during
	// decode, before the tag rules ever run.
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := typeErr.Field
		if i := strings.LastIndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		msg, ok := typeMessages[field]
		if !ok {
			msg = field + " is invalid"
		}
		return map[string]string{field: msg}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		out[jsonName(fe.Field())] = msg
	}
	return out
}

// jsonName lowercases the leading rune of a struct field name, which is
// how every payload field here maps to its JSON key.
func jsonName(field string) string {
	if field == "" {
		return field
	}
	if field == "URL" {
		return "url"
	}
	r := []rune(field)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
