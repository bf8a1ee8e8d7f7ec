package httpx

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	isbn10RX = regexp.MustCompile(`^\d{9}[\dXx]$`)
	isbn13RX = regexp.MustCompile(`^\d{13}$`)
)

func init() {
	validate = validator.New()

	// Report violations under the JSON field name, not the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("isbn", validateISBN)
	validate.RegisterValidation("pubyear", validatePubYear)
}

// NormalizeISBN strips dashes and spaces only. It is idempotent.
func NormalizeISBN(isbn string) string {
	isbn = strings.ReplaceAll(isbn, "-", "")
	return strings.ReplaceAll(isbn, " ", "")
}

// ValidISBN reports whether the normalized form of isbn is a well-formed
// ISBN-10 (9 digits then a digit or X) or ISBN-13 (13 digits).
func ValidISBN(isbn string) bool {
	isbn = NormalizeISBN(isbn)
	switch len(isbn) {
	case 10:
		return isbn10RX.MatchString(isbn)
	case 13:
		return isbn13RX.MatchString(isbn)
	default:
		return false
	}
}

func validateISBN(fl validator.FieldLevel) bool {
	return ValidISBN(fl.Field().String())
}

// validatePubYear accepts publication years up to and including the current
// year.
func validatePubYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	return year > 0 && int(year) <= time.Now().Year()
}

// ValidateStruct runs struct-tag validation on s and returns one message per
// violated field, so the caller can report every problem at once.
func ValidateStruct(s interface{}) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var messages []string
	for _, fieldErr := range err.(validator.ValidationErrors) {
		messages = append(messages, validationMessage(fieldErr))
	}
	return messages
}

func validationMessage(fieldErr validator.FieldError) string {
	field := fieldErr.Field()
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", field)
	case "min":
		return fmt.Sprintf("%s can not be blank.", field)
	case "isbn":
		return "Invalid ISBN."
	case "pubyear":
		return "Invalid publication year."
	case "gte":
		return fmt.Sprintf("%s must be a non-negative number.", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s.", field, fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid.", field)
	}
}
