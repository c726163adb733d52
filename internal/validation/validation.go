package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/snnyvrz/bookshelf-api/internal/model"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

var (
	validate         = newValidator()
	alphanumSpaceRgx = regexp.MustCompile(`^[a-zA-Z0-9 ]*$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("alphanumspace", func(fl validator.FieldLevel) bool {
		return alphanumSpaceRgx.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
		_, err := model.ParseTimestamp(fl.Field().String())
		return err == nil
	})

	return v
}

// BindAndValidateJSON decodes the request body into dst and checks it against
// its validate tags. It returns every violation found, or nil when dst is
// valid. A field of the wrong JSON type is reported against that field and
// the rest of dst is still validated. A body that cannot be parsed at all
// yields a single syntax violation.
func BindAndValidateJSON(c *gin.Context, dst any) []FieldError {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return Struct(dst)
	}

	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return []FieldError{
			{
				Field:   "",
				Rule:    "syntax",
				Message: "invalid request body: " + err.Error(),
			},
		}
	}

	fields := []FieldError{
		{
			Field:   typeErr.Field,
			Rule:    "type",
			Message: fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type),
		},
	}
	for _, fe := range Struct(dst) {
		if fe.Field != typeErr.Field {
			fields = append(fields, fe)
		}
	}
	return fields
}

func Struct(s any) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Rule: "invalid", Message: err.Error()}}
	}

	return formatValidationErrors(verrs)
}

func formatValidationErrors(verrs validator.ValidationErrors) []FieldError {
	fields := make([]FieldError, 0, len(verrs))

	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: buildMessage(fe.Field(), fe),
		})
	}

	return fields
}

func buildMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "alphanumspace":
		return field + " may only contain letters, digits and spaces"
	case "timestamp":
		return field + " must be a timestamp in format YYYY-MM-DDTHH:mm:ssZ"
	}

	return field + " is invalid (" + fe.Tag() + ")"
}
