package scoring

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "credit-score-client/internal/common/errors"
	"credit-score-client/internal/models"
)

// FieldError is one rejected form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var inputValidator = NewInputValidator()

// NewInputValidator returns a validator that reads the `binding` tags of
// RawInput and reports fields by their JSON names.
func NewInputValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	ConfigureValidator(v)
	return v
}

// ConfigureValidator makes v report JSON field names. The HTTP surface
// applies it to gin's engine so both surfaces describe errors alike.
func ConfigureValidator(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// ValidateInput enforces the form ranges on raw values.
func ValidateInput(raw models.RawInput) error {
	if err := inputValidator.Struct(raw); err != nil {
		details := DescribeValidation(err)
		msgs := make([]string, len(details))
		for i, d := range details {
			msgs[i] = d.Message
		}
		stdErr := apperrors.NewInvalidFeatureInputError(strings.Join(msgs, "; "))
		stdErr.Metadata = map[string]interface{}{"fields": details}
		return stdErr
	}
	return nil
}

// DescribeValidation flattens validator errors into per-field messages.
func DescribeValidation(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
