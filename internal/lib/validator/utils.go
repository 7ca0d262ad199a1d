package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	govalidator "github.com/go-playground/validator/v10"

	"showtimes/proj/internal/domain/fields"
)

// New returns a validator with the project's custom tags registered.
func New() *govalidator.Validate {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("clock", ValidateClock); err != nil {
		panic(err)
	}
	return v
}

// getFieldName resolves the name a client used for the field: its json or
// schema tag, falling back to snake_case of the Go name.
func getFieldName(obj any, origFieldName string) string {
	t := indirectType(obj)
	field, found := t.FieldByName(origFieldName)
	if !found {
		panic(fmt.Sprintf("Field %s not found in type %s", origFieldName, t.Name()))
	}
	for _, key := range []string{"json", "schema"} {
		if tag := field.Tag.Get(key); tag != "" && tag != "-" {
			if name := strings.Split(tag, ",")[0]; name != "" {
				return name
			}
		}
	}
	return camelToSnake(origFieldName)
}

func ProcessValidationErrors(obj any, errs govalidator.ValidationErrors) map[string]string {
	processedErrors := make(map[string]string)
	for _, e := range errs {
		processedErrors[getFieldName(obj, e.StructField())] = GetErrorMsgForField(obj, e)
	}
	return processedErrors
}

func ValidateStruct(validator *govalidator.Validate, obj any) (validationErrs map[string]string) {
	if err := validator.Struct(obj); err != nil {
		validationErrs = ProcessValidationErrors(obj, err.(govalidator.ValidationErrors))
	}
	return
}

func GetErrorMsgForField(obj any, err govalidator.FieldError) (errorMsg string) {
	t := indirectType(obj)
	field, found := t.FieldByName(err.StructField())
	if !found {
		panic(fmt.Sprintf("Field %s not found in type %s", err.StructField(), t.Name()))
	}
	errorMsg = field.Tag.Get("errorMsg")
	if errorMsg == "" {
		switch err.Tag() {
		case "required":
			errorMsg = "This field is required"
		case "max":
			errorMsg = fmt.Sprintf("The maximum length is %s", err.Param())
		case "min":
			errorMsg = fmt.Sprintf("The minimum length is %s", err.Param())
		case "gte":
			errorMsg = fmt.Sprintf("Value should be greater than or equal to %s", err.Param())
		case "lte":
			errorMsg = fmt.Sprintf("Value should be less than or equal to %s", err.Param())
		case "oneof":
			errorMsg = fmt.Sprintf("Value should be one of %s", err.Param())
		case "clock":
			errorMsg = "Value must be a time of day in HH:MM format"
		default:
			errorMsg = "This field is invalid"
		}
	}
	return
}

// CUSTOM VALIDATORS

var exactClock = regexp.MustCompile(`^\d{2}:\d{2}$`)

// ValidateClock accepts exactly a zero-padded 24h "HH:MM" time of day.
func ValidateClock(fl govalidator.FieldLevel) bool {
	value := fl.Field().String()
	return exactClock.MatchString(value) && fields.ParseClock(value).Valid
}

func indirectType(obj any) reflect.Type {
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func camelToSnake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
