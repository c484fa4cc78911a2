package v1

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// phonePattern accepts an optional leading + and 7 to 15 digits once common
// separators are stripped
var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(phoneSeparators.Replace(fl.Field().String()))
}

// RegisterValidators adds the custom binding tags used by the request DTOs
// and reports JSON field names in validation errors
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v.RegisterValidation("phone", validatePhone)
}
