package validator

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ParseError converts binding failures into a field -> message map so handlers
// can return typed validation errors instead of a bare string.
func ParseError(err error) map[string]string {
	errors := make(map[string]string)
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			errors[fe.Field()] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
		}
	} else if ute, ok := err.(*json.UnmarshalTypeError); ok {
		errors[ute.Field] = fmt.Sprintf("Field '%s' expects %s, got %s", ute.Field, ute.Type.String(), ute.Value)
	} else if err != nil { // Non-validator errors
		errors["error"] = err.Error()
	}
	return errors
}
