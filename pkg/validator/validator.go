// Package validator valida structs de entrada con go-playground/validator.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError describe el fallo de validación de un campo.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidateStruct valida las etiquetas `validate` del struct y devuelve los
// errores por campo, o nil si todo es válido.
func ValidateStruct(s any) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Rule: "", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obligatorio"
	case "min":
		return fmt.Sprintf("debe ser al menos %s", fe.Param())
	case "max":
		return fmt.Sprintf("no puede superar %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "email":
		return "correo inválido"
	default:
		return "valor inválido"
	}
}
