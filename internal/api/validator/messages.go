package validator

import (
	"fmt"
	"reflect"
	"strings"

	playgroundvalidator "github.com/go-playground/validator/v10"
)

func attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func msgRequired(field string) string {
	return fmt.Sprintf("O campo %s é obrigatório.", attribute(field))
}

func msgType(field, what string) string {
	return fmt.Sprintf("O campo %s deve ser %s.", attribute(field), what)
}

func msgIn(field string) string {
	return fmt.Sprintf("O campo %s selecionado é inválido.", attribute(field))
}

// message formats a rule failure the way the storefront admin expects it.
func message(field string, fe playgroundvalidator.FieldError) string {
	attr := attribute(field)
	param := fe.Param()
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return msgRequired(field)
	case "max", "lte":
		if isString {
			return fmt.Sprintf("O campo %s não pode ter mais que %s caracteres.", attr, param)
		}
		return fmt.Sprintf("O campo %s não pode ser maior que %s.", attr, param)
	case "min", "gte":
		if isString {
			return fmt.Sprintf("O campo %s deve ter pelo menos %s caracteres.", attr, param)
		}
		return fmt.Sprintf("O campo %s deve ser pelo menos %s.", attr, param)
	case "oneof":
		return msgIn(field)
	case "hexcolor":
		return msgType(field, "uma cor hexadecimal válida")
	case "url", "http_url":
		return msgType(field, "uma URL válida")
	case "uuid", "uuid4":
		return msgType(field, "um UUID válido")
	case "email":
		return msgType(field, "um endereço de e-mail válido")
	default:
		return fmt.Sprintf("O campo %s é inválido.", attr)
	}
}
