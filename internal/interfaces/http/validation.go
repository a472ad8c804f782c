package http

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Reportar el nombre JSON del campo, no el de Go.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindJSON decodifica el cuerpo en out y lo valida. Devuelve la respuesta de error (400) o nil.
func bindJSON(c *fiber.Ctx, out any) *dto.ErrorResponse {
	if err := c.BodyParser(out); err != nil {
		return &dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
	}
	if err := validate.Struct(out); err != nil {
		return &dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)}
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.SplitN(fe.Namespace(), ".", 2)
		path := fe.Field()
		if len(field) == 2 {
			path = field[1]
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, path+" es requerido")
		case "min":
			msgs = append(msgs, path+" debe tener al menos "+fe.Param()+" caracteres")
		case "max":
			msgs = append(msgs, path+" admite como máximo "+fe.Param()+" caracteres")
		default:
			msgs = append(msgs, path+" inválido ("+fe.Tag()+")")
		}
	}
	return strings.Join(msgs, "; ")
}

// paramID lee el parámetro :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, *dto.ErrorResponse) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser un entero positivo"}
	}
	return id, nil
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
