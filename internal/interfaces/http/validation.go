package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/wms-estanterias/internal/application/dto"
)

// newValidator valida con los nombres JSON de los campos para que los errores coincidan con el body.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationFields devuelve campo → regla incumplida, o nil si el struct es válido.
func validationFields(v *validator.Validate, in any) map[string]string {
	err := v.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[fe.Field()] = rule
	}
	return fields
}

// bindDraft parsea y valida el borrador de producto del body (JSON o formulario).
// Si falla ya escribió la respuesta 400 y devuelve ok=false junto con el error de escritura.
// Los strings se copian porque el store los conserva más allá de la petición.
func bindDraft(c *fiber.Ctx, v *validator.Validate) (in dto.ProductDraftRequest, ok bool, err error) {
	if perr := c.BodyParser(&in); perr != nil {
		return in, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if fields := validationFields(v, in); fields != nil {
		return in, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Fields: fields})
	}
	in.Name = utils.CopyString(in.Name)
	in.SKU = utils.CopyString(in.SKU)
	in.Unit = utils.CopyString(in.Unit)
	in.Category = utils.CopyString(in.Category)
	in.Description = utils.CopyString(in.Description)
	return in, true, nil
}
