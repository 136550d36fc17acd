package validators

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to echo's Validator interface, so
// handlers can call c.Validate against one shared instance instead of building
// their own.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates the shared request validator
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks struct tags and turns failures into a 400 carrying a
// field to constraint map the client can re-render a form from.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	fields := map[string]string{}
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"errors": fields})
}
