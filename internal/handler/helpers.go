package handler

import (
	"net/http"
	"reflect"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/apierror"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeServiceError maps service errors onto HTTP status codes:
// missing entities → 404, state conflicts (already voided, already closed,
// insufficient stock) → 409, bad input → 400, broken configuration → 500.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case service.EsNoEncontrado(err):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case service.EsConflicto(err):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case service.EsValidacion(err):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case service.EsConfiguracion(err):
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
