package handler

import (
	"net/http"
	"time"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/apierror"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/dto"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

func parseFechaQuery(c *gin.Context) (time.Time, bool) {
	raw := c.Query("fecha")
	if raw == "" {
		return time.Now(), true
	}
	fecha, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("fecha invalida, formato YYYY-MM-DD"))
		return time.Time{}, false
	}
	return fecha, true
}

// Arqueo godoc
// @Summary      Arqueo de caja
// @Description  Vista previa del cierre: ventas activas del día del cliente por defecto aún no incluidas en ningún cierre, desglosadas por método de pago. Solo lectura.
// @Tags         caja
// @Produce      json
// @Param        fecha query string false "Fecha YYYY-MM-DD (default: hoy)"
// @Success      200   {object} dto.ArqueoResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/caja/arqueo [get]
func (h *CajaHandler) Arqueo(c *gin.Context) {
	fecha, ok := parseFechaQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.Arqueo(c.Request.Context(), fecha)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarCierre godoc
// @Summary      Registrar cierre global
// @Description  Consolida el lote confirmado de ventas en un cierre. Los totales se recalculan en el servidor; ventas ya cerradas o anuladas quedan fuera del lote.
// @Tags         caja
// @Accept       json
// @Produce      json
// @Param        body body dto.RegistrarCierreRequest true "Lote de ventas a cerrar"
// @Success      201  {object} dto.CierreResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/caja/cierres [post]
func (h *CajaHandler) RegistrarCierre(c *gin.Context) {
	var req dto.RegistrarCierreRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarCierre(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarCierres godoc
// @Summary      Listar cierres
// @Tags         caja
// @Produce      json
// @Param        desde    query string true  "Fecha YYYY-MM-DD"
// @Param        hasta    query string true  "Fecha YYYY-MM-DD"
// @Param        detalles query bool   false "Incluir ventas de cada cierre"
// @Success      200      {array}  dto.CierreResponse
// @Failure      400      {object} apierror.APIError
// @Router       /v1/caja/cierres [get]
func (h *CajaHandler) ListarCierres(c *gin.Context) {
	var filter dto.CierreFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("desde y hasta son requeridos en formato YYYY-MM-DD"))
		return
	}
	resp, err := h.svc.ListarCierres(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarMovimiento godoc
// @Summary      Registrar movimiento manual de caja
// @Description  Registra un ingreso o egreso manual en el libro de caja.
// @Tags         caja
// @Accept       json
// @Produce      json
// @Param        body body dto.MovimientoManualRequest true "Movimiento"
// @Success      201  {object} dto.MovimientoCajaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/caja/movimientos [post]
func (h *CajaHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.MovimientoManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimiento(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarMovimientos godoc
// @Summary      Listar movimientos de caja
// @Tags         caja
// @Produce      json
// @Param        fecha query string false "Fecha YYYY-MM-DD (default: hoy)"
// @Success      200   {array}  dto.MovimientoCajaResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/caja/movimientos [get]
func (h *CajaHandler) ListarMovimientos(c *gin.Context) {
	fecha, ok := parseFechaQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), fecha)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
