package handler

import (
	"net/http"
	"time"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/apierror"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/dto"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// RegistrarVenta godoc
// @Summary      Registrar una nueva venta
// @Description  Cobra un pedido abierto o un carrito directo en una transacción ACID: numera la factura, descuenta stock y libera la mesa.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        body body dto.RegistrarVentaRequest true "Detalle de la venta"
// @Success      201  {object} dto.VentaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/ventas [post]
func (h *VentasHandler) RegistrarVenta(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarVenta(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AnularVenta godoc
// @Summary      Anular venta
// @Description  Anula una venta activa: restaura stock y registra el egreso de caja compensatorio.
// @Tags         ventas
// @Produce      json
// @Param        id path string true "UUID de la venta"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/ventas/{id} [delete]
func (h *VentasHandler) AnularVenta(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.AnularVenta(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListarVentas godoc
// @Summary      Listar ventas
// @Description  Retorna lista paginada de ventas filtrada por fecha y estado.
// @Tags         ventas
// @Produce      json
// @Param        fecha  query string false "Fecha YYYY-MM-DD (default: hoy)"
// @Param        estado query string false "activa | anulada | all"
// @Param        page   query int    false "Página (default 1)"
// @Param        limit  query int    false "Registros por página (default 50)"
// @Success      200    {object} dto.VentaListResponse
// @Failure      400    {object} apierror.APIError
// @Router       /v1/ventas [get]
func (h *VentasHandler) ListarVentas(c *gin.Context) {
	var filter dto.VentaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarVentas(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar ventas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Correlatividad godoc
// @Summary      Auditoría de correlatividad
// @Description  Analiza los números de factura emitidos en un rango de fechas y reporta huecos por serie.
// @Tags         ventas
// @Produce      json
// @Param        desde query string true "Fecha YYYY-MM-DD"
// @Param        hasta query string true "Fecha YYYY-MM-DD"
// @Success      200   {object} dto.CorrelatividadResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/ventas/correlatividad [get]
func (h *VentasHandler) Correlatividad(c *gin.Context) {
	var filter dto.CorrelatividadFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("desde y hasta son requeridos en formato YYYY-MM-DD"))
		return
	}
	desde, err := time.Parse("2006-01-02", filter.Desde)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("desde invalido"))
		return
	}
	hasta, err := time.Parse("2006-01-02", filter.Hasta)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("hasta invalido"))
		return
	}
	// Include the whole closing day.
	hasta = hasta.Add(24*time.Hour - time.Nanosecond)

	resp, err := h.svc.AnalizarCorrelatividad(c.Request.Context(), desde, hasta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al analizar correlatividad"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
