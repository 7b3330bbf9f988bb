package handler

import (
	"net/http"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/apierror"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/dto"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// ListarMovimientos godoc
// @Summary      Listar movimientos de stock
// @Description  Retorna el libro de movimientos de stock paginado, filtrable por producto, tipo y fecha.
// @Tags         inventario
// @Produce      json
// @Param        producto_id query string false "UUID del producto"
// @Param        tipo        query string false "venta | anulacion | compra | ajuste_manual"
// @Param        fecha       query string false "Fecha YYYY-MM-DD"
// @Param        page        query int    false "Página (default 1)"
// @Param        limit       query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.MovimientoStockListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/inventario/movimientos [get]
func (h *InventarioHandler) ListarMovimientos(c *gin.Context) {
	var filter dto.MovimientoStockFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Alertas godoc
// @Summary      Alertas de stock bajo
// @Description  Retorna los productos activos con stock actual por debajo de su mínimo.
// @Tags         inventario
// @Produce      json
// @Success      200 {array} dto.AlertaStockResponse
// @Router       /v1/inventario/alertas [get]
func (h *InventarioHandler) Alertas(c *gin.Context) {
	resp, err := h.svc.ObtenerAlertas(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
