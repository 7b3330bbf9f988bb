package handler

import (
	"net/http"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/apierror"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/dto"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler {
	return &PedidosHandler{svc: svc}
}

// AbrirPedido godoc
// @Summary      Abrir pedido
// @Description  Abre un pedido nuevo. Para mesa/terraza con pedido abierto existente, retorna ese pedido en lugar de crear otro.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        body body dto.AbrirPedidoRequest true "Datos del pedido"
// @Success      201  {object} dto.PedidoResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/pedidos [post]
func (h *PedidosHandler) AbrirPedido(c *gin.Context) {
	var req dto.AbrirPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AbrirOReutilizar(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AgregarItems godoc
// @Summary      Agregar items a un pedido
// @Description  Agrega líneas a un pedido abierto. Producto repetido acumula cantidad sobre la línea existente manteniendo su precio.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        id   path string               true "UUID del pedido"
// @Param        body body dto.AgregarItemsRequest true "Items"
// @Success      200  {object} dto.PedidoResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/pedidos/{id}/items [post]
func (h *PedidosHandler) AgregarItems(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AgregarItemsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarItems(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerPedido godoc
// @Summary      Ver pedido
// @Tags         pedidos
// @Produce      json
// @Param        id path string true "UUID del pedido"
// @Success      200 {object} dto.PedidoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/pedidos/{id} [get]
func (h *PedidosHandler) VerPedido(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ListarDetalles(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CancelarPedido godoc
// @Summary      Cancelar pedido
// @Description  Cancela un pedido abierto sin efectos de stock ni caja y libera su mesa.
// @Tags         pedidos
// @Produce      json
// @Param        id path string true "UUID del pedido"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/pedidos/{id} [delete]
func (h *PedidosHandler) CancelarPedido(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Cancelar(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListarMesas godoc
// @Summary      Listar mesas
// @Description  Retorna mesas y terrazas con su estado de ocupación y pedido actual.
// @Tags         pedidos
// @Produce      json
// @Param        tipo query string false "mesa | terraza"
// @Success      200  {array}  dto.MesaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/mesas [get]
func (h *PedidosHandler) ListarMesas(c *gin.Context) {
	resp, err := h.svc.ListarMesas(c.Request.Context(), c.Query("tipo"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
