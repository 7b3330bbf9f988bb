package dto

import "github.com/shopspring/decimal"

// EntregaRequest carries the delivery metadata of a delivery order.
type EntregaRequest struct {
	Telefono   string          `json:"telefono"    validate:"required"`
	Direccion  string          `json:"direccion"   validate:"required"`
	Referencia *string         `json:"referencia"`
	Repartidor *string         `json:"repartidor"`
	CostoEnvio decimal.Decimal `json:"costo_envio" validate:"min=0"`
}

type AbrirPedidoRequest struct {
	Tipo      string          `json:"tipo"       validate:"required,oneof=mostrador mesa terraza delivery"`
	MesaID    *string         `json:"mesa_id"    validate:"omitempty,uuid"`
	ClienteID *string         `json:"cliente_id" validate:"omitempty,uuid"`
	Entrega   *EntregaRequest `json:"entrega"`
}

type ItemPedidoRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type AgregarItemsRequest struct {
	Items []ItemPedidoRequest `json:"items" validate:"required,min=1,dive"`
}

type DetallePedidoResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type PedidoResponse struct {
	ID         string                  `json:"id"`
	Tipo       string                  `json:"tipo"`
	Estado     string                  `json:"estado"`
	MesaID     *string                 `json:"mesa_id,omitempty"`
	Mesa       *string                 `json:"mesa,omitempty"`
	ClienteID  *string                 `json:"cliente_id,omitempty"`
	Entrega    *EntregaRequest         `json:"entrega,omitempty"`
	Detalles   []DetallePedidoResponse `json:"detalles"`
	CostoEnvio decimal.Decimal         `json:"costo_envio"`
	Total      decimal.Decimal         `json:"total"`
	CreatedAt  string                  `json:"created_at"`
	CerradoAt  *string                 `json:"cerrado_at,omitempty"`
}

type MesaResponse struct {
	ID             string  `json:"id"`
	Nombre         string  `json:"nombre"`
	Tipo           string  `json:"tipo"`
	Estado         string  `json:"estado"`
	PedidoActualID *string `json:"pedido_actual_id,omitempty"`
}
