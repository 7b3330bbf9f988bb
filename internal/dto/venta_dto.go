package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	Fecha  string `form:"fecha"`                  // YYYY-MM-DD; empty = today
	Estado string `form:"estado,default=activa"`  // activa | anulada | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

// RegistrarVentaRequest describes a checkout. Exactly one of PedidoID (settle
// an open order) or Items (direct counter cart) must be present; prices and
// subtotals are never accepted from the caller.
type RegistrarVentaRequest struct {
	PedidoID   *string            `json:"pedido_id"   validate:"omitempty,uuid"`
	Items      []ItemVentaRequest `json:"items"       validate:"omitempty,dive"`
	MetodoPago string             `json:"metodo_pago" validate:"required,oneof=efectivo debito credito transferencia"`
	ClienteID  *string            `json:"cliente_id"  validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID            string              `json:"id"`
	NumeroFactura string              `json:"numero_factura"`
	Cliente       string              `json:"cliente,omitempty"`
	ClienteID     string              `json:"cliente_id"`
	PedidoID      *string             `json:"pedido_id,omitempty"`
	MetodoPago    string              `json:"metodo_pago"`
	Items         []ItemVentaResponse `json:"items"`
	CostoEnvio    decimal.Decimal     `json:"costo_envio"`
	Total         decimal.Decimal     `json:"total"`
	Estado        string              `json:"estado"`
	CreatedAt     string              `json:"created_at"`
	AnuladaAt     *string             `json:"anulada_at,omitempty"`
}
