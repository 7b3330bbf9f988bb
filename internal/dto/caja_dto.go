package dto

import "github.com/shopspring/decimal"

// MontosPorMetodo breaks an amount out by payment method.
type MontosPorMetodo struct {
	Efectivo      decimal.Decimal `json:"efectivo"`
	Debito        decimal.Decimal `json:"debito"`
	Credito       decimal.Decimal `json:"credito"`
	Transferencia decimal.Decimal `json:"transferencia"`
	Total         decimal.Decimal `json:"total"`
}

// VentaResumen identifies one qualifying sale inside an arqueo or closure.
type VentaResumen struct {
	ID            string          `json:"id"`
	NumeroFactura string          `json:"numero_factura"`
	MetodoPago    string          `json:"metodo_pago"`
	Total         decimal.Decimal `json:"total"`
}

type ArqueoResponse struct {
	Fecha  string          `json:"fecha"`
	Montos MontosPorMetodo `json:"montos"`
	Ventas []VentaResumen  `json:"ventas"`
}

// RegistrarCierreRequest submits a closure batch. The per-method totals are
// recomputed server-side from the qualifying sales; only the id set matters.
type RegistrarCierreRequest struct {
	Fecha    string   `json:"fecha"     validate:"required,datetime=2006-01-02"`
	VentaIDs []string `json:"venta_ids" validate:"dive,uuid"`
}

type CierreResponse struct {
	ID             string          `json:"id"`
	Fecha          string          `json:"fecha"`
	Montos         MontosPorMetodo `json:"montos"`
	CantidadVentas int             `json:"cantidad_ventas"`
	CreatedAt      string          `json:"created_at"`
	Ventas         []VentaResumen  `json:"ventas,omitempty"`
}

// CierreFilter is bound from the query string of GET /v1/caja/cierres.
type CierreFilter struct {
	Desde    string `form:"desde"    validate:"required,datetime=2006-01-02"`
	Hasta    string `form:"hasta"    validate:"required,datetime=2006-01-02"`
	Detalles bool   `form:"detalles"`
}

type MovimientoManualRequest struct {
	Tipo        string          `json:"tipo"        validate:"required,oneof=ingreso_manual egreso_manual"`
	MetodoPago  *string         `json:"metodo_pago" validate:"omitempty,oneof=efectivo debito credito transferencia"`
	Monto       decimal.Decimal `json:"monto"       validate:"required"`
	Descripcion string          `json:"descripcion" validate:"required,min=3"`
}

type MovimientoCajaResponse struct {
	ID          string          `json:"id"`
	Direccion   string          `json:"direccion"`
	Tipo        string          `json:"tipo"`
	MetodoPago  *string         `json:"metodo_pago,omitempty"`
	Monto       decimal.Decimal `json:"monto"`
	Descripcion string          `json:"descripcion"`
	VentaID     *string         `json:"venta_id,omitempty"`
	CreatedAt   string          `json:"created_at"`
}
