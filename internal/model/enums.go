package model

// TipoPedido classifies how an order is served.
type TipoPedido string

const (
	PedidoMostrador TipoPedido = "mostrador"
	PedidoMesa      TipoPedido = "mesa"
	PedidoTerraza   TipoPedido = "terraza"
	PedidoDelivery  TipoPedido = "delivery"
)

func (t TipoPedido) Valido() bool {
	switch t {
	case PedidoMostrador, PedidoMesa, PedidoTerraza, PedidoDelivery:
		return true
	}
	return false
}

// RequiereMesa reports whether orders of this kind claim a table.
func (t TipoPedido) RequiereMesa() bool {
	return t == PedidoMesa || t == PedidoTerraza
}

// EstadoPedido is the order lifecycle state. Transitions out of abierto are
// terminal: cobrado via sale settlement, cancelado via staff cancel.
type EstadoPedido string

const (
	PedidoAbierto   EstadoPedido = "abierto"
	PedidoCobrado   EstadoPedido = "cobrado"
	PedidoCancelado EstadoPedido = "cancelado"
)

// EstadoMesa tracks table occupancy.
type EstadoMesa string

const (
	MesaLibre   EstadoMesa = "libre"
	MesaOcupada EstadoMesa = "ocupada"
)

// EstadoVenta: activa → anulada is the only transition a sale ever makes.
type EstadoVenta string

const (
	VentaActiva  EstadoVenta = "activa"
	VentaAnulada EstadoVenta = "anulada"
)

// MetodoPago is the payment method of a sale.
type MetodoPago string

const (
	PagoEfectivo      MetodoPago = "efectivo"
	PagoDebito        MetodoPago = "debito"
	PagoCredito       MetodoPago = "credito"
	PagoTransferencia MetodoPago = "transferencia"
)

// MetodosPago lists every accepted payment method, in reporting order.
var MetodosPago = []MetodoPago{PagoEfectivo, PagoDebito, PagoCredito, PagoTransferencia}

func (m MetodoPago) Valido() bool {
	for _, v := range MetodosPago {
		if m == v {
			return true
		}
	}
	return false
}

// TipoMovimientoStock classifies stock ledger entries.
type TipoMovimientoStock string

const (
	StockVenta        TipoMovimientoStock = "venta"
	StockAnulacion    TipoMovimientoStock = "anulacion"
	StockCompra       TipoMovimientoStock = "compra"
	StockAjusteManual TipoMovimientoStock = "ajuste_manual"
)

// DireccionCaja is the sign of a cash ledger entry.
type DireccionCaja string

const (
	CajaIngreso DireccionCaja = "ingreso"
	CajaEgreso  DireccionCaja = "egreso"
)

// TipoMovimientoCaja classifies cash ledger entries.
type TipoMovimientoCaja string

const (
	CajaAnulacion     TipoMovimientoCaja = "anulacion"
	CajaIngresoManual TipoMovimientoCaja = "ingreso_manual"
	CajaEgresoManual  TipoMovimientoCaja = "egreso_manual"
)
