package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Domain error taxonomy. Handlers map these onto HTTP status codes; services
// return them wrapped at most with fmt.Errorf("…: %w", err) so errors.Is/As
// keep working across layers.

// Not-found — the referenced entity does not exist.
var (
	ErrVentaNoEncontrada    = errors.New("venta no encontrada")
	ErrPedidoNoEncontrado   = errors.New("pedido no encontrado")
	ErrMesaNoEncontrada     = errors.New("mesa no encontrada")
	ErrProductoNoEncontrado = errors.New("producto no encontrado")
	ErrClienteNoEncontrado  = errors.New("cliente no encontrado")
)

// Business-rule conflicts — rejected with no partial effects.
var (
	ErrCarritoVacio    = errors.New("la venta no tiene items")
	ErrPedidoSinItems  = errors.New("el pedido no tiene items para facturar")
	ErrPedidoNoAbierto = errors.New("el pedido no está abierto")
	ErrVentaYaAnulada  = errors.New("la venta ya está anulada")
	ErrCierreVacio     = errors.New("el cierre no incluye ninguna venta")
)

// Validation — rejected before any write.
var (
	ErrMesaRequerida      = errors.New("pedido de mesa o terraza requiere mesa_id")
	ErrEntregaRequerida   = errors.New("pedido delivery requiere datos de entrega")
	ErrTipoPedidoInvalido = errors.New("tipo de pedido desconocido")
)

// StockInsuficienteError carries enough detail for the UI to say which product
// lacks stock and how short it is.
type StockInsuficienteError struct {
	ProductoID uuid.UUID
	Nombre     string
	Solicitado int
	Disponible int
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s: solicitado %d, disponible %d",
		e.Nombre, e.Solicitado, e.Disponible)
}

// ConfiguracionError marks a provisioning failure (missing configuracion row,
// dangling default-client pointer). It requires operator intervention and is
// never retried automatically.
type ConfiguracionError struct {
	Falta string
}

func (e *ConfiguracionError) Error() string {
	return fmt.Sprintf("configuración incompleta: falta %s", e.Falta)
}

// EsNoEncontrado reports whether err belongs to the not-found class.
func EsNoEncontrado(err error) bool {
	return errors.Is(err, ErrVentaNoEncontrada) ||
		errors.Is(err, ErrPedidoNoEncontrado) ||
		errors.Is(err, ErrMesaNoEncontrada) ||
		errors.Is(err, ErrProductoNoEncontrado) ||
		errors.Is(err, ErrClienteNoEncontrado)
}

// EsConflicto reports whether err belongs to the business-conflict class.
func EsConflicto(err error) bool {
	var stockErr *StockInsuficienteError
	return errors.Is(err, ErrCarritoVacio) ||
		errors.Is(err, ErrPedidoSinItems) ||
		errors.Is(err, ErrPedidoNoAbierto) ||
		errors.Is(err, ErrVentaYaAnulada) ||
		errors.Is(err, ErrCierreVacio) ||
		errors.As(err, &stockErr)
}

// EsValidacion reports whether err is an input validation failure.
func EsValidacion(err error) bool {
	return errors.Is(err, ErrMesaRequerida) ||
		errors.Is(err, ErrEntregaRequerida) ||
		errors.Is(err, ErrTipoPedidoInvalido)
}

// EsConfiguracion reports whether err is a provisioning failure.
func EsConfiguracion(err error) bool {
	var cfgErr *ConfiguracionError
	return errors.As(err, &cfgErr)
}
