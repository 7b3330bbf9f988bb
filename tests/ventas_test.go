package tests

import (
	"context"
	"sort"
	"testing"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/dto"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/model"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

// ── Direct cart checkout ──────────────────────────────────────────────────────

func TestRegistrarVenta_CarritoDirecto(t *testing.T) {
	e := newEnv()
	p := seedProducto(e.productoRepo, "Hamburguesa", 25000, 10, 2)

	resp, err := e.ventas.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 3}},
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)

	assert.Equal(t, "001-001-0000001", resp.NumeroFactura)
	assert.Equal(t, "75000", resp.Total.String())
	assert.Equal(t, "activa", resp.Estado)
	assert.Equal(t, e.clienteDefault.ID.String(), resp.ClienteID)

	// Stock decremented and the movement recorded with before/after.
	assert.Equal(t, 7, e.productoRepo.productos[p.ID].StockActual)
	require.Len(t, e.movRepo.movimientos, 1)
	mov := e.movRepo.movimientos[0]
	assert.Equal(t, model.StockVenta, mov.Tipo)
	assert.Equal(t, -3, mov.Cantidad)
	assert.Equal(t, 10, mov.StockAnterior)
	assert.Equal(t, 7, mov.StockNuevo)
	require.NotNil(t, mov.VentaID)
	assert.Equal(t, resp.ID, mov.VentaID.String())
}

func TestRegistrarVenta_NumeracionConsecutiva(t *testing.T) {
	e := newEnv()
	p := seedProducto(e.productoRepo, "Gaseosa", 8000, 100, 10)

	var numeros []string
	for i := 0; i < 3; i++ {
		resp, err := e.ventas.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
			Items:      []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 1}},
			MetodoPago: "efectivo",
		})
		require.NoError(t, err)
		numeros = append(numeros, resp.NumeroFactura)
	}
	assert.Equal(t, []string{"001-001-0000001", "001-001-0000002", "001-001-0000003"}, numeros)
	assert.Equal(t, int64(3), e.configRepo.cfg.UltimoNumero)
}

func TestRegistrarVenta_CarritoVacio(t *testing.T) {
	e := newEnv()
	_, err := e.ventas.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		MetodoPago: "efectivo",
	})
	assert.ErrorIs(t, err, service.ErrCarritoVacio)
}

func TestRegistrarVenta_MergeaItemsDuplicados(t *testing.T) {
	e := newEnv()
	p := seedProducto(e.productoRepo, "Cerveza", 10000, 20, 2)

	resp, err := e.ventas.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{ProductoID: p.ID.String(), Cantidad: 2},
			{ProductoID: p.ID.String(), Cantidad: 3},
		},
		MetodoPago: "debito",
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Cantidad)
	assert.Equal(t, "50000", resp.Total.String())
	assert.Equal(t, 15, e.productoRepo.productos[p.ID].StockActual)
}

func TestRegistrarVenta_StockInsuficiente(t *testing.T) {
	e := newEnv()
	p := seedProducto(e.productoRepo, "Vino", 50000, 2, 0)

	_, err := e.ventas.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 5}},
		MetodoPago: "efectivo",
	})
	var stockErr *service.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Solicitado)
	assert.Equal(t, 2, stockErr.Disponible)

	// Nothing applied: stock intact, no invoice number burned, no venta stored.
	assert.Equal(t, 2, e.productoRepo.productos[p.ID].StockActual)
	assert.Equal(t, int64(0), e.configRepo.cfg.UltimoNumero)
	assert.Empty(t, e.ventaRepo.ventas)
	assert.Empty(t, e.movRepo.movimientos)
}

func TestRegistrarVenta_SinConfiguracion(t *testing.T) {
	e := newEnv()
	e.configRepo.cfg = nil
	p := seedProducto(e.productoRepo, "Agua", 5000, 10, 2)

	_, err := e.ventas.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 1}},
		MetodoPago: "efectivo",
	})
	require.Error(t, err)
	assert.True(t, service.EsConfiguracion(err))
	assert.Empty(t, e.ventaRepo.ventas)
}

func TestRegistrarVenta_ClienteExplicito(t *testing.T) {
	e := newEnv()
	cliente := &model.Cliente{ID: uuid.New(), Nombre: "Empresa XY", Activo: true}
	e.clienteRepo.clientes[cliente.ID] = cliente
	p := seedProducto(e.productoRepo, "Pizza", 35000, 10, 2)

	resp, err := e.ventas.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 1}},
		MetodoPago: "transferencia",
		ClienteID:  strptr(cliente.ID.String()),
	})
	require.NoError(t, err)
	assert.Equal(t, cliente.ID.String(), resp.ClienteID)
}

func TestRegistrarVenta_ClienteInexistente(t *testing.T) {
	e := newEnv()
	p := seedProducto(e.productoRepo, "Pizza", 35000, 10, 2)

	_, err := e.ventas.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 1}},
		MetodoPago: "efectivo",
		ClienteID:  strptr(uuid.NewString()),
	})
	require.ErrorIs(t, err, service.ErrClienteNoEncontrado)

	// Nothing applied.
	assert.Equal(t, 10, e.productoRepo.productos[p.ID].StockActual)
	assert.Empty(t, e.ventaRepo.ventas)
	assert.Equal(t, int64(0), e.configRepo.cfg.UltimoNumero)
}

func TestRegistrarVenta_BloqueaProductosEnOrdenFijo(t *testing.T) {
	e := newEnv()
	p1 := seedProducto(e.productoRepo, "Cerveza", 10000, 10, 2)
	p2 := seedProducto(e.productoRepo, "Pizza", 35000, 10, 2)
	p3 := seedProducto(e.productoRepo, "Gaseosa", 8000, 10, 2)

	// Submit the cart in reverse id order: the lock requests must still come
	// out sorted, so two concurrent carts over the same products cannot
	// deadlock each other.
	items := []dto.ItemVentaRequest{
		{ProductoID: p1.ID.String(), Cantidad: 1},
		{ProductoID: p2.ID.String(), Cantidad: 1},
		{ProductoID: p3.ID.String(), Cantidad: 1},
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductoID > items[j].ProductoID })

	_, err := e.ventas.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items:      items,
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)

	primeros := e.productoRepo.bloqueos[:3]
	assert.True(t, sort.SliceIsSorted(primeros, func(i, j int) bool {
		return primeros[i].String() < primeros[j].String()
	}), "lock order %v is not sorted", primeros)
}

// ── Settling an order ─────────────────────────────────────────────────────────

func abrirPedidoConItems(t *testing.T, e *env, mesa *model.Mesa, p *model.Producto, cantidad int) string {
	t.Helper()
	pedido, err := e.pedidos.AbrirOReutilizar(context.Background(), dto.AbrirPedidoRequest{
		Tipo:   "mesa",
		MesaID: strptr(mesa.ID.String()),
	})
	require.NoError(t, err)
	_, err = e.pedidos.AgregarItems(context.Background(), uuid.MustParse(pedido.ID), dto.AgregarItemsRequest{
		Items: []dto.ItemPedidoRequest{{ProductoID: p.ID.String(), Cantidad: cantidad}},
	})
	require.NoError(t, err)
	return pedido.ID
}

func TestRegistrarVenta_DesdePedido(t *testing.T) {
	e := newEnv()
	mesa := seedMesa(e.mesaRepo, "Mesa 1", model.PedidoMesa)
	p := seedProducto(e.productoRepo, "Milanesa", 30000, 10, 2)
	pedidoID := abrirPedidoConItems(t, e, mesa, p, 2)

	resp, err := e.ventas.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		PedidoID:   strptr(pedidoID),
		MetodoPago: "credito",
	})
	require.NoError(t, err)
	assert.Equal(t, "60000", resp.Total.String())
	require.NotNil(t, resp.PedidoID)
	assert.Equal(t, pedidoID, *resp.PedidoID)

	// The order is settled and its mesa released.
	pedido := e.pedidoRepo.pedidos[uuid.MustParse(pedidoID)]
	assert.Equal(t, model.PedidoCobrado, pedido.Estado)
	require.NotNil(t, pedido.CerradoAt)
	assert.Equal(t, model.MesaLibre, e.mesaRepo.mesas[mesa.ID].Estado)
	assert.Nil(t, e.mesaRepo.mesas[mesa.ID].PedidoActualID)

	assert.Equal(t, 8, e.productoRepo.productos[p.ID].StockActual)
}

func TestRegistrarVenta_PedidoSinItems(t *testing.T) {
	e := newEnv()
	mesa := seedMesa(e.mesaRepo, "Mesa 2", model.PedidoMesa)
	pedido, err := e.pedidos.AbrirOReutilizar(context.Background(), dto.AbrirPedidoRequest{
		Tipo:   "mesa",
		MesaID: strptr(mesa.ID.String()),
	})
	require.NoError(t, err)

	_, err = e.ventas.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		PedidoID:   strptr(pedido.ID),
		MetodoPago: "efectivo",
	})
	assert.ErrorIs(t, err, service.ErrPedidoSinItems)
}

func TestRegistrarVenta_PedidoYaCobrado(t *testing.T) {
	e := newEnv()
	mesa := seedMesa(e.mesaRepo, "Mesa 3", model.PedidoMesa)
	p := seedProducto(e.productoRepo, "Empanada", 5000, 50, 5)
	pedidoID := abrirPedidoConItems(t, e, mesa, p, 1)

	_, err := e.ventas.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		PedidoID:   strptr(pedidoID),
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)

	_, err = e.ventas.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		PedidoID:   strptr(pedidoID),
		MetodoPago: "efectivo",
	})
	assert.ErrorIs(t, err, service.ErrPedidoNoAbierto)
}

func TestRegistrarVenta_PedidoInexistente(t *testing.T) {
	e := newEnv()
	_, err := e.ventas.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		PedidoID:   strptr(uuid.NewString()),
		MetodoPago: "efectivo",
	})
	assert.ErrorIs(t, err, service.ErrPedidoNoEncontrado)
}

func TestRegistrarVenta_DeliveryIncluyeEnvio(t *testing.T) {
	e := newEnv()
	p := seedProducto(e.productoRepo, "Lomito", 28000, 10, 2)

	pedido, err := e.pedidos.AbrirOReutilizar(context.Background(), dto.AbrirPedidoRequest{
		Tipo: "delivery",
		Entrega: &dto.EntregaRequest{
			Telefono:   "0981123456",
			Direccion:  "Av. España 1234",
			CostoEnvio: decimal.NewFromInt(10000),
		},
	})
	require.NoError(t, err)
	_, err = e.pedidos.AgregarItems(context.Background(), uuid.MustParse(pedido.ID), dto.AgregarItemsRequest{
		Items: []dto.ItemPedidoRequest{{ProductoID: p.ID.String(), Cantidad: 2}},
	})
	require.NoError(t, err)

	resp, err := e.ventas.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		PedidoID:   strptr(pedido.ID),
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)
	// 2 × 28000 + 10000 envío
	assert.Equal(t, "66000", resp.Total.String())
	assert.Equal(t, "10000", resp.CostoEnvio.String())
}

// ── Void ──────────────────────────────────────────────────────────────────────

func TestAnularVenta_RestauraStockYCaja(t *testing.T) {
	e := newEnv()
	p := seedProducto(e.productoRepo, "Whisky", 180000, 10, 1)

	resp, err := e.ventas.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 3}},
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)
	require.Equal(t, 7, e.productoRepo.productos[p.ID].StockActual)

	ventaID := uuid.MustParse(resp.ID)
	require.NoError(t, e.ventas.AnularVenta(context.Background(), ventaID))

	// Stock restored via a new anulacion movement, never by editing history.
	assert.Equal(t, 10, e.productoRepo.productos[p.ID].StockActual)
	require.Len(t, e.movRepo.movimientos, 2)
	rev := e.movRepo.movimientos[1]
	assert.Equal(t, model.StockAnulacion, rev.Tipo)
	assert.Equal(t, 3, rev.Cantidad)
	assert.Equal(t, 7, rev.StockAnterior)
	assert.Equal(t, 10, rev.StockNuevo)

	// The compensating cash egreso carries the full amount and the method.
	require.Len(t, e.cajaRepo.movimientos, 1)
	caja := e.cajaRepo.movimientos[0]
	assert.Equal(t, model.CajaEgreso, caja.Direccion)
	assert.Equal(t, model.CajaAnulacion, caja.Tipo)
	assert.Equal(t, "540000", caja.Monto.String())
	require.NotNil(t, caja.MetodoPago)
	assert.Equal(t, model.PagoEfectivo, *caja.MetodoPago)

	venta := e.ventaRepo.ventas[ventaID]
	assert.Equal(t, model.VentaAnulada, venta.Estado)
	assert.NotNil(t, venta.AnuladaAt)
}

func TestAnularVenta_Doble(t *testing.T) {
	e := newEnv()
	p := seedProducto(e.productoRepo, "Fernet", 60000, 10, 1)

	resp, err := e.ventas.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 1}},
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)
	ventaID := uuid.MustParse(resp.ID)

	require.NoError(t, e.ventas.AnularVenta(context.Background(), ventaID))
	err = e.ventas.AnularVenta(context.Background(), ventaID)
	assert.ErrorIs(t, err, service.ErrVentaYaAnulada)

	// Stock restored exactly once.
	assert.Equal(t, 10, e.productoRepo.productos[p.ID].StockActual)
	assert.Len(t, e.cajaRepo.movimientos, 1)
}

func TestAnularVenta_NoExiste(t *testing.T) {
	e := newEnv()
	err := e.ventas.AnularVenta(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrVentaNoEncontrada)
}
