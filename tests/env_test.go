package tests

import (
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/model"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/service"

	"github.com/google/uuid"
)

// env bundles the full service graph over in-memory stubs, mirroring the
// wiring in router.New.
type env struct {
	productoRepo *stubProductoRepo
	clienteRepo  *stubClienteRepo
	configRepo   *stubConfiguracionRepo
	mesaRepo     *stubMesaRepo
	pedidoRepo   *stubPedidoRepo
	ventaRepo    *stubVentaRepo
	movRepo      *stubMovimientoStockRepo
	cajaRepo     *stubCajaRepo
	cierreRepo   *stubCierreRepo

	clienteDefault *model.Cliente

	inventario  service.InventarioService
	facturacion service.FacturacionService
	pedidos     service.PedidoService
	ventas      service.VentaService
	caja        service.CajaService
}

// newEnv provisions a configured environment: invoice series 001-001 starting
// at zero and a default walk-in client.
func newEnv() *env {
	e := &env{
		productoRepo: newStubProductoRepo(),
		clienteRepo:  newStubClienteRepo(),
		configRepo:   &stubConfiguracionRepo{},
		mesaRepo:     newStubMesaRepo(),
		pedidoRepo:   newStubPedidoRepo(),
		ventaRepo:    newStubVentaRepo(),
		movRepo:      &stubMovimientoStockRepo{},
		cajaRepo:     &stubCajaRepo{},
	}
	e.cierreRepo = &stubCierreRepo{ventaRepo: e.ventaRepo}

	e.clienteDefault = &model.Cliente{ID: uuid.New(), Nombre: "Consumidor Final", Activo: true}
	e.clienteRepo.clientes[e.clienteDefault.ID] = e.clienteDefault
	e.configRepo.cfg = &model.Configuracion{
		ID:               uuid.New(),
		RazonSocial:      "Demo S.A.",
		SerieFactura:     "001-001",
		UltimoNumero:     0,
		ClienteDefaultID: e.clienteDefault.ID,
	}

	e.inventario = service.NewInventarioService(e.productoRepo, e.movRepo)
	e.facturacion = service.NewFacturacionService(e.configRepo, e.clienteRepo)
	e.pedidos = service.NewPedidoService(e.pedidoRepo, e.mesaRepo, e.productoRepo)
	e.ventas = service.NewVentaService(e.ventaRepo, e.pedidoRepo, e.mesaRepo, e.productoRepo,
		e.clienteRepo, e.cajaRepo, e.inventario, e.facturacion, nil)
	e.caja = service.NewCajaService(e.ventaRepo, e.cierreRepo, e.cajaRepo, e.facturacion)
	return e
}
