package tests

// In-memory repository stubs shared by the unit tests in this package.
// Services open their transactions through repo.DB(); every stub returns a
// nil *gorm.DB so runTx executes the closure directly, and the ...Tx methods
// ignore their tx argument.

import (
	"context"
	"time"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/dto"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/model"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Producto ──────────────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto

	// bloqueos records the order in which FOR UPDATE reads were requested.
	bloqueos []uuid.UUID
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) List(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Activo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) ListBajoMinimo(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Activo && p.StockActual < p.StockMinimo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	r.bloqueos = append(r.bloqueos, id)
	return r.FindByID(context.Background(), id)
}

func (r *stubProductoRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockActual += delta
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

func seedProducto(r *stubProductoRepo, nombre string, precio float64, stock, minimo int) *model.Producto {
	p := &model.Producto{
		ID:          uuid.New(),
		Nombre:      nombre,
		PrecioVenta: decimal.NewFromFloat(precio),
		TasaIVA:     10,
		StockActual: stock,
		StockMinimo: minimo,
		Activo:      true,
	}
	r.productos[p.ID] = p
	return p
}

// ── Cliente ───────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── Configuracion ─────────────────────────────────────────────────────────────

type stubConfiguracionRepo struct {
	cfg *model.Configuracion
}

func (r *stubConfiguracionRepo) Get(_ context.Context) (*model.Configuracion, error) {
	if r.cfg == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.cfg, nil
}

func (r *stubConfiguracionRepo) GetForUpdateTx(_ *gorm.DB) (*model.Configuracion, error) {
	return r.Get(context.Background())
}

func (r *stubConfiguracionRepo) UpdateUltimoNumeroTx(_ *gorm.DB, cfg *model.Configuracion, numero int64) error {
	cfg.UltimoNumero = numero
	return nil
}

var _ repository.ConfiguracionRepository = (*stubConfiguracionRepo)(nil)

// ── Mesa ──────────────────────────────────────────────────────────────────────

type stubMesaRepo struct {
	mesas map[uuid.UUID]*model.Mesa
}

func newStubMesaRepo() *stubMesaRepo {
	return &stubMesaRepo{mesas: make(map[uuid.UUID]*model.Mesa)}
}

func (r *stubMesaRepo) List(_ context.Context, tipo model.TipoPedido) ([]model.Mesa, error) {
	var out []model.Mesa
	for _, m := range r.mesas {
		if tipo == "" || m.Tipo == tipo {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubMesaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Mesa, error) {
	m, ok := r.mesas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubMesaRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Mesa, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubMesaRepo) OcuparTx(_ *gorm.DB, mesaID, pedidoID uuid.UUID) error {
	m, ok := r.mesas[mesaID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Estado = model.MesaOcupada
	id := pedidoID
	m.PedidoActualID = &id
	return nil
}

func (r *stubMesaRepo) LiberarTx(_ *gorm.DB, mesaID uuid.UUID) error {
	m, ok := r.mesas[mesaID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Estado = model.MesaLibre
	m.PedidoActualID = nil
	return nil
}

var _ repository.MesaRepository = (*stubMesaRepo)(nil)

func seedMesa(r *stubMesaRepo, nombre string, tipo model.TipoPedido) *model.Mesa {
	m := &model.Mesa{
		ID:     uuid.New(),
		Nombre: nombre,
		Tipo:   tipo,
		Estado: model.MesaLibre,
	}
	r.mesas[m.ID] = m
	return m
}

// ── Pedido ────────────────────────────────────────────────────────────────────

type stubPedidoRepo struct {
	pedidos map[uuid.UUID]*model.Pedido
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: make(map[uuid.UUID]*model.Pedido)}
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPedidoRepo) ListDetalles(_ context.Context, pedidoID uuid.UUID) ([]model.PedidoDetalle, error) {
	p, ok := r.pedidos[pedidoID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p.Detalles, nil
}

func (r *stubPedidoRepo) CreateTx(_ *gorm.DB, p *model.Pedido) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Pedido, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubPedidoRepo) FindAbiertoPorMesaTx(_ *gorm.DB, mesaID uuid.UUID) (*model.Pedido, error) {
	for _, p := range r.pedidos {
		if p.MesaID != nil && *p.MesaID == mesaID && p.Estado == model.PedidoAbierto {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPedidoRepo) CerrarTx(_ *gorm.DB, id uuid.UUID, estado model.EstadoPedido, cerradoAt time.Time) (int64, error) {
	p, ok := r.pedidos[id]
	if !ok || p.Estado != model.PedidoAbierto {
		return 0, nil
	}
	p.Estado = estado
	p.CerradoAt = &cerradoAt
	return 1, nil
}

func (r *stubPedidoRepo) CreateDetalleTx(_ *gorm.DB, d *model.PedidoDetalle) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (r *stubPedidoRepo) UpdateDetalleTx(_ *gorm.DB, _ *model.PedidoDetalle) error { return nil }

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

var _ repository.PedidoRepository = (*stubPedidoRepo)(nil)

// ── Venta ─────────────────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
	// cerradas mirrors the unique index on cierre_detalles.venta_id.
	cerradas map[uuid.UUID]bool
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{
		ventas:   make(map[uuid.UUID]*model.Venta),
		cerradas: make(map[uuid.UUID]bool),
	}
}

func (r *stubVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	for i := range v.Detalles {
		if v.Detalles[i].ID == uuid.Nil {
			v.Detalles[i].ID = uuid.New()
		}
		v.Detalles[i].VentaID = v.ID
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) MarcarAnuladaTx(_ *gorm.DB, id uuid.UUID, anuladaAt time.Time) (int64, error) {
	v, ok := r.ventas[id]
	if !ok || v.Estado != model.VentaActiva {
		return 0, nil
	}
	v.Estado = model.VentaAnulada
	v.AnuladaAt = &anuladaAt
	return 1, nil
}

func (r *stubVentaRepo) List(_ context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if filter.Estado != "all" && string(v.Estado) != filter.Estado {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) ListArqueo(_ context.Context, fecha time.Time, clienteID uuid.UUID) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if v.Estado != model.VentaActiva || v.ClienteID != clienteID || r.cerradas[v.ID] {
			continue
		}
		if v.CreatedAt.Format("2006-01-02") != fecha.Format("2006-01-02") {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubVentaRepo) ListParaCierreTx(_ *gorm.DB, fecha time.Time, clienteID uuid.UUID, ids []uuid.UUID) ([]model.Venta, error) {
	candidatos, err := r.ListArqueo(context.Background(), fecha, clienteID)
	if err != nil {
		return nil, err
	}
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []model.Venta
	for _, v := range candidatos {
		if wanted[v.ID] {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *stubVentaRepo) ListPorRango(_ context.Context, desde, hasta time.Time) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if !v.CreatedAt.Before(desde) && !v.CreatedAt.After(hasta) {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── MovimientoStock ───────────────────────────────────────────────────────────

type stubMovimientoStockRepo struct {
	movimientos []model.MovimientoStock
}

func (r *stubMovimientoStockRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoStockRepo) List(_ context.Context, filter dto.MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if filter.ProductoID != "" && m.ProductoID.String() != filter.ProductoID {
			continue
		}
		if filter.Tipo != "" && string(m.Tipo) != filter.Tipo {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

var _ repository.MovimientoStockRepository = (*stubMovimientoStockRepo)(nil)

// ── Caja ──────────────────────────────────────────────────────────────────────

type stubCajaRepo struct {
	movimientos []model.MovimientoCaja
}

func (r *stubCajaRepo) CreateMovimiento(_ context.Context, m *model.MovimientoCaja) error {
	return r.CreateMovimientoTx(nil, m)
}

func (r *stubCajaRepo) CreateMovimientoTx(_ *gorm.DB, m *model.MovimientoCaja) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubCajaRepo) ListMovimientos(_ context.Context, fecha time.Time) ([]model.MovimientoCaja, error) {
	var out []model.MovimientoCaja
	for _, m := range r.movimientos {
		if m.CreatedAt.Format("2006-01-02") == fecha.Format("2006-01-02") {
			out = append(out, m)
		}
	}
	return out, nil
}

var _ repository.CajaRepository = (*stubCajaRepo)(nil)

// ── Cierre ────────────────────────────────────────────────────────────────────

type stubCierreRepo struct {
	cierres []model.CierreGlobal
	// ventaRepo mirrors the cierre_detalles unique index into the venta stub.
	ventaRepo *stubVentaRepo
}

func (r *stubCierreRepo) CreateTx(_ *gorm.DB, c *model.CierreGlobal) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	for i := range c.Detalles {
		if r.ventaRepo.cerradas[c.Detalles[i].VentaID] {
			return gorm.ErrDuplicatedKey
		}
	}
	for i := range c.Detalles {
		c.Detalles[i].CierreID = c.ID
		r.ventaRepo.cerradas[c.Detalles[i].VentaID] = true
	}
	r.cierres = append(r.cierres, *c)
	return nil
}

func (r *stubCierreRepo) List(_ context.Context, desde, hasta time.Time, _ bool) ([]model.CierreGlobal, error) {
	var out []model.CierreGlobal
	for _, c := range r.cierres {
		if !c.Fecha.Before(desde) && !c.Fecha.After(hasta) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubCierreRepo) DB() *gorm.DB { return nil }

var _ repository.CierreRepository = (*stubCierreRepo)(nil)
