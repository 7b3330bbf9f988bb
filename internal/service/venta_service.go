package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/dto"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/model"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/repository"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	RegistrarVenta(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	AnularVenta(ctx context.Context, id uuid.UUID) error
	ListarVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	AnalizarCorrelatividad(ctx context.Context, desde, hasta time.Time) (*dto.CorrelatividadResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	pedidoRepo   repository.PedidoRepository
	mesaRepo     repository.MesaRepository
	productoRepo repository.ProductoRepository
	clienteRepo  repository.ClienteRepository
	cajaRepo     repository.CajaRepository
	inventario   InventarioService
	facturacion  FacturacionService
	dispatcher   *worker.Dispatcher
}

func NewVentaService(
	repo repository.VentaRepository,
	pedidoRepo repository.PedidoRepository,
	mesaRepo repository.MesaRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	cajaRepo repository.CajaRepository,
	inventario InventarioService,
	facturacion FacturacionService,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{
		repo:         repo,
		pedidoRepo:   pedidoRepo,
		mesaRepo:     mesaRepo,
		productoRepo: productoRepo,
		clienteRepo:  clienteRepo,
		cajaRepo:     cajaRepo,
		inventario:   inventario,
		facturacion:  facturacion,
		dispatcher:   dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// The whole checkout is one ACID transaction:
//   1. Resolve the client (explicit, order's, or configured walk-in default)
//   2. Resolve line items — order lines re-read fresh inside the tx, or cart
//      items re-priced server-side from the locked product rows
//   3. Validate stock for the full set (fail fast, no partial sales)
//   4. Reserve the next invoice number under the counter row lock
//   5. Insert venta + detalles
//   6. Decrement stock per line, appending movement records
//   7. Settle the originating order and free its mesa, if any
// Any failure at any step rolls everything back: no partial stock decrement,
// no burned invoice number, no mesa left in the wrong state.

func (s *ventaService) RegistrarVenta(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	metodo := model.MetodoPago(req.MetodoPago)
	if !metodo.Valido() {
		return nil, fmt.Errorf("metodo_pago desconocido: %s", req.MetodoPago)
	}
	if req.PedidoID == nil && len(req.Items) == 0 {
		return nil, ErrCarritoVacio
	}

	var venta model.Venta
	var nombres map[uuid.UUID]string
	var bajoMinimo []*model.Producto

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var pedido *model.Pedido
		var detalles []model.VentaDetalle
		costoEnvio := decimal.Zero
		nombres = make(map[uuid.UUID]string)

		if req.PedidoID != nil {
			pedidoID, err := uuid.Parse(*req.PedidoID)
			if err != nil {
				return fmt.Errorf("pedido_id inválido: %w", err)
			}
			// Never trust a snapshot passed by the caller: the order and its
			// lines are re-read fresh inside this transaction.
			pedido, err = s.pedidoRepo.FindByIDForUpdateTx(tx, pedidoID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrPedidoNoEncontrado
				}
				return err
			}
			if pedido.Estado != model.PedidoAbierto {
				return ErrPedidoNoAbierto
			}
			if len(pedido.Detalles) == 0 {
				return ErrPedidoSinItems
			}
			for _, d := range pedido.Detalles {
				detalles = append(detalles, model.VentaDetalle{
					ProductoID:     d.ProductoID,
					Cantidad:       d.Cantidad,
					PrecioUnitario: d.PrecioUnitario,
					Subtotal:       d.PrecioUnitario.Mul(decimal.NewFromInt(int64(d.Cantidad))),
				})
				if d.Producto != nil {
					nombres[d.ProductoID] = d.Producto.Nombre
				}
			}
			costoEnvio = pedido.CostoEnvio
		} else {
			// Direct cart: merge duplicate products, then re-price every line
			// from the locked product row. Caller-sent prices do not exist in
			// the request shape at all.
			cantidades := make(map[uuid.UUID]int)
			orden := []uuid.UUID{}
			for _, item := range req.Items {
				productoID, err := uuid.Parse(item.ProductoID)
				if err != nil {
					return fmt.Errorf("producto_id inválido: %w", err)
				}
				if _, visto := cantidades[productoID]; !visto {
					orden = append(orden, productoID)
				}
				cantidades[productoID] += item.Cantidad
			}
			// Lock in the same fixed order the stock validation uses, so two
			// carts over overlapping products cannot deadlock each other.
			sort.Slice(orden, func(i, j int) bool {
				return orden[i].String() < orden[j].String()
			})
			for _, productoID := range orden {
				p, err := s.productoRepo.FindByIDForUpdateTx(tx, productoID)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("%w: %s", ErrProductoNoEncontrado, productoID)
					}
					return err
				}
				cantidad := cantidades[productoID]
				detalles = append(detalles, model.VentaDetalle{
					ProductoID:     productoID,
					Cantidad:       cantidad,
					PrecioUnitario: p.PrecioVenta,
					Subtotal:       p.PrecioVenta.Mul(decimal.NewFromInt(int64(cantidad))),
				})
				nombres[productoID] = p.Nombre
			}
		}

		// Resolve the client: explicit > order's > configured walk-in default.
		clienteID, err := s.resolverCliente(ctx, req.ClienteID, pedido)
		if err != nil {
			return err
		}

		itemsStock := make([]ItemStock, 0, len(detalles))
		for _, d := range detalles {
			itemsStock = append(itemsStock, ItemStock{ProductoID: d.ProductoID, Cantidad: d.Cantidad})
		}
		if err := s.inventario.ValidarStockTx(ctx, tx, itemsStock); err != nil {
			return err
		}

		numero, err := s.facturacion.ProximoNumeroTx(ctx, tx)
		if err != nil {
			return err
		}

		total := costoEnvio
		for _, d := range detalles {
			total = total.Add(d.Subtotal)
		}

		venta = model.Venta{
			NumeroFactura: numero,
			ClienteID:     clienteID,
			MetodoPago:    metodo,
			Estado:        model.VentaActiva,
			Total:         total,
			CostoEnvio:    costoEnvio,
			Detalles:      detalles,
		}
		if pedido != nil {
			venta.PedidoID = &pedido.ID
		}
		if err := s.repo.CreateTx(tx, &venta); err != nil {
			return err
		}

		for _, d := range venta.Detalles {
			p, err := s.inventario.AplicarDeltaTx(ctx, tx, d.ProductoID, -d.Cantidad,
				model.StockVenta, fmt.Sprintf("Venta %s", numero), &venta.ID)
			if err != nil {
				return err
			}
			if p.BajoMinimo() {
				bajoMinimo = append(bajoMinimo, p)
			}
		}

		if pedido != nil {
			rows, err := s.pedidoRepo.CerrarTx(tx, pedido.ID, model.PedidoCobrado, time.Now())
			if err != nil {
				return err
			}
			if rows == 0 {
				return ErrPedidoNoAbierto
			}
			if pedido.MesaID != nil {
				if err := s.mesaRepo.LiberarTx(tx, *pedido.MesaID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("venta_id", venta.ID.String()).
		Str("numero_factura", venta.NumeroFactura).
		Str("metodo_pago", string(venta.MetodoPago)).
		Str("total", venta.Total.String()).
		Msg("venta registrada")

	// Low stock is a warning, never part of the transaction: alerts are
	// dispatched best-effort after commit.
	if s.dispatcher != nil {
		for _, p := range bajoMinimo {
			_ = s.dispatcher.EnqueueAlertaStock(ctx, worker.AlertaStockPayload{
				ProductoID:  p.ID.String(),
				Nombre:      p.Nombre,
				StockActual: p.StockActual,
				StockMinimo: p.StockMinimo,
			})
		}
	}

	return ventaToResponse(&venta, nombres), nil
}

func (s *ventaService) resolverCliente(ctx context.Context, reqClienteID *string, pedido *model.Pedido) (uuid.UUID, error) {
	if reqClienteID != nil {
		id, err := uuid.Parse(*reqClienteID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("cliente_id inválido: %w", err)
		}
		if _, err := s.clienteRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, fmt.Errorf("%w: %s", ErrClienteNoEncontrado, id)
			}
			return uuid.Nil, err
		}
		return id, nil
	}
	if pedido != nil && pedido.ClienteID != nil {
		return *pedido.ClienteID, nil
	}
	return s.facturacion.ClienteDefaultID(ctx)
}

// ── AnularVenta ───────────────────────────────────────────────────────────────
// Reversal is symmetric with creation and runs in one transaction: stock is
// restored line by line with anulacion movements, a compensating cash egreso
// is posted for the full sale amount, and the estado flips activa → anulada.
// The guarded UPDATE makes a second void attempt fail with ErrVentaYaAnulada
// instead of restoring stock twice.

func (s *ventaService) AnularVenta(ctx context.Context, id uuid.UUID) error {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVentaNoEncontrada
		}
		return err
	}
	if venta.Estado == model.VentaAnulada {
		return ErrVentaYaAnulada
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		rows, err := s.repo.MarcarAnuladaTx(tx, id, time.Now())
		if err != nil {
			return err
		}
		if rows == 0 {
			// Lost the race against a concurrent void.
			return ErrVentaYaAnulada
		}

		for _, d := range venta.Detalles {
			if _, err := s.inventario.AplicarDeltaTx(ctx, tx, d.ProductoID, d.Cantidad,
				model.StockAnulacion, fmt.Sprintf("Anulación venta %s", venta.NumeroFactura), &venta.ID); err != nil {
				return err
			}
		}

		metodo := venta.MetodoPago
		mov := model.MovimientoCaja{
			Direccion:   model.CajaEgreso,
			Tipo:        model.CajaAnulacion,
			MetodoPago:  &metodo,
			Monto:       venta.Total,
			Descripcion: fmt.Sprintf("Anulación venta %s", venta.NumeroFactura),
			VentaID:     &venta.ID,
		}
		return s.cajaRepo.CreateMovimientoTx(tx, &mov)
	})
	if txErr != nil {
		return txErr
	}

	log.Info().
		Str("venta_id", venta.ID.String()).
		Str("numero_factura", venta.NumeroFactura).
		Msg("venta anulada")
	return nil
}

// ── ListarVentas ──────────────────────────────────────────────────────────────
// Default filter: today's active sales.

func (s *ventaService) ListarVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Estado == "" {
		filter.Estado = string(model.VentaActiva)
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, 0, len(ventas))
	for _, v := range ventas {
		data = append(data, *ventaToResponse(&v, nil))
	}
	return &dto.VentaListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── AnalizarCorrelatividad ────────────────────────────────────────────────────

func (s *ventaService) AnalizarCorrelatividad(ctx context.Context, desde, hasta time.Time) (*dto.CorrelatividadResponse, error) {
	ventas, err := s.repo.ListPorRango(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	numeros := make([]string, 0, len(ventas))
	for _, v := range ventas {
		numeros = append(numeros, v.NumeroFactura)
	}
	series, malformados := AnalizarCorrelatividad(numeros)
	return &dto.CorrelatividadResponse{
		Desde:       desde.Format("2006-01-02"),
		Hasta:       hasta.Format("2006-01-02"),
		Series:      series,
		Malformados: malformados,
	}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func ventaToResponse(v *model.Venta, nombres map[uuid.UUID]string) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Detalles))
	for _, d := range v.Detalles {
		nombre := nombres[d.ProductoID]
		if nombre == "" && d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		items = append(items, dto.ItemVentaResponse{
			ProductoID:     d.ProductoID.String(),
			Producto:       nombre,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}

	resp := &dto.VentaResponse{
		ID:            v.ID.String(),
		NumeroFactura: v.NumeroFactura,
		ClienteID:     v.ClienteID.String(),
		MetodoPago:    string(v.MetodoPago),
		Items:         items,
		CostoEnvio:    v.CostoEnvio,
		Total:         v.Total,
		Estado:        string(v.Estado),
		CreatedAt:     v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if v.Cliente != nil {
		resp.Cliente = v.Cliente.Nombre
	}
	if v.PedidoID != nil {
		id := v.PedidoID.String()
		resp.PedidoID = &id
	}
	if v.AnuladaAt != nil {
		t := v.AnuladaAt.Format("2006-01-02T15:04:05Z")
		resp.AnuladaAt = &t
	}
	return resp
}
