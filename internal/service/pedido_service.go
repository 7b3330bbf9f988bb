package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/dto"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/model"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PedidoService manages the order lifecycle: open tabs accumulate items until
// the sale orchestrator settles them or staff cancels them. Settlement itself
// lives in VentaService; this service never touches stock or invoices.
type PedidoService interface {
	AbrirOReutilizar(ctx context.Context, req dto.AbrirPedidoRequest) (*dto.PedidoResponse, error)
	AgregarItems(ctx context.Context, pedidoID uuid.UUID, req dto.AgregarItemsRequest) (*dto.PedidoResponse, error)
	Cancelar(ctx context.Context, pedidoID uuid.UUID) error
	ListarDetalles(ctx context.Context, pedidoID uuid.UUID) (*dto.PedidoResponse, error)
	ListarMesas(ctx context.Context, tipo string) ([]dto.MesaResponse, error)
}

type pedidoService struct {
	repo         repository.PedidoRepository
	mesaRepo     repository.MesaRepository
	productoRepo repository.ProductoRepository
}

func NewPedidoService(repo repository.PedidoRepository, mesaRepo repository.MesaRepository, productoRepo repository.ProductoRepository) PedidoService {
	return &pedidoService{repo: repo, mesaRepo: mesaRepo, productoRepo: productoRepo}
}

// ── AbrirOReutilizar ──────────────────────────────────────────────────────────
// Mesa/terraza: at most one open order per mesa. The lookup-before-create runs
// under a FOR UPDATE lock on the mesa row, so two waiters opening the same
// mesa concurrently resolve to the same order. Mostrador and delivery orders
// are never deduplicated.

func (s *pedidoService) AbrirOReutilizar(ctx context.Context, req dto.AbrirPedidoRequest) (*dto.PedidoResponse, error) {
	tipo := model.TipoPedido(req.Tipo)
	if !tipo.Valido() {
		return nil, fmt.Errorf("%w: %s", ErrTipoPedidoInvalido, req.Tipo)
	}

	var clienteID *uuid.UUID
	if req.ClienteID != nil {
		id, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("cliente_id inválido: %w", err)
		}
		clienteID = &id
	}

	var pedido *model.Pedido
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		switch {
		case tipo.RequiereMesa():
			if req.MesaID == nil {
				return ErrMesaRequerida
			}
			mesaID, err := uuid.Parse(*req.MesaID)
			if err != nil {
				return fmt.Errorf("mesa_id inválido: %w", err)
			}
			mesa, err := s.mesaRepo.FindByIDForUpdateTx(tx, mesaID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrMesaNoEncontrada
				}
				return err
			}

			// Idempotent re-entry: staff re-opening an occupied mesa resumes
			// the same tab instead of creating a duplicate.
			if existente, err := s.repo.FindAbiertoPorMesaTx(tx, mesa.ID); err == nil {
				pedido = existente
				return nil
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			pedido = &model.Pedido{
				Tipo:      tipo,
				Estado:    model.PedidoAbierto,
				MesaID:    &mesa.ID,
				ClienteID: clienteID,
			}
			if err := s.repo.CreateTx(tx, pedido); err != nil {
				return err
			}
			return s.mesaRepo.OcuparTx(tx, mesa.ID, pedido.ID)

		case tipo == model.PedidoDelivery:
			if req.Entrega == nil {
				return ErrEntregaRequerida
			}
			pedido = &model.Pedido{
				Tipo:             tipo,
				Estado:           model.PedidoAbierto,
				ClienteID:        clienteID,
				TelefonoEntrega:  &req.Entrega.Telefono,
				DireccionEntrega: &req.Entrega.Direccion,
				Referencia:       req.Entrega.Referencia,
				Repartidor:       req.Entrega.Repartidor,
				CostoEnvio:       req.Entrega.CostoEnvio,
			}
			return s.repo.CreateTx(tx, pedido)

		default: // mostrador
			pedido = &model.Pedido{
				Tipo:      tipo,
				Estado:    model.PedidoAbierto,
				ClienteID: clienteID,
			}
			return s.repo.CreateTx(tx, pedido)
		}
	})
	if txErr != nil {
		return nil, txErr
	}
	return pedidoToResponse(pedido), nil
}

// ── AgregarItems ──────────────────────────────────────────────────────────────
// Lines merge by product: adding a product already on the tab sums quantities
// and recomputes the subtotal instead of appending a duplicate line.

func (s *pedidoService) AgregarItems(ctx context.Context, pedidoID uuid.UUID, req dto.AgregarItemsRequest) (*dto.PedidoResponse, error) {
	var pedido *model.Pedido
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.repo.FindByIDForUpdateTx(tx, pedidoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPedidoNoEncontrado
			}
			return err
		}
		if p.Estado != model.PedidoAbierto {
			return ErrPedidoNoAbierto
		}

		for _, item := range req.Items {
			productoID, err := uuid.Parse(item.ProductoID)
			if err != nil {
				return fmt.Errorf("producto_id inválido: %w", err)
			}

			var existente *model.PedidoDetalle
			for i := range p.Detalles {
				if p.Detalles[i].ProductoID == productoID {
					existente = &p.Detalles[i]
					break
				}
			}

			if existente != nil {
				existente.Cantidad += item.Cantidad
				existente.Subtotal = existente.PrecioUnitario.Mul(decimal.NewFromInt(int64(existente.Cantidad)))
				if err := s.repo.UpdateDetalleTx(tx, existente); err != nil {
					return err
				}
				continue
			}

			producto, err := s.productoRepo.FindByID(ctx, productoID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrProductoNoEncontrado, item.ProductoID)
				}
				return err
			}
			detalle := model.PedidoDetalle{
				PedidoID:       p.ID,
				ProductoID:     producto.ID,
				Cantidad:       item.Cantidad,
				PrecioUnitario: producto.PrecioVenta,
				Subtotal:       producto.PrecioVenta.Mul(decimal.NewFromInt(int64(item.Cantidad))),
				Producto:       producto,
			}
			if err := s.repo.CreateDetalleTx(tx, &detalle); err != nil {
				return err
			}
			p.Detalles = append(p.Detalles, detalle)
		}

		pedido = p
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return pedidoToResponse(pedido), nil
}

// ── Cancelar ──────────────────────────────────────────────────────────────────

func (s *pedidoService) Cancelar(ctx context.Context, pedidoID uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.repo.FindByIDForUpdateTx(tx, pedidoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPedidoNoEncontrado
			}
			return err
		}
		if p.Estado != model.PedidoAbierto {
			return ErrPedidoNoAbierto
		}

		rows, err := s.repo.CerrarTx(tx, p.ID, model.PedidoCancelado, time.Now())
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrPedidoNoAbierto
		}

		// The mesa is released even when the order never had items.
		if p.MesaID != nil {
			return s.mesaRepo.LiberarTx(tx, *p.MesaID)
		}
		return nil
	})
}

// ── ListarDetalles ────────────────────────────────────────────────────────────

func (s *pedidoService) ListarDetalles(ctx context.Context, pedidoID uuid.UUID) (*dto.PedidoResponse, error) {
	p, err := s.repo.FindByID(ctx, pedidoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPedidoNoEncontrado
		}
		return nil, err
	}
	return pedidoToResponse(p), nil
}

// ── ListarMesas ───────────────────────────────────────────────────────────────

func (s *pedidoService) ListarMesas(ctx context.Context, tipo string) ([]dto.MesaResponse, error) {
	t := model.TipoPedido(tipo)
	if tipo != "" && t != model.PedidoMesa && t != model.PedidoTerraza {
		return nil, fmt.Errorf("%w: %s", ErrTipoPedidoInvalido, tipo)
	}
	mesas, err := s.mesaRepo.List(ctx, t)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MesaResponse, 0, len(mesas))
	for _, m := range mesas {
		var pedidoActual *string
		if m.PedidoActualID != nil {
			id := m.PedidoActualID.String()
			pedidoActual = &id
		}
		resp = append(resp, dto.MesaResponse{
			ID:             m.ID.String(),
			Nombre:         m.Nombre,
			Tipo:           string(m.Tipo),
			Estado:         string(m.Estado),
			PedidoActualID: pedidoActual,
		})
	}
	return resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func pedidoToResponse(p *model.Pedido) *dto.PedidoResponse {
	detalles := make([]dto.DetallePedidoResponse, 0, len(p.Detalles))
	total := p.CostoEnvio
	for _, d := range p.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		detalles = append(detalles, dto.DetallePedidoResponse{
			ProductoID:     d.ProductoID.String(),
			Producto:       nombre,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
		total = total.Add(d.Subtotal)
	}

	resp := &dto.PedidoResponse{
		ID:         p.ID.String(),
		Tipo:       string(p.Tipo),
		Estado:     string(p.Estado),
		Detalles:   detalles,
		CostoEnvio: p.CostoEnvio,
		Total:      total,
		CreatedAt:  p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if p.MesaID != nil {
		id := p.MesaID.String()
		resp.MesaID = &id
	}
	if p.Mesa != nil {
		resp.Mesa = &p.Mesa.Nombre
	}
	if p.ClienteID != nil {
		id := p.ClienteID.String()
		resp.ClienteID = &id
	}
	if p.Tipo == model.PedidoDelivery && p.TelefonoEntrega != nil && p.DireccionEntrega != nil {
		resp.Entrega = &dto.EntregaRequest{
			Telefono:   *p.TelefonoEntrega,
			Direccion:  *p.DireccionEntrega,
			Referencia: p.Referencia,
			Repartidor: p.Repartidor,
			CostoEnvio: p.CostoEnvio,
		}
	}
	if p.CerradoAt != nil {
		t := p.CerradoAt.Format("2006-01-02T15:04:05Z")
		resp.CerradoAt = &t
	}
	return resp
}
