package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/dto"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/model"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemStock is one (product, quantity) pair submitted to the ledger.
type ItemStock struct {
	ProductoID uuid.UUID
	Cantidad   int
}

// InventarioService is the stock ledger: the only component allowed to mutate
// Producto.StockActual. Every delta is paired with an immutable
// MovimientoStock row inside the caller's transaction.
type InventarioService interface {
	// ValidarStockTx locks every referenced product FOR UPDATE and fails fast
	// on the first shortfall. No partial application: the caller's transaction
	// must roll back on error.
	ValidarStockTx(ctx context.Context, tx *gorm.DB, items []ItemStock) error
	// AplicarDeltaTx adds delta to the product's stock (negative on sale,
	// positive on void/restock) and appends the movement record. Returns the
	// post-delta product so callers can observe the low-stock condition.
	AplicarDeltaTx(ctx context.Context, tx *gorm.DB, productoID uuid.UUID, delta int,
		tipo model.TipoMovimientoStock, motivo string, ventaID *uuid.UUID) (*model.Producto, error)

	ListarMovimientos(ctx context.Context, filter dto.MovimientoStockFilter) (*dto.MovimientoStockListResponse, error)
	ObtenerAlertas(ctx context.Context) ([]dto.AlertaStockResponse, error)
}

type inventarioService struct {
	productoRepo   repository.ProductoRepository
	movimientoRepo repository.MovimientoStockRepository
}

func NewInventarioService(productoRepo repository.ProductoRepository, movimientoRepo repository.MovimientoStockRepository) InventarioService {
	return &inventarioService{productoRepo: productoRepo, movimientoRepo: movimientoRepo}
}

func (s *inventarioService) ValidarStockTx(ctx context.Context, tx *gorm.DB, items []ItemStock) error {
	// Lock rows in a fixed order so two concurrent sales over overlapping
	// product sets cannot deadlock each other.
	ordenados := make([]ItemStock, len(items))
	copy(ordenados, items)
	sort.Slice(ordenados, func(i, j int) bool {
		return ordenados[i].ProductoID.String() < ordenados[j].ProductoID.String()
	})

	for _, item := range ordenados {
		p, err := s.productoRepo.FindByIDForUpdateTx(tx, item.ProductoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrProductoNoEncontrado, item.ProductoID)
			}
			return err
		}
		if p.StockActual < item.Cantidad {
			return &StockInsuficienteError{
				ProductoID: p.ID,
				Nombre:     p.Nombre,
				Solicitado: item.Cantidad,
				Disponible: p.StockActual,
			}
		}
	}
	return nil
}

func (s *inventarioService) AplicarDeltaTx(ctx context.Context, tx *gorm.DB, productoID uuid.UUID, delta int,
	tipo model.TipoMovimientoStock, motivo string, ventaID *uuid.UUID) (*model.Producto, error) {

	p, err := s.productoRepo.FindByIDForUpdateTx(tx, productoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductoNoEncontrado, productoID)
		}
		return nil, err
	}

	nuevo := p.StockActual + delta
	if nuevo < 0 {
		return nil, &StockInsuficienteError{
			ProductoID: p.ID,
			Nombre:     p.Nombre,
			Solicitado: -delta,
			Disponible: p.StockActual,
		}
	}

	if err := s.productoRepo.UpdateStockTx(tx, productoID, delta); err != nil {
		return nil, err
	}

	mov := &model.MovimientoStock{
		ProductoID:    productoID,
		Tipo:          tipo,
		Cantidad:      delta,
		StockAnterior: p.StockActual,
		StockNuevo:    nuevo,
		Motivo:        motivo,
		VentaID:       ventaID,
	}
	if err := s.movimientoRepo.CreateTx(tx, mov); err != nil {
		return nil, err
	}

	p.StockActual = nuevo
	return p, nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, filter dto.MovimientoStockFilter) (*dto.MovimientoStockListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	movs, total, err := s.movimientoRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.MovimientoStockResponse, 0, len(movs))
	for _, m := range movs {
		nombre := ""
		if m.Producto != nil {
			nombre = m.Producto.Nombre
		}
		var ventaID *string
		if m.VentaID != nil {
			v := m.VentaID.String()
			ventaID = &v
		}
		data = append(data, dto.MovimientoStockResponse{
			ID:            m.ID.String(),
			ProductoID:    m.ProductoID.String(),
			Producto:      nombre,
			Tipo:          string(m.Tipo),
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Motivo:        m.Motivo,
			VentaID:       ventaID,
			CreatedAt:     m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return &dto.MovimientoStockListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *inventarioService) ObtenerAlertas(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	productos, err := s.productoRepo.ListBajoMinimo(ctx)
	if err != nil {
		return nil, err
	}
	alertas := make([]dto.AlertaStockResponse, 0, len(productos))
	for _, p := range productos {
		alertas = append(alertas, dto.AlertaStockResponse{
			ProductoID:  p.ID.String(),
			Nombre:      p.Nombre,
			StockActual: p.StockActual,
			StockMinimo: p.StockMinimo,
		})
	}
	return alertas, nil
}
