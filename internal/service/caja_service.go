package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/dto"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/model"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CajaService interface {
	// Arqueo previews the closure candidates of a day: active sales of the
	// default client not yet swept by any closure, broken out by payment
	// method. Strictly read-only.
	Arqueo(ctx context.Context, fecha time.Time) (*dto.ArqueoResponse, error)
	// RegistrarCierre sweeps a confirmed batch of sales into a CierreGlobal.
	RegistrarCierre(ctx context.Context, req dto.RegistrarCierreRequest) (*dto.CierreResponse, error)
	ListarCierres(ctx context.Context, filter dto.CierreFilter) ([]dto.CierreResponse, error)

	RegistrarMovimiento(ctx context.Context, req dto.MovimientoManualRequest) (*dto.MovimientoCajaResponse, error)
	ListarMovimientos(ctx context.Context, fecha time.Time) ([]dto.MovimientoCajaResponse, error)
}

type cajaService struct {
	ventaRepo   repository.VentaRepository
	cierreRepo  repository.CierreRepository
	cajaRepo    repository.CajaRepository
	facturacion FacturacionService
}

func NewCajaService(
	ventaRepo repository.VentaRepository,
	cierreRepo repository.CierreRepository,
	cajaRepo repository.CajaRepository,
	facturacion FacturacionService,
) CajaService {
	return &cajaService{
		ventaRepo:   ventaRepo,
		cierreRepo:  cierreRepo,
		cajaRepo:    cajaRepo,
		facturacion: facturacion,
	}
}

func (s *cajaService) Arqueo(ctx context.Context, fecha time.Time) (*dto.ArqueoResponse, error) {
	clienteID, err := s.facturacion.ClienteDefaultID(ctx)
	if err != nil {
		return nil, err
	}
	ventas, err := s.ventaRepo.ListArqueo(ctx, fecha, clienteID)
	if err != nil {
		return nil, err
	}
	return &dto.ArqueoResponse{
		Fecha:  fecha.Format("2006-01-02"),
		Montos: sumarPorMetodo(ventas),
		Ventas: resumirVentas(ventas),
	}, nil
}

// RegistrarCierre re-reads the submitted ids inside the transaction with the
// same filter the arqueo used, plus the anti-join against cierre_detalles.
// Sales voided or already closed since the preview drop out of the batch, and
// the totals are recomputed from what actually qualified. An empty qualifying
// set is a conflict, not an empty closure.
func (s *cajaService) RegistrarCierre(ctx context.Context, req dto.RegistrarCierreRequest) (*dto.CierreResponse, error) {
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida: %w", err)
	}
	if len(req.VentaIDs) == 0 {
		return nil, ErrCierreVacio
	}
	ids := make([]uuid.UUID, 0, len(req.VentaIDs))
	for _, raw := range req.VentaIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("venta_id inválido: %w", err)
		}
		ids = append(ids, id)
	}

	clienteID, err := s.facturacion.ClienteDefaultID(ctx)
	if err != nil {
		return nil, err
	}

	var cierre model.CierreGlobal
	var cerradas []model.Venta
	txErr := runTx(ctx, s.cierreRepo.DB(), func(tx *gorm.DB) error {
		ventas, err := s.ventaRepo.ListParaCierreTx(tx, fecha, clienteID, ids)
		if err != nil {
			return err
		}
		if len(ventas) == 0 {
			return ErrCierreVacio
		}

		montos := sumarPorMetodo(ventas)
		cierre = model.CierreGlobal{
			Fecha:              fecha,
			TotalEfectivo:      montos.Efectivo,
			TotalDebito:        montos.Debito,
			TotalCredito:       montos.Credito,
			TotalTransferencia: montos.Transferencia,
			TotalGeneral:       montos.Total,
		}
		for _, v := range ventas {
			cierre.Detalles = append(cierre.Detalles, model.CierreDetalle{VentaID: v.ID})
		}
		cerradas = ventas
		return s.cierreRepo.CreateTx(tx, &cierre)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("cierre_id", cierre.ID.String()).
		Str("fecha", req.Fecha).
		Int("ventas", len(cerradas)).
		Str("total", cierre.TotalGeneral.String()).
		Msg("cierre global registrado")

	resp := cierreToResponse(&cierre)
	resp.Ventas = resumirVentas(cerradas)
	return resp, nil
}

func (s *cajaService) ListarCierres(ctx context.Context, filter dto.CierreFilter) ([]dto.CierreResponse, error) {
	desde, err := time.Parse("2006-01-02", filter.Desde)
	if err != nil {
		return nil, fmt.Errorf("desde inválido: %w", err)
	}
	hasta, err := time.Parse("2006-01-02", filter.Hasta)
	if err != nil {
		return nil, fmt.Errorf("hasta inválido: %w", err)
	}
	cierres, err := s.cierreRepo.List(ctx, desde, hasta, filter.Detalles)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CierreResponse, 0, len(cierres))
	for i := range cierres {
		resp := cierreToResponse(&cierres[i])
		if filter.Detalles {
			for _, d := range cierres[i].Detalles {
				if d.Venta != nil {
					resp.Ventas = append(resp.Ventas, dto.VentaResumen{
						ID:            d.Venta.ID.String(),
						NumeroFactura: d.Venta.NumeroFactura,
						MetodoPago:    string(d.Venta.MetodoPago),
						Total:         d.Venta.Total,
					})
				}
			}
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *cajaService) RegistrarMovimiento(ctx context.Context, req dto.MovimientoManualRequest) (*dto.MovimientoCajaResponse, error) {
	if req.Monto.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("monto debe ser mayor a cero")
	}
	tipo := model.TipoMovimientoCaja(req.Tipo)
	direccion := model.CajaIngreso
	if tipo == model.CajaEgresoManual {
		direccion = model.CajaEgreso
	}
	mov := model.MovimientoCaja{
		Direccion:   direccion,
		Tipo:        tipo,
		Monto:       req.Monto,
		Descripcion: req.Descripcion,
	}
	if req.MetodoPago != nil {
		metodo := model.MetodoPago(*req.MetodoPago)
		mov.MetodoPago = &metodo
	}
	if err := s.cajaRepo.CreateMovimiento(ctx, &mov); err != nil {
		return nil, err
	}
	log.Info().
		Str("tipo", string(tipo)).
		Str("monto", req.Monto.String()).
		Msg("movimiento de caja registrado")
	return movimientoToResponse(&mov), nil
}

func (s *cajaService) ListarMovimientos(ctx context.Context, fecha time.Time) ([]dto.MovimientoCajaResponse, error) {
	movs, err := s.cajaRepo.ListMovimientos(ctx, fecha)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoCajaResponse, 0, len(movs))
	for i := range movs {
		out = append(out, *movimientoToResponse(&movs[i]))
	}
	return out, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func sumarPorMetodo(ventas []model.Venta) dto.MontosPorMetodo {
	m := dto.MontosPorMetodo{
		Efectivo:      decimal.Zero,
		Debito:        decimal.Zero,
		Credito:       decimal.Zero,
		Transferencia: decimal.Zero,
		Total:         decimal.Zero,
	}
	for _, v := range ventas {
		switch v.MetodoPago {
		case model.PagoEfectivo:
			m.Efectivo = m.Efectivo.Add(v.Total)
		case model.PagoDebito:
			m.Debito = m.Debito.Add(v.Total)
		case model.PagoCredito:
			m.Credito = m.Credito.Add(v.Total)
		case model.PagoTransferencia:
			m.Transferencia = m.Transferencia.Add(v.Total)
		}
		m.Total = m.Total.Add(v.Total)
	}
	return m
}

func resumirVentas(ventas []model.Venta) []dto.VentaResumen {
	out := make([]dto.VentaResumen, 0, len(ventas))
	for _, v := range ventas {
		out = append(out, dto.VentaResumen{
			ID:            v.ID.String(),
			NumeroFactura: v.NumeroFactura,
			MetodoPago:    string(v.MetodoPago),
			Total:         v.Total,
		})
	}
	return out
}

func cierreToResponse(c *model.CierreGlobal) *dto.CierreResponse {
	return &dto.CierreResponse{
		ID:    c.ID.String(),
		Fecha: c.Fecha.Format("2006-01-02"),
		Montos: dto.MontosPorMetodo{
			Efectivo:      c.TotalEfectivo,
			Debito:        c.TotalDebito,
			Credito:       c.TotalCredito,
			Transferencia: c.TotalTransferencia,
			Total:         c.TotalGeneral,
		},
		CantidadVentas: len(c.Detalles),
		CreatedAt:      c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func movimientoToResponse(m *model.MovimientoCaja) *dto.MovimientoCajaResponse {
	resp := &dto.MovimientoCajaResponse{
		ID:          m.ID.String(),
		Direccion:   string(m.Direccion),
		Tipo:        string(m.Tipo),
		Monto:       m.Monto,
		Descripcion: m.Descripcion,
		CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if m.MetodoPago != nil {
		metodo := string(*m.MetodoPago)
		resp.MetodoPago = &metodo
	}
	if m.VentaID != nil {
		id := m.VentaID.String()
		resp.VentaID = &id
	}
	return resp
}
