package repository

import (
	"context"
	"time"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/dto"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaRepository interface {
	CreateTx(tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	// MarcarAnuladaTx flips activa → anulada. The WHERE estado = 'activa'
	// guard serializes concurrent void attempts: the loser sees zero rows
	// affected and must not re-apply the reversal.
	MarcarAnuladaTx(tx *gorm.DB, id uuid.UUID, anuladaAt time.Time) (int64, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)

	// ListArqueo selects the active sales of fecha attributed to the default
	// client that are not yet part of any closure (anti-join on
	// cierre_detalles). Read-only.
	ListArqueo(ctx context.Context, fecha time.Time, clienteID uuid.UUID) ([]model.Venta, error)
	// ListParaCierreTx requalifies a candidate id set inside the closure
	// transaction with the same anti-join, so ids closed by a concurrent
	// batch silently drop out instead of being closed twice.
	ListParaCierreTx(tx *gorm.DB, fecha time.Time, clienteID uuid.UUID, ids []uuid.UUID) ([]model.Venta, error)
	// ListPorRango returns sales created within [desde, hasta] for the
	// correlativity audit.
	ListPorRango(ctx context.Context, desde, hasta time.Time) ([]model.Venta, error)

	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) CreateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Preload("Detalles.Producto").Preload("Cliente").First(&v, "id = ?", id).Error
	return &v, err
}

func (r *ventaRepo) MarcarAnuladaTx(tx *gorm.DB, id uuid.UUID, anuladaAt time.Time) (int64, error) {
	res := tx.Model(&model.Venta{}).
		Where("id = ? AND estado = ?", id, model.VentaActiva).
		Updates(map[string]interface{}{
			"estado":     model.VentaAnulada,
			"anulada_at": anuladaAt,
		})
	return res.RowsAffected, res.Error
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venta{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Fecha != "" {
		q = q.Where("DATE(created_at) = ?", filter.Fecha)
	} else {
		// Default: today
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Detalles.Producto").Preload("Cliente").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error

	return ventas, total, err
}

func (r *ventaRepo) ListArqueo(ctx context.Context, fecha time.Time, clienteID uuid.UUID) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Where("estado = ?", model.VentaActiva).
		Where("cliente_id = ?", clienteID).
		Where("DATE(created_at) = ?", fecha.Format("2006-01-02")).
		Where("NOT EXISTS (SELECT 1 FROM cierre_detalles cd WHERE cd.venta_id = ventas.id)").
		Order("numero_factura ASC").
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) ListParaCierreTx(tx *gorm.DB, fecha time.Time, clienteID uuid.UUID, ids []uuid.UUID) ([]model.Venta, error) {
	var ventas []model.Venta
	err := tx.
		Where("id IN ?", ids).
		Where("estado = ?", model.VentaActiva).
		Where("cliente_id = ?", clienteID).
		Where("DATE(created_at) = ?", fecha.Format("2006-01-02")).
		Where("NOT EXISTS (SELECT 1 FROM cierre_detalles cd WHERE cd.venta_id = ventas.id)").
		Order("numero_factura ASC").
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) ListPorRango(ctx context.Context, desde, hasta time.Time) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Where("DATE(created_at) BETWEEN ? AND ?", desde.Format("2006-01-02"), hasta.Format("2006-01-02")).
		Order("numero_factura ASC").
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) DB() *gorm.DB { return r.db }
