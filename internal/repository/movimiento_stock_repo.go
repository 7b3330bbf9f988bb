package repository

import (
	"context"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/dto"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/model"

	"gorm.io/gorm"
)

type MovimientoStockRepository interface {
	CreateTx(tx *gorm.DB, m *model.MovimientoStock) error
	List(ctx context.Context, filter dto.MovimientoStockFilter) ([]model.MovimientoStock, int64, error)
}

type movimientoStockRepo struct{ db *gorm.DB }

func NewMovimientoStockRepository(db *gorm.DB) MovimientoStockRepository {
	return &movimientoStockRepo{db: db}
}

func (r *movimientoStockRepo) CreateTx(tx *gorm.DB, m *model.MovimientoStock) error {
	return tx.Create(m).Error
}

func (r *movimientoStockRepo) List(ctx context.Context, filter dto.MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	var movs []model.MovimientoStock
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.MovimientoStock{})
	if filter.ProductoID != "" {
		q = q.Where("producto_id = ?", filter.ProductoID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	if filter.Fecha != "" {
		q = q.Where("DATE(created_at) = ?", filter.Fecha)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Producto").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&movs).Error
	return movs, total, err
}
