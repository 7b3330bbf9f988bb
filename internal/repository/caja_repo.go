package repository

import (
	"context"
	"time"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/model"

	"gorm.io/gorm"
)

// CajaRepository accesses the immutable cash movement ledger.
type CajaRepository interface {
	CreateMovimiento(ctx context.Context, m *model.MovimientoCaja) error
	CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error
	ListMovimientos(ctx context.Context, fecha time.Time) ([]model.MovimientoCaja, error)
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) CreateMovimiento(ctx context.Context, m *model.MovimientoCaja) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *cajaRepo) CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error {
	return tx.Create(m).Error
}

func (r *cajaRepo) ListMovimientos(ctx context.Context, fecha time.Time) ([]model.MovimientoCaja, error) {
	var movs []model.MovimientoCaja
	err := r.db.WithContext(ctx).
		Where("DATE(created_at) = ?", fecha.Format("2006-01-02")).
		Order("created_at ASC").
		Find(&movs).Error
	return movs, err
}
