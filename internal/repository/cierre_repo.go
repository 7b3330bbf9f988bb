package repository

import (
	"context"
	"time"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/model"

	"gorm.io/gorm"
)

type CierreRepository interface {
	// CreateTx inserts the closure and its details in one statement each. The
	// unique index on cierre_detalles.venta_id is the write-time guard: a
	// concurrent closure of the same sale fails the whole transaction.
	CreateTx(tx *gorm.DB, c *model.CierreGlobal) error
	List(ctx context.Context, desde, hasta time.Time, incluirDetalles bool) ([]model.CierreGlobal, error)
	DB() *gorm.DB
}

type cierreRepo struct{ db *gorm.DB }

func NewCierreRepository(db *gorm.DB) CierreRepository { return &cierreRepo{db: db} }

func (r *cierreRepo) CreateTx(tx *gorm.DB, c *model.CierreGlobal) error {
	return tx.Create(c).Error
}

func (r *cierreRepo) List(ctx context.Context, desde, hasta time.Time, incluirDetalles bool) ([]model.CierreGlobal, error) {
	var cierres []model.CierreGlobal
	q := r.db.WithContext(ctx).
		Where("fecha BETWEEN ? AND ?", desde.Format("2006-01-02"), hasta.Format("2006-01-02")).
		Preload("Detalles")
	if incluirDetalles {
		q = q.Preload("Detalles.Venta")
	}
	err := q.Order("fecha DESC, created_at DESC").Find(&cierres).Error
	return cierres, err
}

func (r *cierreRepo) DB() *gorm.DB { return r.db }
