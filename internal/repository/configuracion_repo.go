package repository

import (
	"context"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConfiguracionRepository reads and advances the company configuration row —
// the sole source of truth for invoice numbering.
type ConfiguracionRepository interface {
	Get(ctx context.Context) (*model.Configuracion, error)
	// GetForUpdateTx locks the configuration row FOR UPDATE. Every concurrent
	// checkout serializes on this lock; it is the only point where invoice
	// numbers are assigned.
	GetForUpdateTx(tx *gorm.DB) (*model.Configuracion, error)
	UpdateUltimoNumeroTx(tx *gorm.DB, cfg *model.Configuracion, numero int64) error
}

type configuracionRepo struct{ db *gorm.DB }

func NewConfiguracionRepository(db *gorm.DB) ConfiguracionRepository {
	return &configuracionRepo{db: db}
}

func (r *configuracionRepo) Get(ctx context.Context) (*model.Configuracion, error) {
	var cfg model.Configuracion
	err := r.db.WithContext(ctx).First(&cfg).Error
	return &cfg, err
}

func (r *configuracionRepo) GetForUpdateTx(tx *gorm.DB) (*model.Configuracion, error) {
	var cfg model.Configuracion
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&cfg).Error
	return &cfg, err
}

func (r *configuracionRepo) UpdateUltimoNumeroTx(tx *gorm.DB, cfg *model.Configuracion, numero int64) error {
	return tx.Model(cfg).Update("ultimo_numero", numero).Error
}
