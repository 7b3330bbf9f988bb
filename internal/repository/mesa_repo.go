package repository

import (
	"context"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MesaRepository interface {
	List(ctx context.Context, tipo model.TipoPedido) ([]model.Mesa, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Mesa, error)

	// FindByIDForUpdateTx locks the mesa row; the open-or-reuse check and the
	// occupy write must happen under this lock.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Mesa, error)
	OcuparTx(tx *gorm.DB, mesaID, pedidoID uuid.UUID) error
	LiberarTx(tx *gorm.DB, mesaID uuid.UUID) error
}

type mesaRepo struct{ db *gorm.DB }

func NewMesaRepository(db *gorm.DB) MesaRepository { return &mesaRepo{db: db} }

func (r *mesaRepo) List(ctx context.Context, tipo model.TipoPedido) ([]model.Mesa, error) {
	var mesas []model.Mesa
	q := r.db.WithContext(ctx).Model(&model.Mesa{})
	if tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}
	err := q.Order("nombre ASC").Find(&mesas).Error
	return mesas, err
}

func (r *mesaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Mesa, error) {
	var m model.Mesa
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *mesaRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Mesa, error) {
	var m model.Mesa
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *mesaRepo) OcuparTx(tx *gorm.DB, mesaID, pedidoID uuid.UUID) error {
	return tx.Model(&model.Mesa{}).Where("id = ?", mesaID).Updates(map[string]interface{}{
		"estado":           model.MesaOcupada,
		"pedido_actual_id": pedidoID,
	}).Error
}

func (r *mesaRepo) LiberarTx(tx *gorm.DB, mesaID uuid.UUID) error {
	return tx.Model(&model.Mesa{}).Where("id = ?", mesaID).Updates(map[string]interface{}{
		"estado":           model.MesaLibre,
		"pedido_actual_id": nil,
	}).Error
}
