package repository

import (
	"context"
	"time"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PedidoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	ListDetalles(ctx context.Context, pedidoID uuid.UUID) ([]model.PedidoDetalle, error)

	CreateTx(tx *gorm.DB, p *model.Pedido) error
	// FindByIDForUpdateTx re-reads the order and its lines fresh inside the
	// transaction, under a FOR UPDATE lock on the pedido row.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Pedido, error)
	// FindAbiertoPorMesaTx returns the open order bound to a mesa, if any.
	FindAbiertoPorMesaTx(tx *gorm.DB, mesaID uuid.UUID) (*model.Pedido, error)
	// CerrarTx transitions abierto → estado and stamps the closing time. The
	// WHERE estado = 'abierto' guard makes concurrent settle/cancel attempts
	// lose cleanly: zero rows affected means the order was already closed.
	CerrarTx(tx *gorm.DB, id uuid.UUID, estado model.EstadoPedido, cerradoAt time.Time) (int64, error)

	CreateDetalleTx(tx *gorm.DB, d *model.PedidoDetalle) error
	UpdateDetalleTx(tx *gorm.DB, d *model.PedidoDetalle) error

	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).Preload("Detalles.Producto").Preload("Mesa").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pedidoRepo) ListDetalles(ctx context.Context, pedidoID uuid.UUID) ([]model.PedidoDetalle, error) {
	var detalles []model.PedidoDetalle
	err := r.db.WithContext(ctx).Preload("Producto").
		Where("pedido_id = ?", pedidoID).
		Order("created_at ASC").
		Find(&detalles).Error
	return detalles, err
}

func (r *pedidoRepo) CreateTx(tx *gorm.DB, p *model.Pedido) error {
	return tx.Create(p).Error
}

func (r *pedidoRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := tx.Preload("Producto").Where("pedido_id = ?", id).Order("created_at ASC").Find(&p.Detalles).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) FindAbiertoPorMesaTx(tx *gorm.DB, mesaID uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := tx.Preload("Detalles.Producto").
		Where("mesa_id = ? AND estado = ?", mesaID, model.PedidoAbierto).
		First(&p).Error
	return &p, err
}

func (r *pedidoRepo) CerrarTx(tx *gorm.DB, id uuid.UUID, estado model.EstadoPedido, cerradoAt time.Time) (int64, error) {
	res := tx.Model(&model.Pedido{}).
		Where("id = ? AND estado = ?", id, model.PedidoAbierto).
		Updates(map[string]interface{}{
			"estado":     estado,
			"cerrado_at": cerradoAt,
		})
	return res.RowsAffected, res.Error
}

func (r *pedidoRepo) CreateDetalleTx(tx *gorm.DB, d *model.PedidoDetalle) error {
	return tx.Create(d).Error
}

func (r *pedidoRepo) UpdateDetalleTx(tx *gorm.DB, d *model.PedidoDetalle) error {
	return tx.Model(d).Updates(map[string]interface{}{
		"cantidad": d.Cantidad,
		"subtotal": d.Subtotal,
	}).Error
}

func (r *pedidoRepo) DB() *gorm.DB { return r.db }
