package model

import (
	"time"

	"github.com/google/uuid"
)

// MovimientoStock registra cada cambio de stock de un producto. Rows are
// immutable; reversals append a new entry, they never touch an existing one.
type MovimientoStock struct {
	ID         uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Tipo       TipoMovimientoStock `gorm:"type:varchar(20);not null"`
	// Cantidad: positive = entrada, negative = salida
	Cantidad      int `gorm:"not null"`
	StockAnterior int `gorm:"not null"`
	StockNuevo    int `gorm:"not null"`
	Motivo        string
	// VentaID links the movement to the sale that caused it, when applicable.
	VentaID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (MovimientoStock) TableName() string { return "movimientos_stock" }
