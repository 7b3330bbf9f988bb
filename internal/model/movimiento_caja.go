package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovimientoCaja is an immutable event in the cash ledger. Voiding a sale
// posts a compensating egreso; movements are NEVER modified or deleted.
type MovimientoCaja struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Direccion DireccionCaja      `gorm:"type:varchar(10);not null"`
	Tipo      TipoMovimientoCaja `gorm:"type:varchar(20);not null"`
	// MetodoPago is nil for movements with no payment-method dimension.
	MetodoPago  *MetodoPago     `gorm:"type:varchar(20)"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descripcion string          `gorm:"not null"`
	VentaID     *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt   time.Time       `gorm:"index"`
}

func (MovimientoCaja) TableName() string { return "movimientos_caja" }
