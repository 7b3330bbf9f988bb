package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CierreGlobal is an irreversible batch that settles a set of arqueo-eligible
// sales. Totals are recomputed server-side from the closed sales at creation;
// the row is never mutated afterwards.
type CierreGlobal struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Fecha is the business date the closed sales belong to.
	Fecha              time.Time       `gorm:"type:date;not null;index"`
	TotalEfectivo      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalDebito        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalCredito       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalTransferencia decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalGeneral       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt          time.Time

	Detalles []CierreDetalle `gorm:"foreignKey:CierreID"`
}

func (CierreGlobal) TableName() string { return "cierres_globales" }

// CierreDetalle joins a closure to one settled sale. The unique index on
// VentaID is the system-wide guarantee that a sale is closed at most once.
type CierreDetalle struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CierreID  uuid.UUID `gorm:"type:uuid;not null;index"`
	VentaID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt time.Time

	Venta *Venta `gorm:"foreignKey:VentaID"`
}

func (CierreDetalle) TableName() string { return "cierre_detalles" }
