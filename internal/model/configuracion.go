package model

import (
	"time"

	"github.com/google/uuid"
)

// Configuracion is the single company configuration row. It owns the invoice
// counter: SerieFactura is the fixed "SSS-PPP" prefix (branch + point of sale)
// and UltimoNumero the last issued sequence. Every increment of UltimoNumero
// must happen under a row lock, inside the same transaction as the Venta it
// numbers.
type Configuracion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RazonSocial string    `gorm:"not null"`
	RUC         string    `gorm:"column:ruc;not null"`
	// SerieFactura: "001-001"
	SerieFactura string `gorm:"type:varchar(7);not null"`
	UltimoNumero int64  `gorm:"not null;default:0"`
	// ClienteDefaultID points at the walk-in client used when a sale carries
	// no explicit customer. A missing or dangling pointer is a provisioning
	// error, not a business error.
	ClienteDefaultID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Configuracion) TableName() string { return "configuracion" }
