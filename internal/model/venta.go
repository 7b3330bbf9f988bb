package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta is an invoiced sale. Immutable once created except for the single
// activa → anulada transition; never deleted.
type Venta struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// NumeroFactura: "SSS-PPP-NNNNNNN", issued by the invoice sequencer inside
	// the same transaction that persists this row.
	NumeroFactura string      `gorm:"type:varchar(15);uniqueIndex;not null"`
	ClienteID     uuid.UUID   `gorm:"type:uuid;not null;index"`
	PedidoID      *uuid.UUID  `gorm:"type:uuid"`
	MetodoPago    MetodoPago  `gorm:"type:varchar(20);not null"`
	Estado        EstadoVenta `gorm:"type:varchar(20);not null;default:'activa';index"`
	// Total includes CostoEnvio when the sale settles a delivery order.
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostoEnvio decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	AnuladaAt  *time.Time
	CreatedAt  time.Time `gorm:"index"`

	Cliente  *Cliente       `gorm:"foreignKey:ClienteID"`
	Detalles []VentaDetalle `gorm:"foreignKey:VentaID"`
}

func (Venta) TableName() string { return "ventas" }

// VentaDetalle is a frozen copy of an invoiced line, independent of later
// product price changes.
type VentaDetalle struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (VentaDetalle) TableName() string { return "venta_detalles" }
