package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a sellable item. StockActual is mutated exclusively through the
// inventory service so that every change is paired with a MovimientoStock row.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	PrecioCosto decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioVenta decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// TasaIVA: 0, 5 or 10 (percent)
	TasaIVA     int  `gorm:"column:tasa_iva;not null;default:10"`
	StockActual int  `gorm:"not null;default:0"`
	StockMinimo int  `gorm:"not null;default:5"`
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Producto) TableName() string { return "productos" }

// BajoMinimo reports the low-stock warning condition. It never blocks a sale.
func (p *Producto) BajoMinimo() bool { return p.StockActual < p.StockMinimo }
