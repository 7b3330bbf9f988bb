package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pedido is an open tab: items accumulate on it until it is settled by the
// sale orchestrator (cobrado) or cancelled. Mesa/terraza orders hold their
// table for their whole open lifetime; closing in either direction releases it.
type Pedido struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo      TipoPedido   `gorm:"type:varchar(20);not null"`
	Estado    EstadoPedido `gorm:"type:varchar(20);not null;default:'abierto';index"`
	MesaID    *uuid.UUID   `gorm:"type:uuid;index"`
	ClienteID *uuid.UUID   `gorm:"type:uuid"`

	// Delivery metadata — only populated when Tipo = delivery.
	TelefonoEntrega  *string
	DireccionEntrega *string
	Referencia       *string
	Repartidor       *string
	CostoEnvio       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	CreatedAt time.Time
	CerradoAt *time.Time

	Mesa     *Mesa           `gorm:"foreignKey:MesaID"`
	Detalles []PedidoDetalle `gorm:"foreignKey:PedidoID"`
}

func (Pedido) TableName() string { return "pedidos" }

// PedidoDetalle is one line of an open order. PrecioUnitario is snapshotted
// from the product at add time; Subtotal is always recomputed server-side
// (precio × cantidad), never trusted from the caller.
type PedidoDetalle struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (PedidoDetalle) TableName() string { return "pedido_detalles" }
