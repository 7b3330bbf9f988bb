package model

import (
	"time"

	"github.com/google/uuid"
)

// Mesa is a shared mutable resource: at most one open Pedido may claim it.
// The claim is made under a row lock, and backed by a partial unique index on
// pedidos(mesa_id) WHERE estado = 'abierto' (see infra.applySchemaPatches).
type Mesa struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"uniqueIndex;not null"`
	// Tipo: mesa (salón) | terraza
	Tipo           TipoPedido `gorm:"type:varchar(20);not null"`
	Estado         EstadoMesa `gorm:"type:varchar(20);not null;default:'libre'"`
	PedidoActualID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Mesa) TableName() string { return "mesas" }
