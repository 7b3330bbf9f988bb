package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a customer. The walk-in "Consumidor Final" record is an ordinary
// row; it is designated exclusively through Configuracion.ClienteDefaultID,
// never by matching its name or RUC.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	RUC       *string   `gorm:"column:ruc;uniqueIndex"`
	Telefono  *string
	Direccion *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }
