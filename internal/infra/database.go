package infra

import (
	"fmt"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies AutoMigrate plus schema patches. Also used by the
// integration test harness against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Producto{},
		&model.Cliente{},
		&model.Configuracion{},
		&model.Mesa{},
		&model.Pedido{},
		&model.PedidoDetalle{},
		&model.Venta{},
		&model.VentaDetalle{},
		&model.MovimientoStock{},
		&model.MovimientoCaja{},
		&model.CierreGlobal{},
		&model.CierreDetalle{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL statements that GORM AutoMigrate cannot
// fully handle on its own. Each statement uses IF NOT EXISTS semantics so
// re-running on an already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Single open order per mesa: the service checks under FOR UPDATE, and
		// this partial unique index is the database-level backstop.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_pedidos_mesa_abierto') THEN
		    CREATE UNIQUE INDEX idx_pedidos_mesa_abierto
		        ON pedidos (mesa_id)
		        WHERE estado = 'abierto' AND mesa_id IS NOT NULL;
		  END IF;
		END $$`,
		// Arqueo / cierre query path: active sales of a day filtered by client.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_ventas_estado_created') THEN
		    CREATE INDEX idx_ventas_estado_created
		        ON ventas (estado, created_at);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
