package router

import (
	"time"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/config"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/handler"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/middleware"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/repository"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/service"
	"github.com/rgarcete009-hue/rgsystem-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	productoRepo := repository.NewProductoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	configuracionRepo := repository.NewConfiguracionRepository(db)
	mesaRepo := repository.NewMesaRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	cierreRepo := repository.NewCierreRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	inventarioSvc := service.NewInventarioService(productoRepo, movimientoStockRepo)
	facturacionSvc := service.NewFacturacionService(configuracionRepo, clienteRepo)
	pedidoSvc := service.NewPedidoService(pedidoRepo, mesaRepo, productoRepo)
	ventaSvc := service.NewVentaService(ventaRepo, pedidoRepo, mesaRepo, productoRepo, clienteRepo, cajaRepo, inventarioSvc, facturacionSvc, dispatcher)
	cajaSvc := service.NewCajaService(ventaRepo, cierreRepo, cajaRepo, facturacionSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	ventasH := handler.NewVentasHandler(ventaSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		v1.POST("/ventas", ventasH.RegistrarVenta)
		v1.GET("/ventas", ventasH.ListarVentas)
		v1.GET("/ventas/correlatividad", ventasH.Correlatividad)
		v1.DELETE("/ventas/:id", ventasH.AnularVenta)

		v1.POST("/pedidos", pedidosH.AbrirPedido)
		v1.GET("/pedidos/:id", pedidosH.VerPedido)
		v1.POST("/pedidos/:id/items", pedidosH.AgregarItems)
		v1.DELETE("/pedidos/:id", pedidosH.CancelarPedido)
		v1.GET("/mesas", pedidosH.ListarMesas)

		caja := v1.Group("/caja")
		{
			caja.GET("/arqueo", cajaH.Arqueo)
			caja.POST("/cierres", cajaH.RegistrarCierre)
			caja.GET("/cierres", cajaH.ListarCierres)
			caja.POST("/movimientos", cajaH.RegistrarMovimiento)
			caja.GET("/movimientos", cajaH.ListarMovimientos)
		}

		inv := v1.Group("/inventario")
		{
			inv.GET("/movimientos", inventarioH.ListarMovimientos)
			inv.GET("/alertas", inventarioH.Alertas)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
