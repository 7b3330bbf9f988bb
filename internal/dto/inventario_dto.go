package dto

// MovimientoStockFilter is bound from the query string of
// GET /v1/inventario/movimientos.
type MovimientoStockFilter struct {
	ProductoID string `form:"producto_id" validate:"omitempty,uuid"`
	Tipo       string `form:"tipo"        validate:"omitempty,oneof=venta anulacion compra ajuste_manual"`
	Fecha      string `form:"fecha"       validate:"omitempty,datetime=2006-01-02"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type MovimientoStockResponse struct {
	ID            string  `json:"id"`
	ProductoID    string  `json:"producto_id"`
	Producto      string  `json:"producto"`
	Tipo          string  `json:"tipo"`
	Cantidad      int     `json:"cantidad"`
	StockAnterior int     `json:"stock_anterior"`
	StockNuevo    int     `json:"stock_nuevo"`
	Motivo        string  `json:"motivo"`
	VentaID       *string `json:"venta_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type MovimientoStockListResponse struct {
	Data  []MovimientoStockResponse `json:"data"`
	Total int64                     `json:"total"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
}

// AlertaStockResponse reports a product at or below its minimum stock.
type AlertaStockResponse struct {
	ProductoID  string `json:"producto_id"`
	Nombre      string `json:"nombre"`
	StockActual int    `json:"stock_actual"`
	StockMinimo int    `json:"stock_minimo"`
}
