package worker

// alerta_stock_worker.go
// Processes low-stock alert jobs from QueueAlertasStock. Alerts are
// deduplicated per product with a Redis key that expires after an hour, so a
// busy product selling below its minimum does not flood the log.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const alertaDedupeTTL = time.Hour

// AlertaStockPayload is the job envelope sent to QueueAlertasStock.
type AlertaStockPayload struct {
	ProductoID  string `json:"producto_id"`
	Nombre      string `json:"nombre"`
	StockActual int    `json:"stock_actual"`
	StockMinimo int    `json:"stock_minimo"`
}

type AlertaStockWorker struct {
	rdb *redis.Client
}

func NewAlertaStockWorker(rdb *redis.Client) *AlertaStockWorker {
	return &AlertaStockWorker{rdb: rdb}
}

func (w *AlertaStockWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload AlertaStockPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alerta_stock_worker: invalid payload")
		return
	}

	dedupeKey := fmt.Sprintf("alerta_stock:%s", payload.ProductoID)
	ok, err := w.rdb.SetNX(ctx, dedupeKey, time.Now().Format(time.RFC3339), alertaDedupeTTL).Result()
	if err != nil {
		log.Error().Err(err).Msg("alerta_stock_worker: dedupe check failed")
		// fall through: better a duplicate alert than a missed one
	} else if !ok {
		return // already alerted within the TTL
	}

	log.Warn().
		Str("producto_id", payload.ProductoID).
		Str("producto", payload.Nombre).
		Int("stock_actual", payload.StockActual).
		Int("stock_minimo", payload.StockMinimo).
		Msg("stock por debajo del mínimo")
}
