package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports DB and Redis connectivity plus the pending depth of the
// stock-alert queue. Never exposes credentials or internals.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		var pendientes int64
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		} else {
			pendientes, _ = rdb.LLen(ctx, worker.QueueAlertasStock).Result()
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":              status == http.StatusOK,
			"db":              dbStatus,
			"redis":           redisStatus,
			"alertas_en_cola": pendientes,
		})
	}
}
