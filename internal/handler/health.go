package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ZTormDev/pos/internal/storage"
)

// Health reports process liveness and durable store reachability.
func Health(st storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		storageStatus := "ok"
		if err := st.Ping(c.Request.Context()); err != nil {
			status = "degraded"
			storageStatus = err.Error()
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "storage": storageStatus})
	}
}
