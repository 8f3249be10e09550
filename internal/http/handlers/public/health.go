package public

import (
	"net/http"
	"time"

	"github.com/skillchain/skillchain-api/internal/models"

	"github.com/gin-gonic/gin"
)

// Health 健康检查
// 数据库不可用时仍返回 200，由 dbStatus 字段反映降级状态
func (h *Handler) Health(c *gin.Context) {
	dbStatus := "connected"
	status := "ok"
	if err := models.Ping(); err != nil {
		dbStatus = "disconnected"
		status = "error"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"dbStatus":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
