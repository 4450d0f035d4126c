package handler

import (
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"mavryck/utils"
)

type HealthHandler struct {
	startedAt time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// Health reports process-level stats for the admin dashboard.
func (h *HealthHandler) Health(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
		"cpu_percent":    utils.GetCPUUsage(),
		"memory_percent": utils.GetMemoryUsage(),
	})
}
