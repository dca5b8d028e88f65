package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/whizpalsdeveloper/NotesApp/usecase"
	"github.com/whizpalsdeveloper/NotesApp/utils"
)

// StatsHandler reports note counts and host health for dashboards.
type StatsHandler struct {
	Service   *usecase.NotesService
	Log       *slog.Logger
	StartTime time.Time
}

func NewStatsHandler(service *usecase.NotesService, log *slog.Logger) *StatsHandler {
	return &StatsHandler{Service: service, Log: log, StartTime: time.Now()}
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	total, err := h.Service.CountNotes(c.Request.Context())
	if err != nil {
		h.Log.Error("failed to count notes", "error", err)
		utils.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notes_total":    total,
		"uptime_seconds": int64(time.Since(h.StartTime).Seconds()),
		"cpu_percent":    utils.GetCPUUsage(),
		"memory_percent": utils.GetMemoryUsage(),
	})
}
