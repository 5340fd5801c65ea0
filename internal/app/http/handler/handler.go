package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rosterservice/internal/domain/roster"
	"rosterservice/internal/domain/workflow"
)

type Handler struct {
	RosterSvc roster.Service
	Engine    *workflow.Engine
	Log       *zap.Logger
}

func New(rosterSvc roster.Service, engine *workflow.Engine, log *zap.Logger) *Handler {
	return &Handler{
		RosterSvc: rosterSvc,
		Engine:    engine,
		Log:       log,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
