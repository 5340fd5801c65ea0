package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rosterservice/internal/app/http/handler"
	"rosterservice/internal/app/http/middleware"
)

func NewRouter(h *handler.Handler, log *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(
		gin.Recovery(),
		middleware.ZapLogger(log),
		middleware.ZapRecovery(log),
	)

	r.GET("/health", h.Health)

	r.POST("/team/add", h.TeamAdd)
	r.GET("/team/get", h.TeamGet)

	r.POST("/triggers/recruit", h.TriggerRecruit)
	r.POST("/triggers/boot", h.TriggerBoot)
	r.POST("/triggers/roster", h.TriggerRoster)

	r.GET("/workflows/:id", h.WorkflowGet)
	r.POST("/workflows/:id/form", h.FormSubmit)
	r.POST("/workflows/:id/abandon", h.WorkflowAbandon)

	return r
}
