// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uipathfinder/internal/http/handlers"
	"uipathfinder/internal/http/middleware"
	"uipathfinder/internal/infra"
	"uipathfinder/internal/modules/history"
	"uipathfinder/internal/modules/schedule"
	"uipathfinder/internal/modules/usage"
	"uipathfinder/internal/modules/user"
)

type RouterDeps struct {
	Verifier infra.TokenVerifier
	Users    *user.Service
	Schedule *schedule.Service
	History  *history.Service
	Usage    *usage.Service
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging(), middleware.Auth(deps.Verifier))

	scheduleHandler := handlers.NewScheduleHandler(deps.Schedule)
	r.GET("/api/hello", scheduleHandler.Hello)
	r.GET("/api/fireworks-test", scheduleHandler.FireworksTest)
	r.POST("/api/llm-schedules", scheduleHandler.Generate)

	historyHandler := handlers.NewHistoryHandler(deps.Users, deps.History, deps.Usage)
	r.POST("/api/histories", historyHandler.Create)
	r.GET("/api/histories", historyHandler.List)
	r.GET("/api/histories/:id", historyHandler.Get)
	r.DELETE("/api/histories/:id", historyHandler.Delete)

	usageHandler := handlers.NewUsageHandler(deps.Users, deps.Usage)
	r.GET("/api/building-usage", usageHandler.List)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
