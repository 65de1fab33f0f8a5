package routes

import (
	"gocoach/api/handlers"

	"github.com/gin-gonic/gin"
)

type Router struct {
	Engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		api:    engine.Group("/api/v1"),
		Engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.AssistantHandler:
			r.registerAssistantHandler(handler)
		}
	}
}

// Register the assistant handler.
func (r *Router) registerAssistantHandler(handler *handlers.AssistantHandler) {
	assistant := r.api.Group("/assistant")
	{
		assistant.POST("/coach", handler.Coach)
		assistant.POST("/report", handler.Report)
		assistant.GET("/suggestions", handler.Suggestions)
	}

	r.api.GET("/health", handler.Health)
}

// Start the router.
func (r *Router) Run(addr string) error {
	return r.Engine.Run(addr)
}
