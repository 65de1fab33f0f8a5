package modules

import (
	"gocoach/api/cache"
	"gocoach/api/handlers"
	"gocoach/api/services"
	"gocoach/api/sessions"
	"gocoach/pkg/gamestate"
	"gocoach/pkg/knowledge"
)

func initializeAssistantHandler(deps *ModuleDependencies, knowledgeRepo *knowledge.Repository, sessionManager *sessions.Manager) *handlers.AssistantHandler {
	reportCache := cache.NewReportCache(deps.Redis)

	advisor := deps.Advisor
	if advisor == nil {
		advisor = services.NewOfflineAdvisor()
	}

	// Initialize the assistant service and handler.
	assistantDeps := &services.AssistantServiceDeps{
		Processor:   gamestate.NewProcessor(),
		Sessions:    sessionManager,
		Knowledge:   knowledgeRepo,
		ReportCache: reportCache,
		Redis:       deps.Redis,
		Logger:      deps.Logger,
		Transcriber: deps.Transcriber,
		Advisor:     advisor,
		Speaker:     deps.Speaker,
	}

	assistantService := services.NewAssistantService(assistantDeps)

	assistantHandlerDeps := &handlers.AssistantHandlerDependencies{
		AssistantService: assistantService,
	}

	return handlers.NewAssistantHandler(assistantHandlerDeps)
}
