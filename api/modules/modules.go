package modules

import (
	"fmt"
	"gocoach/api/handlers"
	"gocoach/api/services"
	"gocoach/api/sessions"
	"gocoach/pkg/config"
	"gocoach/pkg/knowledge"
	"gocoach/pkg/logger"
	"gocoach/pkg/redis"

	"github.com/gin-gonic/gin"
)

// Module containing the necessary handlers.
type Module struct {
	Router           *gin.Engine
	AssistantHandler *handlers.AssistantHandler
	Sessions         *sessions.Manager
}

// Dependencies shared by the handler initializers. The AI providers are
// optional, the assistant falls back to the offline advisor without them.
type ModuleDependencies struct {
	Redis       *redis.RedisClient
	Logger      *logger.Logger
	Transcriber services.Transcriber
	Advisor     services.Advisor
	Speaker     services.Speaker
}

// Create a new module with all the necessary handlers initialized.
func NewModule(deps *ModuleDependencies) (*Module, error) {
	router := gin.Default()

	// Load the static coaching content upfront.
	knowledgeRepo, err := knowledge.NewRepository(knowledge.Directories{
		Combos:   config.Content.CombosDir,
		Builds:   config.Content.BuildsDir,
		Guides:   config.Content.GuidesDir,
		Playbook: config.Content.PlaybookDir,
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't load the knowledge content: %w", err)
	}

	sessionManager := sessions.NewManager()

	assistantHandler := initializeAssistantHandler(deps, knowledgeRepo, sessionManager)

	// Return the module with all handlers.
	return &Module{
		Router:           router,
		AssistantHandler: assistantHandler,
		Sessions:         sessionManager,
	}, nil
}

// Close shuts down the background workers owned by the module.
func (m *Module) Close() {
	m.Sessions.Close()
}
