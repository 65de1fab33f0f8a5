package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"gocoach/api/services"
	"gocoach/pkg/gamestate"
	"gocoach/pkg/messages"

	"github.com/gin-gonic/gin"
)

// Static question examples for client onboarding.
var suggestions = []string{
	"What's the best second item for me here?",
	"What should we do after taking mid inhib?",
	"Should I freeze or push the wave right now?",
	"Who should I focus in teamfights?",
}

// AssistantHandler is the handler for the coaching endpoints.
type AssistantHandler struct {
	assistantService *services.AssistantService
}

type AssistantHandlerDependencies struct {
	AssistantService *services.AssistantService
}

// NewAssistantHandler creates a new instance of the assistant handler.
func NewAssistantHandler(deps *AssistantHandlerDependencies) *AssistantHandler {
	return &AssistantHandler{
		assistantService: deps.AssistantService,
	}
}

// Coach handles one coach query: a question as text or audio, with the game
// stats payload attached when the user is in a match.
func (h *AssistantHandler) Coach(c *gin.Context) {
	query := &services.CoachQuery{
		UserId:    c.GetHeader("X-User-Id"),
		Question:  c.PostForm("question"),
		GameStats: c.PostForm("game_stats"),
		Language:  c.PostForm("language"),
	}

	if query.UserId == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": messages.MissingUserIdMsg})
		return
	}

	if file, err := c.FormFile("audio"); err == nil {
		audio, err := readUpload(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "couldn't read the audio upload"})
			return
		}
		query.Audio = audio
	}

	if query.Question == "" && len(query.Audio) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": messages.MissingQuestionMsg})
		return
	}

	answer, err := h.assistantService.Answer(c.Request.Context(), query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if len(answer.Audio) > 0 {
		c.Header("Content-Disposition", "attachment; filename=coach_advice.wav")
		c.Data(http.StatusOK, "audio/wav", answer.Audio)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": answer.SessionId,
		"match_id":   answer.MatchId,
		"advice":     answer.Text,
	})
}

// Report renders the game state report for a raw payload, for programmatic
// consumers that skip the voice flow.
func (h *AssistantHandler) Report(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": messages.InvalidGameStatsMsg})
		return
	}

	report, err := h.assistantService.BuildReport(c.Request.Context(), string(body))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// Suggestions returns example questions for the client UI.
func (h *AssistantHandler) Suggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// Health is the liveness probe.
func (h *AssistantHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "gocoach",
	})
}

// respondError maps a service error to the HTTP status: malformed payloads
// are client errors, throttled queries get a retry status, the rest is
// internal.
func (h *AssistantHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gamestate.ErrInvalidGameData):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// readUpload reads the whole multipart file.
func readUpload(file *multipart.FileHeader) ([]byte, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}
