package services

import (
	"context"
	"errors"
	"fmt"
	"gocoach/api/cache"
	"gocoach/api/sessions"
	"gocoach/pkg/gamestate"
	"gocoach/pkg/knowledge"
	"gocoach/pkg/logger"
	"gocoach/pkg/messages"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Per user throttle between two coach queries.
const queryRateLimitDuration = 2 * time.Second

// ErrRateLimited marks a query that hit the per user throttle.
var ErrRateLimited = errors.New(messages.OperationInProgress)

// AssistantRedisClient is the redis surface needed by the rate limiting.
type AssistantRedisClient interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// Transcriber converts the user audio into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

// Advisor produces the coaching answer for an assembled prompt.
type Advisor interface {
	Advise(ctx context.Context, prompt *AdvicePrompt) (string, error)
}

// Speaker converts the answer text into audio.
type Speaker interface {
	Synthesize(ctx context.Context, text string, language string) ([]byte, error)
}

// AdvicePrompt is everything an advisor implementation may ground on.
// Report and Guidance are empty on knowledge mode prompts.
type AdvicePrompt struct {
	Question  string
	GameClock string
	Report    string
	Guidance  string
	History   []sessions.Message
	Language  string
}

// CoachQuery is one incoming question. Audio is only transcribed when the
// question text wasn't already provided.
type CoachQuery struct {
	UserId    string
	Question  string
	Audio     []byte
	GameStats string
	Language  string
}

// CoachAnswer is the produced advice, with the synthesized audio when a
// speaker is configured.
type CoachAnswer struct {
	SessionId string
	MatchId   string
	Text      string
	Audio     []byte
}

// AssistantService orchestrates one coach query end to end.
type AssistantService struct {
	processor   *gamestate.Processor
	sessions    *sessions.Manager
	knowledge   *knowledge.Repository
	reportCache cache.ReportCache
	redis       AssistantRedisClient
	logger      *logger.Logger

	transcriber Transcriber
	advisor     Advisor
	speaker     Speaker
}

type AssistantServiceDeps struct {
	Processor   *gamestate.Processor
	Sessions    *sessions.Manager
	Knowledge   *knowledge.Repository
	ReportCache cache.ReportCache
	Redis       AssistantRedisClient
	Logger      *logger.Logger
	Transcriber Transcriber
	Advisor     Advisor
	Speaker     Speaker
}

// NewAssistantService creates the assistant orchestrator.
func NewAssistantService(deps *AssistantServiceDeps) *AssistantService {
	return &AssistantService{
		processor:   deps.Processor,
		sessions:    deps.Sessions,
		knowledge:   deps.Knowledge,
		reportCache: deps.ReportCache,
		redis:       deps.Redis,
		logger:      deps.Logger,
		transcriber: deps.Transcriber,
		advisor:     deps.Advisor,
		speaker:     deps.Speaker,
	}
}

// Answer runs the full query flow: rate limit, transcription, session
// resolution, report grounding, advice and speech.
func (as *AssistantService) Answer(ctx context.Context, query *CoachQuery) (*CoachAnswer, error) {
	if query.UserId == "" {
		return nil, errors.New(messages.MissingUserIdMsg)
	}

	redisCtx, cancelRedis := context.WithTimeout(ctx, time.Second)
	defer cancelRedis()
	if err := as.checkRateLimit(redisCtx, fmt.Sprintf("coach_query:%s", query.UserId)); err != nil {
		return nil, err
	}

	question, err := as.resolveQuestion(ctx, query)
	if err != nil {
		return nil, err
	}

	language := query.Language
	if language == "" {
		language = "english"
	}

	var answer *CoachAnswer
	if strings.TrimSpace(query.GameStats) == "" {
		answer, err = as.answerKnowledge(ctx, query.UserId, question, language)
	} else {
		answer, err = as.answerInGame(ctx, query, question, language)
	}
	if err != nil {
		return nil, err
	}

	if as.speaker != nil {
		audio, err := as.speaker.Synthesize(ctx, answer.Text, language)
		if err != nil {
			return nil, fmt.Errorf("couldn't synthesize the answer: %w", err)
		}
		answer.Audio = audio
	}

	return answer, nil
}

// BuildReport renders the text report for a raw payload, using the shared
// cache when the same match snapshot was rendered recently.
func (as *AssistantService) BuildReport(ctx context.Context, gameStatsJson string) (string, error) {
	state, err := as.processor.ProcessToState(gameStatsJson)
	if err != nil {
		return "", err
	}

	username, matchId := reportIdentity(state)
	if cached, found := as.reportCache.GetReport(ctx, username, matchId); found {
		return cached, nil
	}

	report := gamestate.GenerateReport(state)
	if err := as.reportCache.SetReport(ctx, username, matchId, report); err != nil {
		as.logger.Warnf("couldn't cache the report: %v", err)
	}

	return report, nil
}

// answerInGame handles a query with a game stats payload attached.
func (as *AssistantService) answerInGame(ctx context.Context, query *CoachQuery, question string, language string) (*CoachAnswer, error) {
	state, err := as.processor.ProcessToState(query.GameStats)
	if err != nil {
		return nil, err
	}

	username, _ := reportIdentity(state)
	session := as.sessions.GetOrCreateGameSession(query.UserId, username, state)

	// The coach always grounds on the fresh snapshot. The cache only feeds
	// the standalone report endpoint.
	report := gamestate.GenerateReport(state)
	if err := as.reportCache.SetReport(ctx, username, session.MatchId, report); err != nil {
		as.logger.Warnf("couldn't cache the report: %v", err)
	}

	prompt := &AdvicePrompt{
		Question:  question,
		GameClock: state.FormattedTime,
		Report:    report,
		Guidance:  as.buildGuidance(session.Champion, session.Role),
		History:   session.History.All(),
		Language:  language,
	}

	advice, err := as.advisor.Advise(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("couldn't get the coach advice: %w", err)
	}

	session.History.AddUserMessage(fmt.Sprintf("[%s] %s", state.FormattedTime, question))
	session.History.AddAssistantMessage(advice)

	as.logger.Infof("answered in game query for %s on %s", username, session.MatchId)

	return &CoachAnswer{
		SessionId: session.Id,
		MatchId:   session.MatchId,
		Text:      advice,
	}, nil
}

// answerKnowledge handles a query without game stats: general knowledge
// grounded on the full playbook instead of a live report.
func (as *AssistantService) answerKnowledge(ctx context.Context, userId string, question string, language string) (*CoachAnswer, error) {
	session := as.sessions.GetOrCreateKnowledgeSession(userId)

	prompt := &AdvicePrompt{
		Question: question,
		Guidance: as.knowledge.GetFullPlaybook(),
		History:  session.History.All(),
		Language: language,
	}

	advice, err := as.advisor.Advise(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("couldn't get the knowledge advice: %w", err)
	}

	session.History.AddUserMessage(question)
	session.History.AddAssistantMessage(advice)

	as.logger.Infof("answered knowledge query for %s", userId)

	return &CoachAnswer{
		SessionId: session.Id,
		MatchId:   session.MatchId,
		Text:      advice,
	}, nil
}

// resolveQuestion returns the question text, transcribing the audio when no
// text came with the query.
func (as *AssistantService) resolveQuestion(ctx context.Context, query *CoachQuery) (string, error) {
	if question := strings.TrimSpace(query.Question); question != "" {
		return question, nil
	}

	if len(query.Audio) == 0 || as.transcriber == nil {
		return "", errors.New(messages.MissingQuestionMsg)
	}

	question, err := as.transcriber.Transcribe(ctx, query.Audio, query.Language)
	if err != nil {
		return "", fmt.Errorf("couldn't transcribe the question: %w", err)
	}

	if strings.TrimSpace(question) == "" {
		return "", errors.New(messages.MissingQuestionMsg)
	}

	return question, nil
}

// buildGuidance assembles the static content for the champion and role.
func (as *AssistantService) buildGuidance(champion string, role string) string {
	sections := []string{
		as.knowledge.GetRolePlaybook(role),
		as.knowledge.GetGuide(champion, role),
		as.knowledge.GetBuild(champion, role),
		as.knowledge.GetCombo(champion),
	}

	parts := make([]string, 0, len(sections))
	for _, section := range sections {
		if section != "" {
			parts = append(parts, section)
		}
	}

	return strings.Join(parts, "\n\n")
}

// checkRateLimit checks if a rate limit is active for the key.
func (as *AssistantService) checkRateLimit(ctx context.Context, rateLimitKey string) error {
	lockAcquired, err := as.redis.SetNX(ctx, rateLimitKey, "processing", queryRateLimitDuration).Result()
	if err != nil {
		return fmt.Errorf("couldn't check rate limits on redis: %w", err)
	}

	if !lockAcquired {
		ttl, err := as.redis.TTL(ctx, rateLimitKey).Result()
		if err != nil || ttl <= 0 {
			return ErrRateLimited
		}
		return fmt.Errorf("%w, try again in %d seconds", ErrRateLimited, int(ttl.Seconds())+1)
	}

	return nil
}

// reportIdentity derives the cache identity of a state snapshot.
func reportIdentity(state *gamestate.MatchState) (string, string) {
	username := "unknown"
	if state.ActivePlayer != nil && state.ActivePlayer.SummonerName != "" {
		username = state.ActivePlayer.SummonerName
	}

	return username, fmt.Sprintf("game_%v", state.GameStartTime)
}
