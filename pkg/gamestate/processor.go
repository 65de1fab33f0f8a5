package gamestate

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidGameData marks a malformed payload: invalid JSON or a missing
// required top level field. Callers map it to a client error, anything else
// is an internal failure.
var ErrInvalidGameData = errors.New("invalid game data")

// The top level fields the payload can't be processed without.
var requiredFields = []string{"gameData", "allPlayers"}

// Processor is the facade over the full pipeline:
// parse -> calculate -> (optionally) render.
type Processor struct{}

// NewProcessor creates the pipeline facade.
func NewProcessor() *Processor {
	return &Processor{}
}

// ProcessToState converts the raw payload into the enriched MatchState, for
// consumers that need programmatic access instead of the text report.
func (p *Processor) ProcessToState(gameStatsJson string) (*MatchState, error) {
	raw, err := p.decode(gameStatsJson)
	if err != nil {
		return nil, err
	}

	state := NewParser(raw).Parse()

	NewCalculator(state, extractEvents(raw)).Process()

	return state, nil
}

// ProcessToReport converts the raw payload into the rendered text report.
func (p *Processor) ProcessToReport(gameStatsJson string) (string, error) {
	state, err := p.ProcessToState(gameStatsJson)
	if err != nil {
		return "", err
	}

	return GenerateReport(state), nil
}

// decode unmarshals and validates the raw payload structure.
func (p *Processor) decode(gameStatsJson string) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(gameStatsJson), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGameData, err)
	}

	for _, field := range requiredFields {
		if _, exists := raw[field]; !exists {
			return nil, fmt.Errorf("%w: missing required field %q", ErrInvalidGameData, field)
		}
	}

	return raw, nil
}

// extractEvents pulls the typed event list out of the payload.
// An absent or malformed event block is just an empty list.
func extractEvents(raw map[string]any) []map[string]any {
	entries := getSlice(getMap(raw, "events"), "Events")

	events := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		if event, ok := entry.(map[string]any); ok {
			events = append(events, event)
		}
	}

	return events
}
