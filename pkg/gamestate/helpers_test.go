package gamestate

import "encoding/json"

// rawPlayer builds a raw player entry the way the live client sends it.
func rawPlayer(summonerName string, champion string, team string, kills int) map[string]any {
	return map[string]any{
		"summonerName": summonerName,
		"championName": champion,
		"team":         team,
		"position":     "MIDDLE",
		"level":        float64(10),
		"isDead":       false,
		"respawnTimer": float64(0),
		"items": []any{
			map[string]any{"displayName": "Doran's Ring"},
		},
		"summonerSpells": map[string]any{
			"summonerSpellOne": map[string]any{"displayName": "Flash"},
			"summonerSpellTwo": map[string]any{"displayName": "Ignite"},
		},
		"runes": map[string]any{
			"keystone": map[string]any{"displayName": "Electrocute"},
		},
		"scores": map[string]any{
			"kills":      float64(kills),
			"deaths":     float64(1),
			"assists":    float64(2),
			"creepScore": float64(80),
			"wardScore":  float64(7.5),
		},
	}
}

// rawPayload builds a full raw snapshot around the given players and events.
func rawPayload(gameTime float64, activeName string, players []map[string]any, events []map[string]any) map[string]any {
	eventEntries := make([]any, len(events))
	for i, event := range events {
		eventEntries[i] = event
	}

	playerEntries := make([]any, len(players))
	for i, player := range players {
		playerEntries[i] = player
	}

	return map[string]any{
		"gameData": map[string]any{"gameTime": gameTime},
		"activePlayer": map[string]any{
			"summonerName": activeName,
			"currentGold":  float64(1250),
			"championStats": map[string]any{
				"currentHealth": float64(400),
				"maxHealth":     float64(1000),
				"resourceValue": float64(200),
				"resourceMax":   float64(500),
				"resourceType":  "MANA",
				"attackDamage":  float64(85),
				"abilityPower":  float64(40),
				"armor":         float64(55),
				"magicResist":   float64(38),
			},
			"abilities": map[string]any{
				"Q": map[string]any{"abilityLevel": float64(3)},
				"W": map[string]any{"abilityLevel": float64(1)},
				"E": map[string]any{"abilityLevel": float64(2)},
				"R": map[string]any{"abilityLevel": float64(1)},
			},
		},
		"allPlayers": playerEntries,
		"events":     map[string]any{"Events": eventEntries},
	}
}

// payloadJson serializes a raw payload for the processor entry points.
func payloadJson(payload map[string]any) string {
	encoded, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return string(encoded)
}

// parsedState runs the parser and calculator over a raw payload.
func parsedState(payload map[string]any) *MatchState {
	state := NewParser(payload).Parse()
	NewCalculator(state, extractEvents(payload)).Process()
	return state
}
