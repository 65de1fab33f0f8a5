package gamestate

import "fmt"

// Parser converts the raw live client payload into a typed MatchState.
// The generic map representation never leaves this file.
type Parser struct {
	raw map[string]any
}

// NewParser creates a parser for a single raw payload.
func NewParser(raw map[string]any) *Parser {
	return &Parser{raw: raw}
}

// Parse builds the MatchState with the game time, the active player and
// both teams with their lanes pre-initialized.
func (p *Parser) Parse() *MatchState {
	gameData := getMap(p.raw, "gameData")
	gameTime := getFloat(gameData, "gameTime")

	totalSeconds := int(gameTime)
	state := &MatchState{
		GameTime:      gameTime,
		FormattedTime: fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60),
	}

	activeRaw := getMap(p.raw, "activePlayer")
	activeName := getStringDefault(activeRaw, "summonerName", "Unknown")

	players := make([]*Player, 0, 10)
	activeTeamId := TeamOrder

	for _, entry := range getSlice(p.raw, "allPlayers") {
		playerRaw, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		player := p.parsePlayer(playerRaw)
		players = append(players, player)

		if player.SummonerName == activeName || getString(playerRaw, "summonerName") == activeName {
			activeTeamId = getStringDefault(playerRaw, "team", TeamOrder)
			state.ActivePlayer = player
		}
	}

	if state.ActivePlayer != nil {
		p.enrichActivePlayer(state.ActivePlayer, activeRaw)
	}

	enemyTeamId := TeamChaos
	if activeTeamId == TeamChaos {
		enemyTeamId = TeamOrder
	}

	state.Allies = NewTeam(activeTeamId)
	state.Enemies = NewTeam(enemyTeamId)

	// Distribute the players by the active player team.
	for _, player := range players {
		if player.TeamId == activeTeamId {
			state.Allies.Players = append(state.Allies.Players, player)
		} else {
			state.Enemies.Players = append(state.Enemies.Players, player)
		}
	}

	return state
}

// parsePlayer converts a single raw player entry.
func (p *Parser) parsePlayer(raw map[string]any) *Player {
	name := getString(raw, "summonerName")
	if name == "" {
		// Fall back to the riot id, and as last resort the champion name.
		if riotName := getString(raw, "riotIdGameName"); riotName != "" {
			if tag := getString(raw, "riotIdTagLine"); tag != "" {
				name = riotName + "#" + tag
			} else {
				name = riotName
			}
		} else {
			name = getStringDefault(raw, "championName", "Unknown Champion")
		}
	}

	items := make([]string, 0, 7)
	for _, entry := range getSlice(raw, "items") {
		itemRaw, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if displayName := getString(itemRaw, "displayName"); displayName != "" {
			items = append(items, displayName)
		}
	}
	if len(items) == 0 {
		items = []string{"Empty Inventory"}
	}

	spellsRaw := getMap(raw, "summonerSpells")
	spells := []string{
		getStringDefault(getMap(spellsRaw, "summonerSpellOne"), "displayName", "Unknown"),
		getStringDefault(getMap(spellsRaw, "summonerSpellTwo"), "displayName", "Unknown"),
	}

	keystone := getStringDefault(getMap(getMap(raw, "runes"), "keystone"), "displayName", "Unknown Rune")

	scoresRaw := getMap(raw, "scores")

	return &Player{
		SummonerName: name,
		ChampionName: getStringDefault(raw, "championName", "Unknown"),
		TeamId:       getStringDefault(raw, "team", TeamOrder),
		Role:         getStringDefault(raw, "position", "NONE"),
		Level:        getIntDefault(raw, "level", 1),
		IsDead:       getBool(raw, "isDead"),
		RespawnTimer: getFloat(raw, "respawnTimer"),
		Items:        items,
		Spells:       spells,
		Keystone:     keystone,
		Scores: PlayerScore{
			Kills:   getInt(scoresRaw, "kills"),
			Deaths:  getInt(scoresRaw, "deaths"),
			Assists: getInt(scoresRaw, "assists"),
			Cs:      getInt(scoresRaw, "creepScore"),
			Vision:  getFloat(scoresRaw, "wardScore"),
		},
	}
}

// enrichActivePlayer attaches gold, combat stats and ability levels.
// Only the active player carries this telemetry on the feed.
func (p *Parser) enrichActivePlayer(player *Player, activeRaw map[string]any) {
	player.CurrentGold = getFloat(activeRaw, "currentGold")

	statsRaw := getMap(activeRaw, "championStats")
	player.CombatStats = &CombatStats{
		HpCurrent:       getInt(statsRaw, "currentHealth"),
		HpMax:           getIntDefault(statsRaw, "maxHealth", 1),
		ResourceCurrent: getInt(statsRaw, "resourceValue"),
		ResourceMax:     getIntDefault(statsRaw, "resourceMax", 1),
		ResourceType:    getStringDefault(statsRaw, "resourceType", "MANA"),
		Ad:              getInt(statsRaw, "attackDamage"),
		Ap:              getInt(statsRaw, "abilityPower"),
		Armor:           getInt(statsRaw, "armor"),
		Mr:              getInt(statsRaw, "magicResist"),
	}

	abilitiesRaw := getMap(activeRaw, "abilities")
	for _, key := range []string{"Q", "W", "E", "R"} {
		slotRaw, exists := abilitiesRaw[key]
		if !exists {
			continue
		}
		slot, ok := slotRaw.(map[string]any)
		if !ok {
			continue
		}
		player.Abilities = append(player.Abilities, Ability{
			Key:   key,
			Level: getInt(slot, "abilityLevel"),
		})
	}
}

// Helpers for reading the loosely typed payload.
// Missing or mistyped fields always degrade to the zero value.

func getMap(raw map[string]any, key string) map[string]any {
	if value, ok := raw[key].(map[string]any); ok {
		return value
	}
	return map[string]any{}
}

func getSlice(raw map[string]any, key string) []any {
	if value, ok := raw[key].([]any); ok {
		return value
	}
	return nil
}

func getString(raw map[string]any, key string) string {
	if value, ok := raw[key].(string); ok {
		return value
	}
	return ""
}

func getStringDefault(raw map[string]any, key string, fallback string) string {
	if value, ok := raw[key].(string); ok && value != "" {
		return value
	}
	return fallback
}

func getFloat(raw map[string]any, key string) float64 {
	switch value := raw[key].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	}
	return 0
}

func getInt(raw map[string]any, key string) int {
	return int(getFloat(raw, key))
}

func getIntDefault(raw map[string]any, key string, fallback int) int {
	if _, exists := raw[key]; !exists {
		return fallback
	}
	return getInt(raw, key)
}

func getBool(raw map[string]any, key string) bool {
	if value, ok := raw[key].(bool); ok {
		return value
	}
	return false
}
