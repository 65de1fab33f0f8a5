package gamestate

import (
	"fmt"
	"sort"
	"strings"
)

// How the battle log is windowed: everything from the last recentWindow
// seconds, unless that holds fewer than minLogEvents entries, in which case
// the minLogEvents most recent events are taken regardless of age. The
// fallback keeps the log populated early into a match.
const (
	recentWindow = 60
	minLogEvents = 10
)

// laneCodes maps the lane code embedded in structure kill tokens.
var laneCodes = map[string]string{
	"L0": "Bottom",
	"L1": "Middle",
	"L2": "Top",
}

// Calculator enriches a parsed MatchState with the data derived from the
// raw event list: team kills, structure losses, objectives and battle log.
type Calculator struct {
	state  *MatchState
	events []map[string]any

	// A participant can be referenced by tagged riot id, untagged game
	// name or champion name depending on the event type. All three key
	// spaces resolve to the same player record.
	nameToPlayer map[string]*Player
}

// NewCalculator creates a calculator and builds the identity index.
func NewCalculator(state *MatchState, events []map[string]any) *Calculator {
	c := &Calculator{
		state:        state,
		events:       events,
		nameToPlayer: make(map[string]*Player),
	}

	players := append([]*Player{}, state.Allies.Players...)
	players = append(players, state.Enemies.Players...)
	for _, player := range players {
		c.nameToPlayer[player.SummonerName] = player
		if gameName, _, found := strings.Cut(player.SummonerName, "#"); found {
			c.nameToPlayer[gameName] = player
		}
		c.nameToPlayer[player.ChampionName] = player
	}

	return c
}

// Process runs all the enrichment steps on the state.
func (c *Calculator) Process() {
	c.calcTeamKills()
	c.formatTime()
	c.processStructuresAndObjectives()
	c.processEventHistory()
}

// calcTeamKills aggregates the kill totals per team.
func (c *Calculator) calcTeamKills() {
	for _, player := range c.state.Allies.Players {
		c.state.Allies.TotalKills += player.Scores.Kills
	}
	for _, player := range c.state.Enemies.Players {
		c.state.Enemies.TotalKills += player.Scores.Kills
	}
}

func (c *Calculator) formatTime() {
	c.state.FormattedTime = formatTimestamp(c.state.GameTime)
}

func formatTimestamp(seconds float64) string {
	return fmt.Sprintf("%d:%02d", int(seconds)/60, int(seconds)%60)
}

// teamForEntity resolves which team an event actor belongs to.
// Resolution order: the identity index, then the raw team marker embedded
// in structure kill tokens. Returns nil when neither matches.
func (c *Calculator) teamForEntity(name string, rawTeam string) *Team {
	if name != "" {
		if player, exists := c.nameToPlayer[name]; exists {
			if player.TeamId == c.state.Allies.TeamId {
				return c.state.Allies
			}
			return c.state.Enemies
		}
	}

	if strings.Contains(rawTeam, "Chaos") {
		return c.teamByToken(TeamChaos)
	}
	if strings.Contains(rawTeam, "Order") {
		return c.teamByToken(TeamOrder)
	}

	return nil
}

// teamByToken returns the team container carrying the given token.
func (c *Calculator) teamByToken(token string) *Team {
	if c.state.Allies.TeamId == token {
		return c.state.Allies
	}
	return c.state.Enemies
}

// processStructuresAndObjectives attributes structure losses and objective
// captures. Malformed events are skipped, never fatal.
func (c *Calculator) processStructuresAndObjectives() {
	for _, event := range c.events {
		if _, exists := event["EventTime"]; !exists {
			continue
		}

		name := getString(event, "EventName")
		eventTime := formatTimestamp(getFloat(event, "EventTime"))

		switch name {
		case "GameStart":
			c.state.GameStartTime = getFloat(event, "EventTime")
		case "TurretKilled":
			c.applyTurretKill(getString(event, "TurretKilled"))
		case "InhibKilled":
			c.applyInhibKill(getString(event, "InhibKilled"))
		}

		// Objectives go to the killer's team.
		killerTeam := c.teamForEntity(getString(event, "KillerName"), "")
		if killerTeam == nil {
			continue
		}

		switch name {
		case "DragonKill":
			dragonType := getStringDefault(event, "DragonType", "Unknown")
			killerTeam.Dragons.Count++
			killerTeam.Dragons.Timers = append(killerTeam.Dragons.Timers, fmt.Sprintf("%s (%s)", eventTime, dragonType))
		case "BaronKill":
			killerTeam.Barons.Count++
			killerTeam.Barons.Timers = append(killerTeam.Barons.Timers, eventTime)
		case "HeraldKill":
			killerTeam.Heralds.Count++
			killerTeam.Heralds.Timers = append(killerTeam.Heralds.Timers, eventTime)
		case "HordeKill":
			killerTeam.Grubs.Count++
			killerTeam.Grubs.Timers = append(killerTeam.Grubs.Timers, eventTime)
		}
	}
}

// applyTurretKill marks a turret as lost on the team encoded in the token.
// Token shape: Turret_<team>_<lane>_<position>_... - the team in the token
// is the one that LOST the structure, not the killer.
func (c *Calculator) applyTurretKill(token string) {
	parts := strings.Split(token, "_")
	if len(parts) < 4 {
		return
	}
	rawTeam, laneCode, position := parts[1], parts[2], parts[3]

	losingTeam := c.teamByToken(TeamOrder)
	if strings.Contains(rawTeam, "Chaos") {
		losingTeam = c.teamByToken(TeamChaos)
	}

	tier := "Tier 1"
	if strings.Contains(position, "P2") {
		tier = "Tier 2"
	}
	if strings.Contains(position, "P1") {
		tier = "Inhib Turret"
	}
	if strings.Contains(position, "P4") || strings.Contains(position, "P5") {
		tier = "Nexus Turret"
	}

	if lane, exists := losingTeam.Lanes[laneCodes[laneCode]]; exists {
		lane.TurretsLost = append(lane.TurretsLost, tier)
	}
}

// applyInhibKill flags the inhibitor of the encoded lane as lost.
func (c *Calculator) applyInhibKill(token string) {
	parts := strings.Split(token, "_")
	if len(parts) < 3 {
		return
	}
	rawTeam, laneCode := parts[1], parts[2]

	losingTeam := c.teamByToken(TeamOrder)
	if strings.Contains(rawTeam, "Chaos") {
		losingTeam = c.teamByToken(TeamChaos)
	}

	if lane, exists := losingTeam.Lanes[laneCodes[laneCode]]; exists {
		lane.InhibLost = true
	}
}

// championWithTeam renders an actor as "ChampionName (TEAM)" for the log.
// Unresolved names pass through untouched, empty actors are neutral units.
func (c *Calculator) championWithTeam(name string) string {
	if name == "" {
		return "Minion/Monster"
	}

	if player, exists := c.nameToPlayer[name]; exists {
		return fmt.Sprintf("%s (%s)", player.ChampionName, player.TeamId)
	}

	return name
}

// processEventHistory renders the battle log and applies the windowing.
func (c *Calculator) processEventHistory() {
	allLogs := make([]GameEventLog, 0, len(c.events))

	for _, event := range c.events {
		rawTime, exists := event["EventTime"]
		if _, ok := rawTime.(float64); !exists || !ok {
			continue
		}
		eventTime := getFloat(event, "EventTime")

		// May go negative when the feed clocks disagree. Kept as is.
		ago := int(c.state.GameTime - eventTime)

		killer := c.championWithTeam(getString(event, "KillerName"))
		victim := c.championWithTeam(getString(event, "VictimName"))

		var message string
		switch getString(event, "EventName") {
		case "ChampionKill":
			message = fmt.Sprintf("%s killed %s", killer, victim)
		case "TurretKilled":
			message = fmt.Sprintf("%s destroyed a Turret", killer)
		case "InhibKilled":
			message = fmt.Sprintf("%s destroyed an Inhibitor", killer)
		case "DragonKill":
			dragonType := getStringDefault(event, "DragonType", "Elemental")
			message = fmt.Sprintf("%s took %s Dragon", killer, dragonType)
		case "BaronKill":
			message = fmt.Sprintf("%s took Baron Nashor", killer)
		case "HeraldKill":
			message = fmt.Sprintf("%s took Rift Herald", killer)
		case "HordeKill":
			message = fmt.Sprintf("%s took Void Grubs", killer)
		}

		if message == "" {
			continue
		}

		allLogs = append(allLogs, GameEventLog{
			TimeAgo: ago,
			RawTime: eventTime,
			Message: message,
		})
	}

	// Most recent first. The raw time keeps the ordering stable even when
	// two events share the same rounded age.
	sort.SliceStable(allLogs, func(i, j int) bool {
		return allLogs[i].RawTime > allLogs[j].RawTime
	})

	recent := make([]GameEventLog, 0, len(allLogs))
	for _, log := range allLogs {
		if log.TimeAgo <= recentWindow {
			recent = append(recent, log)
		}
	}

	if len(recent) >= minLogEvents {
		c.state.EventLog = recent
		return
	}

	if len(allLogs) > minLogEvents {
		allLogs = allLogs[:minLogEvents]
	}
	c.state.EventLog = allLogs
}
