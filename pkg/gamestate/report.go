package gamestate

import (
	"fmt"
	"sort"
	"strings"
)

// GenerateReport renders the enriched state as the plain text report used to
// ground the coaching model. Pure function of the state: identical input
// always produces identical output.
func GenerateReport(state *MatchState) string {
	activeName := "Unknown"
	activeText := "N/A"
	if active := state.ActivePlayer; active != nil {
		activeName = active.SummonerName
		activeText = renderActivePlayer(active)
	}

	eventText := renderEventLog(state.EventLog)

	var allyBlocks strings.Builder
	for _, player := range state.Allies.Players {
		if player == state.ActivePlayer {
			continue
		}
		allyBlocks.WriteString(renderPlayer(player))
	}

	var enemyBlocks strings.Builder
	for _, player := range state.Enemies.Players {
		enemyBlocks.WriteString(renderPlayer(player))
	}

	return fmt.Sprintf(`=== GAME STATE REPORT ===
SCORE: %s %d - %d %s

=== ACTIVE PLAYER STATUS (%s) ===
%s

=== OBJECTIVE CONTROL ===
[%s Objectives]:
%s

[%s Objectives]:
%s

=== MAP STRUCTURE STATUS ===
ENEMY_TURRETS_DESTROYED (We killed these):
%s

YOUR_TURRETS_DESTROYED (We lost these):
%s

=== ALLY TEAM (%s) ===
%s=== ENEMY TEAM (%s) ===
%s=== RECENT BATTLE LOG (Last 10 Events / 60s) ===
%s
`,
		state.Allies.TeamId, state.Allies.TotalKills, state.Enemies.TotalKills, state.Enemies.TeamId,
		activeName, activeText,
		state.Allies.TeamId, renderObjectives(state.Allies),
		state.Enemies.TeamId, renderObjectives(state.Enemies),
		renderLanes(state.Enemies),
		renderLanes(state.Allies),
		state.Allies.TeamId, allyBlocks.String(),
		state.Enemies.TeamId, enemyBlocks.String(),
		eventText,
	)
}

// renderActivePlayer renders the full vitals block, or a placeholder while
// the combat telemetry hasn't arrived yet.
func renderActivePlayer(active *Player) string {
	status := "ALIVE"
	if active.IsDead {
		status = fmt.Sprintf("DEAD (Respawn %ds)", int(active.RespawnTimer))
	}

	stats := active.CombatStats
	if stats == nil {
		return fmt.Sprintf("Champion: %s - %s\n(Waiting for combat stats update...)", active.ChampionName, status)
	}

	abilities := make([]string, 0, len(active.Abilities))
	for _, ability := range active.Abilities {
		abilities = append(abilities, fmt.Sprintf("%s:%d", ability.Key, ability.Level))
	}

	return fmt.Sprintf(
		"Champion: %s (Lvl %d %s) - %s\n"+
			"Kills: %d, Deaths: %d, Assists: %d | CS: %d | Vision Score: %.1f\n"+
			"Vitals: %d/%d HP | %d/%d %s\n"+
			"Current Gold: %d Gold\n"+
			"Combat Stats: AD:%d AP:%d Armor:%d MR:%d\n"+
			"Abilities: %s\n"+
			"Items: %s\n"+
			"Summoner Spells: %s\n"+
			"Keystone Rune: %s",
		active.ChampionName, active.Level, active.Role, status,
		active.Scores.Kills, active.Scores.Deaths, active.Scores.Assists, active.Scores.Cs, active.Scores.Vision,
		stats.HpCurrent, stats.HpMax, stats.ResourceCurrent, stats.ResourceMax, stats.ResourceType,
		int(active.CurrentGold),
		stats.Ad, stats.Ap, stats.Armor, stats.Mr,
		strings.Join(abilities, " "),
		strings.Join(active.Items, ", "),
		strings.Join(active.Spells, " / "),
		active.Keystone,
	)
}

// renderPlayer renders one roster entry.
func renderPlayer(player *Player) string {
	status := "ALIVE"
	if player.IsDead {
		status = fmt.Sprintf("DEAD (%ds)", int(player.RespawnTimer))
	}

	return fmt.Sprintf(
		"[%s] (Lvl %d %s) - %s\n"+
			"   Kills: %d, Deaths: %d, Assists: %d | CS: %d | Vis: %.1f\n"+
			"   Items: %s\n"+
			"   Spells: %s | Rune: %s\n",
		player.ChampionName, player.Level, player.Role, status,
		player.Scores.Kills, player.Scores.Deaths, player.Scores.Assists, player.Scores.Cs, player.Scores.Vision,
		strings.Join(player.Items, ", "),
		strings.Join(player.Spells, " "), player.Keystone,
	)
}

// renderObjectives renders the capture counts and timers for one team.
func renderObjectives(team *Team) string {
	lines := make([]string, 0, 4)
	if team.Dragons.Count > 0 {
		lines = append(lines, fmt.Sprintf("   - Dragons (%d): %s", team.Dragons.Count, strings.Join(team.Dragons.Timers, ", ")))
	}
	if team.Barons.Count > 0 {
		lines = append(lines, fmt.Sprintf("   - Baron (%d): %s", team.Barons.Count, strings.Join(team.Barons.Timers, ", ")))
	}
	if team.Heralds.Count > 0 {
		lines = append(lines, fmt.Sprintf("   - Rift Herald (%d): %s", team.Heralds.Count, strings.Join(team.Heralds.Timers, ", ")))
	}
	if team.Grubs.Count > 0 {
		lines = append(lines, fmt.Sprintf("   - Void Grubs (%d): Taken at %s", team.Grubs.Count, strings.Join(team.Grubs.Timers, ", ")))
	}

	if len(lines) == 0 {
		return "   - None"
	}
	return strings.Join(lines, "\n")
}

// renderLanes renders the structure status per lane for one team.
func renderLanes(team *Team) string {
	lines := make([]string, 0, len(LaneNames))
	for _, name := range LaneNames {
		lane := team.Lanes[name]

		fragments := make([]string, 0, 2)
		if len(lane.TurretsLost) > 0 {
			turrets := append([]string{}, lane.TurretsLost...)
			sort.Strings(turrets)
			fragments = append(fragments, strings.Join(turrets, ", "))
		}
		if lane.InhibLost {
			fragments = append(fragments, "**INHIBITOR**")
		}

		status := "Secure"
		if len(fragments) > 0 {
			status = strings.Join(fragments, "; ")
		}
		lines = append(lines, fmt.Sprintf("   - %s: %s", name, status))
	}
	return strings.Join(lines, "\n")
}

// renderEventLog renders the battle log lines.
func renderEventLog(logs []GameEventLog) string {
	if len(logs) == 0 {
		return "- No events recorded."
	}

	lines := make([]string, 0, len(logs))
	for _, log := range logs {
		lines = append(lines, fmt.Sprintf("- %ds ago: %s", log.TimeAgo, log.Message))
	}
	return strings.Join(lines, "\n")
}
