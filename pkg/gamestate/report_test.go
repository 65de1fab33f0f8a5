package gamestate

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test that generating twice from the same state is byte identical.
func TestGenerateReportIdempotence(t *testing.T) {
	payload := rawPayload(600, "Foo#123", []map[string]any{
		rawPlayer("Foo#123", "Lux", TeamOrder, 2),
		rawPlayer("Bar#456", "Galio", TeamChaos, 1),
	}, []map[string]any{
		{"EventName": "DragonKill", "EventTime": float64(500), "KillerName": "Foo#123", "DragonType": "Infernal"},
	})

	state := parsedState(payload)

	first := GenerateReport(state)
	second := GenerateReport(state)
	assert.Equal(t, first, second)
}

// Test the full scenario: turret loss, battle log entry and empty inventory.
func TestGenerateReportTurretScenario(t *testing.T) {
	activePlayer := rawPlayer("Foo#123", "Lux", TeamOrder, 0)
	activePlayer["items"] = []any{}

	payload := rawPayload(100, "Foo#123", []map[string]any{
		activePlayer,
		rawPlayer("Bar#456", "Galio", TeamChaos, 0),
	}, []map[string]any{
		{"EventName": "TurretKilled", "EventTime": float64(95), "TurretKilled": "Turret_TChaos_L1_P2_AOS", "KillerName": "Foo#123"},
	})

	processor := NewProcessor()
	report, err := processor.ProcessToReport(payloadJson(payload))
	require.NoError(t, err)

	// CHAOS lost the mid tier 2 turret, so it shows under the enemy block.
	enemySection := between(report, "ENEMY_TURRETS_DESTROYED (We killed these):", "YOUR_TURRETS_DESTROYED")
	assert.Contains(t, enemySection, "- Middle: Tier 2")

	allySection := between(report, "YOUR_TURRETS_DESTROYED (We lost these):", "=== ALLY TEAM")
	assert.Contains(t, allySection, "- Middle: Secure")

	assert.Contains(t, report, fmt.Sprintf("- 5s ago: Lux (%s) destroyed a Turret", TeamOrder))
	assert.Contains(t, report, "Items: Empty Inventory")
}

// Test the placeholder when combat telemetry hasn't arrived.
func TestGenerateReportWaitingForCombatStats(t *testing.T) {
	state := parsedState(rawPayload(60, "Foo#123", []map[string]any{
		rawPlayer("Foo#123", "Lux", TeamOrder, 0),
	}, nil))
	state.ActivePlayer.CombatStats = nil

	report := GenerateReport(state)

	assert.Contains(t, report, "(Waiting for combat stats update...)")
	assert.NotContains(t, report, "Combat Stats:")
}

// Test the dead active player respawn countdown.
func TestGenerateReportDeadActivePlayer(t *testing.T) {
	state := parsedState(rawPayload(600, "Foo#123", []map[string]any{
		rawPlayer("Foo#123", "Lux", TeamOrder, 0),
	}, nil))
	state.ActivePlayer.IsDead = true
	state.ActivePlayer.RespawnTimer = 12.7

	report := GenerateReport(state)

	assert.Contains(t, report, "DEAD (Respawn 12s)")
}

// Test the lane status fragments: sorted turret tiers then the inhibitor.
func TestGenerateReportLaneFragments(t *testing.T) {
	state := parsedState(rawPayload(1200, "Foo#123", []map[string]any{
		rawPlayer("Foo#123", "Lux", TeamOrder, 0),
	}, nil))

	middle := state.Enemies.Lanes["Middle"]
	middle.TurretsLost = []string{"Tier 2", "Tier 1"}
	middle.InhibLost = true

	report := GenerateReport(state)

	assert.Contains(t, report, "- Middle: Tier 1, Tier 2; **INHIBITOR**")
}

// Test the sentinel line for an empty battle log.
func TestGenerateReportNoEvents(t *testing.T) {
	state := parsedState(rawPayload(30, "Foo#123", []map[string]any{
		rawPlayer("Foo#123", "Lux", TeamOrder, 0),
	}, nil))

	report := GenerateReport(state)

	assert.Contains(t, report, "- No events recorded.")
}

// Test that the active player is excluded from the ally roster block.
func TestGenerateReportRosters(t *testing.T) {
	state := parsedState(rawPayload(600, "Foo#123", []map[string]any{
		rawPlayer("Foo#123", "Lux", TeamOrder, 0),
		rawPlayer("Mid#111", "Ahri", TeamOrder, 0),
		rawPlayer("Bar#456", "Galio", TeamChaos, 0),
	}, nil))

	report := GenerateReport(state)

	allySection := between(report, "=== ALLY TEAM", "=== ENEMY TEAM")
	assert.Contains(t, allySection, "[Ahri]")
	assert.NotContains(t, allySection, "[Lux]")

	enemySection := between(report, "=== ENEMY TEAM", "=== RECENT BATTLE LOG")
	assert.Contains(t, enemySection, "[Galio]")
}

// Test the objective control block rendering.
func TestGenerateReportObjectives(t *testing.T) {
	state := parsedState(rawPayload(1800, "Foo#123", []map[string]any{
		rawPlayer("Foo#123", "Lux", TeamOrder, 0),
		rawPlayer("Bar#456", "Galio", TeamChaos, 0),
	}, []map[string]any{
		{"EventName": "DragonKill", "EventTime": float64(500), "KillerName": "Foo#123", "DragonType": "Cloud"},
		{"EventName": "HordeKill", "EventTime": float64(400), "KillerName": "Foo#123"},
	}))

	report := GenerateReport(state)

	allyObjectives := between(report, fmt.Sprintf("[%s Objectives]:", TeamOrder), fmt.Sprintf("[%s Objectives]:", TeamChaos))
	assert.Contains(t, allyObjectives, "- Dragons (1): 8:20 (Cloud)")
	assert.Contains(t, allyObjectives, "- Void Grubs (1): Taken at 6:40")

	enemyObjectives := between(report, fmt.Sprintf("[%s Objectives]:", TeamChaos), "=== MAP STRUCTURE STATUS ===")
	assert.Contains(t, enemyObjectives, "- None")
}

// between cuts the report section delimited by two markers.
func between(report string, start string, end string) string {
	_, after, found := strings.Cut(report, start)
	if !found {
		return ""
	}
	section, _, _ := strings.Cut(after, end)
	return section
}
