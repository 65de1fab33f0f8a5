package gamestate

// The two team tokens used by the live client feed.
const (
	TeamOrder = "ORDER"
	TeamChaos = "CHAOS"
)

// The three lanes used to key structure state.
var LaneNames = []string{"Top", "Middle", "Bottom"}

// Ability is a single champion ability slot with its current level.
type Ability struct {
	Key   string
	Level int
}

// CombatStats holds the full combat telemetry.
// Only available for the active player.
type CombatStats struct {
	HpCurrent       int
	HpMax           int
	ResourceCurrent int
	ResourceMax     int
	ResourceType    string
	Ad              int
	Ap              int
	Armor           int
	Mr              int
}

// PlayerScore holds the KDA, creep score and vision score of a player.
type PlayerScore struct {
	Kills   int
	Deaths  int
	Assists int
	Cs      int
	Vision  float64
}

// Player is a single participant of the match.
// CombatStats, Abilities and CurrentGold are only set for the active player.
type Player struct {
	SummonerName string
	ChampionName string
	TeamId       string
	Role         string
	Level        int
	IsDead       bool
	RespawnTimer float64
	Items        []string
	Spells       []string
	Keystone     string
	Scores       PlayerScore
	CombatStats  *CombatStats
	Abilities    []Ability
	CurrentGold  float64
}

// LaneState tracks the structures lost on a single lane.
type LaneState struct {
	Name        string
	TurretsLost []string
	InhibLost   bool
}

// ObjectiveStat counts captures of one objective type.
// Count is always equal to len(Timers).
type ObjectiveStat struct {
	Count  int
	Timers []string
}

// Team groups the players of one side with its objective and structure state.
type Team struct {
	TeamId     string
	Players    []*Player
	Lanes      map[string]*LaneState
	TotalKills int
	Dragons    ObjectiveStat
	Barons     ObjectiveStat
	Heralds    ObjectiveStat
	Grubs      ObjectiveStat
}

// GameEventLog is a single rendered battle log entry.
// RawTime keeps the absolute event time for stable sorting.
type GameEventLog struct {
	TimeAgo int
	RawTime float64
	Message string
}

// MatchState is the full snapshot of the game at one point in time.
// The parser creates it, the calculator enriches it in place and the
// report generator only reads it.
type MatchState struct {
	GameTime      float64
	FormattedTime string
	ActivePlayer  *Player
	Allies        *Team
	Enemies       *Team
	EventLog      []GameEventLog

	// Absolute time of the GameStart event, used by the session layer to
	// key conversations to one match. Zero when the event wasn't seen.
	GameStartTime float64
}

// NewTeam creates a team with the lane states already initialized as secure.
func NewTeam(teamId string) *Team {
	lanes := make(map[string]*LaneState, len(LaneNames))
	for _, name := range LaneNames {
		lanes[name] = &LaneState{Name: name}
	}

	return &Team{
		TeamId: teamId,
		Lanes:  lanes,
	}
}
