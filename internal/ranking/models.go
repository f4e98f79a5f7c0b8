package ranking

import "time"

// Team is one row of a rankings snapshot. Component fields (sao_*, sad_*,
// sos_*) are computed upstream by the ranking pipeline; rankwatch only reads
// and verifies them.
type Team struct {
	TeamID   string `json:"team_id"`
	Name     string `json:"team"`
	Club     string `json:"club,omitempty"`
	State    string `json:"state"` // two-letter code, "" if unknown
	Gender   string `json:"gender,omitempty"`
	AgeGroup string `json:"age_group,omitempty"`

	PowerScore    float64 `json:"powerscore"`
	PowerScoreAdj float64 `json:"powerscore_adj,omitempty"`
	RankNational  int     `json:"rank_national"`
	RankState     int     `json:"rank_state"`

	GPUsed int     `json:"gp_used"`
	GPMult float64 `json:"gp_mult,omitempty"`

	SAORaw    float64 `json:"sao_raw,omitempty"`
	SAOShrunk float64 `json:"sao_shrunk,omitempty"`
	SAONorm   float64 `json:"sao_norm"`
	SADRaw    float64 `json:"sad_raw,omitempty"`
	SADShrunk float64 `json:"sad_shrunk,omitempty"`
	SADNorm   float64 `json:"sad_norm"`

	SOSComponent float64 `json:"sos_component,omitempty"`
	SOSNorm      float64 `json:"sos_norm"`
}

// Game is one row of a normalized games snapshot, one team's view of one game.
type Game struct {
	TeamID     string    `json:"team_id_master"`
	Team       string    `json:"team"`
	Club       string    `json:"club,omitempty"`
	Opponent   string    `json:"opponent"`
	OpponentID string    `json:"opponent_id_master"` // "" when the provider never linked the opponent
	Date       time.Time `json:"date"`
	GF         float64   `json:"gf"`
	GA         float64   `json:"ga"`
}

// GD is the goal differential for the game.
func (g Game) GD() float64 { return g.GF - g.GA }

// Result is "W", "L" or "T".
func (g Game) Result() string {
	switch {
	case g.GF > g.GA:
		return "W"
	case g.GF < g.GA:
		return "L"
	default:
		return "T"
	}
}

// MasterTeam is one row of the master team index.
type MasterTeam struct {
	TeamID         string `json:"team_id"`
	ProviderTeamID string `json:"provider_team_id"`
	TeamName       string `json:"team_name"`
	ClubName       string `json:"club_name"`
	State          string `json:"state"`
	Gender         string `json:"gender"`
	AgeGroup       string `json:"age_group"`
	Provider       string `json:"provider"`
}
