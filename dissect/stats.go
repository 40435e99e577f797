package dissect

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Stat is a numeric value scraped from the page. Missing or unreadable
// values are NaN.
type Stat float64

var null = []byte("null")

func (s Stat) IsNaN() bool {
	return math.IsNaN(float64(s))
}

// MarshalJSON writes NaN as null.
func (s Stat) MarshalJSON() ([]byte, error) {
	if s.IsNaN() || math.IsInf(float64(s), 0) {
		return null, nil
	}
	return json.Marshal(float64(s))
}

func (s *Stat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, null) {
		*s = Stat(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*s = Stat(f)
	return nil
}

// String formats whole numbers without decimals and NaN as an empty string.
func (s Stat) String() string {
	if s.IsNaN() {
		return ""
	}
	f := float64(s)
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type RoundStats struct {
	Rating20                         Stat `json:"rating20"`
	AverageCombatScore               Stat `json:"averageCombatScore"`
	Kills                            Stat `json:"kills"`
	Deaths                           Stat `json:"deaths"`
	Assists                          Stat `json:"assists"`
	KillsDeathsDifferential          Stat `json:"killsDeathsDifferential"`
	KillAssistTradeSurvivePercentage Stat `json:"killAssistTradeSurvivePercentage"`
	AverageDamagePerRound            Stat `json:"averageDamagePerRound"`
	HeadshotPercentage               Stat `json:"headshotPercentage"`
	FirstKills                       Stat `json:"firstKills"`
	FirstDeaths                      Stat `json:"firstDeaths"`
	FirstKillDifferential            Stat `json:"firstKillDifferential"`
}

// Values returns the stats in table column order.
func (s RoundStats) Values() []Stat {
	return []Stat{
		s.Rating20,
		s.AverageCombatScore,
		s.Kills,
		s.Deaths,
		s.Assists,
		s.KillsDeathsDifferential,
		s.KillAssistTradeSurvivePercentage,
		s.AverageDamagePerRound,
		s.HeadshotPercentage,
		s.FirstKills,
		s.FirstDeaths,
		s.FirstKillDifferential,
	}
}

// StatColumns are the short column labels used by the site, matching RoundStats.Values.
var StatColumns = []string{"R2.0", "ACS", "K", "D", "A", "+/-", "KAST", "ADR", "HS%", "FK", "FD", "F+/-"}

type PlayerStats struct {
	PlayerName          string     `json:"playerName"`
	Agent               string     `json:"agent"`
	BothRoundStats      RoundStats `json:"bothRoundStats"`
	AttackingRoundStats RoundStats `json:"attackingRoundStats"`
	DefendingRoundStats RoundStats `json:"defendingRoundStats"`
}

// Side returns the RoundStats for the given round side.
func (p PlayerStats) Side(side RoundSide) RoundStats {
	switch side {
	case Attack:
		return p.AttackingRoundStats
	case Defense:
		return p.DefendingRoundStats
	default:
		return p.BothRoundStats
	}
}

type Game struct {
	GameID    string        `json:"gameId"`
	MapName   string        `json:"mapName"`
	Available bool          `json:"available"`
	Stats     []PlayerStats `json:"stats"`
}

// Player returns the stats of the player with the given display name.
func (g Game) Player(name string) (PlayerStats, bool) {
	for _, p := range g.Stats {
		if p.PlayerName == name {
			return p, true
		}
	}
	return PlayerStats{}, false
}

// Match is the render input for a single page.
type Match struct {
	Games    []Game `json:"games"`
	DarkMode bool   `json:"darkMode"`
}

// Players returns every player name found in the available games,
// in order of first appearance.
func (m Match) Players() []string {
	names := make([]string, 0)
	seen := make(map[string]struct{})
	for _, g := range m.Games {
		for _, p := range g.Stats {
			if _, ok := seen[p.PlayerName]; ok || p.PlayerName == "" {
				continue
			}
			seen[p.PlayerName] = struct{}{}
			names = append(names, p.PlayerName)
		}
	}
	return names
}

type RoundSide int

const (
	Both RoundSide = iota
	Attack
	Defense
)

// selector returns the class marker of the side's nested element in a stat cell.
func (s RoundSide) selector() string {
	switch s {
	case Attack:
		return ".mod-t"
	case Defense:
		return ".mod-ct"
	default:
		return ".mod-both"
	}
}

func (s RoundSide) String() string {
	switch s {
	case Attack:
		return "attack"
	case Defense:
		return "defense"
	default:
		return "both"
	}
}

// ParseRoundSide accepts both, attack (t) and defense (ct).
func ParseRoundSide(s string) (RoundSide, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both", "all":
		return Both, nil
	case "attack", "attacking", "t":
		return Attack, nil
	case "defense", "defending", "ct":
		return Defense, nil
	}
	return Both, ErrInvalidSide
}
