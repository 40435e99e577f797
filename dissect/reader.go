package dissect

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

// Number of td cells a player row must have:
// player name, agent, R2.0, ACS, K, D, A, +/-, KAST, ADR, HS%, FK, FD, F+/-
const rowCells = 14

// Page is a parsed match page.
type Page struct {
	doc *goquery.Document
}

// NewPage parses the HTML in r.
func NewPage(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return &Page{doc: doc}, nil
}

// NewPageFromNode wraps an already parsed document.
func NewPageFromNode(root *html.Node) *Page {
	return &Page{doc: goquery.NewDocumentFromNode(root)}
}

// DarkMode reports whether the site's dark mode switch is active.
func (p *Page) DarkMode() bool {
	return p.doc.Find(".js-dark-switch").First().HasClass("mod-active")
}

// Games reads every game tab of the games nav in document order.
// Stats are only extracted for available games.
func (p *Page) Games() []Game {
	games := make([]Game, 0)
	nav := p.doc.Find(".vm-stats-gamesnav").First()
	if nav.Length() == 0 {
		log.Warn().Msg("games nav not found")
		return games
	}
	nav.Find(".vm-stats-gamesnav-item").Each(func(_ int, button *goquery.Selection) {
		gameID, _ := button.Attr("data-game-id")
		disabled, _ := button.Attr("data-disabled")
		g := Game{
			GameID:    gameID,
			MapName:   mapName(button.Text()),
			Available: disabled == "0",
		}
		if g.Available {
			g.Stats = p.ExtractStats(gameID)
		}
		log.Debug().Str("gameId", g.GameID).Str("map", g.MapName).Bool("available", g.Available).Int("players", len(g.Stats)).Send()
		games = append(games, g)
	})
	return games
}

// Match reads the games and dark mode state of the page.
func (p *Page) Match() Match {
	return Match{
		Games:    p.Games(),
		DarkMode: p.DarkMode(),
	}
}

// mapName strips the icon label the nav buttons carry before the map name.
func mapName(text string) string {
	name := strings.TrimSpace(strings.ReplaceAll(text, "\t", ""))
	if strings.Contains(name, "\n\n") {
		name = strings.TrimSpace(strings.Split(name, "\n\n")[1])
	}
	return name
}

// ExtractStats returns the stats of every valid player row in the game's table.
func (p *Page) ExtractStats(gameID string) []PlayerStats {
	stats := make([]PlayerStats, 0)
	game := p.doc.Find(".vm-stats-game").FilterFunction(func(_ int, s *goquery.Selection) bool {
		id, ok := s.Attr("data-game-id")
		return ok && id == gameID
	}).First()
	if game.Length() == 0 {
		log.Warn().Str("gameId", gameID).Msg("game element not found")
		return stats
	}
	game.Find("tbody > tr").Each(func(_ int, row *goquery.Selection) {
		if s := ExtractPlayerStats(row); s != nil {
			stats = append(stats, *s)
		}
	})
	return stats
}

// ExtractPlayerStats reads a single player row. It returns nil if the row
// does not have enough cells.
func ExtractPlayerStats(row *goquery.Selection) *PlayerStats {
	cells := row.Find("td")
	if cells.Length() < rowCells {
		log.Warn().Int("cells", cells.Length()).Msg("not enough cells in row to extract player stats")
		return nil
	}
	cell := func(i int) *goquery.Selection {
		return cells.Eq(i)
	}
	stats := PlayerStats{
		PlayerName:          playerName(cell(0)),
		Agent:               agent(cell(1)),
		BothRoundStats:      roundStats(cells, Both),
		AttackingRoundStats: roundStats(cells, Attack),
		DefendingRoundStats: roundStats(cells, Defense),
	}
	return &stats
}

func playerName(cell *goquery.Selection) string {
	name := cell.Find(".text-of").First()
	if name.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(name.Text(), "\t", ""))
}

func agent(cell *goquery.Selection) string {
	title, _ := cell.Find("img").First().Attr("title")
	return title
}

func roundStats(cells *goquery.Selection, side RoundSide) RoundStats {
	sel := side.selector()
	text := func(i int) string {
		return cells.Eq(i).Find(sel).First().Text()
	}
	return RoundStats{
		Rating20:                         parseFloat(text(2)),
		AverageCombatScore:               parseInt(text(3)),
		Kills:                            parseInt(text(4)),
		Deaths:                           parseInt(text(5)),
		Assists:                          parseInt(text(6)),
		KillsDeathsDifferential:          parseInt(text(7)),
		KillAssistTradeSurvivePercentage: parsePercentage(text(8)),
		AverageDamagePerRound:            parseInt(text(9)),
		HeadshotPercentage:               parsePercentage(text(10)),
		FirstKills:                       parseInt(text(11)),
		FirstDeaths:                      parseInt(text(12)),
		FirstKillDifferential:            parseInt(text(13)),
	}
}
