package test

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-test/deep"
	"github.com/redraskal/vlr-dissect/dissect"
	"golang.org/x/net/html"
)

const matchFile = "data/match.html"

// withPage provides a wrapper for parsing a page fixture
func withPage(file string, run func(*dissect.Page, *testing.T)) func(*testing.T) {
	return func(t *testing.T) {
		f, err := os.Open(file)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		p, err := dissect.NewPage(f)
		if err != nil {
			t.Fatalf("NewPage(): expected no error, got %v", err)
		}
		run(p, t)
	}
}

// rowFromHTML parses a single <tr> inside a table body.
func rowFromHTML(t *testing.T, tr string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<table><tbody>" + tr + "</tbody></table>"))
	if err != nil {
		t.Fatal(err)
	}
	row := doc.Find("tbody > tr").First()
	if row.Length() == 0 {
		t.Fatal("fixture row not found")
	}
	return row
}

func statCell(both, attack, defense string) string {
	return `<td><span class="mod-both">` + both + `</span><span class="mod-t">` + attack + `</span><span class="mod-ct">` + defense + `</span></td>`
}

func fullRow(name string) string {
	var sb strings.Builder
	sb.WriteString(`<tr><td><div class="text-of">` + name + `</div></td>`)
	sb.WriteString(`<td><img title="Omen"></td>`)
	sb.WriteString(statCell("1.05", "1.20", "0.90"))
	sb.WriteString(statCell("200", "210", "190"))
	for i := 0; i < 4; i++ {
		sb.WriteString(statCell("1", "2", "3"))
	}
	sb.WriteString(statCell("75%", "80%", "70%"))
	sb.WriteString(statCell("150", "160", "140"))
	sb.WriteString(statCell("25%", "20%", "30%"))
	for i := 0; i < 3; i++ {
		sb.WriteString(statCell("0", "1", "-1"))
	}
	sb.WriteString(`</tr>`)
	return sb.String()
}

func TestExtractPlayerStats(t *testing.T) {
	got := dissect.ExtractPlayerStats(rowFromHTML(t, fullRow("\tJohn Doe\t")))
	if got == nil {
		t.Fatal("expected player stats, got nil")
	}
	fieldsCompare := []struct {
		name string
		got  any
		want any
	}{
		{"PlayerName", got.PlayerName, "John Doe"},
		{"Agent", got.Agent, "Omen"},
		{"BothRoundStats.Rating20", got.BothRoundStats.Rating20, dissect.Stat(1.05)},
		{"AttackingRoundStats.Rating20", got.AttackingRoundStats.Rating20, dissect.Stat(1.2)},
		{"DefendingRoundStats.Rating20", got.DefendingRoundStats.Rating20, dissect.Stat(0.9)},
		{"BothRoundStats.AverageCombatScore", got.BothRoundStats.AverageCombatScore, dissect.Stat(200)},
		{"AttackingRoundStats.AverageCombatScore", got.AttackingRoundStats.AverageCombatScore, dissect.Stat(210)},
		{"DefendingRoundStats.AverageCombatScore", got.DefendingRoundStats.AverageCombatScore, dissect.Stat(190)},
		{"BothRoundStats.KillAssistTradeSurvivePercentage", got.BothRoundStats.KillAssistTradeSurvivePercentage, dissect.Stat(75)},
		{"AttackingRoundStats.HeadshotPercentage", got.AttackingRoundStats.HeadshotPercentage, dissect.Stat(20)},
		{"DefendingRoundStats.FirstKillDifferential", got.DefendingRoundStats.FirstKillDifferential, dissect.Stat(-1)},
	}
	for _, field := range fieldsCompare {
		if diffs := deep.Equal(field.got, field.want); diffs != nil {
			t.Errorf("%s mismatch (got, want): %v", field.name, diffs)
		}
	}
}

func TestExtractPlayerStatsShortRow(t *testing.T) {
	row := rowFromHTML(t, `<tr><td><div class="text-of">Ghost</div></td><td></td><td></td></tr>`)
	if got := dissect.ExtractPlayerStats(row); got != nil {
		t.Errorf("expected nil for short row, got %+v", got)
	}
}

func TestExtractPlayerStatsMissingElements(t *testing.T) {
	tr := strings.Repeat("<td></td>", 14)
	got := dissect.ExtractPlayerStats(rowFromHTML(t, "<tr>"+tr+"</tr>"))
	if got == nil {
		t.Fatal("expected player stats, got nil")
	}
	if got.PlayerName != "" || got.Agent != "" {
		t.Errorf("expected empty name and agent, got %q, %q", got.PlayerName, got.Agent)
	}
	for _, side := range []dissect.RoundSide{dissect.Both, dissect.Attack, dissect.Defense} {
		for i, v := range got.Side(side).Values() {
			if !v.IsNaN() {
				t.Errorf("%s %s = %v, want NaN", side, dissect.StatColumns[i], v)
			}
		}
	}
}

func TestPage_Games(t *testing.T) {
	t.Run("match fixture", withPage(matchFile, func(p *dissect.Page, t *testing.T) {
		games := p.Games()
		want := []struct {
			id        string
			mapName   string
			available bool
			players   int
		}{
			{"all", "All Maps", true, 2},
			{"101", "Ascent", true, 2},
			{"102", "Bind", true, 1},
			{"103", "Lotus", false, 0},
		}
		if len(games) != len(want) {
			t.Fatalf("expected %d games, got %d", len(want), len(games))
		}
		for i, w := range want {
			g := games[i]
			if g.GameID != w.id || g.MapName != w.mapName || g.Available != w.available || len(g.Stats) != w.players {
				t.Errorf("game %d = {%s %q %t %d}, want %+v", i, g.GameID, g.MapName, g.Available, len(g.Stats), w)
			}
			// stats are present exactly when the game is available
			if g.Available != (g.Stats != nil) {
				t.Errorf("game %s: available=%t but stats nil=%t", g.GameID, g.Available, g.Stats == nil)
			}
		}
	}))
}

func TestPage_ExtractStats(t *testing.T) {
	t.Run("row order and short rows", withPage(matchFile, func(p *dissect.Page, t *testing.T) {
		stats := p.ExtractStats("101")
		names := make([]string, 0, len(stats))
		for _, s := range stats {
			names = append(names, s.PlayerName)
		}
		if diffs := deep.Equal(names, []string{"TenZ", "John Doe"}); diffs != nil {
			t.Errorf("player names mismatch (got, want): %v", diffs)
		}
		if stats[1].Agent != "Sova" {
			t.Errorf("expected agent Sova, got %q", stats[1].Agent)
		}
	}))
	t.Run("unknown game", withPage(matchFile, func(p *dissect.Page, t *testing.T) {
		stats := p.ExtractStats("does-not-exist")
		if stats == nil || len(stats) != 0 {
			t.Errorf("expected empty list, got %v", stats)
		}
	}))
	t.Run("partial values", withPage(matchFile, func(p *dissect.Page, t *testing.T) {
		stats := p.ExtractStats("102")
		if len(stats) != 1 {
			t.Fatalf("expected 1 player, got %d", len(stats))
		}
		s := stats[0]
		if s.Agent != "" {
			t.Errorf("expected empty agent, got %q", s.Agent)
		}
		if s.BothRoundStats.Rating20 != 1.1 {
			t.Errorf("expected rating 1.1, got %v", s.BothRoundStats.Rating20)
		}
		if !s.AttackingRoundStats.Rating20.IsNaN() || !s.BothRoundStats.AverageCombatScore.IsNaN() {
			t.Error("expected missing and non-numeric values to be NaN")
		}
		if s.AttackingRoundStats.AverageCombatScore != 220 {
			t.Errorf("expected attacking ACS 220, got %v", s.AttackingRoundStats.AverageCombatScore)
		}
		if !s.BothRoundStats.KillAssistTradeSurvivePercentage.IsNaN() {
			t.Errorf("expected bare %% to be NaN, got %v", s.BothRoundStats.KillAssistTradeSurvivePercentage)
		}
	}))
	t.Run("idempotent", withPage(matchFile, func(p *dissect.Page, t *testing.T) {
		first, err := json.Marshal(p.ExtractStats("102"))
		if err != nil {
			t.Fatal(err)
		}
		second, err := json.Marshal(p.ExtractStats("102"))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, second) {
			t.Errorf("expected equal results:\n%s\n%s", first, second)
		}
		if diffs := deep.Equal(p.ExtractStats("101"), p.ExtractStats("101")); diffs != nil {
			t.Errorf("ExtractStats mismatch between calls: %v", diffs)
		}
	}))
}

func TestPage_DarkMode(t *testing.T) {
	t.Run("active", withPage(matchFile, func(p *dissect.Page, t *testing.T) {
		if !p.DarkMode() {
			t.Error("expected dark mode")
		}
	}))
	root, err := html.Parse(strings.NewReader(`<div class="js-dark-switch"></div>`))
	if err != nil {
		t.Fatal(err)
	}
	if dissect.NewPageFromNode(root).DarkMode() {
		t.Error("expected light mode")
	}
}

func TestPage_NoGamesNav(t *testing.T) {
	p, err := dissect.NewPage(strings.NewReader("<html><body><p>nothing here</p></body></html>"))
	if err != nil {
		t.Fatal(err)
	}
	games := p.Games()
	if games == nil || len(games) != 0 {
		t.Errorf("expected empty games, got %v", games)
	}
}

func TestMatch_JSON(t *testing.T) {
	t.Run("match fixture", withPage(matchFile, func(p *dissect.Page, t *testing.T) {
		var buf bytes.Buffer
		if err := p.Match().WriteJSON(&buf); err != nil {
			t.Fatalf("WriteJSON(): expected no error, got %v", err)
		}
		var got dissect.Match
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("could not decode output: %v", err)
		}
		if !got.DarkMode || len(got.Games) != 4 {
			t.Fatalf("unexpected match %+v", got)
		}
		if got.Games[3].Stats != nil {
			t.Error("expected unavailable game stats to be null")
		}
		if !got.Games[2].Stats[0].BothRoundStats.AverageCombatScore.IsNaN() {
			t.Error("expected null to decode as NaN")
		}
		if diffs := deep.Equal(got.Games[1], p.Games()[1]); diffs != nil {
			t.Errorf("decoded game mismatch (got, want): %v", diffs)
		}
	}))
}
