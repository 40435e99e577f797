package dissect

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// Head logs a short summary of each game on the page.
func (m Match) Head() {
	log.Info().Msgf("Dark mode:        %t", m.DarkMode)
	log.Info().Msgf("Games:            %d", len(m.Games))
	for _, g := range m.Games {
		if !g.Available {
			log.Info().Msgf("%-17s [%s] not available", g.MapName, g.GameID)
			continue
		}
		log.Info().Msgf("%-17s [%s] %d players", g.MapName, g.GameID, len(g.Stats))
	}
}

func (m Match) WriteJSON(out io.Writer) error {
	encoder := json.NewEncoder(out)
	return encoder.Encode(m)
}

// WriteExcel writes an overview sheet plus one sheet per available game
// holding the both/attack/defense tables.
func (m Match) WriteExcel(out io.Writer) error {
	if len(m.Games) == 0 {
		return ErrNoGames
	}
	f := excelize.NewFile()
	defer f.Close()

	first, err := f.NewSheet("Match")
	if err != nil {
		return err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	c := newExcelCompass(f, "Match")
	c.Heading("Games")
	c.Down(1).Home().Str("Game ID")
	c.Right(1).Str("Map")
	c.Right(1).Str("Available")
	c.Right(1).Str("Players")
	for _, g := range m.Games {
		c.Down(1).Home().Str(g.GameID)
		c.Right(1).Str(g.MapName)
		c.Right(1).Bool(g.Available)
		c.Right(1).Int(len(g.Stats))
	}

	for i, g := range m.Games {
		if !g.Available {
			continue
		}
		sheet := fmt.Sprintf("%d %s", i+1, g.MapName)
		if len(sheet) > 31 {
			sheet = sheet[:31]
		}
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		c.Sheet(sheet)
		for _, side := range []RoundSide{Both, Attack, Defense} {
			c.Home().Heading(fmt.Sprintf("Statistics (%s)", side))
			c.Down(1).Str("Player")
			c.Right(1).Str("Agent")
			for _, column := range StatColumns {
				c.Right(1).Str(column)
			}
			for _, p := range g.Stats {
				c.Down(1).Home().Str(p.PlayerName)
				c.Right(1).Str(p.Agent)
				for _, v := range p.Side(side).Values() {
					c.Right(1).Stat(v)
				}
				log.Debug().Str("side", side.String()).Interface("player_stats", p.Side(side)).Str("player", p.PlayerName).Send()
			}
			c.Down(2)
		}
	}

	f.SetActiveSheet(first)

	return f.Write(out)
}
