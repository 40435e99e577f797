package dissect

import (
	"io"
	"strings"
)

// CopyOptions controls the tab-separated block produced for pasting a
// player's stats into a spreadsheet.
type CopyOptions struct {
	Player string
	Side   RoundSide
	Header bool
}

// CopyRows returns one row per available game the player appears in:
// map, agent, then the stats of the chosen side. NaN values are left blank.
func CopyRows(games []Game, opts CopyOptions) ([][]string, error) {
	if opts.Player == "" {
		return nil, ErrNoPlayer
	}
	rows := make([][]string, 0)
	if opts.Header {
		rows = append(rows, append([]string{"Map", "Agent"}, StatColumns...))
	}
	found := false
	for _, g := range games {
		if !g.Available {
			continue
		}
		p, ok := g.Player(opts.Player)
		if !ok {
			continue
		}
		found = true
		row := []string{g.MapName, p.Agent}
		for _, v := range p.Side(opts.Side).Values() {
			row = append(row, v.String())
		}
		rows = append(rows, row)
	}
	if !found {
		return nil, ErrPlayerNotFound
	}
	return rows, nil
}

// WriteCopy writes the rows from CopyRows as tab-separated lines.
func WriteCopy(w io.Writer, games []Game, opts CopyOptions) error {
	rows, err := CopyRows(games, opts)
	if err != nil {
		return err
	}
	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(strings.Join(row, "\t"))
		sb.WriteString("\n")
	}
	_, err = io.WriteString(w, sb.String())
	return err
}
