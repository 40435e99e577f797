package main

import (
	"strings"

	"github.com/redraskal/vlr-dissect/dissect"
	"github.com/rs/zerolog/log"
)

// printPlayers lists the players that can be selected for --copy.
func printPlayers(m dissect.Match) {
	agents := make(map[string][]string)
	for _, g := range m.Games {
		for _, p := range g.Stats {
			if p.Agent != "" {
				agents[p.PlayerName] = append(agents[p.PlayerName], p.Agent)
			}
		}
	}
	for _, name := range m.Players() {
		log.Error().Msgf("  %-16s %s", name, strings.Join(agents[name], ", "))
	}
}
