package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/redraskal/vlr-dissect/dissect"
	"github.com/redraskal/vlr-dissect/prefs"
	"github.com/redraskal/vlr-dissect/source"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var Version = "dev"

func main() {
	setup()
	input := viper.GetString("input")
	m, err := readMatch(context.Background(), input)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	if len(m.Games) == 0 {
		log.Warn().Msg("No games found on page.")
	}
	store, err := openPreferences()
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	if err := updatePreferences(store); err != nil {
		log.Fatal().Err(err).Send()
	}
	export := viper.GetString("export")
	if viper.GetBool("copy") {
		if err := copyStats(os.Stdout, m, store); err != nil {
			log.Fatal().Err(err).Send()
		}
		return
	}
	// Prints match info to console
	if export == "" {
		m.Head()
		return
	}
	if err := exportMatch(m, export); err != nil {
		log.Fatal().Err(err).Send()
	}
	log.Info().Msg("Output saved.")
}

func setup() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not load .env")
	}
	pflag.StringP("export", "x", "", "specifies the output path (*.json, *.xlsx, stdout)")
	pflag.BoolP("copy", "c", false, "prints the selected player's stats as tab-separated rows")
	pflag.StringP("side", "s", "both", "round side for --copy (both, attack, defense)")
	pflag.String("player", "", "selects the player used by --copy (saved)")
	pflag.Bool("header", true, "includes a header row in --copy output (saved)")
	pflag.String("prefs", defaultPrefsDir(), "directory holding saved preferences")
	pflag.String("passphrase", "", "encrypts saved preferences with this passphrase")
	pflag.String("browser", "", "devtools url of a running Chrome used to render pages")
	pflag.Float64("rate", 1, "maximum page fetches per second")
	pflag.String("snapshot", "", "saves a zstd compressed copy of the page (*.zst)")
	pflag.BoolP("debug", "d", false, "sets log level to debug")
	pflag.BoolP("version", "v", false, "prints the version")
	pflag.Parse()
	viper.SetEnvPrefix("vlr")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		log.Fatal().Err(err).Send()
	}
	if viper.GetBool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if viper.GetBool("version") {
		log.Info().Msgf("vlr-dissect version: %s", Version)
		log.Info().Msg("https://github.com/redraskal/vlr-dissect")
		os.Exit(0)
	}
	extra := len(pflag.Args())
	if extra < 1 {
		log.Fatal().Msg("Specify a vlr.gg match url or a saved page (*.html, *.zst)")
	}
	viper.Set("input", pflag.Args()[0])
	export := viper.GetString("export")
	if len(export) > 0 && !(strings.HasSuffix(export, ".json") || strings.HasSuffix(export, ".xlsx") || export == "stdout") {
		log.Fatal().Msg("Specify a valid output path (*.json, *.xlsx, stdout)")
	}
	if export == "stdout" || viper.GetBool("copy") {
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}
}

func defaultPrefsDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".vlr-dissect"
	}
	return filepath.Join(dir, "vlr-dissect")
}

func readMatch(ctx context.Context, input string) (m dissect.Match, err error) {
	r, err := source.Open(ctx, input, source.Options{
		BrowserURL:        viper.GetString("browser"),
		RequestsPerSecond: viper.GetFloat64("rate"),
	})
	if err != nil {
		return
	}
	defer r.Close()
	page, err := io.ReadAll(r)
	if err != nil {
		return
	}
	if snapshot := viper.GetString("snapshot"); snapshot != "" {
		if err = source.SaveSnapshot(snapshot, page); err != nil {
			return
		}
		log.Info().Msgf("Snapshot saved to %s.", snapshot)
	}
	p, err := dissect.NewPage(bytes.NewReader(page))
	if err != nil {
		return
	}
	return p.Match(), nil
}

func openPreferences() (*prefs.Store, error) {
	return prefs.NewDiskStore(viper.GetString("prefs"), viper.GetString("passphrase"))
}

// updatePreferences saves the preferences given on the command line.
func updatePreferences(store *prefs.Store) error {
	if viper.IsSet("player") {
		if player := viper.GetString("player"); player != "" {
			if err := store.SetSelectedPlayer(player); err != nil {
				return err
			}
		} else if err := store.ClearSelectedPlayer(); err != nil {
			return err
		}
	}
	if viper.IsSet("header") {
		if err := store.SetEnableHeader(viper.GetBool("header")); err != nil {
			return err
		}
	}
	return nil
}

func copyStats(w io.Writer, m dissect.Match, store *prefs.Store) error {
	side, err := dissect.ParseRoundSide(viper.GetString("side"))
	if err != nil {
		return err
	}
	p := store.Get()
	player := ""
	if p.SelectedPlayer != nil {
		player = *p.SelectedPlayer
	}
	if player == "" {
		log.Error().Msg("Select a player with --player:")
		printPlayers(m)
		return dissect.ErrNoPlayer
	}
	return dissect.WriteCopy(w, m.Games, dissect.CopyOptions{
		Player: player,
		Side:   side,
		Header: p.EnableHeader,
	})
}

func exportMatch(m dissect.Match, export string) error {
	var out io.Writer = os.Stdout
	if export != "stdout" {
		file, err := os.OpenFile(export, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}
	if strings.HasSuffix(export, ".xlsx") {
		return m.WriteExcel(out)
	}
	return m.WriteJSON(out)
}
