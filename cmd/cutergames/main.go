// Command cutergames runs a tournament between two line-protocol engines
// and applies SPRT early stopping. This is the CLI layer: it settles a
// Settings record from flags and hands it to the internal/tournament core.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kz04px/cutergames/internal/protocol"
	"github.com/kz04px/cutergames/internal/telemetry"
	"github.com/kz04px/cutergames/internal/tournament"
)

const (
	version = "0.1.0"
	about   = "cutergames: a tournament runner for two-player text-protocol game engines."
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("cutergames", flag.ContinueOnError)
	fs.SetOutput(stderr)

	showVersion := fs.Bool("version", false, "print the version and exit")
	showAbout := fs.Bool("about", false, "print a short description and exit")
	verbose := fs.Bool("verbose", false, "enable structured debug logging")
	games := fs.Int("games", 0, "hard cap on the number of games (0 = unbounded)")
	threads := fs.Int("threads", 1, "number of concurrent worker threads")
	updates := fs.Int("updates", 10, "print a report every N completed games")
	fensPath := fs.String("fens", "", "path to a file of opening FENs, one per line")
	movetimeMS := fs.Int("movetime", 1000, "fixed per-move time in milliseconds")
	depth := fs.Int("depth", 0, "fixed search depth (overrides movetime when > 0)")

	var players playerListFlag
	fs.Var(&players, "player", "repeatable: name=... path=... proto=ugi|uai|uci [parameters=\"...\"] [debug]")

	var trinomial sprtFlag
	fs.Var(&trinomial, "trinomial", "[autostop] alpha=.. beta=.. elo0=.. elo1=..")
	var pentanomial sprtFlag
	fs.Var(&pentanomial, "pentanomial", "[autostop] alpha=.. beta=.. elo0=.. elo1=.. (report only)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, version)
		return 0
	}
	if *showAbout {
		fmt.Fprintln(stdout, about)
		return 0
	}

	if len(players.settings) != 2 {
		fmt.Fprintln(stderr, "cutergames: exactly two --player flags are required")
		return 2
	}

	openings := []string{"startpos"}
	if *fensPath != "" {
		loaded, err := loadOpenings(*fensPath)
		if err != nil {
			fmt.Fprintf(stderr, "cutergames: %v\n", err)
			return 2
		}
		openings = loaded
	}

	clock := protocol.Movetime(*movetimeMS)
	if *depth > 0 {
		clock = protocol.Depth(*depth)
	}

	settings := tournament.Settings{
		Players:         players.settings,
		Openings:        openings,
		NumThreads:      *threads,
		MaxGames:        *games,
		UpdateFrequency: *updates,
		SPRTTrinomial:   trinomial.settings,
		SPRTPentanomial: pentanomial.settings,
		Verbose:         *verbose,
		Clock:           clock,
	}

	log := telemetry.NewLogger(stderr, *verbose)
	if _, err := tournament.Run(settings, stdout, log); err != nil {
		fmt.Fprintf(stderr, "cutergames: %v\n", err)
		return 1
	}
	return 0
}

func loadOpenings(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening fens %q: %w", path, err)
	}
	defer f.Close()

	var openings []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		openings = append(openings, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("opening fens %q: %w", path, err)
	}
	if len(openings) == 0 {
		return nil, fmt.Errorf("opening fens %q: no positions found", path)
	}
	return openings, nil
}

// playerListFlag implements flag.Value over repeated --player flags, each
// a space-separated key=value list.
type playerListFlag struct {
	settings []tournament.PlayerSettings
}

func (f *playerListFlag) String() string { return "" }

func (f *playerListFlag) Set(s string) error {
	ps := tournament.PlayerSettings{Protocol: tournament.UGI}
	for _, tok := range splitFields(s) {
		key, val, _ := strings.Cut(tok, "=")
		switch key {
		case "name":
			ps.Name = val
		case "path":
			ps.ExecutablePath = val
		case "proto":
			proto, err := tournament.ParseProtocol(val)
			if err != nil {
				return err
			}
			ps.Protocol = proto
		case "parameters":
			ps.ExtraParameters = strings.Fields(val)
		case "debug":
			ps.Debug = true
		default:
			return fmt.Errorf("--player: unknown key %q", key)
		}
	}
	if ps.Name == "" || ps.ExecutablePath == "" {
		return fmt.Errorf("--player: name and path are required")
	}
	f.settings = append(f.settings, ps)
	return nil
}

// sprtFlag implements flag.Value over the "--trinomial [autostop] alpha=..
// beta=.. elo0=.. elo1=.." shape.
type sprtFlag struct {
	settings *tournament.SPRTSettings
}

func (f *sprtFlag) String() string { return "" }

func (f *sprtFlag) Set(s string) error {
	st := &tournament.SPRTSettings{}
	for _, tok := range splitFields(s) {
		if tok == "autostop" {
			st.Autostop = true
			continue
		}
		key, val, _ := strings.Cut(tok, "=")
		f64, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("sprt: %s: %w", tok, err)
		}
		switch key {
		case "alpha":
			st.Alpha = f64
		case "beta":
			st.Beta = f64
		case "elo0":
			st.Elo0 = f64
		case "elo1":
			st.Elo1 = f64
		default:
			return fmt.Errorf("sprt: unknown key %q", key)
		}
	}
	f.settings = st
	return nil
}

// splitFields splits on whitespace but keeps a quoted parameters="..."
// value intact.
func splitFields(s string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ' ' && !inQuotes:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return fields
}
