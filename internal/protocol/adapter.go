package protocol

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/kz04px/cutergames/internal/rules"
)

// dialect identifies which of the three wire protocols an Adapter speaks.
// UGI and UAI share the same framing token-for-token apart from the
// handshake word; UCI reuses it too.
type dialect string

const (
	dialectUGI dialect = "ugi"
	dialectUAI dialect = "uai"
	dialectUCI dialect = "uci"
)

// Adapter drives one engine subprocess through a line-protocol dialect. It
// owns the child's stdin/stdout pipes exclusively; Close sends the
// shutdown sequence and reaps it.
//
// When oracle is non-nil the adapter also maintains a local rules.Position
// so IsGameOver, IsLegal, SideToMove, and QueryResult are answered locally
// instead of round-tripping to the engine — this is how UAI always
// operates and how UCI operates when a rules oracle is wired in.
type Adapter struct {
	dial   dialect
	oracle rules.GameRules
	pos    rules.Position

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
	trace  TraceFunc

	clock ClockType

	mu sync.Mutex
}

// NewUGI starts an engine speaking the UGI dialect. Terminal, turn, and
// result queries go over the wire; no local rules oracle is consulted, and
// IsLegal accepts every move.
func NewUGI(path string, args []string, trace TraceFunc) (*Adapter, error) {
	return newAdapter(dialectUGI, path, args, nil, trace)
}

// NewUAI starts an engine speaking the UAI dialect, backed by a local
// rules oracle: the adapter maintains its own position instead of
// round-tripping legality and terminal checks to the engine. oracle must
// not be nil.
func NewUAI(path string, args []string, oracle rules.GameRules, trace TraceFunc) (*Adapter, error) {
	if oracle == nil {
		return nil, fmt.Errorf("protocol: uai adapter requires a rules oracle")
	}
	return newAdapter(dialectUAI, path, args, oracle, trace)
}

// NewUCI starts an engine speaking the UCI dialect. oracle is optional:
// when nil the adapter behaves like UGI (wire queries for terminal/turn/
// result, every move accepted as legal), since no chess rules oracle ships
// with this module; when provided it behaves exactly like UAI.
func NewUCI(path string, args []string, oracle rules.GameRules, trace TraceFunc) (*Adapter, error) {
	return newAdapter(dialectUCI, path, args, oracle, trace)
}

func newAdapter(d dialect, path string, args []string, oracle rules.GameRules, trace TraceFunc) (*Adapter, error) {
	cmd := exec.Command(path, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("protocol: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("protocol: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("protocol: start engine %s: %w", path, err)
	}

	return &Adapter{
		dial:   d,
		oracle: oracle,
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewReader(stdout),
		trace:  trace,
	}, nil
}

func (a *Adapter) send(line string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.trace != nil {
		a.trace("send", line)
	}
	_, err := io.WriteString(a.stdin, line)
	return err
}

// readLine reads one line, keeping its trailing newline: wait and
// waitPredicate compare against full lines including the newline, never
// trimmed — a future edit that adds a TrimSpace here would silently break
// every exact-match wait loop below.
func (a *Adapter) readLine() (string, error) {
	line, err := a.stdout.ReadString('\n')
	if line != "" && a.trace != nil {
		a.trace("recv", line)
	}
	return line, err
}

// wait consumes lines until one equals expected verbatim or EOF.
func (a *Adapter) wait(expected string) error {
	for {
		line, err := a.readLine()
		if line == expected {
			return nil
		}
		if err != nil {
			return fmt.Errorf("protocol: waiting for %q: %w", strings.TrimSpace(expected), err)
		}
	}
}

// waitPredicate consumes lines until f(line) is true, returning that line.
func (a *Adapter) waitPredicate(f func(string) bool) (string, error) {
	for {
		line, err := a.readLine()
		if f(line) {
			return line, nil
		}
		if err != nil {
			return "", err
		}
	}
}

func (a *Adapter) handshakeToken() string { return string(a.dial) }

func (a *Adapter) Init() error {
	tok := a.handshakeToken()
	if err := a.send(tok + "\n"); err != nil {
		return err
	}
	return a.wait(tok + "ok\n")
}

func (a *Adapter) ReadySync() error {
	if err := a.send("isready\n"); err != nil {
		return err
	}
	return a.wait("readyok\n")
}

func (a *Adapter) SetPosition(fen string) error {
	cmd := "position startpos\n"
	if fen != "" && fen != "startpos" {
		cmd = fmt.Sprintf("position fen %s\n", fen)
	}
	if err := a.send(cmd); err != nil {
		return err
	}
	if a.oracle != nil {
		pos, err := a.oracle.FromFEN(fen)
		if err != nil {
			return fmt.Errorf("protocol: local position from fen %q: %w", fen, err)
		}
		a.pos = pos
	}
	return nil
}

// RequestMove sends the "go" command appropriate to the adapter's current
// clock policy and reads until a bestmove line, extracting the move token
// as the substring between byte 9 and the trailing newline of a
// "bestmove <mv>\n" line.
func (a *Adapter) RequestMove() (string, bool, error) {
	var goCmd string
	switch a.clock.Kind {
	case ClockDepth:
		goCmd = fmt.Sprintf("go depth %d\n", a.clock.Depth)
	case ClockTime:
		goCmd = fmt.Sprintf("go movetime %d\n", a.clock.RemainingMS)
	default:
		goCmd = fmt.Sprintf("go movetime %d\n", a.clock.MovetimeMS)
	}
	if err := a.send(goCmd); err != nil {
		return "", false, err
	}

	line, err := a.waitPredicate(func(l string) bool { return strings.HasPrefix(l, "bestmove ") })
	if line == "" {
		return "", false, err
	}
	if len(line) < 9 {
		return "", false, fmt.Errorf("protocol: malformed bestmove line %q", line)
	}
	return line[9 : len(line)-1], true, nil
}

func (a *Adapter) ApplyMove(move string) error {
	if err := a.send(fmt.Sprintf("moves %s\n", move)); err != nil {
		return err
	}
	if a.pos != nil {
		if err := a.pos.MakeMove(rules.Move(move)); err != nil {
			return fmt.Errorf("protocol: local apply move %q: %w", move, err)
		}
	}
	return nil
}

// IsGameOver reports whether the position has ended. With no rules oracle
// attached, it falls back to the "query gameover" wire query, which every
// dialect supports.
func (a *Adapter) IsGameOver() (bool, error) {
	if a.pos != nil {
		return a.pos.IsTerminal(), nil
	}
	return a.queryBool("gameover")
}

// IsLegal reports whether move is legal in the current position. Dialects
// with a local rules oracle answer directly; dialects without one (plain
// UGI) have no wire query for legality, so the adapter trusts the
// engine's own move unconditionally. This is an explicit, documented
// simplification (see DESIGN.md): only the judge slot in a duel needs
// IsLegal, and in practice the judge is configured with a rules oracle
// (UAI, or UCI-with-oracle) whenever the game needs real adjudication.
func (a *Adapter) IsLegal(move string) (bool, error) {
	if a.pos != nil {
		return a.pos.IsLegal(rules.Move(move)), nil
	}
	return true, nil
}

func (a *Adapter) SideToMove() (int, error) {
	if a.pos != nil {
		return a.pos.SideToMove(), nil
	}
	isP1Turn, err := a.queryBool("p1turn")
	if err != nil {
		return 0, err
	}
	if isP1Turn {
		return 0, nil
	}
	return 1, nil
}

func (a *Adapter) QueryResult() (Outcome, error) {
	if a.pos != nil {
		return resultToOutcome(a.pos.Result()), nil
	}
	if err := a.send("query result\n"); err != nil {
		return OutcomeNone, err
	}
	line, err := a.waitPredicate(func(l string) bool { return strings.HasPrefix(l, "response ") })
	if err != nil {
		return OutcomeNone, err
	}
	switch strings.TrimSpace(strings.TrimPrefix(line, "response ")) {
	case "p1win":
		return OutcomeP1Win, nil
	case "p2win":
		return OutcomeP2Win, nil
	case "draw":
		return OutcomeDraw, nil
	default:
		return OutcomeNone, nil
	}
}

func (a *Adapter) queryBool(what string) (bool, error) {
	if err := a.send(fmt.Sprintf("query %s\n", what)); err != nil {
		return false, err
	}
	line, err := a.waitPredicate(func(l string) bool { return strings.HasPrefix(l, "response ") })
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(strings.TrimPrefix(line, "response ")) == "true", nil
}

func (a *Adapter) ClockMut() *ClockType { return &a.clock }

// Close sends the documented shutdown sequence and waits for the child to
// exit. Best-effort: a hanging engine blocks the caller — an accepted
// limitation rather than something this adapter works around.
func (a *Adapter) Close() error {
	_ = a.send("stop\n")
	_ = a.send("quit\n")
	_ = a.stdin.Close()
	return a.cmd.Wait()
}

func resultToOutcome(r rules.Result) Outcome {
	switch r {
	case rules.P1Win:
		return OutcomeP1Win
	case rules.P2Win:
		return OutcomeP2Win
	case rules.Draw:
		return OutcomeDraw
	default:
		return OutcomeNone
	}
}
