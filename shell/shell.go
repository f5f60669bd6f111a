// Package shell is a small interactive console for driving games locally.
// It is a development surface, not a transport layer.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/lithammer/shortuuid/v4"

	"github.com/domino14/aracataca/board"
	"github.com/domino14/aracataca/game"
	"github.com/domino14/aracataca/tiles"
)

type Shell struct {
	mgr *game.Manager

	// local identities, nickname -> player id
	users map[string]string
	nick  string
	gid   string
}

func New(mgr *game.Manager) *Shell {
	return &Shell{mgr: mgr, users: map[string]string{}}
}

const usage = `commands:
user <nick> - act as this player (created on first use)
new <name> [password] - create a game
join <gameid> [password] - join a game
start - start the current game
place <row> <col> <h|v> <word> - play a word from the given square
exchange <letters> - swap rack stones for fresh ones
rack - show your rack
board - show the board
state - show scores and whose turn it is
games - list live games
leave / end / quit`

func (s *Shell) Run() error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:      "aracataca> ",
		EOFPrompt:   "exit",
		HistoryFile: "/tmp/readline-aracataca.tmp",
	})
	if err != nil {
		return err
	}
	defer l.Close()

	ctx := context.Background()
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			break
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			break
		}
		if out, err := s.dispatch(ctx, fields[0], fields[1:]); err != nil {
			fmt.Fprintln(l.Stderr(), "error:", err)
		} else if out != "" {
			fmt.Fprintln(l.Stdout(), out)
		}
	}
	return nil
}

func (s *Shell) playerID() (string, error) {
	if s.nick == "" {
		return "", errors.New("pick a player first: user <nick>")
	}
	return s.users[s.nick], nil
}

func (s *Shell) dispatch(ctx context.Context, cmd string, args []string) (string, error) {
	switch cmd {
	case "help":
		return usage, nil
	case "user":
		if len(args) != 1 {
			return "", errors.New("usage: user <nick>")
		}
		if _, ok := s.users[args[0]]; !ok {
			s.users[args[0]] = shortuuid.New()
		}
		s.nick = args[0]
		return "acting as " + s.nick, nil
	case "new":
		return s.newGame(ctx, args)
	case "join":
		return s.join(ctx, args)
	case "start":
		pid, err := s.playerID()
		if err != nil {
			return "", err
		}
		snap, err := s.mgr.StartGame(ctx, s.gid, pid)
		if err != nil {
			return "", err
		}
		return "game started; first to act: " + snap.Current, nil
	case "place":
		return s.place(ctx, args)
	case "exchange":
		return s.exchange(ctx, args)
	case "rack":
		pid, err := s.playerID()
		if err != nil {
			return "", err
		}
		rack, err := s.mgr.PlayerRack(ctx, s.gid, pid)
		if err != nil {
			return "", err
		}
		return rackString(rack), nil
	case "board":
		snap, err := s.mgr.GameState(ctx, s.gid)
		if err != nil {
			return "", err
		}
		return boardText(snap)
	case "state":
		snap, err := s.mgr.GameState(ctx, s.gid)
		if err != nil {
			return "", err
		}
		return stateText(snap), nil
	case "games":
		return strings.Join(s.mgr.GameIDs(), "\n"), nil
	case "leave":
		pid, err := s.playerID()
		if err != nil {
			return "", err
		}
		if err := s.mgr.LeaveGame(ctx, s.gid, pid); err != nil {
			return "", err
		}
		s.gid = ""
		return "left game", nil
	case "end":
		pid, err := s.playerID()
		if err != nil {
			return "", err
		}
		if err := s.mgr.EndGame(ctx, s.gid, pid); err != nil {
			return "", err
		}
		s.gid = ""
		return "game over", nil
	}
	return "", fmt.Errorf("unknown command %q; try help", cmd)
}

func (s *Shell) newGame(ctx context.Context, args []string) (string, error) {
	if len(args) < 1 {
		return "", errors.New("usage: new <name> [password]")
	}
	pid, err := s.playerID()
	if err != nil {
		return "", err
	}
	password := ""
	if len(args) > 1 {
		password = args[1]
	}
	snap, err := s.mgr.CreateGame(ctx, game.PlayerInfo{ID: pid, Nickname: s.nick},
		args[0], password)
	if err != nil {
		return "", err
	}
	s.gid = snap.ID
	return "created game " + snap.ID, nil
}

func (s *Shell) join(ctx context.Context, args []string) (string, error) {
	if len(args) < 1 {
		return "", errors.New("usage: join <gameid> [password]")
	}
	pid, err := s.playerID()
	if err != nil {
		return "", err
	}
	password := ""
	if len(args) > 1 {
		password = args[1]
	}
	_, err = s.mgr.JoinGame(ctx, args[0], game.PlayerInfo{ID: pid, Nickname: s.nick}, password)
	if err != nil {
		return "", err
	}
	s.gid = args[0]
	return "joined " + args[0], nil
}

// place translates "row col dir word" into stone placements, playing
// through any stones already on the board.
func (s *Shell) place(ctx context.Context, args []string) (string, error) {
	if len(args) != 4 {
		return "", errors.New("usage: place <row> <col> <h|v> <word>")
	}
	pid, err := s.playerID()
	if err != nil {
		return "", err
	}
	row, err := strconv.Atoi(args[0])
	if err != nil {
		return "", err
	}
	col, err := strconv.Atoi(args[1])
	if err != nil {
		return "", err
	}
	dir := board.Pos{Row: 0, Col: 1}
	if strings.EqualFold(args[2], "v") {
		dir = board.Pos{Row: 1, Col: 0}
	}
	rack, err := s.mgr.PlayerRack(ctx, s.gid, pid)
	if err != nil {
		return "", err
	}
	snap, err := s.mgr.GameState(ctx, s.gid)
	if err != nil {
		return "", err
	}
	onBoard := map[board.Pos]rune{}
	for _, sb := range snap.Board {
		onBoard[sb.Pos] = sb.Stone.Letter
	}

	placements := []game.Placement{}
	pos := board.Pos{Row: row, Col: col}
	for _, r := range strings.ToUpper(args[3]) {
		if l, ok := onBoard[pos]; ok {
			if l != r {
				return "", fmt.Errorf("square %v already holds %c", pos, l)
			}
		} else {
			st, rest, err := takeStone(rack, r)
			if err != nil {
				return "", err
			}
			rack = rest
			pl := game.Placement{StoneID: st.ID, Pos: pos}
			if st.IsBlank() {
				pl.BlankAs = r
			}
			placements = append(placements, pl)
		}
		pos = board.Pos{Row: pos.Row + dir.Row, Col: pos.Col + dir.Col}
	}
	res, err := s.mgr.PlaceWord(ctx, s.gid, pid, placements)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("played %v for %d points (total %d)",
		res.Words, res.Points, res.TotalScore), nil
}

func takeStone(rack []*tiles.Stone, letter rune) (*tiles.Stone, []*tiles.Stone, error) {
	// Prefer a real letter; fall back to a blank.
	for pass := 0; pass < 2; pass++ {
		for i, st := range rack {
			if (pass == 0 && st.Letter == letter) || (pass == 1 && st.IsBlank()) {
				return st, append(rack[:i:i], rack[i+1:]...), nil
			}
		}
	}
	return nil, nil, fmt.Errorf("no stone for letter %c on rack", letter)
}

func (s *Shell) exchange(ctx context.Context, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("usage: exchange <letters>")
	}
	pid, err := s.playerID()
	if err != nil {
		return "", err
	}
	rack, err := s.mgr.PlayerRack(ctx, s.gid, pid)
	if err != nil {
		return "", err
	}
	ids := []int{}
	for _, r := range strings.ToUpper(args[0]) {
		st, rest, err := takeStone(rack, r)
		if err != nil {
			return "", err
		}
		rack = rest
		ids = append(ids, st.ID)
	}
	newRack, err := s.mgr.ExchangeStones(ctx, s.gid, pid, ids)
	if err != nil {
		return "", err
	}
	return rackString(newRack), nil
}

func rackString(rack []*tiles.Stone) string {
	var sb strings.Builder
	for _, st := range rack {
		sb.WriteString(st.String())
	}
	return sb.String()
}

func boardText(snap *game.Snapshot) (string, error) {
	g, err := game.FromSnapshot(snap, nil)
	if err != nil {
		return "", err
	}
	return g.Board().ToDisplayText(), nil
}

func stateText(snap *game.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "game %s (%s) state=%s\n", snap.ID, snap.Name, snap.State)
	for _, p := range snap.Players {
		marker := "  "
		if p.ID == snap.Current {
			marker = "-> "
		}
		fmt.Fprintf(&sb, "%s%s: %d\n", marker, p.Nickname, p.Points)
	}
	fmt.Fprintf(&sb, "stones in bag: %d", len(snap.Bag))
	return sb.String()
}
