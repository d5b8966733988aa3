package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/moffa90/go-wt2003s/catalog"
	"github.com/moffa90/go-wt2003s/internal/config"
	"github.com/moffa90/go-wt2003s/player"
	"github.com/moffa90/go-wt2003s/protocol"
	"github.com/moffa90/go-wt2003s/transport"
)

var errQuit = errors.New("quit")

// command is one CLI verb.
type command struct {
	usage     string
	args      int
	needsChip bool
	run       func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"play-name": {"play-name N      play file NNNN.mp3", 1, true, cmdPlayName},
	"play":      {"play N           play track at storage index N", 1, true, cmdPlay},
	"stop":      {"stop             stop playback", 0, true, simple((*player.Player).Stop)},
	"next":      {"next             next track", 0, true, simple((*player.Player).Next)},
	"prev":      {"prev             previous track", 0, true, simple((*player.Player).Previous)},
	"mode":      {"mode M           play mode 0-3 or single|single-loop|all-loop|random", 1, true, cmdMode},
	"volume":    {"volume V         volume 0-30", 1, true, cmdVolume},
	"count":     {"count            query the number of tracks", 0, true, cmdCount},
	"catalog":   {"catalog DIR      list NNNN.mp3 files in DIR", 1, false, cmdCatalog},
	"ports":     {"ports            list serial ports", 0, false, cmdPorts},
	"config":    {"config           print the effective configuration", 0, false, cmdConfig},
}

// app carries what commands need.
type app struct {
	player *player.Player
	cfg    *config.Config
	out    io.Writer

	// connect binds the serial transport on first use.
	connect   func() error
	listPorts func() ([]string, error)
}

// execute runs a single command line.
func (a *app) execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("no command given")
	}

	name := strings.ToLower(args[0])
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", args[0])
	}
	if len(args)-1 != cmd.args {
		return fmt.Errorf("usage: %s", cmd.usage)
	}

	if cmd.needsChip && !a.player.Bound() {
		if a.connect == nil {
			return player.ErrNotInitialized
		}
		if err := a.connect(); err != nil {
			return err
		}
	}

	return cmd.run(ctx, a, args[1:])
}

// shell executes commands read line by line from in until EOF or quit.
// Command errors are printed and do not end the session.
func (a *app) shell(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(a.out, "> ")
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		fields := strings.Fields(scanner.Text())
		switch {
		case len(fields) == 0:
		case fields[0] == "quit" || fields[0] == "exit":
			return nil
		case fields[0] == "help":
			printUsage(a.out)
		case fields[0] == "shell":
			fmt.Fprintln(a.out, "error: already in shell")
		default:
			if err := a.execute(ctx, fields); err != nil {
				fmt.Fprintf(a.out, "error: %v\n", err)
			}
		}
		fmt.Fprint(a.out, "> ")
	}
	return scanner.Err()
}

func printUsage(w io.Writer) {
	names := []string{"play-name", "play", "stop", "next", "prev", "mode", "volume", "count", "catalog", "ports", "config"}
	fmt.Fprintln(w, "commands:")
	for _, n := range names {
		fmt.Fprintf(w, "  %s\n", commands[n].usage)
	}
	fmt.Fprintln(w, "  shell            read commands from stdin")
}

func simple(fn func(*player.Player, context.Context) error) func(context.Context, *app, []string) error {
	return func(ctx context.Context, a *app, _ []string) error {
		return fn(a.player, ctx)
	}
}

func parseUint16(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid track %q: must be 0-65535", s)
	}
	return uint16(n), nil
}

func cmdPlayName(ctx context.Context, a *app, args []string) error {
	n, err := parseUint16(args[0])
	if err != nil {
		return err
	}
	if err := a.player.PlayTrackByName(ctx, n); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "playing %s\n", catalog.TrackFileName(n))
	return nil
}

func cmdPlay(ctx context.Context, a *app, args []string) error {
	n, err := parseUint16(args[0])
	if err != nil {
		return err
	}
	if err := a.player.PlayTrack(ctx, n); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "playing index %d\n", n)
	return nil
}

func cmdMode(ctx context.Context, a *app, args []string) error {
	mode, err := protocol.ParsePlayMode(args[0])
	if err != nil {
		return err
	}
	return a.player.SetPlayMode(ctx, mode)
}

func cmdVolume(ctx context.Context, a *app, args []string) error {
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid volume %q", args[0])
	}
	return a.player.SetVolume(ctx, v)
}

func cmdCount(ctx context.Context, a *app, _ []string) error {
	n, err := a.player.QueryTrackCount(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, n)
	return nil
}

func cmdCatalog(_ context.Context, a *app, args []string) error {
	cat, err := catalog.Scan(args[0])
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TRACK\tFILE\tRATE\tDURATION\tNOTE")
	for _, t := range cat.Tracks {
		note := ""
		if t.Err != nil {
			note = t.Err.Error()
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", t.Number, t.Name, t.SampleRate, t.Duration.Round(time.Second), note)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%d tracks, total %s\n", len(cat.Tracks), cat.TotalDuration().Round(time.Second))
	if missing := cat.Missing(); len(missing) > 0 {
		fmt.Fprintf(a.out, "gaps: %v\n", missing)
	}
	for _, name := range cat.Skipped {
		fmt.Fprintf(a.out, "skipped: %s\n", name)
	}
	return nil
}

func cmdPorts(_ context.Context, a *app, _ []string) error {
	list := a.listPorts
	if list == nil {
		list = transport.ListPorts
	}
	ports, err := list()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Fprintln(a.out, "no serial ports found")
		return nil
	}
	for _, p := range ports {
		fmt.Fprintln(a.out, p)
	}
	return nil
}

func cmdConfig(_ context.Context, a *app, _ []string) error {
	if a.cfg == nil {
		return errors.New("no configuration loaded")
	}
	return a.cfg.WriteYAML(a.out)
}
