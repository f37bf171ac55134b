package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/sinkisle/internal/config"
	"github.com/peterkuimelis/sinkisle/internal/game"
	islenet "github.com/peterkuimelis/sinkisle/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	settings, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := settings.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := os.Args[1]
	switch cmd {
	case "play":
		err = runPlay(ctx, settings, os.Args[2:])
	case "serve":
		err = runServe(ctx, settings, logger, os.Args[2:])
	case "connect":
		err = runConnect(ctx, settings, os.Args[2:])
	case "layout":
		err = runLayout(os.Stdout, settings, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		logger.WithError(err).WithField("command", cmd).Error("failed")
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  sinkisle play    [--players N] [--seed S] [--rules FILE] [--layout FILE] [--max-turns T]")
	fmt.Println("  sinkisle serve   [--port P] [table flags]")
	fmt.Println("  sinkisle connect [--addr ADDR] [--players N] [--seed S]")
	fmt.Println("  sinkisle layout  [--layout FILE]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play     Play a hot-seat game in this terminal")
	fmt.Println("  serve    Host a game for one remote terminal that plays every seat")
	fmt.Println("  connect  Connect to a served game")
	fmt.Println("  layout   Validate and print an island layout")
}

func runPlay(ctx context.Context, s config.Settings, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	s.RegisterFlags(fs)
	fs.Parse(args)

	cfg, err := s.GameConfig()
	if err != nil {
		return err
	}
	return islenet.RunLocal(ctx, cfg, s.MaxTurns)
}

func runServe(ctx context.Context, s config.Settings, logger *logrus.Logger, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.String("port", "9000", "TCP port to listen on")
	s.RegisterFlags(fs)
	fs.Parse(args)

	cfg, err := s.GameConfig()
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"port": *port, "players": cfg.Players}).Info("serving")
	srv := &islenet.Server{Port: *port, Config: cfg, MaxTurns: s.MaxTurns}
	return srv.Run(ctx)
}

func runConnect(ctx context.Context, s config.Settings, args []string) error {
	fs := flag.NewFlagSet("connect", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	fs.IntVar(&s.Players, "players", 0, "number of players (0 = server default)")
	fs.Uint64Var(&s.Seed, "seed", 0, "shuffle seed (0 = server default)")
	fs.Parse(args)

	return islenet.Connect(ctx, *addr, s.Players, s.Seed)
}

func runLayout(w io.Writer, s config.Settings, args []string) error {
	fs := flag.NewFlagSet("layout", flag.ExitOnError)
	fs.StringVar(&s.LayoutFile, "layout", s.LayoutFile, "path to a layout YAML file (default: classic island)")
	fs.Parse(args)

	l := game.ClassicLayout()
	if s.LayoutFile != "" {
		var err error
		if l, err = game.LoadLayout(s.LayoutFile); err != nil {
			return err
		}
	}
	printLayout(w, l)
	return nil
}

// printLayout draws the grid with two-letter tile codes, then the legend.
func printLayout(w io.Writer, l *game.Layout) {
	grid := make([][]string, l.Rows)
	for r := range grid {
		grid[r] = make([]string, l.Cols)
		for c := range grid[r] {
			grid[r][c] = "  "
		}
	}
	codes := make(map[string]string, len(l.Tiles))
	for _, t := range l.Tiles {
		code := tileCode(t.Name)
		codes[t.Name] = code
		grid[t.Row][t.Col] = code
	}

	fmt.Fprintf(w, "%s (%dx%d, %d tiles)\n\n", l.Name, l.Rows, l.Cols, len(l.Tiles))
	for _, row := range grid {
		fmt.Fprintln(w, "  "+strings.Join(row, " "))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Rescue: %s [%s]\n", l.Rescue, codes[l.Rescue])

	treasures := make([]string, 0, len(l.Treasures))
	for name := range l.Treasures {
		treasures = append(treasures, name)
	}
	sort.Strings(treasures)
	for _, name := range treasures {
		fmt.Fprintf(w, "Treasure %-6s %s\n", name+":", strings.Join(l.Treasures[name], ", "))
	}
	for _, r := range game.AllRoles {
		if start, ok := l.StartFor(r); ok {
			fmt.Fprintf(w, "%-10s starts on %s\n", r, start)
		}
	}
}

func tileCode(name string) string {
	var sb strings.Builder
	for _, w := range strings.Fields(name) {
		if sb.Len() < 2 && w != "of" && w != "the" {
			sb.WriteByte(w[0])
		}
	}
	if sb.Len() < 2 && len(name) > 1 {
		sb.WriteByte(name[1])
	}
	return sb.String()
}
