package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"

	"github.com/peterkuimelis/sinkisle/internal/game"
)

// Server hosts a hot-seat game for a single remote client, which answers for
// every seat at the table.
type Server struct {
	Port     string
	Config   game.Config
	MaxTurns int
}

// Run starts the server, waits for a client to join, then runs the game.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	fmt.Printf("Waiting for a table on port %s...\n", s.Port)

	// Accept exactly one connection
	conn, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("accept: %w", err)
	}
	defer conn.Close()

	fmt.Printf("Table connected from %s\n", conn.RemoteAddr())

	// The join message may override the player count and seed.
	dec := json.NewDecoder(conn)
	var join ClientMessage
	if err := dec.Decode(&join); err != nil {
		return fmt.Errorf("read join message: %w", err)
	}
	cfg := s.Config
	if join.Players != 0 {
		cfg.Players = join.Players
	}
	if join.Seed != 0 {
		cfg.Seed = join.Seed
	}

	ctrl := NewNetworkController(conn)
	ctrl.dec = dec // keep anything the join decoder buffered
	_, err = RunGame(ctx, cfg, ctrl, s.MaxTurns)
	return err
}

// RunLocal plays a game in this terminal: the controller talks to a REPL
// client over an in-memory pipe.
func RunLocal(ctx context.Context, cfg game.Config, maxTurns int) error {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	errCh := make(chan error, 2)
	go func() {
		client := NewClient(clientConn)
		errCh <- client.RunREPL(ctx)
	}()

	go func() {
		_, err := RunGame(ctx, cfg, NewNetworkController(serverConn), maxTurns)
		if err != nil {
			errCh <- fmt.Errorf("game error: %w", err)
		}
	}()

	// The REPL returns after game_over; a game error ends it early.
	return <-errCh
}

// RunGame creates a game wired to ctrl, plays it out and sends game_over.
// The client on the other end must already be reading: setup events are
// sent while the game is being created.
func RunGame(ctx context.Context, cfg game.Config, ctrl *NetworkController, maxTurns int) (game.Outcome, error) {
	cfg.Choices = ctrl
	cfg.Notifiers = append(cfg.Notifiers, ctrl)
	g, err := game.NewGame(cfg)
	if err != nil {
		_ = ctrl.SendGameOver(game.Outcome{Reason: err.Error()})
		return game.Outcome{}, err
	}

	out, err := game.Play(ctx, g, ctrl, maxTurns)
	if err != nil {
		_ = ctrl.SendGameOver(game.Outcome{Reason: err.Error()})
		return out, err
	}
	if err := ctrl.SendGameOver(out); err != nil {
		return out, fmt.Errorf("send game_over: %w", err)
	}
	return out, nil
}
