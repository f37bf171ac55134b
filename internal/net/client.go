package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
)

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	in   *bufio.Reader
	out  io.Writer
}

// NewClient creates a REPL client on stdin/stdout.
func NewClient(conn net.Conn) *Client {
	return &Client{conn: conn, in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// Connect connects to a server, sends the table settings, and runs the REPL.
func Connect(ctx context.Context, addr string, players int, seed uint64) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	enc := json.NewEncoder(conn)
	if err := enc.Encode(ClientMessage{Type: MsgJoin, Players: players, Seed: seed}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Println("Connected! Waiting for game to start...")
	return NewClient(conn).RunREPL(ctx)
}

// RunREPL reads server messages and handles them interactively.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	for {
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case MsgNotify:
			c.renderEvent(msg.Event)

		case MsgChooseAction:
			c.renderState(msg.State)
			c.renderActions(msg.Player, msg.Actions)
			idx, _ := c.readChoice(len(msg.Actions), false)
			if err := enc.Encode(ClientMessage{Type: MsgAction, Index: idx}); err != nil {
				return fmt.Errorf("send action: %w", err)
			}

		case MsgChooseOption:
			c.renderOptions(msg.Player, msg.Prompt, msg.Options)
			idx, cancelled := c.readChoice(len(msg.Options), true)
			reply := ClientMessage{Type: MsgOption, Index: idx}
			if cancelled {
				reply = ClientMessage{Type: MsgCancel}
			}
			if err := enc.Encode(reply); err != nil {
				return fmt.Errorf("send option: %w", err)
			}

		case MsgGameOver:
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			if msg.Won {
				fmt.Fprintln(c.out, "          THE TEAM ESCAPES")
			} else {
				fmt.Fprintln(c.out, "          GAME OVER")
			}
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	// Format like the TextLogger
	phase := ev.Phase
	for len(phase) < 12 {
		phase += " "
	}
	fmt.Fprintf(c.out, "T%-2d %s| %s\n", ev.Turn, phase, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}

	grid := make([][]string, sv.Rows)
	for r := range grid {
		grid[r] = make([]string, sv.Cols)
	}
	for _, t := range sv.Tiles {
		grid[t.Row][t.Col] = formatTile(t)
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "╔══════════════════════════════════════════════════════╗")
	for _, row := range grid {
		fmt.Fprint(c.out, "║ ")
		for _, cell := range row {
			fmt.Fprintf(c.out, "%-9s", cell)
		}
		fmt.Fprintln(c.out)
	}
	fmt.Fprintln(c.out, "║──────────────────────────────────────────────────────")
	fmt.Fprintf(c.out, "║  Water: %d/%d  Treasures: %s\n", sv.WaterLevel, sv.MaxWaterLevel, formatCollected(sv.Collected))
	fmt.Fprintf(c.out, "║  Treasure deck: %d (discard %d)  Flood deck: %d (discard %d)\n",
		sv.Treasure.Draw, sv.Treasure.Discard, sv.Flood.Draw, sv.Flood.Discard)
	for _, p := range sv.Players {
		marker := " "
		if p.Index == sv.Current {
			marker = "*"
		}
		var hand []string
		for _, card := range p.Hand {
			hand = append(hand, card.Name)
		}
		fmt.Fprintf(c.out, "║ %sP%d %-9s on %-20s %s\n", marker, p.Index+1, p.Role, p.Tile, strings.Join(hand, ", "))
	}
	fmt.Fprintln(c.out, "╚══════════════════════════════════════════════════════╝")
	fmt.Fprintf(c.out, "Turn %d | %s | P%d to act\n", sv.Turn, sv.Phase, sv.Current+1)
}

// formatTile renders a grid cell: initials, state marker, occupants.
// "~" marks a flooded tile, "x" a sunk one, "@" the rescue tile.
func formatTile(t TileView) string {
	var sb strings.Builder
	for _, w := range strings.Fields(t.Name) {
		if sb.Len() < 3 && w != "of" && w != "the" {
			sb.WriteByte(w[0])
		}
	}
	switch t.State {
	case "flooded":
		sb.WriteByte('~')
	case "sunk":
		sb.WriteByte('x')
	}
	if t.Rescue {
		sb.WriteByte('@')
	}
	for _, p := range t.Players {
		sb.WriteString(strconv.Itoa(p + 1))
	}
	return "[" + sb.String() + "]"
}

func formatCollected(collected []string) string {
	if len(collected) == 0 {
		return "none"
	}
	return strings.Join(collected, " ")
}

func (c *Client) renderActions(player int, actions []ActionView) {
	fmt.Fprintf(c.out, "\nP%d actions:\n", player+1)
	for _, a := range actions {
		fmt.Fprintf(c.out, "  %d) %s\n", a.Index+1, a.Desc)
	}
}

func (c *Client) renderOptions(player int, prompt string, options []string) {
	fmt.Fprintf(c.out, "\nP%d: %s\n", player+1, prompt)
	for i, o := range options {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, o)
	}
	fmt.Fprintln(c.out, "  c) cancel")
}

// readChoice reads a 1-based choice. With cancellable set, "c" backs out.
func (c *Client) readChoice(count int, cancellable bool) (int, bool) {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if err != nil && line == "" {
			// stdin closed; back out if possible, else take the first option
			return 0, cancellable
		}
		if cancellable && strings.EqualFold(line, "c") {
			return 0, true
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > count {
			fmt.Fprintf(c.out, "Enter a number between 1 and %d\n", count)
			continue
		}
		return n - 1, false // convert to 0-indexed
	}
}
