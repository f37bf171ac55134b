package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/sinkisle/internal/game"
	islenet "github.com/peterkuimelis/sinkisle/internal/net"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	srv := NewServer(game.Config{Players: 2, Seed: 11}, 300, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, v any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestLayoutEndpoint(t *testing.T) {
	ts := newTestServer(t)
	var layout game.Layout
	getJSON(t, ts.URL+"/api/layout", &layout)
	assert.Len(t, layout.Tiles, 24)
	assert.Equal(t, "Fools' Landing", layout.Rescue)
}

func TestRolesEndpoint(t *testing.T) {
	ts := newTestServer(t)
	var roles []RoleInfo
	getJSON(t, ts.URL+"/api/roles", &roles)
	require.Len(t, roles, len(game.AllRoles))

	byName := map[string]RoleInfo{}
	for _, r := range roles {
		byName[r.Name] = r
		assert.NotEmpty(t, r.Start, r.Name)
	}
	assert.Equal(t, "Fly", byName["Pilot"].Special)
	assert.Equal(t, "Swim", byName["Diver"].Move)
	assert.Equal(t, 2, byName["Engineer"].ShoreCapacity)
	assert.True(t, byName["Messenger"].GiveAnywhere)
}

func TestRulesEndpoint(t *testing.T) {
	ts := newTestServer(t)
	var rules game.Rules
	getJSON(t, ts.URL+"/api/rules", &rules)
	assert.Equal(t, game.DefaultRules(), rules)
}

func TestIndexServed(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Sinking Isle")

	resp, err = http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWebSocketGame(t *testing.T) {
	ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()
	conn.SetReadLimit(1 << 20)

	write := func(msg islenet.ClientMessage) {
		data, err := json.Marshal(msg)
		require.NoError(t, err)
		require.NoError(t, conn.Write(ctx, websocket.MessageText, data))
	}
	write(islenet.ClientMessage{Type: islenet.MsgJoin, Players: 3})

	var players int
	for {
		_, data, err := conn.Read(ctx)
		require.NoError(t, err)
		var msg islenet.ServerMessage
		require.NoError(t, json.Unmarshal(data, &msg))

		switch msg.Type {
		case islenet.MsgChooseAction:
			players = len(msg.State.Players)
			idx := 0
			for _, a := range msg.Actions {
				if a.Kind == game.ActionSkip.String() {
					idx = a.Index
				}
			}
			write(islenet.ClientMessage{Type: islenet.MsgAction, Index: idx})
		case islenet.MsgChooseOption:
			write(islenet.ClientMessage{Type: islenet.MsgOption})
		case islenet.MsgGameOver:
			assert.NotEmpty(t, msg.Result)
			assert.Equal(t, 3, players, "join overrides the player count")
			return
		}
	}
}

func TestWebSocketRejectsBadJoin(t *testing.T) {
	ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte(`{"type":"action"}`)))
	_, _, err = conn.Read(ctx)
	assert.Equal(t, websocket.StatusPolicyViolation, websocket.CloseStatus(err))
}
