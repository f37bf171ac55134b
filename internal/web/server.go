package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/sinkisle/internal/game"
	islenet "github.com/peterkuimelis/sinkisle/internal/net"
)

//go:embed static
var staticFiles embed.FS

// RoleInfo is the JSON representation of a role for the /api/roles endpoint.
type RoleInfo struct {
	Name          string `json:"name"`
	Move          string `json:"move"`
	ShoreCapacity int    `json:"shoreCapacity"`
	GiveAnywhere  bool   `json:"giveAnywhere,omitempty"`
	Special       string `json:"special,omitempty"`
	Start         string `json:"start"`
}

// Server is the Sinking Isle web UI server. Each websocket connection plays
// its own hot-seat game in-process.
type Server struct {
	config   game.Config
	maxTurns int
	layout   *game.Layout
	rules    game.Rules
	log      *logrus.Logger
	mux      *http.ServeMux
}

// NewServer creates a new web server. Every game starts from cfg; a browser
// may override the player count and seed when it joins.
func NewServer(cfg game.Config, maxTurns int, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Server{
		config:   cfg,
		maxTurns: maxTurns,
		layout:   cfg.Layout,
		log:      logger,
		mux:      http.NewServeMux(),
	}
	if s.layout == nil {
		s.layout = game.ClassicLayout()
	}
	if cfg.Rules != nil {
		s.rules = *cfg.Rules
	} else {
		s.rules = game.DefaultRules()
	}
	s.setupRoutes()
	return s
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f)
	})
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/layout", s.handleLayout)
	s.mux.HandleFunc("GET /api/roles", s.handleRoles)
	s.mux.HandleFunc("GET /api/rules", s.handleRules)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.layout)
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.rules)
}

func (s *Server) handleRoles(w http.ResponseWriter, r *http.Request) {
	roles := make([]RoleInfo, 0, len(game.AllRoles))
	for _, role := range game.AllRoles {
		traits := game.TraitsOf(role)
		start, _ := s.layout.StartFor(role)
		ri := RoleInfo{
			Name:          role.String(),
			Move:          traits.Move.String(),
			ShoreCapacity: traits.ShoreCapacity,
			GiveAnywhere:  traits.GiveAnywhere,
			Start:         start,
		}
		if traits.Special != game.AbilityNone {
			ri.Special = traits.Special.String()
		}
		roles = append(roles, ri)
	}
	writeJSON(w, roles)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.log.WithError(err).Warn("websocket accept")
		return
	}
	defer wsConn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	entry := s.log.WithField("game", uuid.NewString())

	// The browser opens with a join message.
	_, joinData, err := wsConn.Read(ctx)
	if err != nil {
		entry.WithError(err).Warn("websocket read join")
		return
	}
	var join islenet.ClientMessage
	if err := json.Unmarshal(joinData, &join); err != nil || join.Type != islenet.MsgJoin {
		wsConn.Close(websocket.StatusPolicyViolation, "expected join message")
		return
	}
	cfg := s.config
	if join.Players != 0 {
		cfg.Players = join.Players
	}
	if join.Seed != 0 {
		cfg.Seed = join.Seed
	}
	entry = entry.WithFields(logrus.Fields{"players": cfg.Players, "seed": cfg.Seed})
	entry.Info("game started")

	// The engine talks to a NetworkController over an in-memory pipe; this
	// handler shuttles JSON between the pipe and the websocket.
	browserSide, engineSide := net.Pipe()
	defer browserSide.Close()

	go func() {
		defer engineSide.Close()
		out, err := islenet.RunGame(ctx, cfg, islenet.NewNetworkController(engineSide), s.maxTurns)
		if err != nil {
			entry.WithError(err).Warn("game ended with error")
			return
		}
		entry.WithFields(logrus.Fields{"won": out.Won, "result": out.Reason}).Info("game finished")
	}()

	done := make(chan struct{})

	// pipe → websocket (server messages to browser)
	go func() {
		defer close(done)
		dec := json.NewDecoder(browserSide)
		for {
			var msg json.RawMessage
			if err := dec.Decode(&msg); err != nil {
				if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrClosedPipe) {
					entry.WithError(err).Warn("pipe read")
				}
				return
			}
			if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
				entry.WithError(err).Warn("websocket write")
				return
			}
		}
	}()

	// websocket → pipe (browser responses to the engine)
	go func() {
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				cancel()
				browserSide.Close()
				return
			}
			data = append(data, '\n')
			if _, err := browserSide.Write(data); err != nil {
				return
			}
		}
	}()

	<-done
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	s.log.WithField("addr", addr).Info("web UI listening")
	return http.ListenAndServe(addr, s.mux)
}
