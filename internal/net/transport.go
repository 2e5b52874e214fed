package net

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"SageDraw/internal/logging"
	"SageDraw/internal/pad"
	"SageDraw/internal/render"
)

//go:embed web/index.html
var indexHTML []byte

// Message is what the browser page sends: pointer events carry X/Y,
// numeric settings use Number, tool/color/sticker settings use Value.
type Message struct {
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Value  string  `json:"value,omitempty"`
	Number float64 `json:"number,omitempty"`
}

// Update is what the bridge sends back.
type Update struct {
	Type    string      `json:"type"`
	Ops     []render.Op `json:"ops,omitempty"`
	Tools   []string    `json:"tools,omitempty"`
	Tool    string      `json:"tool,omitempty"`
	Visible bool        `json:"visible,omitempty"`
	CanUndo bool        `json:"canUndo,omitempty"`
	CanRedo bool        `json:"canRedo,omitempty"`
	PNG     []byte      `json:"png,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Session binds one websocket connection to its own Pad. All reads, pad
// calls and writes happen on the goroutine running Run.
type Session struct {
	ID   string
	conn *websocket.Conn
	pad  *pad.Pad
	rec  *render.Recorder
	err  error
}

func NewSession(conn *websocket.Conn, width, height int, opts pad.Options) *Session {
	s := &Session{
		ID:   uuid.NewString(),
		conn: conn,
		rec:  render.NewRecorder(float64(width), float64(height)),
	}
	s.pad = pad.New(nil, opts)
	s.pad.Engine().OnFrame(s.sendFrame)
	s.pad.OnToolsChanged(s.sendTools)
	s.pad.OnCursor(func(visible bool) {
		s.send(Update{Type: "cursor", Visible: visible})
	})
	return s
}

func (s *Session) Pad() *pad.Pad { return s.pad }

// send records the first write error; later sends become no-ops and Run
// returns it.
func (s *Session) send(u Update) {
	if s.err != nil {
		return
	}
	if err := s.conn.WriteJSON(u); err != nil {
		s.err = fmt.Errorf("send %s: %w", u.Type, err)
	}
}

func (s *Session) sendFrame() {
	h := s.pad.History()
	s.send(Update{Type: "frame", Ops: s.rec.Ops(), CanUndo: h.CanUndo(), CanRedo: h.CanRedo()})
}

func (s *Session) sendTools() {
	t := s.pad.Tools()
	s.send(Update{Type: "tools", Tools: t.Stickers(), Tool: t.Tool})
}

// Run serves the connection until the peer goes away.
func (s *Session) Run() error {
	s.sendTools()
	s.pad.SetSurface(s.rec)
	for s.err == nil {
		var msg Message
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		s.handle(msg)
	}
	return s.err
}

func (s *Session) handle(msg Message) {
	p := s.pad
	switch msg.Type {
	case "down":
		p.Down(msg.X, msg.Y)
	case "move":
		p.Move(msg.X, msg.Y)
	case "up":
		p.Up(msg.X, msg.Y)
	case "enter":
		p.Enter(msg.X, msg.Y)
	case "leave":
		p.Leave()
	case "tool":
		p.SetTool(msg.Value)
	case "thickness":
		p.SetThickness(msg.Number)
	case "stampSize":
		p.SetStampSize(msg.Number)
	case "rotation":
		p.SetRotation(msg.Number)
	case "color":
		p.SetColor(msg.Value)
	case "sticker":
		p.AddCustomStamp(msg.Value)
	case "undo":
		p.Undo()
	case "redo":
		p.Redo()
	case "clear":
		p.Clear()
	case "export":
		var buf bytes.Buffer
		if err := p.Export(&buf); err != nil {
			logging.L().Error("[BRIDGE] export failed", "session", s.ID, "err", err)
			s.send(Update{Type: "export", Error: err.Error()})
			return
		}
		s.send(Update{Type: "export", PNG: buf.Bytes()})
	default:
		logging.L().Warn("[BRIDGE] unknown message", "session", s.ID, "type", msg.Type)
	}
}

// SessionManager tracks the live sessions of a Server.
type SessionManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
	}
}

func (sm *SessionManager) Add(s *Session) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[s.ID] = s
	logging.L().Info("[BRIDGE] session opened", "session", s.ID, "remote", s.conn.RemoteAddr().String(), "active", len(sm.sessions))
}

func (sm *SessionManager) Remove(s *Session) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, s.ID)
	logging.L().Info("[BRIDGE] session closed", "session", s.ID, "active", len(sm.sessions))
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// Server serves the drawing page and one Pad per websocket connection.
type Server struct {
	Width, Height int
	Options       pad.Options
	Sessions      *SessionManager

	upgrader websocket.Upgrader
}

func NewServer(width, height int, opts pad.Options) *Server {
	return &Server{
		Width:    width,
		Height:   height,
		Options:  opts,
		Sessions: NewSessionManager(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
		},
	}
}

func (srv *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.serveIndex)
	mux.HandleFunc("/ws", srv.serveWS)
	return mux
}

func (srv *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(indexHTML); err != nil {
		logging.L().Warn("[BRIDGE] index write failed", "remote", r.RemoteAddr, "err", err)
	}
}

func (srv *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := srv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.L().Warn("[BRIDGE] upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	s := NewSession(conn, srv.Width, srv.Height, srv.Options)
	srv.Sessions.Add(s)
	defer srv.Sessions.Remove(s)
	logging.L().Debug("[BRIDGE] sessions", "count", srv.Sessions.Count())

	if err := s.Run(); err != nil {
		logging.L().Warn("[BRIDGE] session ended", "session", s.ID, "err", err)
	}
}

// ListenAndServe runs the bridge on port until ctx is cancelled.
func (srv *Server) ListenAndServe(ctx context.Context, port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", port, err)
	}
	hs := &http.Server{Handler: srv.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			logging.L().Warn("[BRIDGE] shutdown failed", "err", err)
		}
	}()
	logging.L().Info("[BRIDGE] listening", "port", port)
	if err := hs.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
