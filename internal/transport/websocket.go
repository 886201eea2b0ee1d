// Package transport carries the line-oriented remote-control protocol.
// The websocket server replaces the Bluetooth serial link of the
// original hardware: each text message is one command line, and status
// frames are broadcast to every connected client.
package transport

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/dooshek/vibelight/internal/logger"
	"github.com/gorilla/websocket"
)

// Dispatch accepts one inbound command line and reports whether it was
// taken. The transport never runs command handlers itself; the engine
// drains accepted lines on its loop goroutine.
type Dispatch func(line string) bool

type WSServer struct {
	dispatch Dispatch
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	server  *http.Server
}

func NewWSServer(dispatch Dispatch) *WSServer {
	return &WSServer{
		dispatch: dispatch,
		upgrader: websocket.Upgrader{
			// Phone apps connect from arbitrary origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// ListenAndServe blocks serving websocket upgrades on addr until the
// listener fails or Close is called.
func (s *WSServer) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/", s)
	s.server = &http.Server{Addr: addr, Handler: mux}
	logger.Infof("Remote control listening on ws://%s", addr)
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *WSServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warnf("Websocket upgrade failed: %v", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	n := len(s.clients)
	s.mu.Unlock()
	logger.Infof("Client connected from %s (%d total)", conn.RemoteAddr(), n)

	go s.readLoop(conn)
}

func (s *WSServer) readLoop(conn *websocket.Conn) {
	defer s.drop(conn)
	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		s.dispatch(string(msg))
	}
}

func (s *WSServer) drop(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	n := len(s.clients)
	s.mu.Unlock()
	conn.Close()
	logger.Infof("Client disconnected (%d remaining)", n)
}

// SendLine broadcasts one status frame to every connected client.
// Clients whose write fails are dropped.
func (s *WSServer) SendLine(line string) error {
	s.mu.Lock()
	var failed []*websocket.Conn
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			failed = append(failed, conn)
		}
	}
	for _, conn := range failed {
		delete(s.clients, conn)
		conn.Close()
	}
	s.mu.Unlock()
	if len(failed) > 0 {
		return fmt.Errorf("dropped %d client(s) on write", len(failed))
	}
	return nil
}

// Close shuts the listener down and closes every client connection.
func (s *WSServer) Close() {
	if s.server != nil {
		s.server.Close()
	}
	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]struct{})
	s.mu.Unlock()
}
