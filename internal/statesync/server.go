package statesync

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/accordion/internal/logging"
	"github.com/muurk/accordion/internal/store"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// Per-client queue of outgoing frames
	sendBuffer = 32

	// DefaultPath is the WebSocket endpoint
	DefaultPath = "/ws"
)

// Writer applies a state write requested by a client.
type Writer func(name string, value any)

// Config holds the server configuration
type Config struct {
	Host      string
	Port      int
	Path      string      // Defaults to DefaultPath
	TLSConfig *tls.Config // Optional; serves wss:// when set
}

// Server broadcasts store changes to WebSocket clients and forwards their
// writes to a Writer.
type Server struct {
	config   Config
	store    *store.Store
	write    Writer
	upgrader websocket.Upgrader

	mu       sync.Mutex
	clients  map[*client]struct{}
	listener net.Listener
	http     *http.Server
	wg       sync.WaitGroup
}

type client struct {
	conn       *websocket.Conn
	send       chan []byte
	remoteAddr string
}

// New creates a server bound to st. It subscribes to store changes
// immediately.
func New(cfg Config, st *store.Store, write Writer) *Server {
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	s := &Server{
		config:  cfg,
		store:   st,
		write:   write,
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	st.OnChange(s.broadcastChange)
	return s
}

// Handler returns the HTTP handler serving the WebSocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.config.Path, s.handleWebSocket)
	return mux
}

// Listen binds the listener. Port 0 picks a free port; see Addr.
func (s *Server) Listen() error {
	addr := net.JoinHostPort(s.config.Host, fmt.Sprint(s.config.Port))
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	if s.config.TLSConfig != nil {
		l = tls.NewListener(l, s.config.TLSConfig)
	}
	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Port returns the bound TCP port, or 0 before Listen.
func (s *Server) Port() int {
	if tcp, ok := s.Addr().(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}

// Start serves until ctx is cancelled, then shuts down. It calls Listen if
// that has not happened yet.
func (s *Server) Start(ctx context.Context) error {
	if s.Addr() == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.http = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: writeWait}
	srv, l := s.http, s.listener
	s.mu.Unlock()

	logging.Info("State sync server listening",
		zap.String("addr", l.Addr().String()),
		zap.String("path", s.config.Path),
		zap.Bool("tls", s.config.TLSConfig != nil),
	)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Serve(l)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Shutdown stops accepting connections and closes all clients.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down state sync server...")

	s.mu.Lock()
	srv := s.http
	for c := range s.clients {
		_ = c.conn.Close()
	}
	s.mu.Unlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}
	return err
}

// ActiveClients returns the number of connected clients
func (s *Server) ActiveClients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer), remoteAddr: r.RemoteAddr}
	logging.LogConnection(c.remoteAddr, "websocket_upgraded")

	if err := s.register(c); err != nil {
		logging.Error("Failed to encode snapshot", zap.Error(err))
		_ = conn.Close()
		return
	}

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		s.writePump(c)
	}()
	go func() {
		defer s.wg.Done()
		s.readPump(c)
	}()
}

// register queues the snapshot and adds c to the broadcast set under one
// lock, so every store change lands either in the snapshot or in c's queue.
func (s *Server) register(c *client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := json.Marshal(Message{Type: TypeSnapshot, State: s.store.Snapshot()})
	if err != nil {
		return err
	}
	c.send <- snapshot
	s.clients[c] = struct{}{}
	return nil
}

// readPump handles client frames until the connection closes.
func (s *Server) readPump(c *client) {
	defer func() {
		s.mu.Lock()
		if _, ok := s.clients[c]; ok {
			delete(s.clients, c)
			close(c.send)
		}
		s.mu.Unlock()
		_ = c.conn.Close()
		logging.LogConnection(c.remoteAddr, "websocket_closed")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Info("Connection closed with error",
					zap.String("remote_addr", c.remoteAddr),
					zap.Error(err),
				)
			}
			return
		}
		logging.LogWebSocketMessage(c.remoteAddr, "received", data)
		s.handleMessage(c, data)
	}
}

func (s *Server) handleMessage(c *client, data []byte) {
	msg, err := decode(data)
	if err != nil {
		s.reply(c, Message{Type: TypeError, Error: "invalid message: " + err.Error()})
		return
	}

	switch msg.Type {
	case TypeSet:
		if _, ok := s.store.Get(msg.Name); !ok {
			s.reply(c, Message{Type: TypeError, Error: fmt.Sprintf("unknown state name %q", msg.Name)})
			return
		}
		if s.write != nil {
			s.write(msg.Name, msg.Value)
		}
	case TypeSnapshot:
		s.reply(c, Message{Type: TypeSnapshot, State: s.store.Snapshot()})
	default:
		s.reply(c, Message{Type: TypeError, Error: fmt.Sprintf("unsupported message type %q", msg.Type)})
	}
}

// writePump drains the client's queue and keeps the connection alive.
func (s *Server) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
			logging.LogWebSocketMessage(c.remoteAddr, "sent", data)
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) reply(c *client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		logging.Error("Failed to encode message", zap.Error(err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		s.enqueue(c, data)
	}
}

// broadcastChange is the store listener. It runs on the writer's goroutine
// and must not block.
func (s *Server) broadcastChange(name string, value any) {
	data, err := json.Marshal(Message{Type: TypeChanged, Name: name, Value: value})
	if err != nil {
		logging.Warn("Failed to encode state change",
			zap.String("name", name),
			zap.Error(err),
		)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		s.enqueue(c, data)
	}
}

// enqueue must be called with s.mu held.
func (s *Server) enqueue(c *client, data []byte) {
	select {
	case c.send <- data:
	default:
		logging.Warn("Client send buffer full, dropping message",
			zap.String("remote_addr", c.remoteAddr),
		)
	}
}
