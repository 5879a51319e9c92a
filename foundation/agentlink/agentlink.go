// Package agentlink exposes the emotional context query to the agent/tool
// layer over a websocket endpoint. The agent sends one JSON query per message
// and receives one JSON response.
package agentlink

import (
	"context"
	"net"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Query struct {
	Cmd    string  `json:"cmd"`
	Window float64 `json:"window,omitempty"`
}

type Response struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	Context string `json:"context,omitempty"`
	Summary any    `json:"summary,omitempty"`
}

type Handler func(Query) Response

type Server struct {
	addr     string
	logger   *zap.SugaredLogger
	handler  Handler
	upgrader websocket.Upgrader

	listener net.Listener
	srv      *http.Server
}

func New(addr string, logger *zap.SugaredLogger, handler Handler) *Server {
	s := &Server{
		addr:    addr,
		logger:  logger,
		handler: handler,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/query", s.serveQuery)

	s.srv = &http.Server{Handler: mux}

	return s
}

// Start binds the listen address and serves in the background. The returned
// channel carries a serve failure, never ErrServerClosed.
func (s *Server) Start() (<-chan error, error) {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, err
	}
	s.listener = listener

	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	return errCh, nil
}

func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) serveQuery(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Errorw("agentlink: upgrade", "ERROR", err)
		return
	}
	defer conn.Close()

	s.logger.Infow("agentlink: agent connected", "remote", conn.RemoteAddr().String())

	for {
		var query Query
		if err := conn.ReadJSON(&query); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Errorw("agentlink: read", "ERROR", err)
			}
			return
		}

		resp := s.handler(query)
		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Errorw("agentlink: write", "ERROR", err)
			return
		}
	}
}
