package server

import (
	"context"
	"encoding/json"
	"net/http"

	"fluids/calculator"
	"fluids/metrics"
	"fluids/model"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	addr     string
	cfg      calculator.Config
	upgrader websocket.Upgrader
}

func NewServer(cfg calculator.Config, upgrader websocket.Upgrader) *Server {
	return &Server{
		addr:     cfg.Addr,
		cfg:      cfg,
		upgrader: upgrader,
	}
}

// serveWs handles websocket requests from the peer.
// 每个连接一个 Hub，各自持有独立的 Calculator
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(calculator.NewCalculator(s.cfg))
	hub.conn = conn
	logger := log.WithField("session", hub.id)
	logger.WithField("remote", r.RemoteAddr).Info("连接建立")
	metrics.SessionOpened()
	defer metrics.SessionClosed()

	go hub.handleRequest(ctx)
	go hub.handleResponse()
	defer close(hub.done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("err: ", err)
			}
			break
		}
		var msg model.Msg
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warn("err: ", err)
			hub.send(errorMsg(err))
			continue
		}
		metrics.RecordMessage(msg.Type)
		select {
		case hub.msg <- msg:
		case <-ctx.Done():
		}
	}
	logger.Info("连接关闭")
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("服务启动")
	return http.ListenAndServe(s.addr, s.Handler())
}

func newSessionID() string {
	return uuid.NewString()
}
