package main

import (
	"flag"
	"net/http"

	"fluids/calculator"
	"fluids/server"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func main() {
	confPath := flag.String("conf", "conf/config.ini", "配置文件路径")
	flag.Parse()

	cfg, err := calculator.LoadConfig(*confPath)
	if err != nil {
		log.Warn(err, "，使用默认配置")
		cfg = calculator.DefaultConfig()
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn("err: ", err)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	upgrader.CheckOrigin = func(r *http.Request) bool {
		return true
	}
	s := server.NewServer(cfg, upgrader)
	if err := s.Serve(); err != nil {
		log.Fatal("ListenAndServe: ", err)
	}
}
