package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"fluids/calculator"
	"fluids/model"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// 消息类型
const (
	TypeEnv       = model.MsgEnv
	TypeEnvSet    = model.MsgEnvSet
	TypeCalculate = model.MsgCalculate
	TypeCurves    = model.MsgCurves
	TypeSweep     = model.MsgSweep
	TypeRanges    = model.MsgRanges
	TypeError     = model.MsgError
)

// Hub 负责一个 websocket 会话的请求处理与结果推送
type Hub struct {
	id   string
	c    calculator.Calculator
	conn *websocket.Conn
	// request
	msg chan model.Msg
	// response
	reply chan model.Msg
	done  chan struct{}
}

func NewHub(c calculator.Calculator) *Hub {
	return &Hub{
		id:    newSessionID(),
		c:     c,
		msg:   make(chan model.Msg, 10),
		reply: make(chan model.Msg, 10),
		done:  make(chan struct{}),
	}
}

// 滑块范围及默认计算环境
type RangesData struct {
	Ranges   map[string]model.Range `json:"ranges"`
	Defaults model.Env              `json:"defaults"`
}

// 只有这一个 goroutine 写连接
func (h *Hub) handleResponse() {
	for {
		select {
		case reply := <-h.reply:
			if err := h.conn.WriteJSON(&reply); err != nil {
				log.WithField("session", h.id).Warn("err: ", err)
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleRequest(ctx context.Context) {
	for {
		select {
		case msg := <-h.msg:
			h.send(h.dispatch(ctx, msg))
		case <-h.done:
			return
		}
	}
}

func (h *Hub) send(reply model.Msg) {
	select {
	case h.reply <- reply:
	case <-h.done:
	}
}

func (h *Hub) dispatch(ctx context.Context, msg model.Msg) model.Msg {
	switch msg.Type {
	case TypeEnv:
		env, err := decodeEnv(h.c.Env(), msg.Content)
		if err != nil {
			return errorMsg(err)
		}
		if err := h.c.SetEnv(env); err != nil {
			return errorMsg(err)
		}
		return h.calculate(TypeEnvSet)
	case TypeCalculate:
		return h.calculate(TypeCurves)
	case TypeSweep:
		var req model.SweepRequest
		if err := json.Unmarshal([]byte(msg.Content), &req); err != nil {
			return errorMsg(err)
		}
		points, err := h.c.Sweep(ctx, req)
		if err != nil {
			return errorMsg(err)
		}
		return contentMsg(TypeSweep, points)
	case TypeRanges:
		return contentMsg(TypeRanges, RangesData{
			Ranges:   h.c.Ranges(),
			Defaults: h.c.Env(),
		})
	default:
		log.WithFields(log.Fields{
			"session": h.id,
			"type":    msg.Type,
		}).Warn("no such type")
		return model.Msg{Type: TypeError, Content: "no such type: " + msg.Type}
	}
}

// env 消息中的各部分整体替换，未给出的部分沿用当前值
type envUpdate struct {
	Parameters json.RawMessage `json:"parameters"`
	Pump       *model.Pump     `json:"pump"`
	Grid       *model.Grid     `json:"grid"`
}

func decodeEnv(cur model.Env, content string) (model.Env, error) {
	var u envUpdate
	if err := json.Unmarshal([]byte(content), &u); err != nil {
		return cur, err
	}
	if len(u.Parameters) > 0 {
		// 参数必须完整给出
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(u.Parameters, &fields); err != nil {
			return cur, err
		}
		for _, name := range model.ParameterNames {
			if _, ok := fields[strings.ToLower(name)]; !ok {
				return cur, fmt.Errorf("%w: parameters missing %q", calculator.ErrInvalidInput, strings.ToLower(name))
			}
		}
		var p model.ParameterSet
		if err := json.Unmarshal(u.Parameters, &p); err != nil {
			return cur, err
		}
		cur.Parameters = p
	}
	if u.Pump != nil {
		cur.Pump = *u.Pump
	}
	if u.Grid != nil {
		cur.Grid = *u.Grid
	}
	return cur, nil
}

func (h *Hub) calculate(replyType string) model.Msg {
	res, err := h.c.Calculate()
	if err != nil {
		return errorMsg(err)
	}
	return contentMsg(replyType, res.BuildData())
}

func contentMsg(msgType string, v interface{}) model.Msg {
	data, err := json.Marshal(v)
	if err != nil {
		return errorMsg(err)
	}
	return model.Msg{Type: msgType, Content: string(data)}
}

func errorMsg(err error) model.Msg {
	return model.Msg{Type: TypeError, Content: err.Error()}
}
