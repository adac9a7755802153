package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fluids/calculator"
	"fluids/model"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConn(t *testing.T) *websocket.Conn {
	t.Helper()
	s := NewServer(calculator.DefaultConfig(), websocket.Upgrader{})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg model.Msg) model.Msg {
	t.Helper()
	require.NoError(t, conn.WriteJSON(&msg))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var reply model.Msg
	require.NoError(t, conn.ReadJSON(&reply))
	return reply
}

type curveReply struct {
	Env   model.Env              `json:"env"`
	Lines []calculator.LinePoint `json:"lines"`
	YMin  float64                `json:"y_min"`
	YMax  float64                `json:"y_max"`
	Point struct {
		Outcome string                     `json:"outcome"`
		Point   *calculator.OperatingPoint `json:"point"`
	} `json:"operating_point"`
}

func TestHub_Calculate(t *testing.T) {
	conn := newTestConn(t)

	reply := roundTrip(t, conn, model.Msg{Type: TypeCalculate})
	require.Equal(t, TypeCurves, reply.Type, reply.Content)

	var data curveReply
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &data))
	assert.Len(t, data.Lines, calculator.DefaultSamples)
	assert.Equal(t, "found", data.Point.Outcome)
	require.NotNil(t, data.Point.Point)
	assert.InDelta(t, 9.3022, data.Point.Point.Vdot, 1e-3)
}

func paramsJSON(t *testing.T, p model.ParameterSet) string {
	t.Helper()
	data, err := json.Marshal(map[string]model.ParameterSet{"parameters": p})
	require.NoError(t, err)
	return string(data)
}

func TestHub_Env(t *testing.T) {
	conn := newTestConn(t)

	p := calculator.DefaultParameters()
	p.A1 = 0.55
	p.P1 = 30
	reply := roundTrip(t, conn, model.Msg{Type: TypeEnv, Content: paramsJSON(t, p)})
	require.Equal(t, TypeEnvSet, reply.Type, reply.Content)

	var data curveReply
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &data))
	assert.Equal(t, p, data.Env.Parameters)
	// 未给出的 pump 和 grid 沿用当前值
	assert.Equal(t, calculator.DefaultConfig().Env().Grid, data.Env.Grid)
	require.NotNil(t, data.Point.Point)
	assert.InDelta(t, 8.2967, data.Point.Point.Vdot, 1e-3)

	// 无交点不是错误
	p = calculator.DefaultParameters()
	p.P1, p.P2, p.Ksys = 0, 200, 20
	reply = roundTrip(t, conn, model.Msg{Type: TypeEnv, Content: paramsJSON(t, p)})
	require.Equal(t, TypeEnvSet, reply.Type, reply.Content)
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &data))
	assert.Equal(t, "none", data.Point.Outcome)

	// 非物理参数返回错误，会话保持可用
	bad := p
	bad.A1 = 0
	reply = roundTrip(t, conn, model.Msg{Type: TypeEnv, Content: paramsJSON(t, bad)})
	assert.Equal(t, TypeError, reply.Type)

	// 参数集不完整
	reply = roundTrip(t, conn, model.Msg{Type: TypeEnv, Content: `{"parameters":{"a1":0.5}}`})
	assert.Equal(t, TypeError, reply.Type)
	assert.Contains(t, reply.Content, "z1")

	reply = roundTrip(t, conn, model.Msg{Type: TypeCalculate})
	require.Equal(t, TypeCurves, reply.Type)
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &data))
	assert.Equal(t, p, data.Env.Parameters)

	// 只替换 grid
	reply = roundTrip(t, conn, model.Msg{Type: TypeEnv, Content: `{"grid":{"n":50,"vdot_min":0,"vdot_max":12}}`})
	require.Equal(t, TypeEnvSet, reply.Type, reply.Content)
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &data))
	assert.Len(t, data.Lines, 50)
	assert.Equal(t, p, data.Env.Parameters)
}

func TestHub_SampleLimit(t *testing.T) {
	conn := newTestConn(t)

	reply := roundTrip(t, conn, model.Msg{Type: TypeEnv, Content: `{"grid":{"n":2000000000,"vdot_min":0,"vdot_max":12}}`})
	assert.Equal(t, TypeError, reply.Type)
	assert.Contains(t, reply.Content, "exceeds limit")

	reply = roundTrip(t, conn, model.Msg{Type: TypeSweep, Content: `{"param":"ksys","n":2000000000}`})
	assert.Equal(t, TypeError, reply.Type)
	assert.Contains(t, reply.Content, "exceeds limit")

	reply = roundTrip(t, conn, model.Msg{Type: TypeCalculate})
	require.Equal(t, TypeCurves, reply.Type)
	var data curveReply
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &data))
	assert.Len(t, data.Lines, calculator.DefaultSamples)
}

func TestHub_Sweep(t *testing.T) {
	conn := newTestConn(t)

	reply := roundTrip(t, conn, model.Msg{Type: TypeSweep, Content: `{"param":"ksys","n":5}`})
	require.Equal(t, TypeSweep, reply.Type, reply.Content)

	var points []struct {
		Value float64 `json:"value"`
		Point struct {
			Outcome string `json:"outcome"`
		} `json:"operating_point"`
	}
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &points))
	require.Len(t, points, 5)
	assert.Equal(t, 0.01, points[0].Value)
	assert.Equal(t, "mismatch", points[0].Point.Outcome)
	assert.Equal(t, "found", points[4].Point.Outcome)

	reply = roundTrip(t, conn, model.Msg{Type: TypeSweep, Content: `{"param":"diameter","min":1,"max":2,"n":3}`})
	assert.Equal(t, TypeError, reply.Type)
}

func TestHub_Ranges(t *testing.T) {
	conn := newTestConn(t)

	reply := roundTrip(t, conn, model.Msg{Type: TypeRanges})
	require.Equal(t, TypeRanges, reply.Type)

	var data RangesData
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &data))
	assert.Equal(t, calculator.DefaultRanges(), data.Ranges)
	assert.Equal(t, calculator.DefaultConfig().Env(), data.Defaults)
}

func TestHub_UnknownAndMalformed(t *testing.T) {
	conn := newTestConn(t)

	reply := roundTrip(t, conn, model.Msg{Type: "start"})
	assert.Equal(t, TypeError, reply.Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var r model.Msg
	require.NoError(t, conn.ReadJSON(&r))
	assert.Equal(t, TypeError, r.Type)

	reply = roundTrip(t, conn, model.Msg{Type: TypeCalculate})
	assert.Equal(t, TypeCurves, reply.Type)
}

func TestHub_Dispatch(t *testing.T) {
	h := NewHub(calculator.NewCalculator(calculator.DefaultConfig()))
	assert.NotEmpty(t, h.id)

	reply := h.dispatch(context.Background(), model.Msg{Type: TypeEnv, Content: "[]"})
	assert.Equal(t, TypeError, reply.Type)

	reply = h.dispatch(context.Background(), model.Msg{Type: TypeCalculate})
	assert.Equal(t, TypeCurves, reply.Type)
}

func TestServer_Metrics(t *testing.T) {
	s := NewServer(calculator.DefaultConfig(), websocket.Upgrader{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
