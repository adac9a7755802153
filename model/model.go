package model

// 伯努利方程参数（系统侧）
// 每次参数变化整体替换，计算核心只读不写
type ParameterSet struct {
	Z1   float64 `json:"z1"`   // 入口高程 [ft]
	Z2   float64 `json:"z2"`   // 出口高程 [ft]
	A1   float64 `json:"a1"`   // 入口截面积 [ft^2]
	A2   float64 `json:"a2"`   // 出口截面积 [ft^2]
	P1   float64 `json:"p1"`   // 入口压力 [psia]
	P2   float64 `json:"p2"`   // 出口压力 [psia]
	Nu   float64 `json:"nu"`   // 比容 [ft^3/lbm]
	Ksys float64 `json:"ksys"` // 系统阻力系数 [lbf-sec^2/lbm-ft^5]
	G    float64 `json:"g"`    // 重力加速度 [ft/sec^2]
	Gc   float64 `json:"gc"`   // 重力换算常数 [ft-lbm/lbf-sec^2]
}

// 泵特性（椭圆泵曲线），与系统参数无关
type Pump struct {
	HpMax   float64 `json:"hp_max"`   // 零流量扬程 [ft-lbf/lbm]
	VdotMax float64 `json:"vdot_max"` // 零扬程流量 [ft^3/sec]
}

// 流量采样网格
type Grid struct {
	N       int     `json:"n"`
	VdotMin float64 `json:"vdot_min"`
	VdotMax float64 `json:"vdot_max"`
}

// 前端一次提交的完整计算环境
type Env struct {
	Parameters ParameterSet `json:"parameters"`
	Pump       Pump         `json:"pump"`
	Grid       Grid         `json:"grid"`
}

// 滑块取值范围
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// 参数扫描请求，min/max 缺省时取配置中的范围
type SweepRequest struct {
	Param string   `json:"param"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	N     int      `json:"n"`
}

// 消息类型
const (
	MsgEnv       = "env"
	MsgEnvSet    = "envSet"
	MsgCalculate = "calculate"
	MsgCurves    = "curves"
	MsgSweep     = "sweep"
	MsgRanges    = "ranges"
	MsgError     = "error"
)

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}
