package calculator

import (
	"encoding/json"
	"fmt"
	"math"

	"fluids/model"
)

// 工作点求解结果类型
type Outcome int

const (
	// 求得工作点
	Found Outcome = iota
	// 曲线不相交，属于正常物理情形
	NoIntersection
	// 解析解与采样曲线插值不一致（平方引入伪根或采样网格未覆盖真实根）
	Mismatch
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NoIntersection:
		return "none"
	case Mismatch:
		return "mismatch"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// 工作点
type OperatingPoint struct {
	Vdot float64 `json:"vdot"` // [ft^3/sec]
	Hp   float64 `json:"hp"`   // [ft-lbf/lbm]
}

// 插值校验失败时的诊断信息
type MismatchDiagnostic struct {
	Vdot      float64 `json:"vdot"`
	PumpHead  float64 `json:"pump_head"`
	SysLoad   float64 `json:"system_load"`
	Diff      float64 `json:"diff"`
	Tolerance float64 `json:"tolerance"`
}

// 工作点求解结果：Found 时 Point 有效，Mismatch 时 Diagnostic 有效
type OperatingPointResult struct {
	Outcome    Outcome             `json:"outcome"`
	Point      OperatingPoint      `json:"point"`
	Diagnostic *MismatchDiagnostic `json:"diagnostic,omitempty"`
}

func (r OperatingPointResult) MarshalJSON() ([]byte, error) {
	type result struct {
		Outcome    Outcome             `json:"outcome"`
		Point      *OperatingPoint     `json:"point,omitempty"`
		Diagnostic *MismatchDiagnostic `json:"diagnostic,omitempty"`
	}
	out := result{Outcome: r.Outcome, Diagnostic: r.Diagnostic}
	if r.Outcome == Found {
		p := r.Point
		out.Point = &p
	}
	if out.Diagnostic != nil && !finiteDiagnostic(*out.Diagnostic) {
		// JSON 不能表示 NaN/Inf
		d := *out.Diagnostic
		d.PumpHead, d.SysLoad, d.Diff = finiteOrZero(d.PumpHead), finiteOrZero(d.SysLoad), finiteOrZero(d.Diff)
		out.Diagnostic = &d
	}
	return json.Marshal(out)
}

// FindOperatingPoint 求系统负载曲线与泵曲线的交点（解析解）
//
// SL = k·Vdot^2 + dpewf，Hp^2 = HpMax^2·(1 - Vdot^2/VdotMax^2)，令 SL = Hp 并平方，
// 得到关于 Vdot^2 的一元二次方程，取正根。
// 结果再用采样曲线插值校验，容差见 DefaultMatchTolerance。
func FindOperatingPoint(p model.ParameterSet, pump model.Pump, s FlowSample, curves CurvePair) (OperatingPointResult, error) {
	return FindOperatingPointWithTolerance(p, pump, s, curves, DefaultMatchTolerance)
}

// FindOperatingPointWithTolerance 同 FindOperatingPoint，指定插值校验容差
func FindOperatingPointWithTolerance(p model.ParameterSet, pump model.Pump, s FlowSample, curves CurvePair, tolerance float64) (OperatingPointResult, error) {
	if err := ValidateParameters(p); err != nil {
		return OperatingPointResult{}, err
	}
	if err := validatePump(pump); err != nil {
		return OperatingPointResult{}, err
	}
	if len(curves.SystemLoad) != len(s) || len(curves.PumpHead) != len(s) {
		return OperatingPointResult{}, fmt.Errorf("%w: curves (%d, %d) not aligned with %d samples",
			ErrInvalidInput, len(curves.SystemLoad), len(curves.PumpHead), len(s))
	}
	if !(tolerance >= 0) {
		return OperatingPointResult{}, fmt.Errorf("%w: tolerance must be non-negative, got %v", ErrInvalidInput, tolerance)
	}

	vdot2, ok := solveFlowSquared(p, pump)
	if !ok {
		return OperatingPointResult{Outcome: NoIntersection}, nil
	}
	vdot := math.Sqrt(vdot2)

	hpOf, err := MakeInterpolator(s, curves.PumpHead)
	if err != nil {
		return OperatingPointResult{}, err
	}
	slOf, err := MakeInterpolator(s, curves.SystemLoad)
	if err != nil {
		return OperatingPointResult{}, err
	}
	hp, sl := hpOf(vdot), slOf(vdot)
	diff := math.Abs(hp - sl)
	// NaN 比较恒为 false，采样未定义时同样判为不一致
	if !(diff <= tolerance) {
		return OperatingPointResult{
			Outcome: Mismatch,
			Diagnostic: &MismatchDiagnostic{
				Vdot:      vdot,
				PumpHead:  hp,
				SysLoad:   sl,
				Diff:      diff,
				Tolerance: tolerance,
			},
		}, nil
	}
	return OperatingPointResult{
		Outcome: Found,
		Point:   OperatingPoint{Vdot: vdot, Hp: hp},
	}, nil
}

// 解 a·x^2 + b·x + c = 0，x = Vdot^2
// 判别式为负或 x 为负时无解
func solveFlowSquared(p model.ParameterSet, pump model.Pump) (float64, bool) {
	dpewf := flowIndependentHead(p)
	k := flowSquaredCoefficient(p)
	hp2 := pump.HpMax * pump.HpMax

	a := k * k
	b := 2*k*dpewf + hp2/(pump.VdotMax*pump.VdotMax)
	c := dpewf*dpewf - hp2

	var x float64
	if a == 0 {
		// k = 0，系统负载为常数，方程退化为一次
		if b == 0 {
			return 0, false
		}
		x = -c / b
	} else {
		disc := b*b - 4*a*c
		if disc < 0 {
			return 0, false
		}
		x = (-b + math.Sqrt(disc)) / (2 * a)
	}
	if math.IsNaN(x) || x < 0 {
		return 0, false
	}
	return x, true
}

func finiteDiagnostic(d MismatchDiagnostic) bool {
	return !math.IsNaN(d.PumpHead+d.SysLoad+d.Diff) && !math.IsInf(d.PumpHead+d.SysLoad+d.Diff, 0)
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
