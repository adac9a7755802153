package calculator

import (
	"fmt"
	"math"

	"fluids/model"

	"gonum.org/v1/gonum/floats"
)

// 与流量采样逐点对齐的两条扬程曲线 [ft-lbf/lbm]
type CurvePair struct {
	SystemLoad []float64
	PumpHead   []float64
}

// SystemLoadHead 系统负载扬程（伯努利方程）
// Hp = (v2^2 - v1^2)/(2gc) + (z2 - z1)g/gc + (P2 - P1)ν·144 + ksys·Vdot^2
func SystemLoadHead(vdot float64, p model.ParameterSet) (float64, error) {
	if p.A1 <= 0 || p.A2 <= 0 {
		return 0, fmt.Errorf("%w: areas must be positive, got A1=%v A2=%v", ErrDomain, p.A1, p.A2)
	}
	if p.Gc == 0 {
		return 0, fmt.Errorf("%w: gc must be non-zero", ErrDomain)
	}
	v2 := vdot / p.A2
	v1 := vdot / p.A1
	return (v2*v2-v1*v1)/(2*p.Gc) + flowIndependentHead(p) + p.Ksys*vdot*vdot, nil
}

// PumpHead 椭圆泵曲线 Hp = HpMax·sqrt(1 - (Vdot/VdotMax)^2)
// |Vdot| > VdotMax 时返回 NaN，不中断整条曲线的计算
func PumpHead(vdot, hpMax, vdotMax float64) float64 {
	r := vdot / vdotMax
	radicand := 1 - r*r
	if radicand < 0 {
		return math.NaN()
	}
	return hpMax * math.Sqrt(radicand)
}

// ComputeCurves 在采样点上逐点计算系统负载曲线和泵曲线
func ComputeCurves(s FlowSample, p model.ParameterSet, pump model.Pump) (CurvePair, error) {
	if err := ValidateParameters(p); err != nil {
		return CurvePair{}, err
	}
	if err := validatePump(pump); err != nil {
		return CurvePair{}, err
	}
	curves := CurvePair{
		SystemLoad: make([]float64, len(s)),
		PumpHead:   make([]float64, len(s)),
	}
	for i, vdot := range s {
		sl, err := SystemLoadHead(vdot, p)
		if err != nil {
			return CurvePair{}, err
		}
		curves.SystemLoad[i] = sl
		curves.PumpHead[i] = PumpHead(vdot, pump.HpMax, pump.VdotMax)
	}
	return curves, nil
}

// 与流量无关的部分：位能差 + 压能差
func flowIndependentHead(p model.ParameterSet) float64 {
	return (p.Z2-p.Z1)*p.G/p.Gc + (p.P2-p.P1)*p.Nu*PsiFt3PerLbmToFtLbfPerLbm
}

// Vdot^2 项系数：动能差 + 系统阻力
func flowSquaredCoefficient(p model.ParameterSet) float64 {
	return (1/(p.A2*p.A2)-1/(p.A1*p.A1))/(2*p.Gc) + p.Ksys
}

// Extent 两条曲线的取值范围（作图 y 轴），跳过泵曲线中的 NaN
// 全部未定义时 ok 为 false
func (c CurvePair) Extent() (min, max float64, ok bool) {
	defined := make([]float64, 0, len(c.SystemLoad)+len(c.PumpHead))
	for _, v := range c.SystemLoad {
		if !math.IsNaN(v) {
			defined = append(defined, v)
		}
	}
	for _, v := range c.PumpHead {
		if !math.IsNaN(v) {
			defined = append(defined, v)
		}
	}
	if len(defined) == 0 {
		return 0, 0, false
	}
	return floats.Min(defined), floats.Max(defined), true
}

// Undefined 泵曲线中超出定义域（NaN）的采样点下标
func (c CurvePair) Undefined() []int {
	var idx []int
	for i, v := range c.PumpHead {
		if math.IsNaN(v) {
			idx = append(idx, i)
		}
	}
	return idx
}
