package calculator

import (
	"math"

	"fluids/model"
)

// 作图用的单点数据，泵曲线未定义处 Hp 为 null
type LinePoint struct {
	Vdot float64  `json:"vdot"`
	SL   float64  `json:"sl"`
	Hp   *float64 `json:"hp"`
}

// 一次计算的全部结果
type Result struct {
	Env     model.Env
	Samples FlowSample
	Curves  CurvePair
	Point   OperatingPointResult
}

// 推送给前端的曲线数据
type CurveData struct {
	Env   model.Env            `json:"env"`
	Lines []LinePoint          `json:"lines"`
	XMin  float64              `json:"x_min"`
	XMax  float64              `json:"x_max"`
	YMin  float64              `json:"y_min"`
	YMax  float64              `json:"y_max"`
	Point OperatingPointResult `json:"operating_point"`
}

// Points 将采样点和两条曲线合并为逐点数据
func (c CurvePair) Points(s FlowSample) []LinePoint {
	points := make([]LinePoint, len(s))
	for i, vdot := range s {
		points[i] = LinePoint{Vdot: vdot, SL: c.SystemLoad[i]}
		if hp := c.PumpHead[i]; !math.IsNaN(hp) {
			points[i].Hp = &hp
		}
	}
	return points
}

// BuildData 构建推送数据
func (r *Result) BuildData() *CurveData {
	data := &CurveData{
		Env:   r.Env,
		Lines: r.Curves.Points(r.Samples),
		XMin:  r.Samples.Min(),
		XMax:  r.Samples.Max(),
		Point: r.Point,
	}
	if min, max, ok := r.Curves.Extent(); ok {
		data.YMin, data.YMax = min, max
	}
	return data
}
