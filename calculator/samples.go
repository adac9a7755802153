package calculator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// 流量采样序列 [ft^3/sec]，严格递增、等间距
type FlowSample []float64

// GenerateSamples 在 [min, max] 上生成 n 个等间距的流量采样点，首尾恰为 min 和 max
func GenerateSamples(n int, min, max float64) (FlowSample, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", ErrInvalidRange, n)
	}
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil, fmt.Errorf("%w: bounds must be finite, got [%v, %v]", ErrInvalidRange, min, max)
	}
	if max <= min {
		return nil, fmt.Errorf("%w: max %v must exceed min %v", ErrInvalidRange, max, min)
	}
	s := floats.Span(make([]float64, n), min, max)
	s[n-1] = max
	return s, nil
}

func (s FlowSample) Min() float64 { return s[0] }

func (s FlowSample) Max() float64 { return s[len(s)-1] }
