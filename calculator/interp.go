package calculator

import (
	"fmt"
	"sort"
)

// 分段线性插值函数
type Interpolator func(x float64) float64

// MakeInterpolator 由严格递增的 xs 和等长的 ys 构造分段线性插值
// 区间外沿首段或末段斜率外推，不截断
func MakeInterpolator(xs, ys []float64) (Interpolator, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: xs has %d points, ys has %d", ErrInvalidInput, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidInput, len(xs))
	}
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return nil, fmt.Errorf("%w: xs not strictly increasing at index %d", ErrInvalidInput, i)
		}
	}
	// 拷贝一份，调用方之后修改原数组不影响插值
	x := append([]float64(nil), xs...)
	y := append([]float64(nil), ys...)
	last := len(x) - 2

	return func(v float64) float64 {
		// 最后一个 x[i] <= v 的下标
		i := sort.Search(len(x), func(j int) bool { return x[j] > v }) - 1
		if i < 0 {
			i = 0
		}
		if i > last {
			i = last
		}
		t := (v - x[i]) / (x[i+1] - x[i])
		// 节点处直接取值，相邻点为 NaN 时不受影响
		if t == 0 {
			return y[i]
		}
		if t == 1 {
			return y[i+1]
		}
		return y[i]*(1-t) + y[i+1]*t
	}, nil
}
