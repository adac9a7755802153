package calculator

import "errors"

// 输入校验错误，在入口函数处直接返回
// 曲线不相交、插值校验不一致不属于错误，见 Outcome
var (
	// 采样区间或采样点数不合法
	ErrInvalidRange = errors.New("calculator: invalid sample range")

	// 非物理参数（截面积、比容、流量上限非正等）
	ErrDomain = errors.New("calculator: parameter outside physical domain")

	// 插值数组不合法
	ErrInvalidInput = errors.New("calculator: invalid interpolation input")
)
