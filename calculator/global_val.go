package calculator

const (
	// psi·ft^3/lbm 换算为 ft·lbf/lbm
	PsiFt3PerLbmToFtLbfPerLbm = 144

	// 工作点插值校验容差 [ft-lbf/lbm]，两条曲线插值结果之差不得超过该值
	DefaultMatchTolerance = 0.5

	DefaultSamples = 100
	// 单次请求允许的最大采样点数
	DefaultMaxSamples = 10000
	DefaultWorkers = 4
)
