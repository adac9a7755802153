package calculator

import (
	"context"
	"fmt"

	"fluids/model"
)

// 参数扫描中一个取值对应的工作点
type SweepPoint struct {
	Value float64              `json:"value"`
	Point OperatingPointResult `json:"operating_point"`
}

// SweepOperatingPoint 在 values 上逐个替换参数 param，求各自的工作点
// 结果与 values 下标对齐
func SweepOperatingPoint(ctx context.Context, env model.Env, param string, values []float64, workers int, tolerance float64) ([]SweepPoint, error) {
	if _, err := env.Parameters.Get(param); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	samples, err := GenerateSamples(env.Grid.N, env.Grid.VdotMin, env.Grid.VdotMax)
	if err != nil {
		return nil, err
	}

	points := make([]SweepPoint, len(values))
	err = newExecutor(workers).dispatch(ctx, len(values), func(i int) error {
		p, err := env.Parameters.With(param, values[i])
		if err != nil {
			return err
		}
		curves, err := ComputeCurves(samples, p, env.Pump)
		if err != nil {
			return fmt.Errorf("sweep %s=%v: %w", param, values[i], err)
		}
		res, err := FindOperatingPointWithTolerance(p, env.Pump, samples, curves, tolerance)
		if err != nil {
			return fmt.Errorf("sweep %s=%v: %w", param, values[i], err)
		}
		points[i] = SweepPoint{Value: values[i], Point: res}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}
