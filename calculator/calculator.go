package calculator

import (
	"context"
	"fmt"
	"time"

	"fluids/metrics"
	"fluids/model"

	log "github.com/sirupsen/logrus"
)

// calculator 的接口定义
// 一个前端会话对应一个 Calculator，不可并发使用

type Calculator interface {
	// 整体替换计算环境
	SetEnv(env model.Env) error

	// 当前计算环境
	Env() model.Env

	// 重新计算曲线和工作点
	Calculate() (*Result, error)

	// 参数扫描
	Sweep(ctx context.Context, req model.SweepRequest) ([]SweepPoint, error)

	// 滑块范围
	Ranges() map[string]model.Range
}

type loopCalculator struct {
	cfg Config
	env model.Env
}

func NewCalculator(cfg Config) Calculator {
	return &loopCalculator{
		cfg: cfg,
		env: cfg.Env(),
	}
}

func (c *loopCalculator) SetEnv(env model.Env) error {
	if err := ValidateParameters(env.Parameters); err != nil {
		return err
	}
	if err := validatePump(env.Pump); err != nil {
		return err
	}
	if err := c.checkSamples(env.Grid.N); err != nil {
		return err
	}
	if _, err := GenerateSamples(env.Grid.N, env.Grid.VdotMin, env.Grid.VdotMax); err != nil {
		return err
	}
	c.env = env
	log.WithFields(log.Fields{
		"z1":      env.Parameters.Z1,
		"z2":      env.Parameters.Z2,
		"A1":      env.Parameters.A1,
		"A2":      env.Parameters.A2,
		"P1":      env.Parameters.P1,
		"P2":      env.Parameters.P2,
		"nu":      env.Parameters.Nu,
		"ksys":    env.Parameters.Ksys,
		"HpMax":   env.Pump.HpMax,
		"VdotMax": env.Pump.VdotMax,
		"n":       env.Grid.N,
	}).Info("设置计算参数")
	return nil
}

func (c *loopCalculator) Env() model.Env {
	return c.env
}

func (c *loopCalculator) Calculate() (*Result, error) {
	start := time.Now()
	env := c.env
	samples, err := GenerateSamples(env.Grid.N, env.Grid.VdotMin, env.Grid.VdotMax)
	if err != nil {
		return nil, err
	}
	curves, err := ComputeCurves(samples, env.Parameters, env.Pump)
	if err != nil {
		return nil, err
	}
	point, err := FindOperatingPointWithTolerance(env.Parameters, env.Pump, samples, curves, c.cfg.MatchTolerance)
	if err != nil {
		return nil, err
	}
	metrics.RecordCalculation(point.Outcome.String(), time.Since(start))

	switch point.Outcome {
	case Found:
		log.WithFields(log.Fields{
			"Vdot": point.Point.Vdot,
			"Hp":   point.Point.Hp,
		}).Debug("工作点")
	case NoIntersection:
		log.Info("系统负载曲线与泵曲线无交点")
	case Mismatch:
		d := point.Diagnostic
		log.WithFields(log.Fields{
			"Vdot":      d.Vdot,
			"Hp":        d.PumpHead,
			"SL":        d.SysLoad,
			"diff":      d.Diff,
			"tolerance": d.Tolerance,
		}).Warn("工作点解析解与采样曲线不一致")
	}
	if undefined := curves.Undefined(); len(undefined) > 0 {
		log.WithField("count", len(undefined)).Debug("采样流量超出泵曲线定义域")
	}

	return &Result{
		Env:     env,
		Samples: samples,
		Curves:  curves,
		Point:   point,
	}, nil
}

func (c *loopCalculator) Sweep(ctx context.Context, req model.SweepRequest) ([]SweepPoint, error) {
	r, ok := c.cfg.Ranges[req.Param]
	if req.Min != nil {
		r.Min = *req.Min
	}
	if req.Max != nil {
		r.Max = *req.Max
	}
	if !ok && (req.Min == nil || req.Max == nil) {
		return nil, fmt.Errorf("%w: no range configured for %q, min and max are required", ErrInvalidRange, req.Param)
	}
	n := req.N
	if n == 0 {
		n = c.cfg.Samples
	}
	if err := c.checkSamples(n); err != nil {
		return nil, err
	}
	values, err := GenerateSamples(n, r.Min, r.Max)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	points, err := SweepOperatingPoint(ctx, c.env, req.Param, values, c.cfg.Workers, c.cfg.MatchTolerance)
	if err != nil {
		return nil, err
	}
	metrics.AddSweepPoints(len(points))
	log.WithFields(log.Fields{
		"param": req.Param,
		"min":   values.Min(),
		"max":   values.Max(),
		"n":     n,
		"cost":  time.Since(start),
	}).Info("参数扫描完成")
	return points, nil
}

// 采样点数由前端给出，超过上限直接拒绝
func (c *loopCalculator) checkSamples(n int) error {
	if n > c.cfg.MaxSamples {
		return fmt.Errorf("%w: %d samples exceeds limit %d", ErrInvalidRange, n, c.cfg.MaxSamples)
	}
	return nil
}

func (c *loopCalculator) Ranges() map[string]model.Range {
	ranges := make(map[string]model.Range, len(c.cfg.Ranges))
	for k, v := range c.cfg.Ranges {
		ranges[k] = v
	}
	return ranges
}
