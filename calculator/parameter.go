package calculator

import (
	"fmt"
	"math"

	"fluids/model"
)

// ValidateParameters 校验参数是否物理可行
// A1、A2、nu 作除数或物性，必须为正；gc 作除数不能为 0
func ValidateParameters(p model.ParameterSet) error {
	for _, name := range model.ParameterNames {
		v, _ := p.Get(name)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrDomain, name)
		}
	}
	if p.A1 <= 0 || p.A2 <= 0 {
		return fmt.Errorf("%w: areas must be positive, got A1=%v A2=%v", ErrDomain, p.A1, p.A2)
	}
	if p.Nu <= 0 {
		return fmt.Errorf("%w: specific volume must be positive, got %v", ErrDomain, p.Nu)
	}
	if p.Gc == 0 {
		return fmt.Errorf("%w: gc must be non-zero", ErrDomain)
	}
	return nil
}

func validatePump(pump model.Pump) error {
	if !(pump.VdotMax > 0) || math.IsInf(pump.VdotMax, 0) {
		return fmt.Errorf("%w: pump VdotMax must be positive, got %v", ErrDomain, pump.VdotMax)
	}
	if math.IsNaN(pump.HpMax) || math.IsInf(pump.HpMax, 0) {
		return fmt.Errorf("%w: pump HpMax is not finite", ErrDomain)
	}
	return nil
}

// 默认参数，滑块取中值
func DefaultParameters() model.ParameterSet {
	return model.ParameterSet{
		Z1:   0,
		Z2:   0,
		A1:   0.525,
		A2:   0.25,
		P1:   75,
		P2:   30,
		Nu:   0.017,
		Ksys: 4,
		G:    32,
		Gc:   32,
	}
}

// 默认滑块范围
func DefaultRanges() map[string]model.Range {
	return map[string]model.Range{
		model.ParamZ1:   {Min: -100, Max: 100},
		model.ParamA1:   {Min: 0.05, Max: 1},
		model.ParamP1:   {Min: 0, Max: 150},
		model.ParamNu:   {Min: 0.0160, Max: 0.0338},
		model.ParamKsys: {Min: 0.01, Max: 20},
	}
}
