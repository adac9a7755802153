package model

import "fmt"

// 参数名，与前端滑块 id 一致
const (
	ParamZ1   = "z1"
	ParamZ2   = "z2"
	ParamA1   = "A1"
	ParamA2   = "A2"
	ParamP1   = "P1"
	ParamP2   = "P2"
	ParamNu   = "nu"
	ParamKsys = "ksys"
	ParamG    = "g"
	ParamGc   = "gc"
)

var ParameterNames = []string{ParamZ1, ParamZ2, ParamA1, ParamA2, ParamP1, ParamP2, ParamNu, ParamKsys, ParamG, ParamGc}

// With 返回替换了一个参数后的新参数集，原参数集不变
func (p ParameterSet) With(name string, value float64) (ParameterSet, error) {
	switch name {
	case ParamZ1:
		p.Z1 = value
	case ParamZ2:
		p.Z2 = value
	case ParamA1:
		p.A1 = value
	case ParamA2:
		p.A2 = value
	case ParamP1:
		p.P1 = value
	case ParamP2:
		p.P2 = value
	case ParamNu:
		p.Nu = value
	case ParamKsys:
		p.Ksys = value
	case ParamG:
		p.G = value
	case ParamGc:
		p.Gc = value
	default:
		return p, fmt.Errorf("unknown parameter %q", name)
	}
	return p, nil
}

// Get 按名称读取参数
func (p ParameterSet) Get(name string) (float64, error) {
	switch name {
	case ParamZ1:
		return p.Z1, nil
	case ParamZ2:
		return p.Z2, nil
	case ParamA1:
		return p.A1, nil
	case ParamA2:
		return p.A2, nil
	case ParamP1:
		return p.P1, nil
	case ParamP2:
		return p.P2, nil
	case ParamNu:
		return p.Nu, nil
	case ParamKsys:
		return p.Ksys, nil
	case ParamG:
		return p.G, nil
	case ParamGc:
		return p.Gc, nil
	}
	return 0, fmt.Errorf("unknown parameter %q", name)
}
