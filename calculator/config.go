package calculator

import (
	"fmt"
	"math"
	"strings"

	"fluids/model"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

type Config struct {
	Samples        int
	MaxSamples     int
	VdotMin        float64
	VdotMax        float64
	MatchTolerance float64
	Workers        int

	Pump       model.Pump
	Parameters model.ParameterSet
	Ranges     map[string]model.Range

	Addr     string
	LogLevel string
}

// LoadConfig 读取 ini 配置文件，缺省项取默认值
func LoadConfig(path string) (Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("配置文件读取错误，请检查文件路径: %w", err)
	}
	return loadCfg(file), nil
}

func DefaultConfig() Config {
	return loadCfg(ini.Empty())
}

func loadCfg(file *ini.File) Config {
	pump := file.Section("pump")
	calc := file.Section("calculator")
	params := file.Section("parameters")
	def := DefaultParameters()

	cfg := Config{
		Samples:        calc.Key("samples").MustInt(DefaultSamples),
		MaxSamples:     calc.Key("max_samples").MustInt(DefaultMaxSamples),
		VdotMin:        calc.Key("vdot_min").MustFloat64(0),
		MatchTolerance: calc.Key("match_tolerance").MustFloat64(DefaultMatchTolerance),
		Workers:        calc.Key("workers").MustInt(DefaultWorkers),
		Pump: model.Pump{
			HpMax:   pump.Key("hp_max").MustFloat64(400),
			VdotMax: pump.Key("vdot_max").MustFloat64(12),
		},
		Parameters: model.ParameterSet{
			Z1:   params.Key("z1").MustFloat64(def.Z1),
			Z2:   params.Key("z2").MustFloat64(def.Z2),
			A1:   params.Key("a1").MustFloat64(def.A1),
			A2:   params.Key("a2").MustFloat64(def.A2),
			P1:   params.Key("p1").MustFloat64(def.P1),
			P2:   params.Key("p2").MustFloat64(def.P2),
			Nu:   params.Key("nu").MustFloat64(def.Nu),
			Ksys: params.Key("ksys").MustFloat64(def.Ksys),
			G:    params.Key("g").MustFloat64(def.G),
			Gc:   params.Key("gc").MustFloat64(def.Gc),
		},
		Ranges:   make(map[string]model.Range),
		Addr:     file.Section("server").Key("addr").MustString(":9000"),
		LogLevel: file.Section("log").Key("level").MustString("info"),
	}
	if cfg.MaxSamples < 2 {
		log.WithField("max_samples", cfg.MaxSamples).Warn("采样点数上限无效，使用默认值")
		cfg.MaxSamples = DefaultMaxSamples
	}
	if math.IsNaN(cfg.MatchTolerance) || cfg.MatchTolerance < 0 {
		log.WithField("match_tolerance", cfg.MatchTolerance).Warn("工作点校验容差无效，使用默认值")
		cfg.MatchTolerance = DefaultMatchTolerance
	}
	// 采样上限缺省与泵的最大流量一致
	cfg.VdotMax = calc.Key("vdot_max").MustFloat64(cfg.Pump.VdotMax)

	ranges := file.Section("ranges")
	for name, r := range DefaultRanges() {
		key := strings.ToLower(name)
		cfg.Ranges[name] = model.Range{
			Min: ranges.Key(key + "_min").MustFloat64(r.Min),
			Max: ranges.Key(key + "_max").MustFloat64(r.Max),
		}
	}
	// 配置中额外给出的范围，如 a2_min / a2_max
	for _, name := range model.ParameterNames {
		key := strings.ToLower(name)
		if _, ok := cfg.Ranges[name]; ok {
			continue
		}
		if ranges.HasKey(key+"_min") && ranges.HasKey(key+"_max") {
			cfg.Ranges[name] = model.Range{
				Min: ranges.Key(key + "_min").MustFloat64(0),
				Max: ranges.Key(key + "_max").MustFloat64(0),
			}
		}
	}
	return cfg
}

// Env 配置对应的初始计算环境
func (c Config) Env() model.Env {
	return model.Env{
		Parameters: c.Parameters,
		Pump:       c.Pump,
		Grid: model.Grid{
			N:       c.Samples,
			VdotMin: c.VdotMin,
			VdotMax: c.VdotMax,
		},
	}
}
