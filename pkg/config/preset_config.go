package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// 动画预设配置
//
// 预设是构建在引擎之上的内容层：把常用的程序化动画
// （摇摆、呼吸、开箱等）描述成数据，由调用方按名称实例化。

// PresetKind 预设类型
const (
	PresetKindProperty = "property" // 单属性补间
	PresetKindKeyframe = "keyframe" // 多轨关键帧
)

// PresetFile 预设配置文件的顶层结构
type PresetFile struct {
	Presets []AnimPreset `yaml:"presets"`
}

// AnimPreset 单个动画预设
//
// kind 为 "property" 时使用 property/from/to/easing 字段，
// 为 "keyframe" 时使用 tracks 字段。
type AnimPreset struct {
	Name     string  `yaml:"name"`     // 预设名称（实例化时的查找键）
	Kind     string  `yaml:"kind"`     // "property" 或 "keyframe"，默认 "property"
	Property string  `yaml:"property"` // 属性点路径，如 "position.y"
	From     float64 `yaml:"from"`     // 补间起始值
	To       float64 `yaml:"to"`       // 补间结束值
	Duration float64 `yaml:"duration"` // 时长（秒），必须为正
	Loop     bool    `yaml:"loop"`     // 是否循环
	Priority int     `yaml:"priority"` // 淘汰优先级
	Easing   string  `yaml:"easing"`   // 缓动名称，默认 "linear"

	Tracks []TrackConfig `yaml:"tracks"` // 关键帧轨道（仅 keyframe 类型）
}

// TrackConfig 关键帧轨道配置
type TrackConfig struct {
	Property  string           `yaml:"property"`  // 属性点路径
	Keyframes []KeyframeConfig `yaml:"keyframes"` // 关键帧列表（无需预排序）
}

// KeyframeConfig 单个关键帧配置
type KeyframeConfig struct {
	Time   float64 `yaml:"time"`   // 归一化时间 [0,1]
	Value  float64 `yaml:"value"`  // 锚定值
	Easing string  `yaml:"easing"` // 到达该帧的缓动，默认 "linear"
}

// LoadPresetFile 从 YAML 文件加载动画预设
//
// 返回：
//   - []AnimPreset: 解析并校验后的预设列表
//   - error: 文件读取、解析或校验失败
func LoadPresetFile(path string) ([]AnimPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file %s: %w", path, err)
	}

	var file PresetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse preset YAML from %s: %w", path, err)
	}

	for i := range file.Presets {
		applyPresetDefaults(&file.Presets[i])
		if err := validatePreset(&file.Presets[i]); err != nil {
			return nil, fmt.Errorf("invalid preset in %s: %w", path, err)
		}
	}

	return file.Presets, nil
}

// applyPresetDefaults 为缺失的可选字段设置默认值
func applyPresetDefaults(p *AnimPreset) {
	if p.Kind == "" {
		p.Kind = PresetKindProperty
	}
	if p.Easing == "" {
		p.Easing = "linear"
	}
	for i := range p.Tracks {
		for j := range p.Tracks[i].Keyframes {
			if p.Tracks[i].Keyframes[j].Easing == "" {
				p.Tracks[i].Keyframes[j].Easing = "linear"
			}
		}
	}
}

// validatePreset 校验必填字段与数值合法性
// 与引擎的构造期拒绝策略一致：非正时长、NaN、越界关键帧都在加载时报错
func validatePreset(p *AnimPreset) error {
	if p.Name == "" {
		return fmt.Errorf("preset name is required")
	}
	if math.IsNaN(p.Duration) || p.Duration <= 0 {
		return fmt.Errorf("preset %q: duration must be positive, got %v", p.Name, p.Duration)
	}

	switch p.Kind {
	case PresetKindProperty:
		if p.Property == "" {
			return fmt.Errorf("preset %q: property path is required for property presets", p.Name)
		}
		if math.IsNaN(p.From) || math.IsNaN(p.To) {
			return fmt.Errorf("preset %q: from/to is NaN", p.Name)
		}
	case PresetKindKeyframe:
		if len(p.Tracks) == 0 {
			return fmt.Errorf("preset %q: at least one track is required for keyframe presets", p.Name)
		}
		for _, tr := range p.Tracks {
			if tr.Property == "" {
				return fmt.Errorf("preset %q: track property path is required", p.Name)
			}
			for _, kf := range tr.Keyframes {
				if math.IsNaN(kf.Time) || math.IsNaN(kf.Value) {
					return fmt.Errorf("preset %q: keyframe time/value is NaN", p.Name)
				}
				if kf.Time < 0 || kf.Time > 1 {
					return fmt.Errorf("preset %q: keyframe time %v out of range [0,1]", p.Name, kf.Time)
				}
			}
		}
	default:
		return fmt.Errorf("preset %q: unknown kind %q", p.Name, p.Kind)
	}
	return nil
}
