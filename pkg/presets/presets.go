// Package presets 把配置化的动画预设实例化到具体对象上
//
// 预设（pkg/config）描述动画内容，引擎（pkg/anim）负责执行；
// 本包是两者之间的薄装配层，供各游戏系统按名称套用预设。
package presets

import (
	"fmt"

	"github.com/gonewx/procanim/pkg/anim"
	"github.com/gonewx/procanim/pkg/config"
)

// Apply 把一个预设实例化到 (objectID, target) 上并立即启动
//
// property 预设创建一个补间动画，keyframe 预设创建一个多轨
// 关键帧动画。返回创建的动画ID列表（当前每个预设恰好一个）。
func Apply(system *anim.AnimationSystem, objectID string, target any, preset *config.AnimPreset) ([]string, error) {
	switch preset.Kind {
	case config.PresetKindProperty:
		id, err := system.AddPropertyAnimation(objectID, target,
			preset.Property, preset.From, preset.To,
			preset.Duration, preset.Loop, preset.Priority, preset.Easing)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", preset.Name, err)
		}
		system.StartAnimation(objectID, id)
		return []string{id}, nil

	case config.PresetKindKeyframe:
		tracks := make([]anim.Track, 0, len(preset.Tracks))
		for _, tc := range preset.Tracks {
			track := anim.Track{PropertyPath: tc.Property}
			for _, kc := range tc.Keyframes {
				track.Keyframes = append(track.Keyframes, anim.Keyframe{
					Time:   kc.Time,
					Value:  kc.Value,
					Easing: kc.Easing,
				})
			}
			tracks = append(tracks, track)
		}
		id, err := system.AddKeyframeAnimation(objectID, target, tracks,
			preset.Duration, preset.Loop, preset.Priority)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", preset.Name, err)
		}
		system.StartAnimation(objectID, id)
		return []string{id}, nil
	}
	return nil, fmt.Errorf("preset %q: unknown kind %q", preset.Name, preset.Kind)
}

// ApplyByName 从管理器按名称查找预设并实例化
func ApplyByName(system *anim.AnimationSystem, manager *config.PresetManager, objectID string, target any, name string) ([]string, error) {
	preset, ok := manager.Get(name)
	if !ok {
		return nil, fmt.Errorf("animation preset %q not found", name)
	}
	return Apply(system, objectID, target, &preset)
}
