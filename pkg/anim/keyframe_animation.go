package anim

import (
	"fmt"
	"math"
	"sort"

	"github.com/gonewx/procanim/pkg/utils"
)

// Keyframe 单个关键帧：在归一化进度 Time ∈ [0,1] 处锚定一个属性值
// Easing 是到达该帧时使用的缓动名称（插值时取目标帧的缓动）
type Keyframe struct {
	Time   float64
	Value  float64
	Easing string
}

// Track 一条属性轨道：一条点路径加上按时间排序的关键帧序列
type Track struct {
	PropertyPath string
	Keyframes    []Keyframe
}

// compiledKeyframe 预解析缓动函数后的关键帧
type compiledKeyframe struct {
	time  float64
	value float64
	ease  utils.EaseFunc
}

// compiledTrack 构造期整理好的轨道：关键帧已按时间升序排序
type compiledTrack struct {
	path   string
	frames []compiledKeyframe
}

// KeyframeAnimation 多属性关键帧动画
//
// 每条轨道独立插值：按当前进度找到包围的关键帧对，
// localProgress 用目标帧的缓动函数整形后在两帧的值之间线性插值。
// 一次 Update 调用内所有轨道同时推进（如 position.y 和 rotation.z）。
type KeyframeAnimation struct {
	baseAnimation
	tracks []compiledTrack
}

// NewKeyframeAnimation 创建关键帧动画（初始未激活）
//
// 轨道中的关键帧无需预先排序，构造时统一按时间升序整理。
// 空轨道（零关键帧）按常量 0 处理，单关键帧轨道按常量处理——
// 这是确定性回退，不是错误。
//
// 返回：
//   - error: 时长非正/NaN、关键帧时间越界或数值为 NaN 时拒绝构造
func NewKeyframeAnimation(id string, target any, tracks []Track, duration float64, loop bool, priority int) (*KeyframeAnimation, error) {
	ka := &KeyframeAnimation{}
	if err := ka.init(id, target, tracks, duration, loop, priority); err != nil {
		return nil, err
	}
	return ka, nil
}

// init 初始化全部字段，供构造和对象池复用共用
func (ka *KeyframeAnimation) init(id string, target any, tracks []Track, duration float64, loop bool, priority int) error {
	if err := validateTiming(duration); err != nil {
		return err
	}

	compiled := make([]compiledTrack, 0, len(tracks))
	for _, tr := range tracks {
		ct := compiledTrack{path: tr.PropertyPath, frames: make([]compiledKeyframe, 0, len(tr.Keyframes))}
		for _, kf := range tr.Keyframes {
			if math.IsNaN(kf.Time) || math.IsNaN(kf.Value) {
				return fmt.Errorf("keyframe track %q: time/value is NaN", tr.PropertyPath)
			}
			if kf.Time < 0 || kf.Time > 1 {
				return fmt.Errorf("keyframe track %q: time %v out of range [0,1]", tr.PropertyPath, kf.Time)
			}
			ct.frames = append(ct.frames, compiledKeyframe{
				time:  kf.Time,
				value: kf.Value,
				ease:  utils.EasingByName(kf.Easing),
			})
		}
		sort.SliceStable(ct.frames, func(i, j int) bool {
			return ct.frames[i].time < ct.frames[j].time
		})
		compiled = append(compiled, ct)
	}

	ka.baseAnimation = baseAnimation{
		id:       id,
		target:   target,
		duration: duration,
		loop:     loop,
		priority: priority,
	}
	ka.tracks = compiled
	return nil
}

// TrackCount 返回轨道数量
func (ka *KeyframeAnimation) TrackCount() int { return len(ka.tracks) }

// sample 在给定进度处对轨道取值
//
// 进度落在首帧之前/末帧之后时用首帧/末帧的值兜底；
// 包围帧时间相等时直接返回该帧的值（避免除零）
func (ct *compiledTrack) sample(progress float64) float64 {
	fs := ct.frames
	switch len(fs) {
	case 0:
		return 0 // 零关键帧：常量 0
	case 1:
		return fs[0].value
	}
	if progress <= fs[0].time {
		return fs[0].value
	}
	if progress >= fs[len(fs)-1].time {
		return fs[len(fs)-1].value
	}
	for i := 0; i < len(fs)-1; i++ {
		a, b := fs[i], fs[i+1]
		if progress < a.time || progress > b.time {
			continue
		}
		if b.time == a.time {
			return a.value
		}
		local := (progress - a.time) / (b.time - a.time)
		return utils.Lerp(a.value, b.value, b.ease(local))
	}
	return fs[len(fs)-1].value
}

// Update 推进动画：每条轨道独立取值并写入目标
// 未激活时是空操作；返回 true 表示非循环动画已完成
func (ka *KeyframeAnimation) Update(deltaTime, clockNow float64) bool {
	if !ka.active {
		return false
	}

	progress, done := ka.progress(clockNow)
	for i := range ka.tracks {
		value := ka.tracks[i].sample(progress)
		// 单条轨道路径缺失不影响其余轨道
		writeFloat(ka.target, ka.tracks[i].path, value)
	}

	if done {
		ka.active = false
	}
	return done
}

// Reset 回绕动画：停用并把每条轨道写回首帧的值
func (ka *KeyframeAnimation) Reset() {
	ka.startTime = 0
	ka.active = false
	for i := range ka.tracks {
		first := 0.0
		if len(ka.tracks[i].frames) > 0 {
			first = ka.tracks[i].frames[0].value
		}
		writeFloat(ka.target, ka.tracks[i].path, first)
	}
}

// Cleanup 仅停用动画，目标属性保持当前值
func (ka *KeyframeAnimation) Cleanup() {
	ka.active = false
}

// retire 入池前的清理：停用、清零计时并释放目标与轨道引用
// 与 Reset 不同，不回写首帧值——完成的动画必须把终值留在目标上
func (ka *KeyframeAnimation) retire() {
	ka.active = false
	ka.startTime = 0
	ka.target = nil
	ka.tracks = nil
}

func (ka *KeyframeAnimation) kind() animationKind { return kindKeyframe }
