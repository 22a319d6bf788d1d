package anim

import (
	"fmt"
	"math"

	"github.com/gonewx/procanim/pkg/utils"
)

// PropertyAnimation 单标量补间动画
//
// 沿一条点路径把目标属性从 startValue 补间到 endValue：
//
//	value = startValue + (endValue - startValue) * easing(progress)
//
// progress 由共享时钟与 startTime 推导（见 baseAnimation.progress），
// 循环动画按 1 取模，非循环动画到达 1 时完成并自动停用。
type PropertyAnimation struct {
	baseAnimation
	propertyPath string
	startValue   float64
	endValue     float64
	easing       utils.EaseFunc
	easingName   string
}

// NewPropertyAnimation 创建单属性补间动画（初始未激活）
//
// 参数：
//   - id: 动画唯一标识（由 AnimationSystem 生成）
//   - target: 目标对象句柄（任意暴露数值属性树的对象）
//   - propertyPath: 点路径，如 "position.y"
//   - startValue/endValue: 补间起止值
//   - duration: 时长（秒），必须为正
//   - loop: 是否循环
//   - priority: 淘汰优先级
//   - easing: 缓动函数名称（未知名称回退线性）
//
// 返回：
//   - error: 时长非正、时长或起止值为 NaN 时拒绝构造
func NewPropertyAnimation(id string, target any, propertyPath string, startValue, endValue, duration float64, loop bool, priority int, easing string) (*PropertyAnimation, error) {
	pa := &PropertyAnimation{}
	if err := pa.init(id, target, propertyPath, startValue, endValue, duration, loop, priority, easing); err != nil {
		return nil, err
	}
	return pa, nil
}

// init 初始化全部字段，供构造和对象池复用共用
func (pa *PropertyAnimation) init(id string, target any, propertyPath string, startValue, endValue, duration float64, loop bool, priority int, easing string) error {
	if err := validateTiming(duration); err != nil {
		return err
	}
	if math.IsNaN(startValue) || math.IsNaN(endValue) {
		return fmt.Errorf("property animation %q: start/end value is NaN", propertyPath)
	}

	pa.baseAnimation = baseAnimation{
		id:       id,
		target:   target,
		duration: duration,
		loop:     loop,
		priority: priority,
	}
	pa.propertyPath = propertyPath
	pa.startValue = startValue
	pa.endValue = endValue
	pa.easing = utils.EasingByName(easing)
	pa.easingName = easing
	return nil
}

// PropertyPath 返回动画驱动的属性路径
func (pa *PropertyAnimation) PropertyPath() string { return pa.propertyPath }

// Update 推进动画并把插值结果写入目标属性
// 未激活时是空操作；返回 true 表示非循环动画已完成
func (pa *PropertyAnimation) Update(deltaTime, clockNow float64) bool {
	if !pa.active {
		return false
	}

	progress, done := pa.progress(clockNow)
	value := utils.Lerp(pa.startValue, pa.endValue, pa.easing(progress))
	// 路径缺失时静默跳过写入，动画仍照常推进
	writeFloat(pa.target, pa.propertyPath, value)

	if done {
		pa.active = false
	}
	return done
}

// Reset 回绕动画：清零起始时间、停用、把起始值写回目标
func (pa *PropertyAnimation) Reset() {
	pa.startTime = 0
	pa.active = false
	writeFloat(pa.target, pa.propertyPath, pa.startValue)
}

// Cleanup 仅停用动画，目标属性保持当前值
func (pa *PropertyAnimation) Cleanup() {
	pa.active = false
}

// retire 入池前的清理：停用、清零计时并释放目标引用
// 与 Reset 不同，不回写起始值——完成的动画必须把终值留在目标上
func (pa *PropertyAnimation) retire() {
	pa.active = false
	pa.startTime = 0
	pa.target = nil
}

func (pa *PropertyAnimation) kind() animationKind { return kindProperty }
