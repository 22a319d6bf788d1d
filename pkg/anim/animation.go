// Package anim 实现程序化动画引擎的核心数据结构与算法
//
// 引擎以离散的 Update(deltaTime) 调用驱动，负责对场景对象的数值属性
// （位置、旋转、缩放及任意嵌套属性）做连续的定时变化：
//   - 两种动画变体：PropertyAnimation（单属性补间）和 KeyframeAnimation（多轨关键帧）
//   - 按对象的动画注册表，超出容量时按优先级淘汰
//   - 退役实例进入有界对象池复用，降低分配压力
//   - 基于观察者距离的裁剪，跳过远处对象的更新
//
// 引擎是单线程协作式的：所有目标属性的修改都在 Update() 内同步完成，
// 不创建内部 goroutine，也不需要锁。
package anim

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"
)

// animationKind 动画变体类型（封闭集合，只有两种）
type animationKind int

const (
	kindProperty animationKind = iota
	kindKeyframe
)

// Animation 是时间驱动属性变化的多态单元
//
// 封闭接口：只有 PropertyAnimation 和 KeyframeAnimation 两种实现
// （通过未导出的 kind() 方法封闭，外部包无法新增变体）
type Animation interface {
	// ID 返回动画的唯一标识符
	ID() string
	// Target 返回被驱动的目标对象句柄
	Target() any
	// Priority 返回淘汰优先级（仅用于超出容量时的淘汰判定）
	Priority() int
	// IsActive 返回动画是否激活（未激活的动画不产生任何效果）
	IsActive() bool
	// Duration 返回动画时长（秒）
	Duration() float64
	// IsLooping 返回动画是否循环播放
	IsLooping() bool
	// Start 激活动画，并把起始时间锚定到当前时钟
	Start(clockNow float64)
	// Stop 停用动画（不从注册表移除）
	Stop()
	// Update 按当前时钟推进动画并写入目标属性
	// 返回 true 表示非循环动画已完成（完成时自动停用）
	Update(deltaTime, clockNow float64) bool
	// Reset 回绕动画：停用、清零起始时间、把目标属性写回初始值
	Reset()
	// Cleanup 仅停用动画，不回写目标属性
	Cleanup()

	kind() animationKind
	retire()
}

// baseAnimation 两种动画变体共享的记录
type baseAnimation struct {
	id        string
	target    any
	duration  float64
	loop      bool
	startTime float64
	active    bool
	priority  int
}

func (b *baseAnimation) ID() string        { return b.id }
func (b *baseAnimation) Target() any       { return b.target }
func (b *baseAnimation) Priority() int     { return b.priority }
func (b *baseAnimation) IsActive() bool    { return b.active }
func (b *baseAnimation) Duration() float64 { return b.duration }
func (b *baseAnimation) IsLooping() bool   { return b.loop }

func (b *baseAnimation) Start(clockNow float64) {
	b.startTime = clockNow
	b.active = true
}

func (b *baseAnimation) Stop() {
	b.active = false
}

// progress 计算当前归一化进度
//
// 非循环：progress = min(elapsed/duration, 1)，到达 1 时 done=true
// 循环：progress = (elapsed/duration) mod 1，永不完成
func (b *baseAnimation) progress(clockNow float64) (p float64, done bool) {
	elapsed := clockNow - b.startTime
	raw := elapsed / b.duration
	if raw < 0 {
		raw = 0
	}
	if b.loop {
		return math.Mod(raw, 1), false
	}
	if raw >= 1 {
		return 1, true
	}
	return raw, false
}

// validateTiming 校验构造参数中的时长
// 非正数或 NaN 的时长在构造期拒绝，保证稳态 Update 无需任何校验分支
func validateTiming(duration float64) error {
	if math.IsNaN(duration) {
		return fmt.Errorf("animation duration is NaN")
	}
	if duration <= 0 {
		return fmt.Errorf("animation duration must be positive, got %v", duration)
	}
	return nil
}

// idCounter 进程内单调递增计数器
// 时间戳在快速连续创建时可能重复，计数器保证 ID 仍然唯一
var idCounter atomic.Uint64

// newAnimationID 生成动画唯一标识
// 格式：对象ID_种类_纳秒时间戳_序号
func newAnimationID(objectID, kind string) string {
	return fmt.Sprintf("%s_%s_%d_%d", objectID, kind, time.Now().UnixNano(), idCounter.Add(1))
}
