package anim

import (
	"math"
	"testing"
)

// TestPropertyAnimationLinear 测试线性补间在整个时长内逐点符合闭式解
// value(t) = start + (end-start) * (t/duration)
func TestPropertyAnimationLinear(t *testing.T) {
	sprite := &testSprite{}
	pa, err := NewPropertyAnimation("a1", sprite, "position.y", 0, 10, 2.0, false, 0, "linear")
	if err != nil {
		t.Fatalf("NewPropertyAnimation failed: %v", err)
	}

	pa.Start(0)
	for _, tick := range []float64{0.0, 0.25, 0.5, 1.0, 1.5, 2.0} {
		pa.Update(0, tick)
		expected := 10 * (tick / 2.0)
		if math.Abs(sprite.Position.Y-expected) > 1e-9 {
			t.Errorf("t=%v: position.y = %v, 期望 %v", tick, sprite.Position.Y, expected)
		}
	}
}

// TestPropertyAnimationEndpoint 测试非循环动画到达终点后精确等于终值
func TestPropertyAnimationEndpoint(t *testing.T) {
	sprite := &testSprite{}
	pa, _ := NewPropertyAnimation("a1", sprite, "position.y", 0, 10, 1.0, false, 0, "linear")
	pa.Start(0)

	// 超过时长：进度截断在 1，值精确为终值
	done := pa.Update(0, 3.5)
	if !done {
		t.Error("超过时长后 Update 应返回完成")
	}
	if sprite.Position.Y != 10 {
		t.Errorf("position.y = %v, 期望精确等于 10", sprite.Position.Y)
	}
	if pa.IsActive() {
		t.Error("完成后动画应自动停用")
	}
}

// TestPropertyAnimationScenarioA 场景A：0→10 时长1秒，update(1.0) 后 position.y≈10
func TestPropertyAnimationScenarioA(t *testing.T) {
	system := NewAnimationSystem()
	sprite := &testSprite{}

	id := mustAddProperty(t, system, "obj1", sprite, "position.y", 0, 10, 1.0, false, 0, "linear")
	system.StartAnimation("obj1", id)
	system.Update(1.0)

	if math.Abs(sprite.Position.Y-10) > 1e-3 {
		t.Errorf("position.y = %v, 期望 ≈10", sprite.Position.Y)
	}
}

// TestPropertyAnimationScenarioB 场景B：循环动画 update(1.5) 对应进度 0.5
func TestPropertyAnimationScenarioB(t *testing.T) {
	system := NewAnimationSystem()
	sprite := &testSprite{}

	id := mustAddProperty(t, system, "obj1", sprite, "position.y", 0, 10, 1.0, true, 0, "linear")
	system.StartAnimation("obj1", id)
	system.Update(1.5)

	if math.Abs(sprite.Position.Y-5) > 1e-3 {
		t.Errorf("position.y = %v, 期望 ≈5 (循环取模后的进度 0.5)", sprite.Position.Y)
	}
}

// TestPropertyAnimationLoopPeriodicity 测试循环动画的周期性
// value(duration + k) == value(k mod duration)
func TestPropertyAnimationLoopPeriodicity(t *testing.T) {
	duration := 2.0
	for _, k := range []float64{0.3, 0.7, 1.1, 1.9} {
		s1 := &testSprite{}
		pa1, _ := NewPropertyAnimation("a1", s1, "position.y", 0, 10, duration, true, 0, "easeInOut")
		pa1.Start(0)
		pa1.Update(0, duration+k)

		s2 := &testSprite{}
		pa2, _ := NewPropertyAnimation("a2", s2, "position.y", 0, 10, duration, true, 0, "easeInOut")
		pa2.Start(0)
		pa2.Update(0, math.Mod(k, duration))

		if math.Abs(s1.Position.Y-s2.Position.Y) > 1e-9 {
			t.Errorf("k=%v: value(duration+k)=%v != value(k mod duration)=%v", k, s1.Position.Y, s2.Position.Y)
		}
	}
}

// TestPropertyAnimationLoopNeverCompletes 循环动画永不报告完成
func TestPropertyAnimationLoopNeverCompletes(t *testing.T) {
	sprite := &testSprite{}
	pa, _ := NewPropertyAnimation("a1", sprite, "position.y", 0, 10, 1.0, true, 0, "linear")
	pa.Start(0)

	for _, tick := range []float64{1.0, 2.0, 5.0, 100.0} {
		if pa.Update(0, tick) {
			t.Errorf("t=%v: 循环动画不应报告完成", tick)
		}
	}
	if !pa.IsActive() {
		t.Error("循环动画应保持激活")
	}
}

// TestPropertyAnimationEasing 测试缓动函数参与插值
func TestPropertyAnimationEasing(t *testing.T) {
	sprite := &testSprite{}
	pa, _ := NewPropertyAnimation("a1", sprite, "position.y", 0, 10, 1.0, false, 0, "easeIn")
	pa.Start(0)

	// easeIn(0.5) = 0.125 → value = 1.25
	pa.Update(0, 0.5)
	if math.Abs(sprite.Position.Y-1.25) > 1e-9 {
		t.Errorf("position.y = %v, 期望 1.25 (easeIn 中点)", sprite.Position.Y)
	}
}

// TestPropertyAnimationInactiveNoop 未激活的动画是空操作
func TestPropertyAnimationInactiveNoop(t *testing.T) {
	sprite := &testSprite{}
	sprite.Position.Y = 42

	pa, _ := NewPropertyAnimation("a1", sprite, "position.y", 0, 10, 1.0, false, 0, "linear")
	// 不调用 Start
	if done := pa.Update(0, 0.5); done {
		t.Error("未激活的动画不应报告完成")
	}
	if sprite.Position.Y != 42 {
		t.Errorf("未激活的动画不应修改目标, position.y = %v", sprite.Position.Y)
	}
}

// TestPropertyAnimationInvalidPath 无效路径静默跳过，动画照常推进并完成
func TestPropertyAnimationInvalidPath(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"中间段缺失", "velocity.y"},
		{"叶子缺失", "position.w"},
		{"叶子不是数值", "position"},
		{"空路径", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sprite := &testSprite{}
			pa, err := NewPropertyAnimation("a1", sprite, tt.path, 0, 10, 1.0, false, 0, "linear")
			if err != nil {
				t.Fatalf("无效路径不应拒绝构造: %v", err)
			}
			pa.Start(0)

			// 不应 panic，且仍按时完成
			if done := pa.Update(0, 1.0); !done {
				t.Error("路径无效时动画仍应正常完成")
			}
		})
	}
}

// TestPropertyAnimationMapTarget 测试 map 类型目标的路径写入
func TestPropertyAnimationMapTarget(t *testing.T) {
	target := map[string]any{
		"position": map[string]float64{"x": 0, "y": 0},
	}

	pa, _ := NewPropertyAnimation("a1", target, "position.y", 0, 8, 1.0, false, 0, "linear")
	pa.Start(0)
	pa.Update(0, 0.5)

	pos := target["position"].(map[string]float64)
	if math.Abs(pos["y"]-4) > 1e-9 {
		t.Errorf("position.y = %v, 期望 4", pos["y"])
	}
}

// TestPropertyAnimationReset 测试 Reset 回绕：停用并写回起始值
func TestPropertyAnimationReset(t *testing.T) {
	sprite := &testSprite{}
	pa, _ := NewPropertyAnimation("a1", sprite, "position.y", 3, 10, 1.0, false, 0, "linear")
	pa.Start(5)
	pa.Update(0, 5.5)

	pa.Reset()

	if pa.IsActive() {
		t.Error("Reset 后动画应停用")
	}
	if sprite.Position.Y != 3 {
		t.Errorf("Reset 后 position.y = %v, 期望写回起始值 3", sprite.Position.Y)
	}
}

// TestPropertyAnimationCleanup 测试 Cleanup 仅停用，不回写目标
func TestPropertyAnimationCleanup(t *testing.T) {
	sprite := &testSprite{}
	pa, _ := NewPropertyAnimation("a1", sprite, "position.y", 0, 10, 1.0, false, 0, "linear")
	pa.Start(0)
	pa.Update(0, 0.5)

	pa.Cleanup()

	if pa.IsActive() {
		t.Error("Cleanup 后动画应停用")
	}
	if sprite.Position.Y != 5 {
		t.Errorf("Cleanup 不应回写目标, position.y = %v, 期望保持 5", sprite.Position.Y)
	}
}

// TestPropertyAnimationRejectsInvalidInput 构造期拒绝非法数值
func TestPropertyAnimationRejectsInvalidInput(t *testing.T) {
	sprite := &testSprite{}
	tests := []struct {
		name     string
		from     float64
		to       float64
		duration float64
	}{
		{"零时长", 0, 10, 0},
		{"负时长", 0, 10, -1},
		{"NaN时长", 0, 10, math.NaN()},
		{"NaN起始值", math.NaN(), 10, 1},
		{"NaN结束值", 0, math.NaN(), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPropertyAnimation("a1", sprite, "position.y", tt.from, tt.to, tt.duration, false, 0, "linear")
			if err == nil {
				t.Error("非法数值应在构造期被拒绝")
			}
		})
	}
}
