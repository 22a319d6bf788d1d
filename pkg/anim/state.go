package anim

// AnimationState 离散姿态标签
// 每个对象同一时刻只有一个当前状态
type AnimationState string

const (
	StateIdle      AnimationState = "idle"
	StateWalking   AnimationState = "walking"
	StateRunning   AnimationState = "running"
	StateJumping   AnimationState = "jumping"
	StateAttacking AnimationState = "attacking"
	StateHit       AnimationState = "hit"
	StateDeath     AnimationState = "death"
	StateCustom    AnimationState = "custom"
)

// DefaultBlendDuration 状态切换的默认过渡窗口（秒）
const DefaultBlendDuration = 0.3

// AnimationBlend 状态切换的过渡簿记
//
// 状态标签在 SetAnimationState 时立即翻转，过渡记录只用于
// 让调用方查询"这次淡入淡出窗口还剩多久"，引擎自身不合成姿态。
// 每个对象同一时刻至多存在一条过渡记录。
type AnimationBlend struct {
	FromState AnimationState
	ToState   AnimationState
	Duration  float64
	Elapsed   float64
}

// Remaining 返回过渡窗口的剩余时间（秒），窗口结束后为 0
func (b *AnimationBlend) Remaining() float64 {
	r := b.Duration - b.Elapsed
	if r < 0 {
		return 0
	}
	return r
}
