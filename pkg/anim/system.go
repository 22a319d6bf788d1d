package anim

import "log"

// DefaultCullingDistance 默认裁剪距离
// 目标与观察者距离超过该值时跳过其动画更新
const DefaultCullingDistance = 100.0

// Stats 引擎运行统计（只读查询）
type Stats struct {
	TotalAnimations  int // 全部注册表中的动画总数（含未激活）
	ActiveAnimations int // 激活中的动画数
	PooledAnimations int // 对象池中待复用的实例数
}

// AnimationSystem 程序化动画引擎的顶层管理器
//
// 持有对象ID→注册表映射、对象ID→离散状态与过渡簿记、共享对象池、
// 单调递增的全局时钟、观察者位置与裁剪距离。
//
// 单线程协作式：由外部帧循环每帧调用一次 Update(deltaTime)，
// 所有目标属性的修改在 Update 内同步完成，返回后状态即一致。
// 管理器是实例持有的（由游戏循环构造一次后按引用传递），
// 不使用进程级单例，便于独立单元测试。
type AnimationSystem struct {
	registries map[string]*objectRegistry
	states     map[string]AnimationState
	blends     map[string]*AnimationBlend
	pool       *animationPool

	clock           float64
	viewerPos       Vec3
	cullingDistance float64
	maxPerObject    int
}

// NewAnimationSystem 创建动画系统
// 默认值：单对象容量 3、对象池容量 50、裁剪距离 100
func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{
		registries:      make(map[string]*objectRegistry),
		states:          make(map[string]AnimationState),
		blends:          make(map[string]*AnimationBlend),
		pool:            newAnimationPool(DefaultPoolCapacity),
		cullingDistance: DefaultCullingDistance,
		maxPerObject:    DefaultMaxPerObject,
	}
}

// SetMaxPerObject 设置单对象并发动画上限（只影响之后新建的注册表）
func (s *AnimationSystem) SetMaxPerObject(n int) {
	if n > 0 {
		s.maxPerObject = n
	}
}

// Clock 返回引擎累计时钟（秒）
func (s *AnimationSystem) Clock() float64 { return s.clock }

// ensureRegistry 取得或创建对象的注册表
func (s *AnimationSystem) ensureRegistry(objectID string) *objectRegistry {
	reg, ok := s.registries[objectID]
	if !ok {
		reg = newObjectRegistry(s.maxPerObject)
		s.registries[objectID] = reg
	}
	return reg
}

// register 把动画插入对象注册表，处理容量淘汰
func (s *AnimationSystem) register(objectID string, a Animation) {
	reg := s.ensureRegistry(objectID)
	if evicted := reg.insert(a); evicted != nil {
		log.Printf("[AnimationSystem] 对象 %s 动画数超限，淘汰最低优先级动画 %s (优先级 %d)",
			objectID, evicted.ID(), evicted.Priority())
		s.pool.put(evicted)
	}
}

// AddPropertyAnimation 为对象创建单属性补间动画
//
// 动画创建后处于未激活状态，需调用 StartAnimation 启动。
// 超出单对象容量时先淘汰最低优先级条目（同优先级淘汰最先插入的）。
// 优先复用对象池中的退役实例。
//
// 返回：
//   - string: 动画唯一标识
//   - error: 时长非正、时长或起止值为 NaN 时拒绝创建
func (s *AnimationSystem) AddPropertyAnimation(objectID string, target any, propertyPath string, startValue, endValue, duration float64, loop bool, priority int, easing string) (string, error) {
	id := newAnimationID(objectID, propertyPath)

	pa := s.pool.getProperty()
	if pa == nil {
		pa = &PropertyAnimation{}
	}
	if err := pa.init(id, target, propertyPath, startValue, endValue, duration, loop, priority, easing); err != nil {
		return "", err
	}

	s.register(objectID, pa)
	return id, nil
}

// AddKeyframeAnimation 为对象创建多轨关键帧动画
//
// 动画创建后处于未激活状态，需调用 StartAnimation 启动。
// 容量与池复用行为同 AddPropertyAnimation。
//
// 返回：
//   - string: 动画唯一标识
//   - error: 时长非正/NaN、关键帧时间越界或数值为 NaN 时拒绝创建
func (s *AnimationSystem) AddKeyframeAnimation(objectID string, target any, tracks []Track, duration float64, loop bool, priority int) (string, error) {
	id := newAnimationID(objectID, "keyframe")

	ka := s.pool.getKeyframe()
	if ka == nil {
		ka = &KeyframeAnimation{}
	}
	if err := ka.init(id, target, tracks, duration, loop, priority); err != nil {
		return "", err
	}

	s.register(objectID, ka)
	return id, nil
}

// StartAnimation 启动动画：起始时间锚定当前时钟并激活
// 对象或动画不存在时静默忽略
func (s *AnimationSystem) StartAnimation(objectID, animationID string) {
	if reg, ok := s.registries[objectID]; ok {
		if a := reg.find(animationID); a != nil {
			a.Start(s.clock)
		}
	}
}

// StopAnimation 停用动画（仍保留在注册表中，可再次启动）
// 对象或动画不存在时静默忽略
func (s *AnimationSystem) StopAnimation(objectID, animationID string) {
	if reg, ok := s.registries[objectID]; ok {
		if a := reg.find(animationID); a != nil {
			a.Stop()
		}
	}
}

// RemoveAllAnimations 移除对象的全部动画并清除其状态与过渡簿记
// 摘除的动画全部回收进对象池；对象不存在时静默忽略
func (s *AnimationSystem) RemoveAllAnimations(objectID string) {
	if reg, ok := s.registries[objectID]; ok {
		for _, a := range reg.animations {
			s.pool.put(a)
		}
		delete(s.registries, objectID)
	}
	delete(s.states, objectID)
	delete(s.blends, objectID)
}

// SetAnimationState 切换对象的离散状态
//
// 状态未变化时无操作。blendDuration > 0 时记录一条过渡簿记
// （供调用方查询淡入淡出窗口），但状态标签立即翻转——
// 引擎不合成姿态混合。
func (s *AnimationSystem) SetAnimationState(objectID string, newState AnimationState, blendDuration float64) {
	current := s.GetAnimationState(objectID)
	if current == newState {
		return
	}
	if blendDuration > 0 {
		s.blends[objectID] = &AnimationBlend{
			FromState: current,
			ToState:   newState,
			Duration:  blendDuration,
		}
	}
	s.states[objectID] = newState
}

// SetAnimationStateDefault 以默认过渡窗口（0.3 秒）切换状态
func (s *AnimationSystem) SetAnimationStateDefault(objectID string, newState AnimationState) {
	s.SetAnimationState(objectID, newState, DefaultBlendDuration)
}

// GetAnimationState 查询对象当前状态，未设置过的对象返回 idle
func (s *AnimationSystem) GetAnimationState(objectID string) AnimationState {
	if state, ok := s.states[objectID]; ok {
		return state
	}
	return StateIdle
}

// GetAnimationBlend 查询对象进行中的状态过渡（返回副本）
// 不存在过渡时第二个返回值为 false
func (s *AnimationSystem) GetAnimationBlend(objectID string) (AnimationBlend, bool) {
	if b, ok := s.blends[objectID]; ok {
		return *b, true
	}
	return AnimationBlend{}, false
}

// UpdatePlayerPosition 更新观察者位置（用于裁剪距离判定）
func (s *AnimationSystem) UpdatePlayerPosition(pos Vec3) {
	s.viewerPos = pos
}

// SetCullingDistance 设置裁剪距离
func (s *AnimationSystem) SetCullingDistance(d float64) {
	s.cullingDistance = d
}

// Update 推进引擎一帧
//
// 流程：
//  1. 累加全局时钟
//  2. 逐对象快照动画列表并推进：目标距观察者超过裁剪距离时
//     整个跳过 Update 调用（startTime 仍锚定原时钟，重新入范围时
//     会跳变到墙钟时间对应的进度——性能换平滑的既定取舍）
//  3. 本轮结束后统一摘除完成的动画并回收进池，清掉空列表
//  4. 推进全部过渡簿记，移除已结束的窗口
func (s *AnimationSystem) Update(deltaTime float64) {
	s.clock += deltaTime

	type completion struct {
		objectID string
		a        Animation
	}
	var completed []completion

	for objectID, reg := range s.registries {
		for _, a := range reg.snapshot() {
			if targetDistance(a.Target(), s.viewerPos) > s.cullingDistance {
				continue
			}
			if a.Update(deltaTime, s.clock) {
				completed = append(completed, completion{objectID, a})
			}
		}
	}

	for _, c := range completed {
		if reg, ok := s.registries[c.objectID]; ok {
			reg.detach(c.a)
			if reg.empty() {
				delete(s.registries, c.objectID)
			}
		}
		s.pool.put(c.a)
	}

	for objectID, b := range s.blends {
		b.Elapsed += deltaTime
		if b.Elapsed >= b.Duration {
			delete(s.blends, objectID)
		}
	}
}

// GetStats 返回引擎运行统计
func (s *AnimationSystem) GetStats() Stats {
	stats := Stats{PooledAnimations: s.pool.size()}
	for _, reg := range s.registries {
		stats.TotalAnimations += len(reg.animations)
		for _, a := range reg.animations {
			if a.IsActive() {
				stats.ActiveAnimations++
			}
		}
	}
	return stats
}
