package anim

// DefaultPoolCapacity 对象池默认容量
const DefaultPoolCapacity = 50

// animationPool 退役动画实例的有界空闲链
//
// 按变体分段存放（规格允许，只要对外可见的数量不受影响），
// 两段合计不超过容量，超出的退役实例直接丢弃。
// 入池前实例已被 retire 清理并释放目标引用，复用时由 init 重新装配全部字段。
type animationPool struct {
	capacity   int
	properties []*PropertyAnimation
	keyframes  []*KeyframeAnimation
}

func newAnimationPool(capacity int) *animationPool {
	if capacity <= 0 {
		capacity = DefaultPoolCapacity
	}
	return &animationPool{capacity: capacity}
}

// size 返回池中实例总数（两段合计）
func (p *animationPool) size() int {
	return len(p.properties) + len(p.keyframes)
}

// put 回收一个退役动画
// 实例先被清理回初始状态并释放目标引用；池已满时丢弃（不是错误）
func (p *animationPool) put(a Animation) {
	a.retire()
	if p.size() >= p.capacity {
		return
	}
	switch v := a.(type) {
	case *PropertyAnimation:
		p.properties = append(p.properties, v)
	case *KeyframeAnimation:
		p.keyframes = append(p.keyframes, v)
	}
}

// getProperty 取出一个可复用的补间实例，池空时返回 nil
func (p *animationPool) getProperty() *PropertyAnimation {
	n := len(p.properties)
	if n == 0 {
		return nil
	}
	pa := p.properties[n-1]
	p.properties[n-1] = nil
	p.properties = p.properties[:n-1]
	return pa
}

// getKeyframe 取出一个可复用的关键帧实例，池空时返回 nil
func (p *animationPool) getKeyframe() *KeyframeAnimation {
	n := len(p.keyframes)
	if n == 0 {
		return nil
	}
	ka := p.keyframes[n-1]
	p.keyframes[n-1] = nil
	p.keyframes = p.keyframes[:n-1]
	return ka
}
