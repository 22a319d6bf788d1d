package anim

import "sort"

// DefaultMaxPerObject 单个对象默认并发动画上限
const DefaultMaxPerObject = 3

// objectRegistry 持有单个对象的全部动画
//
// 不变量：
//   - 列表长度 ≤ capacity，超出时插入前先淘汰最低优先级条目
//   - 列表始终按优先级降序排列（稳定排序，同优先级保持插入顺序）
type objectRegistry struct {
	animations []Animation
	capacity   int
}

func newObjectRegistry(capacity int) *objectRegistry {
	if capacity <= 0 {
		capacity = DefaultMaxPerObject
	}
	return &objectRegistry{
		animations: make([]Animation, 0, capacity),
		capacity:   capacity,
	}
}

// insert 插入一个动画，必要时先淘汰
//
// 淘汰算法：找到严格最小优先级的条目（同优先级取最先插入的——
// 稳定排序保证同优先级按插入顺序排列，顺序扫描取第一个即可），
// 摘除后插入新条目并重新按优先级降序稳定排序。
// 返回被淘汰的动画，没有淘汰时返回 nil。
func (r *objectRegistry) insert(a Animation) (evicted Animation) {
	if len(r.animations) >= r.capacity {
		minIdx := 0
		for i := 1; i < len(r.animations); i++ {
			if r.animations[i].Priority() < r.animations[minIdx].Priority() {
				minIdx = i
			}
		}
		evicted = r.animations[minIdx]
		r.animations = append(r.animations[:minIdx], r.animations[minIdx+1:]...)
	}

	r.animations = append(r.animations, a)
	sort.SliceStable(r.animations, func(i, j int) bool {
		return r.animations[i].Priority() > r.animations[j].Priority()
	})
	return evicted
}

// find 按动画ID查找，未找到返回 nil
func (r *objectRegistry) find(id string) Animation {
	for _, a := range r.animations {
		if a.ID() == id {
			return a
		}
	}
	return nil
}

// detach 按标识摘除一个动画（不存在则无操作）
func (r *objectRegistry) detach(target Animation) {
	for i, a := range r.animations {
		if a == target {
			r.animations = append(r.animations[:i], r.animations[i+1:]...)
			return
		}
	}
}

// snapshot 返回当前列表的副本
// Update 遍历前先快照，保证遍历中途的摘除/停止不影响本轮迭代
func (r *objectRegistry) snapshot() []Animation {
	return append([]Animation(nil), r.animations...)
}

func (r *objectRegistry) empty() bool { return len(r.animations) == 0 }
