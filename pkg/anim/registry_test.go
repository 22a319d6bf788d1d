package anim

import "testing"

// makeAnim 构造注册表测试用的最小动画
func makeAnim(t *testing.T, id string, priority int) Animation {
	t.Helper()
	pa, err := NewPropertyAnimation(id, &testSprite{}, "position.y", 0, 1, 1.0, false, priority, "linear")
	if err != nil {
		t.Fatalf("NewPropertyAnimation failed: %v", err)
	}
	return pa
}

// priorities 提取注册表当前的优先级序列
func priorities(r *objectRegistry) []int {
	out := make([]int, 0, len(r.animations))
	for _, a := range r.animations {
		out = append(out, a.Priority())
	}
	return out
}

// TestRegistryScenarioD 场景D：容量3、优先级 [1,5,2]，插入优先级3 ⇒ 淘汰优先级1
func TestRegistryScenarioD(t *testing.T) {
	reg := newObjectRegistry(3)
	reg.insert(makeAnim(t, "a", 1))
	reg.insert(makeAnim(t, "b", 5))
	reg.insert(makeAnim(t, "c", 2))

	evicted := reg.insert(makeAnim(t, "d", 3))

	if evicted == nil || evicted.ID() != "a" {
		t.Fatalf("期望淘汰优先级1的动画 a, 实际 %v", evicted)
	}

	remaining := map[int]bool{}
	for _, p := range priorities(reg) {
		remaining[p] = true
	}
	for _, want := range []int{5, 2, 3} {
		if !remaining[want] {
			t.Errorf("优先级 %d 的动画应保留, 当前 %v", want, priorities(reg))
		}
	}
}

// TestRegistryEvictionTie 同为最低优先级时淘汰最先插入的
func TestRegistryEvictionTie(t *testing.T) {
	reg := newObjectRegistry(3)
	reg.insert(makeAnim(t, "first", 1))
	reg.insert(makeAnim(t, "second", 1))
	reg.insert(makeAnim(t, "third", 5))

	evicted := reg.insert(makeAnim(t, "fourth", 2))

	if evicted == nil || evicted.ID() != "first" {
		t.Fatalf("同优先级应淘汰最先插入的 first, 实际 %v", evicted)
	}
}

// TestRegistrySortedDescending 列表始终按优先级降序
func TestRegistrySortedDescending(t *testing.T) {
	reg := newObjectRegistry(5)
	for _, p := range []int{2, 7, 1, 5, 3} {
		reg.insert(makeAnim(t, "x", p))
	}

	ps := priorities(reg)
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[i-1] {
			t.Fatalf("注册表未按优先级降序排列: %v", ps)
		}
	}
}

// TestRegistryUnderCapacityNoEviction 未超容量时不淘汰
func TestRegistryUnderCapacityNoEviction(t *testing.T) {
	reg := newObjectRegistry(3)
	for i := 0; i < 3; i++ {
		if evicted := reg.insert(makeAnim(t, "a", i)); evicted != nil {
			t.Errorf("未超容量不应淘汰, 却淘汰了 %s", evicted.ID())
		}
	}
	if len(reg.animations) != 3 {
		t.Errorf("注册表长度 = %d, 期望 3", len(reg.animations))
	}
}

// TestRegistryFindDetach 按ID查找与按实例摘除
func TestRegistryFindDetach(t *testing.T) {
	reg := newObjectRegistry(3)
	a := makeAnim(t, "a", 1)
	b := makeAnim(t, "b", 2)
	reg.insert(a)
	reg.insert(b)

	if got := reg.find("a"); got != a {
		t.Errorf("find(a) = %v, 期望原实例", got)
	}
	if got := reg.find("missing"); got != nil {
		t.Errorf("find(missing) = %v, 期望 nil", got)
	}

	reg.detach(a)
	if reg.find("a") != nil {
		t.Error("摘除后不应再找到 a")
	}
	if len(reg.animations) != 1 {
		t.Errorf("摘除后长度 = %d, 期望 1", len(reg.animations))
	}
}
