package anim

// 测试共用的目标对象类型

// testSprite 模拟典型的场景对象：嵌套的数值属性树
type testSprite struct {
	Position struct {
		X float64
		Y float64
		Z float64
	}
	Rotation struct {
		X float64
		Y float64
		Z float64
	}
	Scale struct {
		X float64
		Y float64
	}
	Alpha float64
}

// newSpriteAt 创建位于指定位置的测试对象
func newSpriteAt(x, y, z float64) *testSprite {
	s := &testSprite{}
	s.Position.X = x
	s.Position.Y = y
	s.Position.Z = z
	return s
}

// mustAddProperty 创建补间动画，构造失败直接终止测试
func mustAddProperty(t interface{ Fatalf(string, ...any) }, s *AnimationSystem, objectID string, target any, path string, from, to, duration float64, loop bool, priority int, easing string) string {
	id, err := s.AddPropertyAnimation(objectID, target, path, from, to, duration, loop, priority, easing)
	if err != nil {
		t.Fatalf("AddPropertyAnimation failed: %v", err)
	}
	return id
}
