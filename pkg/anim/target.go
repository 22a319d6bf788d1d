package anim

import (
	"math"
	"reflect"
	"strings"
)

// 目标对象契约
//
// 目标是任意暴露可导航数值属性树的对象，属性通过点路径寻址
// （如 "position.y" 对应结构体字段 .Position.Y，段名大小写不敏感）。
// 引擎不校验目标形状，只做尽力而为的遍历：
// 路径中任一段缺失、叶子不是数值，写入就被静默跳过，绝不 panic。
// 这一容忍性是契约的一部分，允许异构目标混在同一个系统里。

// Vec3 三维向量，用于观察者位置与距离计算
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// resolveNode 沿点路径的各段遍历到指定深度
// 支持（指向）结构体与 string 键的 map；返回 false 表示路径不可达
func resolveNode(v reflect.Value, segments []string) (reflect.Value, bool) {
	for _, seg := range segments {
		v = indirect(v)
		switch v.Kind() {
		case reflect.Struct:
			f, ok := fieldByNameFold(v, seg)
			if !ok {
				return reflect.Value{}, false
			}
			v = f
		case reflect.Map:
			if v.Type().Key().Kind() != reflect.String {
				return reflect.Value{}, false
			}
			elem := v.MapIndex(reflect.ValueOf(seg))
			if !elem.IsValid() {
				return reflect.Value{}, false
			}
			v = elem
		default:
			return reflect.Value{}, false
		}
	}
	return v, true
}

// indirect 解开指针和接口包装
func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// fieldByNameFold 大小写不敏感地查找导出字段
// 配置中的路径段通常是小写（"position"），Go 字段是导出的（"Position"）
func fieldByNameFold(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if strings.EqualFold(f.Name, name) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// writeFloat 沿点路径把数值写入目标
// 路径不可达或叶子不可写时静默返回 false（容忍无效目标，见包文档）
func writeFloat(target any, path string, value float64) bool {
	if target == nil || path == "" {
		return false
	}
	segments := strings.Split(path, ".")
	leaf := segments[len(segments)-1]

	parent := reflect.ValueOf(target)
	if len(segments) > 1 {
		var ok bool
		parent, ok = resolveNode(parent, segments[:len(segments)-1])
		if !ok {
			return false
		}
	}
	parent = indirect(parent)

	switch parent.Kind() {
	case reflect.Struct:
		f, ok := fieldByNameFold(parent, leaf)
		if !ok || !f.CanSet() {
			return false
		}
		switch f.Kind() {
		case reflect.Float64, reflect.Float32:
			f.SetFloat(value)
			return true
		}
		return false
	case reflect.Map:
		if parent.Type().Key().Kind() != reflect.String {
			return false
		}
		elemType := parent.Type().Elem()
		key := reflect.ValueOf(leaf)
		switch elemType.Kind() {
		case reflect.Float64:
			parent.SetMapIndex(key, reflect.ValueOf(value))
			return true
		case reflect.Interface:
			parent.SetMapIndex(key, reflect.ValueOf(value))
			return true
		}
		return false
	}
	return false
}

// readFloat 沿点路径读取目标上的数值
func readFloat(target any, path string) (float64, bool) {
	if target == nil || path == "" {
		return 0, false
	}
	v, ok := resolveNode(reflect.ValueOf(target), strings.Split(path, "."))
	if !ok {
		return 0, false
	}
	v = indirect(v)
	switch v.Kind() {
	case reflect.Float64, reflect.Float32:
		return v.Float(), true
	}
	return 0, false
}

// targetDistance 计算目标与观察者的欧氏距离，用于裁剪判定
//
// 从目标的 position.x / position.y / position.z 读取坐标，
// 缺失的分量按 0 处理；完全没有 position 属性的目标返回 0，
// 即永远不会被裁剪（普通无位置目标不需要观察者簿记）
func targetDistance(target any, viewer Vec3) float64 {
	x, okx := readFloat(target, "position.x")
	y, oky := readFloat(target, "position.y")
	z, okz := readFloat(target, "position.z")
	if !okx && !oky && !okz {
		return 0
	}
	dx := x - viewer.X
	dy := y - viewer.Y
	dz := z - viewer.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
