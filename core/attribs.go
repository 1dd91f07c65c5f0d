package core

// Attribs 是实体的属性集：属性名到类型化值的映射。
// 各实体类型的默认模板为共享数据，合并前必须 Clone，
// 任何调用都不允许拿到模板本身的引用。
type Attribs map[string]any

// Clone 返回属性集的浅拷贝（值本身视为不可变）
func (a Attribs) Clone() Attribs {
	clone := make(Attribs, len(a))
	for k, v := range a {
		clone[k] = v
	}
	return clone
}

// Merge 以 a 为默认值、overrides 为覆盖值合并出新属性集，
// 键冲突时覆盖值优先，a 与 overrides 都不会被修改
func (a Attribs) Merge(overrides Attribs) Attribs {
	merged := a.Clone()
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// MergeFlags 将标志位按位或进指定键，不覆盖已有位
func (a Attribs) MergeFlags(key string, bits int) {
	a[key] = a.Int(key) | bits
}

// SetDefault 键不存在时写入默认值
func (a Attribs) SetDefault(key string, value any) {
	if _, ok := a[key]; !ok {
		a[key] = value
	}
}

// Pop 取出并删除指定键
func (a Attribs) Pop(key string) (any, bool) {
	v, ok := a[key]
	if ok {
		delete(a, key)
	}
	return v, ok
}

// Int 按 int 读取，缺失或类型不符返回 0
func (a Attribs) Int(key string) int {
	switch v := a[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// Float 按 float64 读取，缺失或类型不符返回 0
func (a Attribs) Float(key string) float64 {
	switch v := a[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// String 按字符串读取，缺失或类型不符返回空串
func (a Attribs) String(key string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return ""
}

// Bool 按布尔读取，缺失或类型不符返回 false
func (a Attribs) Bool(key string) bool {
	if v, ok := a[key].(bool); ok {
		return v
	}
	return false
}

// Point 按三维点读取，缺失或类型不符返回零点
func (a Attribs) Point(key string) Point {
	if v, ok := a[key].(Point); ok {
		return v
	}
	return Point{}
}

// PopBool 取出并删除布尔键
func (a Attribs) PopBool(key string) bool {
	v, ok := a.Pop(key)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// PopPoint 取出并删除三维点键
func (a Attribs) PopPoint(key string) (Point, bool) {
	v, ok := a.Pop(key)
	if !ok {
		return Point{}, false
	}
	p, ok := v.(Point)
	return p, ok
}
