package core

import (
	"strconv"
	"strings"
)

// Tag 代表 DXF 中的一组标签对
type Tag struct {
	Code  int
	Value string
}

// AsFloat 将值转换为 float64
func (t Tag) AsFloat() float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(t.Value), 64)
	return f
}

// AsInt 将值转换为 int
func (t Tag) AsInt() int {
	i, _ := strconv.Atoi(strings.TrimSpace(t.Value))
	return i
}

// AsString 清洗字符串（去除多余空格）
func (t Tag) AsString() string {
	return strings.TrimSpace(t.Value)
}

// StringTag 构造字符串标签
func StringTag(code int, value string) Tag {
	return Tag{Code: code, Value: value}
}

// IntTag 构造整数标签
func IntTag(code, value int) Tag {
	return Tag{Code: code, Value: strconv.Itoa(value)}
}

// FloatTag 构造浮点标签
func FloatTag(code int, value float64) Tag {
	return Tag{Code: code, Value: FormatFloat(value)}
}

// PointTags 将三维点展开为 x/y/z 三组标签，
// code 为 x 分量组码，y、z 分量按 DXF 约定加 10、20
func PointTags(code int, p Point) []Tag {
	return []Tag{
		FloatTag(code, p.X),
		FloatTag(code+10, p.Y),
		FloatTag(code+20, p.Z),
	}
}

// FormatFloat 按 DXF 文本格式输出浮点值，整数值保留一位小数
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
