package core

import (
	"math"
)

// Point 代表三维空间中的一个点或向量
type Point struct {
	X, Y, Z float64
}

// Add 向量加法
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Sub 向量减法
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Mul 向量数乘
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s, Z: p.Z * s}
}

// Div 向量数除
func (p Point) Div(s float64) Point {
	return Point{X: p.X / s, Y: p.Y / s, Z: p.Z / s}
}

// Dot 向量点积
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Cross 向量叉积
func (p Point) Cross(q Point) Point {
	return Point{
		X: p.Y*q.Z - p.Z*q.Y,
		Y: p.Z*q.X - p.X*q.Z,
		Z: p.X*q.Y - p.Y*q.X,
	}
}

// Length 向量长度
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Distance 两点间距离
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Normalize 归一化为单位向量，零向量原样返回
func (p Point) Normalize() Point {
	return p.Normalized(1)
}

// Normalized 缩放到指定长度，length 为负时方向取反
func (p Point) Normalized(length float64) Point {
	l := p.Length()
	if l == 0 {
		return p
	}
	return p.Mul(length / l)
}

// Orthogonal 返回 xy 平面内逆时针旋转 90° 的垂直向量
func (p Point) Orthogonal() Point {
	return Point{X: -p.Y, Y: p.X}
}

// Angle 返回 xy 平面内与 x 轴的夹角（弧度）
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// AngleDeg 返回 xy 平面内与 x 轴的夹角（角度）
func (p Point) AngleDeg() float64 {
	return p.Angle() * 180.0 / math.Pi
}

// Lerp 在 p 与 q 之间线性插值，t 取 0 得 p、取 1 得 q
func (p Point) Lerp(q Point, t float64) Point {
	return p.Add(q.Sub(p).Mul(t))
}

// Round 各分量四舍五入到 n 位小数
func (p Point) Round(n int) Point {
	pow := math.Pow(10, float64(n))
	round := func(v float64) float64 {
		return math.Round(v*pow) / pow
	}
	return Point{X: round(p.X), Y: round(p.Y), Z: round(p.Z)}
}
