package utils

import (
	"math"

	"github.com/zooyer/dxfgen/core"
	"github.com/zooyer/dxfgen/entities"
)

// TransformPoint 将块局部坐标点经过 Insert 变换转换到父级/世界坐标，
// 变换顺序为 缩放 -> 旋转 -> 平移
func TransformPoint(p core.Point, ins *entities.Entity) core.Point {
	rad := ins.Attribs.Float("rotation") * math.Pi / 180.0
	cos, sin := math.Cos(rad), math.Sin(rad)

	// 1. 缩放
	tx := p.X * ins.Attribs.Float("xscale")
	ty := p.Y * ins.Attribs.Float("yscale")
	tz := p.Z * ins.Attribs.Float("zscale")

	// 2. 旋转
	rx := tx*cos - ty*sin
	ry := tx*sin + ty*cos

	// 3. 平移
	insert := ins.Attribs.Point("insert")
	return core.Point{
		X: rx + insert.X,
		Y: ry + insert.Y,
		Z: tz + insert.Z,
	}
}
