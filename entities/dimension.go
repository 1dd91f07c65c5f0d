package entities

import (
	"github.com/zooyer/dxfgen/core"
)

// DimKind 对应标注实体组码 70 的低 3 位，区分标注类型
type DimKind int

const (
	DimLinear DimKind = iota
	DimAligned
	DimAngular
	DimDiameter
	DimRadius
	DimAngular3P
	DimOrdinate
)

// DimBlockExclusive 表示标注几何块为该标注独占（组码 70 的 32 位）
const DimBlockExclusive = 32

var dimKindNames = [...]string{
	DimLinear:    "LINEAR",
	DimAligned:   "ALIGNED",
	DimAngular:   "ANGULAR",
	DimDiameter:  "DIAMETER",
	DimRadius:    "RADIUS",
	DimAngular3P: "ANGULAR_3P",
	DimOrdinate:  "ORDINATE",
}

func (k DimKind) String() string {
	if k < 0 || int(k) >= len(dimKindNames) {
		return "UNKNOWN"
	}
	return dimKindNames[k]
}

// DimStyleOverride 是标注请求对象：标注实体加一组样式覆盖参数。
// 样式覆盖只作用于这一次请求，不会修改样式表里的样式定义。
// 本层只负责组装请求，几何渲染由外部渲染引擎在显式调用时完成
type DimStyleOverride struct {
	Dimension *Entity
	Override  core.Attribs
}

// NewDimStyleOverride 包装标注实体，覆盖参数会被拷贝
func NewDimStyleOverride(dim *Entity, override core.Attribs) *DimStyleOverride {
	if override == nil {
		override = core.Attribs{}
	} else {
		override = override.Clone()
	}
	return &DimStyleOverride{Dimension: dim, Override: override}
}

// Kind 从组码 70 中取出标注类型（只看低 3 位，与读取侧一致）
func (o *DimStyleOverride) Kind() DimKind {
	return DimKind(o.Dimension.Attribs.Int("dimtype") & 0x07)
}

// Set 追加一项样式覆盖参数
func (o *DimStyleOverride) Set(key string, value any) {
	o.Override[key] = value
}

// SetLocation 用户指定标注文字位置，渲染时不再自动排布
func (o *DimStyleOverride) SetLocation(location core.Point) {
	o.Dimension.Attribs["text_midpoint"] = location
	o.Override["user_location"] = true
}
