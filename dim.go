package dxfgen

import (
	"github.com/zooyer/dxfgen/core"
	"github.com/zooyer/dxfgen/entities"
)

// defaultDimStyle 标注样式表项的默认名称
const defaultDimStyle = "DXFGEN"

// DimRenderer 由外部渲染引擎实现，把标注请求展开成具体的线、箭头
// 和文字几何。本层只组装请求对象，渲染必须显式调用，绝不自动发生
type DimRenderer interface {
	RenderDimension(layout *Layout, style *entities.DimStyleOverride) error
	RenderMultiPointLinear(layout *Layout, req *MultiPointLinearDim) error
}

// ArrowRenderer 由外部箭头符号库实现，按符号名解析出
// 内联几何或块引用，返回箭头的连接点
type ArrowRenderer interface {
	RenderArrow(layout *Layout, name string, insert core.Point, size, rotation float64, attribs core.Attribs) (core.Point, error)
	InsertArrow(layout *Layout, name string, insert core.Point, size, rotation float64, attribs core.Attribs) (core.Point, error)
}

// MultiPointLinearDim 是连续多点线性标注请求，几何决策全部由渲染引擎做出
type MultiPointLinearDim struct {
	Base     core.Point
	Points   []core.Point
	Angle    float64
	DimStyle string
	Override core.Attribs
	Attribs  core.Attribs

	// AvoidDoubleRendering 为 true 时，连续标注里可以省略的
	// 第一条延伸线和第一个箭头被抑制，避免与上一段重复绘制
	AvoidDoubleRendering bool

	// Discard 丢弃渲染结果，留给对无渲染标注友好的 CAD 软件自行渲染
	Discard bool
}

// AddLinearDim 添加水平/垂直/旋转的线性标注。
// base 是标注线位置（标注线或其延长线上任一点），p1、p2 是两个测量点，
// angle 是标注线与 x 轴的夹角（0 水平、90 垂直），
// text 为空串时按实测值出文字，单个空格抑制文字，其余内容原样作为标注文字。
// textRotation 非 nil 时是绝对覆盖：永远压过其它参数隐含的文字方向。
// 返回标注请求对象，几何要另行交给渲染引擎，创建与渲染之间
// 允许调用方继续加工标注实体
func (l *Layout) AddLinearDim(base, p1, p2 core.Point, location *core.Point, text string, angle float64, textRotation *float64, dimstyle string, override, attribs core.Attribs) (*entities.DimStyleOverride, error) {
	dimline, err := l.add("DIMENSION", core.Attribs{
		"dimtype": int(entities.DimLinear) | entities.DimBlockExclusive,
	})
	if err != nil {
		return nil, err
	}

	if dimstyle == "" {
		dimstyle = defaultDimStyle
	}
	if text == "" {
		text = "<>"
	}

	attribs = attribs.Clone()
	attribs["dimstyle"] = dimstyle
	attribs["defpoint"] = base
	attribs["text"] = text
	attribs["defpoint2"] = p1
	attribs["defpoint3"] = p2
	attribs["angle"] = angle
	if textRotation != nil {
		attribs["text_rotation"] = *textRotation
	}
	dimline.Attribs = dimline.Attribs.Merge(attribs)

	style := entities.NewDimStyleOverride(dimline, override)
	if location != nil {
		style.SetLocation(*location)
	}

	return style, nil
}

// AddAlignedDim 添加与测量方向对齐的线性标注。
// 标注线从原点沿测量方向的垂线偏移 distance，符号决定画在线段哪一侧，
// 对齐标注就是算好基点和角度的线性标注，不走独立的代码路径
func (l *Layout) AddAlignedDim(p1, p2 core.Point, distance float64, text, dimstyle string, override, attribs core.Attribs) (*entities.DimStyleOverride, error) {
	direction := p2.Sub(p1)
	angle := direction.AngleDeg()
	base := direction.Orthogonal().Normalized(distance)
	return l.AddLinearDim(base, p1, p2, nil, text, angle, nil, dimstyle, override, attribs)
}

// AddAngularDim 添加角度标注，几何全部委托给渲染引擎
func (l *Layout) AddAngularDim(override, attribs core.Attribs) (*entities.DimStyleOverride, error) {
	return l.addTypedDim(entities.DimAngular, override, attribs)
}

// AddAngular3PDim 添加三点角度标注
func (l *Layout) AddAngular3PDim(override, attribs core.Attribs) (*entities.DimStyleOverride, error) {
	return l.addTypedDim(entities.DimAngular3P, override, attribs)
}

// AddDiameterDim 添加直径标注
func (l *Layout) AddDiameterDim(override, attribs core.Attribs) (*entities.DimStyleOverride, error) {
	return l.addTypedDim(entities.DimDiameter, override, attribs)
}

// AddRadiusDim 添加半径标注
func (l *Layout) AddRadiusDim(override, attribs core.Attribs) (*entities.DimStyleOverride, error) {
	return l.addTypedDim(entities.DimRadius, override, attribs)
}

// AddOrdinateDim 添加坐标标注
func (l *Layout) AddOrdinateDim(override, attribs core.Attribs) (*entities.DimStyleOverride, error) {
	return l.addTypedDim(entities.DimOrdinate, override, attribs)
}

// addTypedDim 组装只带类型标志的标注请求，两阶段：
// 先按类型标志建实体，再合并调用方属性
func (l *Layout) addTypedDim(kind entities.DimKind, override, attribs core.Attribs) (*entities.DimStyleOverride, error) {
	dimline, err := l.add("DIMENSION", core.Attribs{
		"dimtype": int(kind) | entities.DimBlockExclusive,
	})
	if err != nil {
		return nil, err
	}

	attribs = attribs.Clone()
	attribs.SetDefault("dimstyle", defaultDimStyle)
	dimline.Attribs = dimline.Attribs.Merge(attribs)

	return entities.NewDimStyleOverride(dimline, override), nil
}

// AddMultiPointLinearDim 为一串测量点添加连续线性标注，
// 几何即刻由渲染引擎生成，没有也不需要事后的渲染调用
func (l *Layout) AddMultiPointLinearDim(renderer DimRenderer, req MultiPointLinearDim) error {
	if req.DimStyle == "" {
		req.DimStyle = defaultDimStyle
	}
	return renderer.RenderMultiPointLinear(l, &req)
}

// RenderDim 把标注请求交给渲染引擎展开几何
func (l *Layout) RenderDim(renderer DimRenderer, style *entities.DimStyleOverride) error {
	return renderer.RenderDimension(l, style)
}

// AddArrow 由箭头符号库渲染内联箭头几何，返回连接点
func (l *Layout) AddArrow(renderer ArrowRenderer, name string, insert core.Point, size, rotation float64, attribs core.Attribs) (core.Point, error) {
	return renderer.RenderArrow(l, name, insert, size, rotation, attribs)
}

// AddArrowBlockref 由箭头符号库插入箭头块引用，返回连接点
func (l *Layout) AddArrowBlockref(renderer ArrowRenderer, name string, insert core.Point, size, rotation float64, attribs core.Attribs) (core.Point, error) {
	return renderer.InsertArrow(l, name, insert, size, rotation, attribs)
}
