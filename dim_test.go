package dxfgen

import (
	"testing"

	"github.com/zooyer/dxfgen/core"
	"github.com/zooyer/dxfgen/entities"
	"github.com/zooyer/golib/xmath"
)

func TestAddLinearDim(t *testing.T) {
	msp := newTestDoc(t, "R12").Modelspace()

	style, err := msp.AddLinearDim(
		core.Point{Y: 5}, core.Point{}, core.Point{X: 10},
		nil, "", 0, nil, "", nil, nil,
	)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	dim := style.Dimension
	if style.Kind() != entities.DimLinear {
		t.Errorf("标注类型不符: %v", style.Kind())
	}
	if dim.Attribs.Int("dimtype")&entities.DimBlockExclusive == 0 {
		t.Errorf("独占块标志未设置")
	}
	// 空文字按实测值出文字
	if dim.Attribs.String("text") != "<>" {
		t.Errorf("默认文字不符: %q", dim.Attribs.String("text"))
	}
	if dim.Attribs.String("dimstyle") != "DXFGEN" {
		t.Errorf("默认标注样式不符: %q", dim.Attribs.String("dimstyle"))
	}
	if dim.Attribs.Point("defpoint") != (core.Point{Y: 5}) {
		t.Errorf("标注线基点不符: %+v", dim.Attribs.Point("defpoint"))
	}
	if dim.Attribs.Point("defpoint2") != (core.Point{}) || dim.Attribs.Point("defpoint3") != (core.Point{X: 10}) {
		t.Errorf("测量点不符")
	}
	// 未指定文字位置时不写 text_midpoint
	if _, ok := dim.Attribs["text_midpoint"]; ok {
		t.Errorf("未指定位置不应写 text_midpoint")
	}

	// 创建不等于渲染，实体已登记但只有标注请求数据
	if dim.Handle == "" {
		t.Errorf("标注实体未登记")
	}
}

func TestAddLinearDim_Overrides(t *testing.T) {
	msp := newTestDoc(t, "R12").Modelspace()

	location := core.Point{X: 5, Y: 6}
	rotation := 30.0
	style, err := msp.AddLinearDim(
		core.Point{}, core.Point{}, core.Point{X: 10},
		&location, " ", 90, &rotation, "ISO-25",
		core.Attribs{"dimtxt": 2.5}, nil,
	)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	dim := style.Dimension
	// 单个空格抑制文字，原样落盘
	if dim.Attribs.String("text") != " " {
		t.Errorf("抑制文字标记不符: %q", dim.Attribs.String("text"))
	}
	if dim.Attribs.String("dimstyle") != "ISO-25" {
		t.Errorf("标注样式不符")
	}
	// 绝对覆盖的文字角度
	if dim.Attribs.Float("text_rotation") != 30 {
		t.Errorf("文字角度覆盖未生效")
	}
	// 用户指定位置写入实体并打用户定位标志
	if dim.Attribs.Point("text_midpoint") != location {
		t.Errorf("文字位置不符")
	}
	if !style.Override.Bool("user_location") {
		t.Errorf("用户定位标志未设置")
	}
	if style.Override.Float("dimtxt") != 2.5 {
		t.Errorf("样式覆盖参数丢失")
	}
}

func TestAddAlignedDim(t *testing.T) {
	msp := newTestDoc(t, "R12").Modelspace()

	p1 := core.Point{}
	p2 := core.Point{X: 10}
	style, err := msp.AddAlignedDim(p1, p2, 5, "", "", nil, nil)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	dim := style.Dimension
	// 水平测量方向: 角度 0，基点在垂线上偏移 distance
	if !xmath.Equal(dim.Attribs.Float("angle"), 0, epsilon) {
		t.Errorf("角度不符: %v", dim.Attribs.Float("angle"))
	}
	base := dim.Attribs.Point("defpoint")
	if !xmath.Equal(base.X, 0, epsilon) || !xmath.Equal(base.Y, 5, epsilon) {
		t.Errorf("基点不符: %+v", base)
	}

	// 负偏移画在另一侧
	style, err = msp.AddAlignedDim(p1, p2, -5, "", "", nil, nil)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if got := style.Dimension.Attribs.Point("defpoint"); !xmath.Equal(got.Y, -5, epsilon) {
		t.Errorf("负偏移基点不符: %+v", got)
	}

	// 斜线测量: 角度为测量方向与 x 轴夹角
	style, err = msp.AddAlignedDim(core.Point{}, core.Point{X: 3, Y: 3}, 1, "", "", nil, nil)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if got := style.Dimension.Attribs.Float("angle"); !xmath.Equal(got, 45, epsilon) {
		t.Errorf("角度不符: %v", got)
	}
}

func TestAlignedEqualsDerivedLinear(t *testing.T) {
	// 对齐标注就是算好基点和角度的线性标注，属性集应完全一致
	doc1 := newTestDoc(t, "R12")
	doc2 := newTestDoc(t, "R12")

	p1 := core.Point{X: 1, Y: 1}
	p2 := core.Point{X: 7, Y: 1}
	aligned, err := doc1.Modelspace().AddAlignedDim(p1, p2, 3, "txt", "S1", nil, nil)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	direction := p2.Sub(p1)
	base := direction.Orthogonal().Normalized(3)
	linear, err := doc2.Modelspace().AddLinearDim(base, p1, p2, nil, "txt", direction.AngleDeg(), nil, "S1", nil, nil)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	a := aligned.Dimension.Attribs
	b := linear.Dimension.Attribs
	if len(a) != len(b) {
		t.Fatalf("属性集大小不符: %d / %d", len(a), len(b))
	}
	for k, v := range a {
		if b[k] != v {
			t.Errorf("属性 %s 不符: %v / %v", k, v, b[k])
		}
	}
}

func TestAddTypedDims(t *testing.T) {
	msp := newTestDoc(t, "R12").Modelspace()

	tests := []struct {
		add  func(override, attribs core.Attribs) (*entities.DimStyleOverride, error)
		kind entities.DimKind
	}{
		{msp.AddAngularDim, entities.DimAngular},
		{msp.AddAngular3PDim, entities.DimAngular3P},
		{msp.AddDiameterDim, entities.DimDiameter},
		{msp.AddRadiusDim, entities.DimRadius},
		{msp.AddOrdinateDim, entities.DimOrdinate},
	}

	for _, tt := range tests {
		style, err := tt.add(nil, nil)
		if err != nil {
			t.Fatalf("创建 %s 失败: %v", tt.kind, err)
		}
		if style.Kind() != tt.kind {
			t.Errorf("标注类型不符: 期望 %s, 得到 %s", tt.kind, style.Kind())
		}
		if style.Dimension.Attribs.Int("dimtype")&entities.DimBlockExclusive == 0 {
			t.Errorf("%s 独占块标志未设置", tt.kind)
		}
		if style.Dimension.Attribs.String("dimstyle") != "DXFGEN" {
			t.Errorf("%s 默认标注样式不符", tt.kind)
		}
	}

	// 调用方指定样式优先于默认值
	style, err := msp.AddRadiusDim(nil, core.Attribs{"dimstyle": "MINE"})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if style.Dimension.Attribs.String("dimstyle") != "MINE" {
		t.Errorf("调用方样式未生效")
	}
}

// fakeRenderer 记录收到的渲染请求
type fakeRenderer struct {
	rendered   []*entities.DimStyleOverride
	multipoint []*MultiPointLinearDim
}

func (r *fakeRenderer) RenderDimension(layout *Layout, style *entities.DimStyleOverride) error {
	r.rendered = append(r.rendered, style)
	return nil
}

func (r *fakeRenderer) RenderMultiPointLinear(layout *Layout, req *MultiPointLinearDim) error {
	r.multipoint = append(r.multipoint, req)
	return nil
}

func TestRenderDelegation(t *testing.T) {
	msp := newTestDoc(t, "R12").Modelspace()
	renderer := &fakeRenderer{}

	style, err := msp.AddRadiusDim(nil, nil)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	// 渲染必须显式调用
	if len(renderer.rendered) != 0 {
		t.Fatalf("创建时不应自动渲染")
	}
	if err = msp.RenderDim(renderer, style); err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if len(renderer.rendered) != 1 || renderer.rendered[0] != style {
		t.Errorf("渲染请求未传递")
	}

	// 多点线性标注即刻交给渲染引擎，默认样式在委托前填好
	err = msp.AddMultiPointLinearDim(renderer, MultiPointLinearDim{
		Points: []core.Point{{}, {X: 5}, {X: 9}},
		Angle:  0,
	})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if len(renderer.multipoint) != 1 {
		t.Fatalf("多点请求未传递")
	}
	if renderer.multipoint[0].DimStyle != "DXFGEN" {
		t.Errorf("默认标注样式未填充: %q", renderer.multipoint[0].DimStyle)
	}
}
