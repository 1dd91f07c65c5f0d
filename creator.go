package dxfgen

import (
	"fmt"
	"math"

	"github.com/zooyer/dxfgen/core"
	"github.com/zooyer/dxfgen/entities"
	"github.com/zooyer/dxfgen/spline"
)

// Layout 是实体工厂门面。每个 Add 方法按同一套流程工作：
// 先做版本校验，再把调用方属性与类型默认值合并，计算字段最后落盘，
// 组装好的实体交给实体数据库登记并挂进所属实体空间。
// 任何校验失败都发生在登记之前，不会留下半创建的实体
type Layout struct {
	doc   *Document
	space *entities.Space
}

// Document 返回布局所属的文档
func (l *Layout) Document() *Document {
	return l.doc
}

// Entities 返回布局内的实体，按加入顺序排列，调用方只读使用
func (l *Layout) Entities() []*entities.Entity {
	return l.space.Entities()
}

func (l *Layout) require(kind string) error {
	return core.Require(kind, l.doc.version)
}

// add 组装并登记实体：版本校验 -> 模板默认值与调用方属性合并 -> 入库
func (l *Layout) add(kind string, attribs core.Attribs) (*entities.Entity, error) {
	if err := l.require(kind); err != nil {
		return nil, err
	}

	e := entities.New(kind)
	e.Attribs = e.Attribs.Merge(attribs)
	l.doc.db.Add(e)
	l.space.Add(e)

	return e, nil
}

// AddPoint 添加点实体
func (l *Layout) AddPoint(location core.Point, attribs core.Attribs) (*entities.Entity, error) {
	attribs = attribs.Clone()
	attribs["location"] = location
	return l.add("POINT", attribs)
}

// AddLine 添加由起点到终点的直线
func (l *Layout) AddLine(start, end core.Point, attribs core.Attribs) (*entities.Entity, error) {
	attribs = attribs.Clone()
	attribs["start"] = start
	attribs["end"] = end
	return l.add("LINE", attribs)
}

// AddCircle 添加圆
func (l *Layout) AddCircle(center core.Point, radius float64, attribs core.Attribs) (*entities.Entity, error) {
	attribs = attribs.Clone()
	attribs["center"] = center
	attribs["radius"] = radius
	return l.add("CIRCLE", attribs)
}

// AddEllipse 添加椭圆，ratio 是短轴与长轴之比，必须不大于 1.0，
// 曲线从 startParam 逆时针走到 endParam，整圆为 0 到 2π
func (l *Layout) AddEllipse(center, majorAxis core.Point, ratio, startParam, endParam float64, attribs core.Attribs) (*entities.Entity, error) {
	if err := l.require("ELLIPSE"); err != nil {
		return nil, err
	}
	if ratio > 1.0 {
		return nil, &core.ValueError{Field: "ratio", Reason: "has to be <= 1.0"}
	}

	attribs = attribs.Clone()
	attribs["center"] = center
	attribs["major_axis"] = majorAxis
	attribs["ratio"] = ratio
	attribs["start_param"] = startParam
	attribs["end_param"] = endParam

	return l.add("ELLIPSE", attribs)
}

// AddArc 添加圆弧，默认从起始角逆时针画到终止角，
// counterClockwise 为 false 时交换两个角
func (l *Layout) AddArc(center core.Point, radius, startAngle, endAngle float64, counterClockwise bool, attribs core.Attribs) (*entities.Entity, error) {
	attribs = attribs.Clone()
	attribs["center"] = center
	attribs["radius"] = radius
	if counterClockwise {
		attribs["start_angle"] = startAngle
		attribs["end_angle"] = endAngle
	} else {
		attribs["start_angle"] = endAngle
		attribs["end_angle"] = startAngle
	}
	return l.add("ARC", attribs)
}

// AddSolid 添加实心四边形，接受 3 或 4 个点
func (l *Layout) AddSolid(points []core.Point, attribs core.Attribs) (*entities.Entity, error) {
	return l.addQuadrilateral("SOLID", points, attribs)
}

// AddTrace 添加 TRACE 四边形，接受 3 或 4 个点
func (l *Layout) AddTrace(points []core.Point, attribs core.Attribs) (*entities.Entity, error) {
	return l.addQuadrilateral("TRACE", points, attribs)
}

// Add3DFace 添加三维面，接受 3 或 4 个点
func (l *Layout) Add3DFace(points []core.Point, attribs core.Attribs) (*entities.Entity, error) {
	return l.addQuadrilateral("3DFACE", points, attribs)
}

func (l *Layout) addQuadrilateral(kind string, points []core.Point, attribs core.Attribs) (*entities.Entity, error) {
	quad, err := fourPoints(points)
	if err != nil {
		return nil, err
	}

	e, err := l.add(kind, attribs.Clone())
	if err != nil {
		return nil, err
	}

	// 四个顶点槽永远由归一化结果填充，调用方传入的同名键会被覆盖
	e.Attribs["vtx0"] = quad[0]
	e.Attribs["vtx1"] = quad[1]
	e.Attribs["vtx2"] = quad[2]
	e.Attribs["vtx3"] = quad[3]

	return e, nil
}

// fourPoints 把 3 或 4 个点归一化成恰好 4 个有序顶点，
// 3 个点时重复最后一个点补足第四个槽（下游渲染依赖这一约定）
func fourPoints(points []core.Point) ([4]core.Point, error) {
	var quad [4]core.Point
	if len(points) != 3 && len(points) != 4 {
		return quad, &core.ValueError{Field: "points", Reason: "3 or 4 points required"}
	}

	copy(quad[:], points)
	if len(points) == 3 {
		quad[3] = points[2]
	}

	return quad, nil
}

// AddText 添加单行文字
func (l *Layout) AddText(text string, attribs core.Attribs) (*entities.Entity, error) {
	attribs = attribs.Clone()
	attribs["text"] = text
	attribs.SetDefault("insert", core.Point{})
	return l.add("TEXT", attribs)
}

// AddShape 添加外部形定义的引用
func (l *Layout) AddShape(name string, insert core.Point, size float64, attribs core.Attribs) (*entities.Entity, error) {
	attribs = attribs.Clone()
	attribs["name"] = name
	attribs["insert"] = insert
	attribs["size"] = size
	return l.add("SHAPE", attribs)
}

// AddBlockref 添加块引用
func (l *Layout) AddBlockref(name string, insert core.Point, attribs core.Attribs) (*entities.Entity, error) {
	attribs = attribs.Clone()
	attribs["name"] = name
	attribs["insert"] = insert
	return l.add("INSERT", attribs)
}

// AddAttrib 添加独立的属性实体
func (l *Layout) AddAttrib(tag, text string, insert core.Point, attribs core.Attribs) (*entities.Entity, error) {
	attribs = attribs.Clone()
	attribs["tag"] = tag
	attribs["text"] = text
	attribs["insert"] = insert
	return l.add("ATTRIB", attribs)
}

// AddAttdef 添加属性定义占位符，块定义里的占位符
// 会被 AddAutoBlockref 展开成具体的属性实体
func (l *Layout) AddAttdef(tag, prompt, text string, insert core.Point, attribs core.Attribs) (*entities.Entity, error) {
	attribs = attribs.Clone()
	attribs["tag"] = tag
	attribs["prompt"] = prompt
	attribs["text"] = text
	attribs["insert"] = insert
	return l.add("ATTDEF", attribs)
}

// attachAttrib 把属性实体挂到块引用名下（随 INSERT 一同输出，以 SEQEND 收尾）
func (l *Layout) attachAttrib(blockref *entities.Entity, tag, text string, insert core.Point, attribs core.Attribs) *entities.Entity {
	attrib := entities.New("ATTRIB")
	attrib.Attribs = attrib.Attribs.Merge(attribs)
	attrib.Attribs["tag"] = tag
	attrib.Attribs["text"] = text
	attrib.Attribs["insert"] = insert

	l.doc.db.Add(attrib)
	blockref.Linked = append(blockref.Linked, attrib)
	blockref.Attribs["attribs_follow"] = 1

	return attrib
}

// AddAutoBlockref 组合操作：为命名块里的每个属性定义占位符自动生成一份
// 属性实体，属性值取自 values（键为属性标签，缺失的标签取空串），
// 位置沿用占位符相对块基点声明的偏移，最后把结果包进一个新的匿名块，
// 对匿名块发出带属性的块引用
func (l *Layout) AddAutoBlockref(name string, insert core.Point, values map[string]string, attribs core.Attribs) (*entities.Entity, error) {
	blockdef := l.doc.Block(name)
	if blockdef == nil {
		return nil, &core.ValueError{Field: "name", Reason: fmt.Sprintf("unknown block %q", name)}
	}

	auto := l.doc.NewAnonymousBlock()
	blockref, err := auto.AddBlockref(name, core.Point{}, nil)
	if err != nil {
		return nil, err
	}

	for _, attdef := range blockdef.AttDefs() {
		attrs := attdef.Attribs.Clone()
		// prompt 与句柄是占位符的瞬态字段，复制句柄会让两个实体互为别名，
		// 绝不能带到生成的属性实例上
		attrs.Pop("prompt")
		attrs.Pop("handle")

		tag, _ := attrs.Pop("tag")
		tagName, _ := tag.(string)
		position, _ := attrs.PopPoint("insert")
		attrs.Pop("text")

		auto.attachAttrib(blockref, tagName, values[tagName], position, attrs)
	}

	return l.AddBlockref(auto.Name, insert, attribs)
}

// AddPolyline2D 添加二维多段线，attribs 里 closed 为 true 时闭合
func (l *Layout) AddPolyline2D(points []core.Point, attribs core.Attribs) (*entities.Entity, error) {
	attribs = attribs.Clone()
	closed := attribs.PopBool("closed")

	polyline, err := l.add("POLYLINE", attribs)
	if err != nil {
		return nil, err
	}
	if closed {
		polyline.Attribs.MergeFlags("flags", entities.PolylineClosed)
	}
	l.appendVertices(polyline, points, 0)

	return polyline, nil
}

// AddPolyline3D 添加三维多段线，三维标志位按位或进 flags，不覆盖已有位
func (l *Layout) AddPolyline3D(points []core.Point, attribs core.Attribs) (*entities.Entity, error) {
	attribs = attribs.Clone()
	attribs.MergeFlags("flags", entities.Polyline3D)
	return l.AddPolyline2D(points, attribs)
}

// AddPolymesh 添加 m x n 的网格（DXF 中仍是 POLYLINE 实体），
// 顶点初始化在原点，网格尺寸最小为 2 x 2
func (l *Layout) AddPolymesh(m, n int, attribs core.Attribs) (*entities.Entity, error) {
	attribs = attribs.Clone()
	attribs.MergeFlags("flags", entities.PolylinePolymesh)
	mClose := attribs.PopBool("m_close")
	nClose := attribs.PopBool("n_close")

	m = max(m, 2)
	n = max(n, 2)
	attribs["m_count"] = m
	attribs["n_count"] = n

	polymesh, err := l.add("POLYLINE", attribs)
	if err != nil {
		return nil, err
	}
	if mClose {
		polymesh.Attribs.MergeFlags("flags", entities.PolylineMClosed)
	}
	if nClose {
		polymesh.Attribs.MergeFlags("flags", entities.PolylineNClosed)
	}
	l.appendVertices(polymesh, make([]core.Point, m*n), 64)

	return polymesh, nil
}

// AddPolyface 添加多面网格（DXF 中仍是 POLYLINE 实体）
func (l *Layout) AddPolyface(attribs core.Attribs) (*entities.Entity, error) {
	attribs = attribs.Clone()
	attribs.MergeFlags("flags", entities.PolylinePolyface)
	mClose := attribs.PopBool("m_close")
	nClose := attribs.PopBool("n_close")

	polyface, err := l.add("POLYLINE", attribs)
	if err != nil {
		return nil, err
	}
	if mClose {
		polyface.Attribs.MergeFlags("flags", entities.PolylineMClosed)
	}
	if nClose {
		polyface.Attribs.MergeFlags("flags", entities.PolylineNClosed)
	}

	return polyface, nil
}

func (l *Layout) appendVertices(polyline *entities.Entity, points []core.Point, flags int) {
	for _, p := range points {
		vertex := entities.New("VERTEX")
		vertex.Attribs["location"] = p
		if flags != 0 {
			vertex.Attribs.MergeFlags("flags", flags)
		}
		l.doc.db.Add(vertex)
		polyline.Linked = append(polyline.Linked, vertex)
	}
}

// AddLWPolyline 添加轻量多段线，比 POLYLINE 省空间
func (l *Layout) AddLWPolyline(points []core.Point, attribs core.Attribs) (*entities.Entity, error) {
	if err := l.require("LWPOLYLINE"); err != nil {
		return nil, err
	}

	attribs = attribs.Clone()
	closed := attribs.PopBool("closed")
	attribs["points"] = append([]core.Point(nil), points...)

	lwpolyline, err := l.add("LWPOLYLINE", attribs)
	if err != nil {
		return nil, err
	}
	if closed {
		lwpolyline.Attribs.MergeFlags("flags", entities.PolylineClosed)
	}

	return lwpolyline, nil
}

// AddMText 添加多行文字
func (l *Layout) AddMText(text string, attribs core.Attribs) (*entities.Entity, error) {
	attribs = attribs.Clone()
	attribs["text"] = text
	attribs.SetDefault("insert", core.Point{})
	return l.add("MTEXT", attribs)
}

// AddRay 添加射线（单向无限延伸的构造线）
func (l *Layout) AddRay(start, unitVector core.Point, attribs core.Attribs) (*entities.Entity, error) {
	attribs = attribs.Clone()
	attribs["start"] = start
	attribs["unit_vector"] = unitVector
	return l.add("RAY", attribs)
}

// AddXLine 添加双向无限延伸的构造线
func (l *Layout) AddXLine(start, unitVector core.Point, attribs core.Attribs) (*entities.Entity, error) {
	attribs = attribs.Clone()
	attribs["start"] = start
	attribs["unit_vector"] = unitVector
	return l.add("XLINE", attribs)
}

// AddSpline 添加只带拟合点的样条，控制点和节点留给 CAD 软件计算，
// fitPoints 为 nil 时创建空样条，全部数据由调用方事后填写
func (l *Layout) AddSpline(fitPoints []core.Point, degree int, attribs core.Attribs) (*entities.Entity, error) {
	attribs = attribs.Clone()
	attribs["degree"] = degree
	if fitPoints != nil {
		attribs["fit_points"] = append([]core.Point(nil), fitPoints...)
	}
	return l.add("SPLINE", attribs)
}

// AddSplineControlFrame 由拟合点插值出控制点和节点后添加开放样条。
// method 取 uniform、distance 或 centripetal，power 只对 centripetal 生效。
// 任何一种方法都不保证与 CAD 软件由拟合点生成的样条一致
func (l *Layout) AddSplineControlFrame(fitPoints []core.Point, degree int, method string, power float64, attribs core.Attribs) (*entities.Entity, error) {
	if err := l.require("SPLINE"); err != nil {
		return nil, err
	}

	frame, err := spline.ControlFrame(fitPoints, degree, method, power)
	if err != nil {
		return nil, err
	}

	return l.addSplineFrame(frame, 0, attribs)
}

// AddSplineApprox 用 count 个控制点对拟合点做最小二乘逼近，
// count 必须小于拟合点数
func (l *Layout) AddSplineApprox(fitPoints []core.Point, count, degree int, method string, power float64, attribs core.Attribs) (*entities.Entity, error) {
	if err := l.require("SPLINE"); err != nil {
		return nil, err
	}

	frame, err := spline.ControlFrameApprox(fitPoints, count, degree, method, power)
	if err != nil {
		return nil, err
	}

	return l.addSplineFrame(frame, 0, attribs)
}

// AddOpenSpline 由控制点添加开放均匀样条，曲线经过首末控制点，
// knots 非 nil 时替换默认节点（长度必须满足控制点数 + 阶数 + 1）
func (l *Layout) AddOpenSpline(controlPoints []core.Point, degree int, knots []float64, attribs core.Attribs) (*entities.Entity, error) {
	if err := l.require("SPLINE"); err != nil {
		return nil, err
	}

	frame, err := spline.OpenUniform(controlPoints, degree)
	if err != nil {
		return nil, err
	}
	if err = l.overrideKnots(frame, knots); err != nil {
		return nil, err
	}

	return l.addSplineFrame(frame, 0, attribs)
}

// AddClosedSpline 由控制点添加闭合均匀样条，接缝处平滑，不固定起终点
func (l *Layout) AddClosedSpline(controlPoints []core.Point, degree int, knots []float64, attribs core.Attribs) (*entities.Entity, error) {
	if err := l.require("SPLINE"); err != nil {
		return nil, err
	}

	frame, err := spline.Periodic(controlPoints, degree)
	if err != nil {
		return nil, err
	}
	if err = l.overrideKnots(frame, knots); err != nil {
		return nil, err
	}

	return l.addSplineFrame(frame, entities.SplineClosed|entities.SplinePeriodic, attribs)
}

// AddRationalSpline 由控制点添加开放有理样条，每个控制点附带权重
func (l *Layout) AddRationalSpline(controlPoints []core.Point, weights []float64, degree int, knots []float64, attribs core.Attribs) (*entities.Entity, error) {
	if err := l.require("SPLINE"); err != nil {
		return nil, err
	}

	frame, err := spline.OpenRational(controlPoints, weights, degree)
	if err != nil {
		return nil, err
	}
	if err = l.overrideKnots(frame, knots); err != nil {
		return nil, err
	}

	return l.addSplineFrame(frame, 0, attribs)
}

// AddClosedRationalSpline 由控制点添加闭合有理样条
func (l *Layout) AddClosedRationalSpline(controlPoints []core.Point, weights []float64, degree int, knots []float64, attribs core.Attribs) (*entities.Entity, error) {
	if err := l.require("SPLINE"); err != nil {
		return nil, err
	}

	frame, err := spline.PeriodicRational(controlPoints, weights, degree)
	if err != nil {
		return nil, err
	}
	if err = l.overrideKnots(frame, knots); err != nil {
		return nil, err
	}

	return l.addSplineFrame(frame, entities.SplineClosed|entities.SplinePeriodic, attribs)
}

func (l *Layout) overrideKnots(frame *spline.Frame, knots []float64) error {
	if knots == nil {
		return nil
	}
	frame.Knots = append([]float64(nil), knots...)
	return frame.Validate()
}

func (l *Layout) addSplineFrame(frame *spline.Frame, flags int, attribs core.Attribs) (*entities.Entity, error) {
	attribs = attribs.Clone()
	attribs["degree"] = frame.Degree
	attribs["control_points"] = frame.ControlPoints
	attribs["knots"] = frame.Knots
	if frame.Weights != nil {
		attribs["weights"] = frame.Weights
		flags |= entities.SplineRational
	}

	e, err := l.add("SPLINE", attribs)
	if err != nil {
		return nil, err
	}
	if flags != 0 {
		e.Attribs.MergeFlags("flags", flags)
	}

	return e, nil
}

// AddBody 添加 ACIS 实体，acisData 为不做解释的文本行
func (l *Layout) AddBody(acisData []string, attribs core.Attribs) (*entities.Entity, error) {
	return l.addAcisEntity("BODY", acisData, attribs)
}

// AddRegion 添加 ACIS 区域
func (l *Layout) AddRegion(acisData []string, attribs core.Attribs) (*entities.Entity, error) {
	return l.addAcisEntity("REGION", acisData, attribs)
}

// Add3DSolid 添加 ACIS 三维实体
func (l *Layout) Add3DSolid(acisData []string, attribs core.Attribs) (*entities.Entity, error) {
	return l.addAcisEntity("3DSOLID", acisData, attribs)
}

// AddSurface 添加 ACIS 曲面
func (l *Layout) AddSurface(acisData []string, attribs core.Attribs) (*entities.Entity, error) {
	return l.addAcisEntity("SURFACE", acisData, attribs)
}

// AddExtrudedSurface 添加拉伸曲面
func (l *Layout) AddExtrudedSurface(acisData []string, attribs core.Attribs) (*entities.Entity, error) {
	return l.addAcisEntity("EXTRUDEDSURFACE", acisData, attribs)
}

// AddLoftedSurface 添加放样曲面
func (l *Layout) AddLoftedSurface(acisData []string, attribs core.Attribs) (*entities.Entity, error) {
	return l.addAcisEntity("LOFTEDSURFACE", acisData, attribs)
}

// AddRevolvedSurface 添加旋转曲面
func (l *Layout) AddRevolvedSurface(acisData []string, attribs core.Attribs) (*entities.Entity, error) {
	return l.addAcisEntity("REVOLVEDSURFACE", acisData, attribs)
}

// AddSweptSurface 添加扫掠曲面
func (l *Layout) AddSweptSurface(acisData []string, attribs core.Attribs) (*entities.Entity, error) {
	return l.addAcisEntity("SWEPTSURFACE", acisData, attribs)
}

func (l *Layout) addAcisEntity(kind string, acisData []string, attribs core.Attribs) (*entities.Entity, error) {
	if err := l.require(kind); err != nil {
		return nil, err
	}

	attribs = attribs.Clone()
	if acisData != nil {
		attribs["acis_data"] = append([]string(nil), acisData...)
	}

	return l.add(kind, attribs)
}

// AddHatch 添加实色填充，color 为 ACI 颜色号，默认 7 是黑/白
func (l *Layout) AddHatch(color int, attribs core.Attribs) (*entities.Entity, error) {
	attribs = attribs.Clone()
	attribs["solid_fill"] = 1
	attribs["color"] = color
	attribs["pattern_name"] = "SOLID"
	return l.add("HATCH", attribs)
}

// AddMesh 添加网格实体
func (l *Layout) AddMesh(attribs core.Attribs) (*entities.Entity, error) {
	return l.add("MESH", attribs.Clone())
}

// AddImage 添加图片引用，imageDef 由 Document.AddImageDef 创建，
// sizeX/sizeY 是图片在图纸单位下的尺寸，rotation 为绕 z 轴的角度
func (l *Layout) AddImage(imageDef *entities.Entity, insert core.Point, sizeX, sizeY, rotation float64, attribs core.Attribs) (*entities.Entity, error) {
	if err := l.require("IMAGE"); err != nil {
		return nil, err
	}

	size := imageDef.Attribs.Point("image_size")
	if size.X == 0 || size.Y == 0 {
		return nil, &core.ValueError{Field: "image_size", Reason: "image definition has no pixel size"}
	}

	// 仅支持 xy 平面内的图片
	xRad := rotation * math.Pi / 180
	yRad := xRad + math.Pi/2

	attribs = attribs.Clone()
	attribs["insert"] = insert
	attribs["u_pixel"] = pixelVector(sizeX/size.X, xRad)
	attribs["v_pixel"] = pixelVector(sizeY/size.Y, yRad)
	attribs["image_def_handle"] = imageDef.Handle
	attribs["image_size"] = size

	return l.add("IMAGE", attribs)
}

func pixelVector(unitsPerPixel, rad float64) core.Point {
	return core.Point{
		X: math.Cos(rad) * unitsPerPixel,
		Y: math.Sin(rad) * unitsPerPixel,
	}.Round(6)
}

// AddUnderlay 添加衬底引用，underlayDef 由 Document.AddUnderlayDef 创建
func (l *Layout) AddUnderlay(underlayDef *entities.Entity, insert, scale core.Point, rotation float64, attribs core.Attribs) (*entities.Entity, error) {
	kind := underlayDef.Attribs.String("entity_name")
	if kind == "" {
		return nil, &core.ValueError{Field: "underlay", Reason: "not an underlay definition"}
	}
	if err := l.require(kind); err != nil {
		return nil, err
	}

	attribs = attribs.Clone()
	attribs["insert"] = insert
	attribs["xscale"] = scale.X
	attribs["yscale"] = scale.Y
	attribs["zscale"] = scale.Z
	attribs["rotation"] = rotation
	attribs["underlay_def_handle"] = underlayDef.Handle

	return l.add(kind, attribs)
}
