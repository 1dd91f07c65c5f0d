package entities

import (
	"github.com/zooyer/dxfgen/core"
)

// POLYLINE 组码 70 的标志位，网格/多面网格/三维多段线共用一个
// flags 字段，按位或叠加，绝不能整体覆盖
const (
	PolylineClosed   = 1
	PolylineMClosed  = 1
	Polyline3D       = 8
	PolylinePolymesh = 16
	PolylineNClosed  = 32
	PolylinePolyface = 64
)

// SPLINE 组码 70 的标志位
const (
	SplineClosed   = 1
	SplinePeriodic = 2
	SplineRational = 4
	SplinePlanar   = 8
)

func base(attribs core.Attribs) core.Attribs {
	attribs.SetDefault("layer", "0")
	return attribs
}

func init() {
	Register("POINT", Template{
		Defaults: base(core.Attribs{}),
		Schema:   []TagDef{{"location", 10}},
	})
	Register("LINE", Template{
		Defaults: base(core.Attribs{}),
		Schema:   []TagDef{{"start", 10}, {"end", 11}},
	})
	Register("CIRCLE", Template{
		Defaults: base(core.Attribs{}),
		Schema:   []TagDef{{"center", 10}, {"radius", 40}},
	})
	Register("ARC", Template{
		Defaults: base(core.Attribs{}),
		Schema:   []TagDef{{"center", 10}, {"radius", 40}, {"start_angle", 50}, {"end_angle", 51}},
	})
	Register("ELLIPSE", Template{
		Defaults: base(core.Attribs{
			"major_axis":  core.Point{X: 1},
			"ratio":       1.0,
			"start_param": 0.0,
		}),
		Schema: []TagDef{{"center", 10}, {"major_axis", 11}, {"ratio", 40}, {"start_param", 41}, {"end_param", 42}},
	})

	// 四边形实体：vtx0..vtx3 四个顶点槽由工厂计算填充
	quad := []TagDef{{"vtx0", 10}, {"vtx1", 11}, {"vtx2", 12}, {"vtx3", 13}}
	Register("SOLID", Template{Defaults: base(core.Attribs{}), Schema: quad})
	Register("TRACE", Template{Defaults: base(core.Attribs{}), Schema: quad})
	Register("3DFACE", Template{Defaults: base(core.Attribs{}), Schema: quad})

	Register("TEXT", Template{
		Defaults: base(core.Attribs{"height": 1.0}),
		Schema:   []TagDef{{"insert", 10}, {"height", 40}, {"text", 1}, {"rotation", 50}},
	})
	Register("SHAPE", Template{
		Defaults: base(core.Attribs{"size": 1.0}),
		Schema:   []TagDef{{"insert", 10}, {"size", 40}, {"name", 2}, {"rotation", 50}},
	})
	Register("INSERT", Template{
		Defaults: base(core.Attribs{
			"xscale": 1.0,
			"yscale": 1.0,
			"zscale": 1.0,
		}),
		Schema: []TagDef{{"attribs_follow", 66}, {"name", 2}, {"insert", 10}, {"xscale", 41}, {"yscale", 42}, {"zscale", 43}, {"rotation", 50}},
	})
	Register("ATTRIB", Template{
		Defaults: base(core.Attribs{"height": 1.0}),
		Schema:   []TagDef{{"insert", 10}, {"height", 40}, {"text", 1}, {"tag", 2}},
	})
	Register("ATTDEF", Template{
		Defaults: base(core.Attribs{"height": 1.0}),
		Schema:   []TagDef{{"insert", 10}, {"height", 40}, {"text", 1}, {"prompt", 3}, {"tag", 2}},
	})

	Register("POLYLINE", Template{
		Defaults: base(core.Attribs{"flags": 0}),
		Schema:   []TagDef{{"flags", 70}, {"m_count", 71}, {"n_count", 72}},
	})
	Register("VERTEX", Template{
		Defaults: base(core.Attribs{}),
		Schema:   []TagDef{{"location", 10}, {"flags", 70}},
	})
	Register("LWPOLYLINE", Template{
		Defaults: base(core.Attribs{"flags": 0}),
		Emit:     emitLWPolyline,
	})

	Register("MTEXT", Template{
		Defaults: base(core.Attribs{"char_height": 1.0}),
		Schema:   []TagDef{{"insert", 10}, {"char_height", 40}, {"text", 1}},
	})
	Register("RAY", Template{
		Defaults: base(core.Attribs{}),
		Schema:   []TagDef{{"start", 10}, {"unit_vector", 11}},
	})
	Register("XLINE", Template{
		Defaults: base(core.Attribs{}),
		Schema:   []TagDef{{"start", 10}, {"unit_vector", 11}},
	})
	Register("SPLINE", Template{
		Defaults: base(core.Attribs{"degree": 3, "flags": 0}),
		Emit:     emitSpline,
	})

	// ACIS 实体只携带不做解释的文本数据
	for _, kind := range []string{"BODY", "REGION", "3DSOLID", "SURFACE", "EXTRUDEDSURFACE", "LOFTEDSURFACE", "REVOLVEDSURFACE", "SWEPTSURFACE"} {
		Register(kind, Template{
			Defaults: base(core.Attribs{}),
			Emit:     emitAcis,
		})
	}

	Register("HATCH", Template{
		Defaults: base(core.Attribs{
			"pattern_name": "SOLID",
			"solid_fill":   1,
			"color":        7,
		}),
		Schema: []TagDef{{"pattern_name", 2}, {"solid_fill", 70}, {"color", 62}},
	})
	Register("MESH", Template{
		Defaults: base(core.Attribs{"version": 2}),
		Schema:   []TagDef{{"version", 71}},
	})
	Register("IMAGE", Template{
		Defaults: base(core.Attribs{}),
		Schema:   []TagDef{{"insert", 10}, {"u_pixel", 11}, {"v_pixel", 12}, {"image_size", 13}, {"image_def_handle", 340}},
	})
	Register("IMAGEDEF", Template{
		Defaults: base(core.Attribs{}),
		Schema:   []TagDef{{"filename", 1}, {"image_size", 10}},
	})
	for _, kind := range []string{"PDFUNDERLAY", "DWFUNDERLAY", "DGNUNDERLAY"} {
		Register(kind, Template{
			Defaults: base(core.Attribs{
				"xscale": 1.0,
				"yscale": 1.0,
				"zscale": 1.0,
			}),
			Schema: []TagDef{{"underlay_def_handle", 340}, {"insert", 10}, {"xscale", 41}, {"yscale", 42}, {"zscale", 43}, {"rotation", 50}},
		})
	}
	for _, kind := range []string{"PDFDEFINITION", "DWFDEFINITION", "DGNDEFINITION"} {
		Register(kind, Template{
			Defaults: base(core.Attribs{}),
			Schema:   []TagDef{{"filename", 1}, {"name", 2}},
		})
	}

	Register("DIMENSION", Template{
		Defaults: base(core.Attribs{}),
		Schema: []TagDef{
			{"dimstyle", 3}, {"dimtype", 70}, {"text", 1},
			{"defpoint", 10}, {"text_midpoint", 11},
			{"defpoint2", 13}, {"defpoint3", 14},
			{"angle", 50}, {"text_rotation", 53},
		},
	})
}

func emitLWPolyline(e *Entity, w *core.Writer) {
	points, _ := e.Attribs["points"].([]core.Point)
	w.WriteTag(core.IntTag(90, len(points)))
	w.WriteTag(core.IntTag(70, e.Attribs.Int("flags")))
	for _, p := range points {
		w.WriteTag(core.FloatTag(10, p.X))
		w.WriteTag(core.FloatTag(20, p.Y))
	}
}

func emitSpline(e *Entity, w *core.Writer) {
	var (
		knots, _   = e.Attribs["knots"].([]float64)
		control, _ = e.Attribs["control_points"].([]core.Point)
		fit, _     = e.Attribs["fit_points"].([]core.Point)
		weights, _ = e.Attribs["weights"].([]float64)
	)

	w.WriteTag(core.IntTag(70, e.Attribs.Int("flags")))
	w.WriteTag(core.IntTag(71, e.Attribs.Int("degree")))
	w.WriteTag(core.IntTag(72, len(knots)))
	w.WriteTag(core.IntTag(73, len(control)))
	w.WriteTag(core.IntTag(74, len(fit)))
	for _, k := range knots {
		w.WriteTag(core.FloatTag(40, k))
	}
	for _, weight := range weights {
		w.WriteTag(core.FloatTag(41, weight))
	}
	for _, p := range control {
		w.WriteTags(core.PointTags(10, p)...)
	}
	for _, p := range fit {
		w.WriteTags(core.PointTags(11, p)...)
	}
}

func emitAcis(e *Entity, w *core.Writer) {
	lines, _ := e.Attribs["acis_data"].([]string)
	for _, line := range lines {
		w.WriteTag(core.StringTag(1, line))
	}
}
