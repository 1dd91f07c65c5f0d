package entities

import (
	"strings"

	"github.com/zooyer/dxfgen/core"
)

// Entity 是创建侧的图元：类型 + 属性集，句柄由实体数据库分配
type Entity struct {
	Kind    string
	Handle  string
	Attribs core.Attribs
	Linked  []*Entity // 随属实体（VERTEX、ATTRIB），随主实体一同输出，以 SEQEND 收尾
}

// Template 定义一类实体的默认属性与输出标签布局
type Template struct {
	Defaults core.Attribs
	Schema   []TagDef
	Emit     func(e *Entity, w *core.Writer) // 非空时取代 Schema 输出
}

// TagDef 将属性名映射到 DXF 组码，三维点值按 code/code+10/code+20 展开
type TagDef struct {
	Name string
	Code int
}

var registry = map[string]Template{}

// Register 登记实体类型，Defaults 为所有调用共享的模板，
// 取用时必须 Clone，绝不允许把模板引用交给调用方
func Register(kind string, tmpl Template) {
	registry[strings.ToUpper(kind)] = tmpl
}

// New 生产一个带默认属性的实体，属性集是模板的新拷贝。
// 未登记的类型获得空属性集（属性校验是外部数据库的职责）
func New(kind string) *Entity {
	kind = strings.ToUpper(kind)
	e := &Entity{Kind: kind, Attribs: core.Attribs{}}
	if tmpl, ok := registry[kind]; ok && tmpl.Defaults != nil {
		e.Attribs = tmpl.Defaults.Clone()
	}
	return e
}

// Export 输出实体及其随属实体的标签流
func Export(e *Entity, w *core.Writer) {
	w.WriteTag(core.StringTag(0, e.Kind))
	if e.Handle != "" {
		w.WriteTag(core.StringTag(5, e.Handle))
	}
	if layer := e.Attribs.String("layer"); layer != "" {
		w.WriteTag(core.StringTag(8, layer))
	}

	tmpl := registry[e.Kind]
	if tmpl.Emit != nil {
		tmpl.Emit(e, w)
	} else {
		for _, def := range tmpl.Schema {
			value, ok := e.Attribs[def.Name]
			if !ok {
				continue
			}
			emitValue(w, def.Code, value)
		}
	}

	if len(e.Linked) > 0 {
		for _, linked := range e.Linked {
			Export(linked, w)
		}
		w.WriteTag(core.StringTag(0, "SEQEND"))
	}
}

func emitValue(w *core.Writer, code int, value any) {
	switch v := value.(type) {
	case core.Point:
		w.WriteTags(core.PointTags(code, v)...)
	case float64:
		w.WriteTag(core.FloatTag(code, v))
	case int:
		w.WriteTag(core.IntTag(code, v))
	case bool:
		flag := 0
		if v {
			flag = 1
		}
		w.WriteTag(core.IntTag(code, flag))
	case string:
		w.WriteTag(core.StringTag(code, v))
	}
}
