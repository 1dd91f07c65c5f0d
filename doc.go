// Package dxfgen 是 github.com/zooyer/dxf 的创建侧姊妹库：
// 由高层几何意图（拟合点、测量点、四边形顶点）推导出图元的具体属性集，
// 经格式版本校验后交给实体数据库登记。
package dxfgen

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/zooyer/dxfgen/core"
	"github.com/zooyer/dxfgen/entities"
)

// Block 是一个块定义：名称、基点和块内实体，
// 块内容本身也是一个可以添加实体的布局
type Block struct {
	Layout
	Name string
	Base core.Point
}

// AttDefs 返回块内声明的所有属性定义占位符
func (b *Block) AttDefs() []*entities.Entity {
	var defs []*entities.Entity
	for _, e := range b.space.Entities() {
		if e.Kind == "ATTDEF" {
			defs = append(defs, e)
		}
	}
	return defs
}

// Document 是创建侧文档：格式版本、实体数据库、块表和模型空间
type Document struct {
	version    core.Version
	db         *entities.DB
	blocks     map[string]*Block
	names      []string // 块的创建顺序，保证输出稳定
	modelspace *Layout
	anonymous  int
}

// New 创建指定版本的空文档，版本同时接受 "R2000" 和 "AC1015" 两种写法
func New(version string) (*Document, error) {
	v, err := core.ParseVersion(version)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		version: v,
		db:      entities.NewDB(),
		blocks:  make(map[string]*Block),
	}
	doc.modelspace = &Layout{doc: doc, space: &entities.Space{}}

	return doc, nil
}

// Version 返回文档的 DXF 格式版本
func (d *Document) Version() core.Version {
	return d.version
}

// DB 返回文档的实体数据库
func (d *Document) DB() *entities.DB {
	return d.db
}

// Modelspace 返回模型空间布局
func (d *Document) Modelspace() *Layout {
	return d.modelspace
}

// Block 按名称查找块定义，名称不区分大小写
func (d *Document) Block(name string) *Block {
	return d.blocks[strings.ToUpper(name)]
}

// NewBlock 创建命名块定义，重名时返回已有的块
func (d *Document) NewBlock(name string, base core.Point) *Block {
	name = strings.ToUpper(name)
	if block, ok := d.blocks[name]; ok {
		return block
	}

	block := &Block{
		Layout: Layout{doc: d, space: &entities.Space{}},
		Name:   name,
		Base:   base,
	}
	d.blocks[name] = block
	d.names = append(d.names, name)

	return block
}

// NewAnonymousBlock 分配一个匿名块（*U 前缀加递增序号）
func (d *Document) NewAnonymousBlock() *Block {
	d.anonymous++
	return d.NewBlock(fmt.Sprintf("*U%d", d.anonymous), core.Point{})
}

// AddImageDef 登记一份图片定义，供 AddImage 引用，
// sizeX/sizeY 为图片的像素尺寸
func (d *Document) AddImageDef(filename string, sizeX, sizeY float64) *entities.Entity {
	def := entities.New("IMAGEDEF")
	def.Attribs["filename"] = filename
	def.Attribs["image_size"] = core.Point{X: sizeX, Y: sizeY}
	d.db.Add(def)
	return def
}

// AddUnderlayDef 登记一份衬底定义，format 取 PDF、DWF 或 DGN
func (d *Document) AddUnderlayDef(format, filename, name string) (*entities.Entity, error) {
	format = strings.ToUpper(format)
	switch format {
	case "PDF", "DWF", "DGN":
	default:
		return nil, &core.ValueError{Field: "format", Reason: fmt.Sprintf("unknown underlay format %q", format)}
	}

	def := entities.New(format + "DEFINITION")
	def.Attribs["filename"] = filename
	def.Attribs["name"] = name
	def.Attribs["entity_name"] = format + "UNDERLAY"
	d.db.Add(def)

	return def, nil
}

// WriteTo 输出轻量 DXF 标签流（最小 HEADER + BLOCKS + ENTITIES），
// 只保证与 Scanner 互逆，不追求对各 CAD 软件的完整兼容
func (d *Document) WriteTo(w io.Writer) error {
	writer := core.NewWriter(w)

	writer.WriteTags(
		core.StringTag(0, "SECTION"),
		core.StringTag(2, "HEADER"),
		core.StringTag(9, "$ACADVER"),
		core.StringTag(1, d.version.String()),
		core.StringTag(0, "ENDSEC"),
	)

	writer.WriteTags(
		core.StringTag(0, "SECTION"),
		core.StringTag(2, "BLOCKS"),
	)
	names := append([]string(nil), d.names...)
	sort.Strings(names)
	for _, name := range names {
		block := d.blocks[name]
		writer.WriteTags(
			core.StringTag(0, "BLOCK"),
			core.StringTag(8, "0"),
			core.StringTag(2, block.Name),
		)
		writer.WriteTags(core.PointTags(10, block.Base)...)
		block.space.Export(writer)
		writer.WriteTag(core.StringTag(0, "ENDBLK"))
	}
	writer.WriteTag(core.StringTag(0, "ENDSEC"))

	writer.WriteTags(
		core.StringTag(0, "SECTION"),
		core.StringTag(2, "ENTITIES"),
	)
	d.modelspace.space.Export(writer)
	writer.WriteTags(
		core.StringTag(0, "ENDSEC"),
		core.StringTag(0, "EOF"),
	)

	return writer.Flush()
}

// Save 把文档写入文件
func (d *Document) Save(filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return
	}

	defer func() {
		if e := file.Close(); e != nil && err == nil {
			err = e
		}
	}()

	return d.WriteTo(file)
}
