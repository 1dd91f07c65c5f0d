package entities

import (
	"strconv"
	"strings"

	"github.com/zooyer/dxfgen/core"
)

// HandleGenerator 生成递增的大写十六进制句柄
type HandleGenerator struct {
	next uint64
}

func (g *HandleGenerator) Next() string {
	g.next++
	return strings.ToUpper(strconv.FormatUint(g.next, 16))
}

// DB 是以句柄为键的实体数据库，句柄唯一标识一个实体
type DB struct {
	entities map[string]*Entity
	handles  HandleGenerator
}

func NewDB() *DB {
	return &DB{
		entities: make(map[string]*Entity, 1024),
	}
}

// NextHandle 返回下一个未占用的句柄，已登记的句柄不可信任，必须跳过
func (db *DB) NextHandle() string {
	for {
		handle := db.handles.Next()
		if _, ok := db.entities[handle]; !ok {
			return handle
		}
	}
}

// Add 登记实体，没有句柄的实体现场分配一个
func (db *DB) Add(e *Entity) {
	if e.Handle == "" {
		e.Handle = db.NextHandle()
	}
	db.entities[e.Handle] = e
}

func (db *DB) Get(handle string) *Entity {
	return db.entities[handle]
}

func (db *DB) Delete(handle string) {
	delete(db.entities, handle)
}

func (db *DB) Len() int {
	return len(db.entities)
}

// Duplicate 复制实体并分配新句柄，句柄绝不能跟着属性一起复制，
// 否则两个实体会互为别名
func (db *DB) Duplicate(e *Entity) *Entity {
	clone := &Entity{
		Kind:    e.Kind,
		Attribs: e.Attribs.Clone(),
	}
	db.Add(clone)
	return clone
}

// Space 是一组实体的有序集合，模型空间和块内容都是 Space
type Space struct {
	entities []*Entity
}

func (s *Space) Add(e *Entity) {
	s.entities = append(s.entities, e)
}

func (s *Space) Len() int {
	return len(s.entities)
}

// Entities 返回底层切片，调用方只读使用
func (s *Space) Entities() []*Entity {
	return s.entities
}

func (s *Space) Clear() {
	s.entities = nil
}

// Export 按加入顺序输出集合内所有实体的标签流
func (s *Space) Export(w *core.Writer) {
	for _, e := range s.entities {
		Export(e, w)
	}
}
