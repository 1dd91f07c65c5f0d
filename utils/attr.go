package utils

import (
	"github.com/zooyer/dxfgen/entities"
)

// GetAttrs 提取块引用名下所有属性的标签/值映射
func GetAttrs(ins *entities.Entity) map[string]string {
	var attrs = make(map[string]string)
	for _, a := range ins.Linked {
		if a.Kind == "ATTRIB" {
			attrs[a.Attribs.String("tag")] = a.Attribs.String("text")
		}
	}

	return attrs
}

// GetAttr 提取块引用名下指定标签的属性值
func GetAttr(ins *entities.Entity, key string) string {
	return GetAttrs(ins)[key]
}
