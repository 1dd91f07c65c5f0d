package core

import (
	"fmt"
)

// VersionError 表示实体类型在当前 DXF 版本下不可用
type VersionError struct {
	Kind     string
	Required Version
	Actual   Version
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%s requires DXF version %s+, current version is %s",
		e.Kind, e.Required.Name(), e.Actual.Name())
}

// ValueError 表示几何输入不合法（点数错误、参数越界等）
type ValueError struct {
	Field  string
	Reason string
}

func (e *ValueError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
