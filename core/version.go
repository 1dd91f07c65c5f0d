package core

import (
	"fmt"
	"strings"
)

// Version 代表 DXF 格式版本，数值大小即版本先后顺序
type Version int

const (
	R12 Version = iota
	R2000
	R2004
	R2007
	R2010
	R2013
	R2018
)

// DXF 版本号与 $ACADVER 标识的对应关系
var versionNames = [...][2]string{
	R12:   {"R12", "AC1009"},
	R2000: {"R2000", "AC1015"},
	R2004: {"R2004", "AC1018"},
	R2007: {"R2007", "AC1021"},
	R2010: {"R2010", "AC1024"},
	R2013: {"R2013", "AC1027"},
	R2018: {"R2018", "AC1032"},
}

// ParseVersion 解析版本标识，同时接受 "R2000" 和 "AC1015" 两种写法
func ParseVersion(s string) (Version, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for v, names := range versionNames {
		if s == names[0] || s == names[1] {
			return Version(v), nil
		}
	}
	return 0, &ValueError{Field: "version", Reason: fmt.Sprintf("unsupported DXF version %q", s)}
}

// Name 返回可读版本名，如 "R2000"
func (v Version) Name() string {
	if v < 0 || int(v) >= len(versionNames) {
		return fmt.Sprintf("Version(%d)", int(v))
	}
	return versionNames[v][0]
}

// String 返回 $ACADVER 标识，如 "AC1015"
func (v Version) String() string {
	if v < 0 || int(v) >= len(versionNames) {
		return fmt.Sprintf("Version(%d)", int(v))
	}
	return versionNames[v][1]
}

// minVersions 集中记录各实体类型要求的最低版本，
// 版本校验只查这一张表，不在各工厂方法里散落判断
var minVersions = map[string]Version{
	"ELLIPSE":         R2000,
	"LWPOLYLINE":      R2000,
	"MTEXT":           R2000,
	"RAY":             R2000,
	"XLINE":           R2000,
	"SPLINE":          R2000,
	"BODY":            R2000,
	"REGION":          R2000,
	"3DSOLID":         R2000,
	"HATCH":           R2000,
	"MESH":            R2000,
	"IMAGE":           R2000,
	"IMAGEDEF":        R2000,
	"PDFUNDERLAY":     R2000,
	"DWFUNDERLAY":     R2000,
	"DGNUNDERLAY":     R2000,
	"SURFACE":         R2007,
	"EXTRUDEDSURFACE": R2007,
	"LOFTEDSURFACE":   R2007,
	"REVOLVEDSURFACE": R2007,
	"SWEPTSURFACE":    R2007,
}

// Require 校验实体类型在当前版本下是否可用，
// 未登记的类型视为所有版本可用
func Require(kind string, actual Version) error {
	required, ok := minVersions[strings.ToUpper(kind)]
	if !ok || actual >= required {
		return nil
	}
	return &VersionError{Kind: strings.ToUpper(kind), Required: required, Actual: actual}
}
