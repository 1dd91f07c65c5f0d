package core

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in   string
		want Version
	}{
		{"R12", R12},
		{"AC1009", R12},
		{"R2000", R2000},
		{"AC1015", R2000},
		{"r2007", R2007},
		{"ac1021", R2007},
		{" R2018 ", R2018},
	}

	for _, tt := range tests {
		got, err := ParseVersion(tt.in)
		if err != nil {
			t.Errorf("ParseVersion(%q) 出错: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVersion(%q) = %v, 期望 %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseVersion("R13"); err == nil {
		t.Errorf("不支持的版本应报错")
	}
}

func TestVersion_Ordering(t *testing.T) {
	// 版本枚举值大小即先后顺序
	order := []Version{R12, R2000, R2004, R2007, R2010, R2013, R2018}
	for i := 1; i < len(order); i++ {
		if order[i-1] >= order[i] {
			t.Errorf("%s 应早于 %s", order[i-1].Name(), order[i].Name())
		}
	}

	if R2000.Name() != "R2000" || R2000.String() != "AC1015" {
		t.Errorf("R2000 名称不符: %s / %s", R2000.Name(), R2000.String())
	}
}

func TestRequire(t *testing.T) {
	// LINE 未登记最低版本，任何版本可用
	if err := Require("LINE", R12); err != nil {
		t.Errorf("LINE 在 R12 下应可用: %v", err)
	}

	// LWPOLYLINE 要求 R2000
	if err := Require("LWPOLYLINE", R12); err == nil {
		t.Errorf("LWPOLYLINE 在 R12 下应报版本错误")
	}
	if err := Require("LWPOLYLINE", R2000); err != nil {
		t.Errorf("LWPOLYLINE 在 R2000 下应可用: %v", err)
	}

	// SURFACE 族要求 R2007
	err := Require("SURFACE", R2000)
	if err == nil {
		t.Fatalf("SURFACE 在 R2000 下应报版本错误")
	}
	var ve *VersionError
	if !errors.As(err, &ve) {
		t.Fatalf("错误类型不符: %T", err)
	}
	if ve.Kind != "SURFACE" || ve.Required != R2007 || ve.Actual != R2000 {
		t.Errorf("版本错误内容不符: %+v", ve)
	}
	if err = Require("surface", R2007); err != nil {
		t.Errorf("SURFACE 在 R2007 下应可用: %v", err)
	}
}
