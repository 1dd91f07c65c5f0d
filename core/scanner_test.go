package core

import (
	"bytes"
	"strings"
	"testing"
)

func TestScanner_Basic(t *testing.T) {
	// 模拟一个简单的 DXF 片段
	dxfData := "0\nSECTION\n2\nHEADER\n0\nENDSEC\n"
	r := strings.NewReader(dxfData)
	scanner := NewScanner(r)

	expected := []Tag{
		{0, "SECTION"},
		{2, "HEADER"},
		{0, "ENDSEC"},
	}

	for i, exp := range expected {
		if !scanner.Next() {
			t.Fatalf("第 %d 步读取失败: %v", i, scanner.Err())
		}
		if scanner.LastTag.Code != exp.Code || scanner.LastTag.Value != exp.Value {
			t.Errorf("第 %d 步数据不符: 期望 %+v, 得到 %+v", i, exp, scanner.LastTag)
		}
	}

	if scanner.Next() {
		t.Errorf("流已结束仍读到标签: %+v", scanner.LastTag)
	}
}

func TestScanner_KeepLeadingSpace(t *testing.T) {
	// DXF 规范要求保留值开头的空格
	scanner := NewScanner(strings.NewReader("1\n  indented\n"))
	if !scanner.Next() {
		t.Fatalf("读取失败: %v", scanner.Err())
	}
	if scanner.LastTag.Value != "  indented" {
		t.Errorf("值开头空格丢失: %q", scanner.LastTag.Value)
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	tags := []Tag{
		{0, "LINE"},
		{8, "0"},
		FloatTag(10, 1.5),
		FloatTag(20, 0),
		IntTag(70, 9),
		{1, "文本内容"},
	}

	var buf bytes.Buffer
	writer := NewWriter(&buf)
	writer.WriteTags(tags...)
	if err := writer.Flush(); err != nil {
		t.Fatalf("写入失败: %v", err)
	}

	scanner := NewScanner(&buf)
	for i, exp := range tags {
		if !scanner.Next() {
			t.Fatalf("第 %d 步回读失败: %v", i, scanner.Err())
		}
		if scanner.LastTag != exp {
			t.Errorf("第 %d 步数据不符: 期望 %+v, 得到 %+v", i, exp, scanner.LastTag)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{1.5, "1.5"},
		{-2.25, "-2.25"},
	}

	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, 期望 %q", tt.in, got, tt.want)
		}
	}
}
