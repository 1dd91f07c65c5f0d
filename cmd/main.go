package main

import (
	"fmt"
	"os"

	"github.com/ncruces/zenity"
	"github.com/zooyer/dxfgen"
	"github.com/zooyer/dxfgen/core"
	"github.com/zooyer/dxfgen/spline"
	"github.com/zooyer/dxfgen/utils"
	"github.com/zooyer/golib/xos"
)

// 选择输出路径：优先取命令行参数，否则弹出保存对话框
func outputPath() (string, error) {
	if len(os.Args) > 1 {
		return os.Args[1], nil
	}

	return zenity.SelectFileSave(
		zenity.Title("保存生成的 DXF"),
		zenity.Filename("demo.dxf"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{
			{Name: "DXF 文件", Patterns: []string{"*.dxf"}, CaseFold: true},
		},
	)
}

func buildDemo() (*dxfgen.Document, error) {
	doc, err := dxfgen.New("R2007")
	if err != nil {
		return nil, err
	}

	msp := doc.Modelspace()

	// 图框与基本图元
	if _, err = msp.AddLWPolyline([]core.Point{
		{X: 0, Y: 0}, {X: 200, Y: 0}, {X: 200, Y: 120}, {X: 0, Y: 120},
	}, core.Attribs{"closed": true}); err != nil {
		return nil, err
	}
	if _, err = msp.AddCircle(core.Point{X: 60, Y: 60}, 25, nil); err != nil {
		return nil, err
	}
	if _, err = msp.AddEllipse(core.Point{X: 150, Y: 60}, core.Point{X: 30}, 0.5, 0, 6.2832, nil); err != nil {
		return nil, err
	}

	// 由拟合点插值样条
	fit := []core.Point{
		{X: 10, Y: 10}, {X: 40, Y: 40}, {X: 80, Y: 15}, {X: 120, Y: 45}, {X: 160, Y: 20},
	}
	if _, err = msp.AddSplineControlFrame(fit, 3, spline.MethodCentripetal, 0.5, nil); err != nil {
		return nil, err
	}

	// 对齐标注
	if _, err = msp.AddAlignedDim(core.Point{}, core.Point{X: 200}, -8, "", "", nil, nil); err != nil {
		return nil, err
	}

	// 带属性占位符的标题栏块，自动填充属性值
	title := doc.NewBlock("TITLE", core.Point{})
	if _, err = title.AddAttdef("图名", "请输入图名", "", core.Point{X: 2, Y: 8}, nil); err != nil {
		return nil, err
	}
	if _, err = title.AddAttdef("比例", "请输入比例", "1:100", core.Point{X: 2, Y: 2}, nil); err != nil {
		return nil, err
	}
	if _, err = msp.AddAutoBlockref("TITLE", core.Point{X: 210, Y: 0}, map[string]string{
		"图名": "示例图",
		"比例": "1:50",
	}, nil); err != nil {
		return nil, err
	}

	return doc, nil
}

// verify 重新扫描输出文件，统计标签数并核对 EOF
func verify(filename string) (count int, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := core.NewScanner(file)
	var last core.Tag
	for scanner.Next() {
		last = scanner.LastTag
		count++
	}
	if err = scanner.Err(); err != nil {
		return
	}
	if last.Code != 0 || last.Value != "EOF" {
		err = fmt.Errorf("输出未以 EOF 结尾: %+v", last)
	}

	return
}

func main() {
	defer xos.PauseExit()

	filename, err := outputPath()
	if err != nil {
		fmt.Println("未选择输出文件:", err)
		return
	}

	doc, err := buildDemo()
	if err != nil {
		fmt.Println("构建图纸失败:", err)
		return
	}

	if err = doc.Save(filename); err != nil {
		fmt.Println("写入失败:", err)
		return
	}

	count, err := verify(filename)
	if err != nil {
		fmt.Println("校验失败:", err)
		return
	}

	// 汇总自动块引用里的属性值
	var report string
	for _, e := range doc.Modelspace().Entities() {
		if e.Kind != "INSERT" {
			continue
		}
		block := doc.Block(e.Attribs.String("name"))
		if block == nil {
			continue
		}
		for _, inner := range block.Entities() {
			if inner.Kind != "INSERT" || len(inner.Linked) == 0 {
				continue
			}
			for tag, value := range utils.GetAttrs(inner) {
				world := utils.TransformPoint(inner.Attribs.Point("insert"), e)
				report += fmt.Sprintf("%s=%s @(%.1f,%.1f)\n", tag, value, world.X, world.Y)
			}
		}
	}
	if report != "" {
		if err = xos.AppendFile(filename+".txt", []byte(report), 0644); err != nil {
			fmt.Println("写入属性报告失败:", err)
			return
		}
	}

	fmt.Printf("已生成 %s，实体 %d 个，标签 %d 组\n", filename, doc.DB().Len(), count)
}
