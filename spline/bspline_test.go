package spline

import (
	"testing"

	"github.com/zooyer/dxfgen/core"
	"github.com/zooyer/golib/xmath"
)

const epsilon = 1e-9

var fitPoints = []core.Point{
	{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: 0}, {X: 3, Y: 2},
}

func TestParams(t *testing.T) {
	methods := []string{MethodUniform, MethodDistance, MethodCentripetal}
	for _, method := range methods {
		params, err := Params(fitPoints, method, 0.5)
		if err != nil {
			t.Fatalf("%s 计算失败: %v", method, err)
		}
		if len(params) != len(fitPoints) {
			t.Fatalf("%s 参数个数不符: %d", method, len(params))
		}
		if params[0] != 0 || params[len(params)-1] != 1 {
			t.Errorf("%s 参数端点不符: %v", method, params)
		}
		// 参数必须严格递增
		for i := 1; i < len(params); i++ {
			if params[i] <= params[i-1] {
				t.Errorf("%s 参数未严格递增: %v", method, params)
			}
		}
	}

	// 等距弦长时 distance 退化为 uniform
	line := []core.Point{{X: 0}, {X: 1}, {X: 2}}
	params, err := Params(line, MethodDistance, 1)
	if err != nil {
		t.Fatalf("计算失败: %v", err)
	}
	if !xmath.Equal(params[1], 0.5, epsilon) {
		t.Errorf("等距弦长参数不符: %v", params)
	}
}

func TestParams_Errors(t *testing.T) {
	if _, err := Params(fitPoints[:1], MethodUniform, 0); err == nil {
		t.Errorf("拟合点不足应报错")
	}
	if _, err := Params(fitPoints, "chord", 0); err == nil {
		t.Errorf("未知参数化方法应报错")
	}
	coincident := []core.Point{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 2}}
	if _, err := Params(coincident, MethodDistance, 1); err == nil {
		t.Errorf("重合拟合点应报错")
	}
}

func TestControlFrame(t *testing.T) {
	const degree = 3
	frame, err := ControlFrame(fitPoints, degree, MethodCentripetal, 0.5)
	if err != nil {
		t.Fatalf("插值失败: %v", err)
	}
	if err = frame.Validate(); err != nil {
		t.Fatalf("插值结果不合法: %v", err)
	}

	// 插值控制点数等于拟合点数
	if len(frame.ControlPoints) != len(fitPoints) {
		t.Errorf("控制点数不符: %d", len(frame.ControlPoints))
	}
	if len(frame.Knots) != len(frame.ControlPoints)+degree+1 {
		t.Errorf("节点数不符: %d", len(frame.Knots))
	}

	// 开放钳位样条两端各重复 degree+1 个节点
	for i := 0; i <= degree; i++ {
		if frame.Knots[i] != 0 {
			t.Errorf("首端节点未钳位: %v", frame.Knots)
		}
		if frame.Knots[len(frame.Knots)-1-i] != 1 {
			t.Errorf("末端节点未钳位: %v", frame.Knots)
		}
	}

	// 曲线必须精确经过所有拟合点
	params, _ := Params(fitPoints, MethodCentripetal, 0.5)
	for i, u := range params {
		var p core.Point
		for j, c := range frame.ControlPoints {
			p = p.Add(c.Mul(basis(j, degree, u, frame.Knots)))
		}
		if !xmath.Equal(p.X, fitPoints[i].X, 1e-6) || !xmath.Equal(p.Y, fitPoints[i].Y, 1e-6) {
			t.Errorf("曲线未经过第 %d 个拟合点: 期望 %+v, 得到 %+v", i, fitPoints[i], p)
		}
	}
}

func TestControlFrame_Errors(t *testing.T) {
	if _, err := ControlFrame(fitPoints[:3], 3, MethodUniform, 0); err == nil {
		t.Errorf("拟合点少于 degree+1 应报错")
	}
	if _, err := ControlFrame(fitPoints, 0, MethodUniform, 0); err == nil {
		t.Errorf("阶数小于 1 应报错")
	}
	if _, err := ControlFrame(fitPoints, 3, "bad", 0); err == nil {
		t.Errorf("未知参数化方法应报错")
	}
}

func TestControlFrameApprox(t *testing.T) {
	fit := []core.Point{
		{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2.5}, {X: 3, Y: 2},
		{X: 4, Y: 3}, {X: 5, Y: 1}, {X: 6, Y: 0.5}, {X: 7, Y: 2},
	}
	const degree, count = 3, 5

	frame, err := ControlFrameApprox(fit, count, degree, MethodDistance, 1)
	if err != nil {
		t.Fatalf("逼近失败: %v", err)
	}
	if err = frame.Validate(); err != nil {
		t.Fatalf("逼近结果不合法: %v", err)
	}
	if len(frame.ControlPoints) != count {
		t.Errorf("控制点数不符: %d", len(frame.ControlPoints))
	}

	// 首末拟合点必须精确保留
	if frame.ControlPoints[0] != fit[0] {
		t.Errorf("首控制点不符: %+v", frame.ControlPoints[0])
	}
	if frame.ControlPoints[count-1] != fit[len(fit)-1] {
		t.Errorf("末控制点不符: %+v", frame.ControlPoints[count-1])
	}
}

func TestControlFrameApprox_CountBounds(t *testing.T) {
	// degree < count < len(fit)
	if _, err := ControlFrameApprox(fitPoints, 3, 3, MethodUniform, 0); err == nil {
		t.Errorf("控制点数不大于阶数应报错")
	}
	if _, err := ControlFrameApprox(fitPoints, 4, 3, MethodUniform, 0); err == nil {
		t.Errorf("控制点数不小于拟合点数应报错")
	}
}

func TestOpenUniform(t *testing.T) {
	control := []core.Point{{X: 0}, {X: 1, Y: 1}, {X: 2}, {X: 3, Y: 1}, {X: 4}}
	frame, err := OpenUniform(control, 3)
	if err != nil {
		t.Fatalf("构造失败: %v", err)
	}
	if err = frame.Validate(); err != nil {
		t.Fatalf("结果不合法: %v", err)
	}

	want := []float64{0, 0, 0, 0, 1, 2, 2, 2, 2}
	if len(frame.Knots) != len(want) {
		t.Fatalf("节点数不符: %v", frame.Knots)
	}
	for i := range want {
		if frame.Knots[i] != want[i] {
			t.Fatalf("节点向量不符: 期望 %v, 得到 %v", want, frame.Knots)
		}
	}

	// 控制点为拷贝，调用方后续修改不影响样条
	control[0].X = 99
	if frame.ControlPoints[0].X != 0 {
		t.Errorf("控制点未拷贝")
	}
}

func TestPeriodic(t *testing.T) {
	control := []core.Point{{X: 0}, {X: 2}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	const degree = 3

	frame, err := Periodic(control, degree)
	if err != nil {
		t.Fatalf("构造失败: %v", err)
	}
	if err = frame.Validate(); err != nil {
		t.Fatalf("结果不合法: %v", err)
	}

	// 控制点尾部重复前 degree 个点保证接缝连续
	if len(frame.ControlPoints) != len(control)+degree {
		t.Fatalf("控制点数不符: %d", len(frame.ControlPoints))
	}
	for i := 0; i < degree; i++ {
		if frame.ControlPoints[len(control)+i] != control[i] {
			t.Errorf("第 %d 个重复控制点不符", i)
		}
	}

	// 周期样条用均匀非钳位节点
	for i := range frame.Knots {
		if frame.Knots[i] != float64(i) {
			t.Errorf("节点向量应为 0..n: %v", frame.Knots)
		}
	}
}

func TestRational(t *testing.T) {
	control := []core.Point{{X: 0}, {X: 1, Y: 1}, {X: 2}, {X: 3, Y: 1}}
	weights := []float64{1, 2, 2, 1}

	frame, err := OpenRational(control, weights, 3)
	if err != nil {
		t.Fatalf("构造失败: %v", err)
	}
	if len(frame.Weights) != len(frame.ControlPoints) {
		t.Errorf("权重数与控制点数不符")
	}

	// 权重数不匹配应报错
	if _, err = OpenRational(control, weights[:2], 3); err == nil {
		t.Errorf("权重数不匹配应报错")
	}

	// 周期有理样条的权重随控制点一同尾部重复
	periodic, err := PeriodicRational(control, weights, 3)
	if err != nil {
		t.Fatalf("构造失败: %v", err)
	}
	if len(periodic.Weights) != len(periodic.ControlPoints) {
		t.Fatalf("周期样条权重数不符: %d", len(periodic.Weights))
	}
	for i := 0; i < 3; i++ {
		if periodic.Weights[len(weights)+i] != weights[i] {
			t.Errorf("第 %d 个重复权重不符", i)
		}
	}
}

func TestFrame_Validate(t *testing.T) {
	frame := Frame{
		Degree:        2,
		ControlPoints: []core.Point{{X: 0}, {X: 1}, {X: 2}},
		Knots:         []float64{0, 0, 0, 1, 1, 1},
	}
	if err := frame.Validate(); err != nil {
		t.Errorf("合法样条校验失败: %v", err)
	}

	bad := frame
	bad.Knots = frame.Knots[:5]
	if err := bad.Validate(); err == nil {
		t.Errorf("节点数不符应报错")
	}

	bad = frame
	bad.Knots = []float64{0, 0, 1, 0, 1, 1}
	if err := bad.Validate(); err == nil {
		t.Errorf("节点递减应报错")
	}

	bad = frame
	bad.Weights = []float64{1, 1}
	if err := bad.Validate(); err == nil {
		t.Errorf("权重数不符应报错")
	}
}
